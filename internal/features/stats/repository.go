package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the aggregation input and stores the single summary row.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListUserRecords returns up to limit per-user records, newest activity
// first, so a capped read still covers the users most likely to be active.
func (r *Repository) ListUserRecords(ctx context.Context, limit int) ([]UserRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.user_id, s.current_streak, p.health_score, s.updated_at
		FROM streaks s
		JOIN profiles p ON p.user_id = s.user_id
		ORDER BY s.updated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list user records: %w", err)
	}
	defer rows.Close()

	var records []UserRecord
	for rows.Next() {
		var rec UserRecord
		if err := rows.Scan(&rec.UserID, &rec.CurrentStreak, &rec.HealthScore, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ReplaceSummary overwrites the single community_summary row.
func (r *Repository) ReplaceSummary(ctx context.Context, s CommunitySummary) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO community_summary (
			id, total_users, active_users, average_streak, average_health_score,
			total_days_sugar_free, top_streak, top_health_score, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			total_users = EXCLUDED.total_users,
			active_users = EXCLUDED.active_users,
			average_streak = EXCLUDED.average_streak,
			average_health_score = EXCLUDED.average_health_score,
			total_days_sugar_free = EXCLUDED.total_days_sugar_free,
			top_streak = EXCLUDED.top_streak,
			top_health_score = EXCLUDED.top_health_score,
			updated_at = EXCLUDED.updated_at
	`, s.TotalUsers, s.ActiveUsers, s.AverageStreak, s.AverageHealthScore,
		s.TotalDaysSugarFree, s.TopStreak, s.TopHealthScore, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("replace community summary: %w", err)
	}
	return nil
}

// LatestSummary returns the stored summary. Before the first aggregation
// run it returns a zero summary.
func (r *Repository) LatestSummary(ctx context.Context) (CommunitySummary, error) {
	var s CommunitySummary
	err := r.pool.QueryRow(ctx, `
		SELECT total_users, active_users, average_streak, average_health_score,
		       total_days_sugar_free, top_streak, top_health_score, updated_at
		FROM community_summary
		WHERE id = 1
	`).Scan(&s.TotalUsers, &s.ActiveUsers, &s.AverageStreak, &s.AverageHealthScore,
		&s.TotalDaysSugarFree, &s.TopStreak, &s.TopHealthScore, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return CommunitySummary{}, nil
	}
	if err != nil {
		return CommunitySummary{}, fmt.Errorf("load community summary: %w", err)
	}
	return s, nil
}
