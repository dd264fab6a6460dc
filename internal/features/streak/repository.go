// Package streak — repository.go persists cached streak state in the
// streaks table. last_check_in is a DATE column, NULL until the first
// check-in, mapped to the empty string in Go.
package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sugarreset.app/server/internal/common"
)

// Repository is the PostgreSQL implementation of the streak store.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a streak repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Ensure creates an empty state row for a new user, keeping any existing row.
func (r *Repository) Ensure(ctx context.Context, userID string) error {
	query := `
		INSERT INTO streaks (user_id, current_streak, longest_streak, total_days_sugar_free)
		VALUES ($1, 0, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("ensure streak state: %w", err)
	}
	return nil
}

// Get returns the cached state, or a zero state if none exists yet.
func (r *Repository) Get(ctx context.Context, userID string) (State, error) {
	query := `
		SELECT user_id, current_streak, longest_streak, total_days_sugar_free,
		       last_check_in, updated_at
		FROM streaks
		WHERE user_id = $1
	`
	st, err := scanState(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return State{UserID: userID}, nil
		}
		return State{}, fmt.Errorf("get streak state %s: %w", userID, err)
	}
	return st, nil
}

// Save upserts the whole state row.
func (r *Repository) Save(ctx context.Context, st State) error {
	query := `
		INSERT INTO streaks (user_id, current_streak, longest_streak,
		                     total_days_sugar_free, last_check_in, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET current_streak = EXCLUDED.current_streak,
		    longest_streak = EXCLUDED.longest_streak,
		    total_days_sugar_free = EXCLUDED.total_days_sugar_free,
		    last_check_in = EXCLUDED.last_check_in,
		    updated_at = NOW()
	`
	var last *time.Time
	if st.LastCheckIn != "" {
		t, err := common.ParseDay(st.LastCheckIn)
		if err != nil {
			return err
		}
		last = &t
	}
	_, err := r.db.Exec(ctx, query,
		st.UserID, st.CurrentStreak, st.LongestStreak, st.TotalDaysSugarFree, last,
	)
	if err != nil {
		return fmt.Errorf("save streak state %s: %w", st.UserID, err)
	}
	return nil
}

// All returns every cached state. Used by the nightly rollover.
func (r *Repository) All(ctx context.Context) ([]State, error) {
	query := `
		SELECT user_id, current_streak, longest_streak, total_days_sugar_free,
		       last_check_in, updated_at
		FROM streaks
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list streak states: %w", err)
	}
	defer rows.Close()

	var states []State
	for rows.Next() {
		st, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("scan streak state: %w", err)
		}
		states = append(states, st)
	}
	return states, rows.Err()
}

// ResetCurrent zeroes one user's current streak, leaving the record and
// lifetime total alone.
func (r *Repository) ResetCurrent(ctx context.Context, userID string) error {
	query := `UPDATE streaks SET current_streak = 0, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("reset streak %s: %w", userID, err)
	}
	return nil
}

func scanState(row pgx.Row) (State, error) {
	var st State
	var last *time.Time
	err := row.Scan(
		&st.UserID, &st.CurrentStreak, &st.LongestStreak,
		&st.TotalDaysSugarFree, &last, &st.UpdatedAt,
	)
	if err != nil {
		return State{}, err
	}
	if last != nil {
		st.LastCheckIn = common.FormatDay(*last)
	}
	return st, nil
}
