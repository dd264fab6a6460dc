// Package profile — repository.go runs queries against the profiles table.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sugarreset.app/server/internal/common"
	"sugarreset.app/server/internal/features/plan"
)

// Repository is the PostgreSQL implementation of the profile store.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a profile repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const profileColumns = `id, user_id, display_name, plan_type, plan_started_at, health_score, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.PlanType,
		&p.PlanStartedAt, &p.HealthScore, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new profile.
func (r *Repository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (user_id, display_name, plan_type, plan_started_at, health_score)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		p.UserID, p.DisplayName, p.PlanType, p.PlanStartedAt, p.HealthScore,
	)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetByUserID returns one profile, or common.ErrProfileNotFound.
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return p, nil
}

// UpdatePlan switches the plan and resets its start instant.
func (r *Repository) UpdatePlan(ctx context.Context, userID string, planType plan.Type, startedAt time.Time) error {
	query := `
		UPDATE profiles
		SET plan_type = $2, plan_started_at = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID, planType, startedAt)
	if err != nil {
		return fmt.Errorf("update plan %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrProfileNotFound
	}
	return nil
}

// UpdateHealthScore stores a freshly computed health score.
func (r *Repository) UpdateHealthScore(ctx context.Context, userID string, score int) error {
	query := `UPDATE profiles SET health_score = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, userID, score)
	if err != nil {
		return fmt.Errorf("update health score %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrProfileNotFound
	}
	return nil
}
