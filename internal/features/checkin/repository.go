// Package checkin — repository.go runs queries against the check_ins table.
// The day column is a DATE; the UNIQUE (user_id, day) constraint backs the
// one-record-per-day upsert.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sugarreset.app/server/internal/common"
	"sugarreset.app/server/internal/features/streak"
)

// Repository is the PostgreSQL implementation of the check-in store. It also
// implements streak.Ledger for full streak recomputation.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a check-in repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const checkInColumns = `id, user_id, day, sugar_free, grams_consumed, mood, craving_level, notes, created_at, updated_at`

func scanCheckIn(row pgx.Row) (*CheckIn, error) {
	var c CheckIn
	var day time.Time
	err := row.Scan(
		&c.ID, &c.UserID, &day, &c.SugarFree,
		&c.GramsConsumed, &c.Mood, &c.CravingLevel, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Day = common.FormatDay(day)
	return &c, nil
}

// Upsert writes one check-in, replacing every field of an existing record
// for the same day, including nulling out extras the new record omits.
func (r *Repository) Upsert(ctx context.Context, c *CheckIn) error {
	day, err := common.ParseDay(c.Day)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO check_ins (user_id, day, sugar_free, grams_consumed, mood, craving_level, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, day) DO UPDATE
		SET sugar_free = EXCLUDED.sugar_free,
		    grams_consumed = EXCLUDED.grams_consumed,
		    mood = EXCLUDED.mood,
		    craving_level = EXCLUDED.craving_level,
		    notes = EXCLUDED.notes,
		    updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		c.UserID, day, c.SugarFree, c.GramsConsumed, c.Mood, c.CravingLevel, c.Notes,
	)
	if err != nil {
		return fmt.Errorf("upsert check-in %s/%s: %w", c.UserID, c.Day, err)
	}
	return nil
}

// Get returns the check-in for one day, or nil when none exists. An
// unlogged day is an ordinary state, not an error.
func (r *Repository) Get(ctx context.Context, userID, day string) (*CheckIn, error) {
	d, err := common.ParseDay(day)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE user_id = $1 AND day = $2`
	c, err := scanCheckIn(r.db.QueryRow(ctx, query, userID, d))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get check-in %s/%s: %w", userID, day, err)
	}
	return c, nil
}

// List returns the check-ins in [from, to], newest first.
func (r *Repository) List(ctx context.Context, userID, from, to string) ([]*CheckIn, error) {
	fromDay, err := common.ParseDay(from)
	if err != nil {
		return nil, err
	}
	toDay, err := common.ParseDay(to)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + checkInColumns + `
		FROM check_ins
		WHERE user_id = $1 AND day BETWEEN $2 AND $3
		ORDER BY day DESC
	`
	rows, err := r.db.Query(ctx, query, userID, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("list check-ins %s: %w", userID, err)
	}
	defer rows.Close()

	var out []*CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DayOutcomes implements streak.Ledger: the whole ledger reduced to
// (day, sugar-free) pairs, oldest first.
func (r *Repository) DayOutcomes(ctx context.Context, userID string) ([]streak.DayOutcome, error) {
	query := `SELECT day, sugar_free FROM check_ins WHERE user_id = $1 ORDER BY day ASC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list day outcomes %s: %w", userID, err)
	}
	defer rows.Close()

	var out []streak.DayOutcome
	for rows.Next() {
		var day time.Time
		var sugarFree bool
		if err := rows.Scan(&day, &sugarFree); err != nil {
			return nil, fmt.Errorf("scan day outcome: %w", err)
		}
		out = append(out, streak.DayOutcome{Day: common.FormatDay(day), SugarFree: sugarFree})
	}
	return out, rows.Err()
}
