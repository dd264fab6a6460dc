package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sugarreset.app/server/internal/common"
)

// Repository stores admin sessions in PostgreSQL so restarts do not log
// the operator out.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateSession inserts a session and returns it with the generated id.
func (r *Repository) CreateSession(ctx context.Context, token string, expiresAt time.Time) (*Session, error) {
	s := &Session{Token: token, ExpiresAt: expiresAt}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO admin_sessions (token, expires_at)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, token, expiresAt).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create admin session: %w", err)
	}
	return s, nil
}

// GetSession returns the session for the token if it has not expired.
func (r *Repository) GetSession(ctx context.Context, token string) (*Session, error) {
	var s Session
	err := r.pool.QueryRow(ctx, `
		SELECT id, token, created_at, expires_at
		FROM admin_sessions
		WHERE token = $1 AND expires_at > now()
	`, token).Scan(&s.ID, &s.Token, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("load admin session: %w", err)
	}
	return &s, nil
}

// DeleteExpired removes sessions past their expiry.
func (r *Repository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired admin sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
