package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"sugarreset.app/server/internal/common"
)

// SessionStore is the persistence surface for admin sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, token string, expiresAt time.Time) (*Session, error)
	GetSession(ctx context.Context, token string) (*Session, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// Service checks the admin password and manages bearer sessions.
type Service struct {
	store        SessionStore
	passwordHash string
	sessionTTL   time.Duration
	clock        common.Clock
}

// NewService creates the admin service. passwordHash is a bcrypt hash,
// generated with scripts/generate_hash.go.
func NewService(store SessionStore, passwordHash string, sessionTTL time.Duration, clock common.Clock) *Service {
	return &Service{
		store:        store,
		passwordHash: passwordHash,
		sessionTTL:   sessionTTL,
		clock:        clock,
	}
}

// Login verifies the password and issues a session token.
func (s *Service) Login(ctx context.Context, password string) (*Session, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		log.Warn("admin login rejected: wrong password")
		return nil, common.ErrWrongPassword
	}

	token := uuid.NewString()
	session, err := s.store.CreateSession(ctx, token, s.clock.Now().Add(s.sessionTTL))
	if err != nil {
		return nil, fmt.Errorf("issue admin session: %w", err)
	}

	log.WithField("expires_at", session.ExpiresAt).Info("admin logged in")
	return session, nil
}

// Authenticate resolves a bearer token to a live session.
func (s *Service) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrSessionExpired
	}
	_, err := s.store.GetSession(ctx, token)
	return err
}

// Cleanup drops expired sessions.
func (s *Service) Cleanup(ctx context.Context) error {
	n, err := s.store.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.WithField("count", n).Debug("expired admin sessions removed")
	}
	return nil
}
