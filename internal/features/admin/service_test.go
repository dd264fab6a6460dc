package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sugarreset.app/server/internal/common"
)

type fakeSessions struct {
	byToken map[string]*Session
	now     time.Time
}

func newFakeSessions(now time.Time) *fakeSessions {
	return &fakeSessions{byToken: make(map[string]*Session), now: now}
}

func (f *fakeSessions) CreateSession(_ context.Context, token string, expiresAt time.Time) (*Session, error) {
	s := &Session{ID: len(f.byToken) + 1, Token: token, CreatedAt: f.now, ExpiresAt: expiresAt}
	f.byToken[token] = s
	return s, nil
}

func (f *fakeSessions) GetSession(_ context.Context, token string) (*Session, error) {
	s, ok := f.byToken[token]
	if !ok || !s.ExpiresAt.After(f.now) {
		return nil, common.ErrSessionExpired
	}
	return s, nil
}

func (f *fakeSessions) DeleteExpired(context.Context) (int64, error) {
	var n int64
	for token, s := range f.byToken {
		if !s.ExpiresAt.After(f.now) {
			delete(f.byToken, token)
			n++
		}
	}
	return n, nil
}

var adminNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *fakeSessions) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("sekret"), bcrypt.MinCost)
	require.NoError(t, err)

	store := newFakeSessions(adminNow)
	svc := NewService(store, string(hash), time.Hour, common.FixedClock{T: adminNow})
	return svc, store
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "sekret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, adminNow.Add(time.Hour), session.ExpiresAt)

	assert.NoError(t, svc.Authenticate(ctx, session.Token))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Login(context.Background(), "guess")
	assert.ErrorIs(t, err, common.ErrWrongPassword)
	assert.Empty(t, store.byToken)
}

func TestAuthenticate_UnknownOrEmptyToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authenticate(ctx, "no-such-token"), common.ErrSessionExpired)
	assert.ErrorIs(t, svc.Authenticate(ctx, ""), common.ErrSessionExpired)
}

func TestAuthenticate_ExpiredSession(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "sekret")
	require.NoError(t, err)

	store.now = adminNow.Add(2 * time.Hour)
	assert.ErrorIs(t, svc.Authenticate(ctx, session.Token), common.ErrSessionExpired)
}

func TestCleanup(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "sekret")
	require.NoError(t, err)

	store.now = adminNow.Add(2 * time.Hour)
	require.NoError(t, svc.Cleanup(ctx))
	assert.Empty(t, store.byToken)
}
