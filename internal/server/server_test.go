package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sugarreset.app/server/internal/common"
	"sugarreset.app/server/internal/config"
	"sugarreset.app/server/internal/features/admin"
	"sugarreset.app/server/internal/server/middleware"
)

type memorySessions struct {
	byToken map[string]*admin.Session
}

func (m *memorySessions) CreateSession(_ context.Context, token string, expiresAt time.Time) (*admin.Session, error) {
	s := &admin.Session{Token: token, ExpiresAt: expiresAt}
	m.byToken[token] = s
	return s, nil
}

func (m *memorySessions) GetSession(_ context.Context, token string) (*admin.Session, error) {
	s, ok := m.byToken[token]
	if !ok {
		return nil, common.ErrSessionExpired
	}
	return s, nil
}

func (m *memorySessions) DeleteExpired(context.Context) (int64, error) { return 0, nil }

func newTestRouter(t *testing.T, limit int) http.Handler {
	t.Helper()

	cfg := &config.Config{
		HTTPRequestTimeout: 30 * time.Second,
		RateLimitRequests:  limit,
		RateLimitWindow:    time.Minute,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("sekret"), bcrypt.MinCost)
	require.NoError(t, err)
	clock := common.FixedClock{T: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	adminSvc := admin.NewService(
		&memorySessions{byToken: make(map[string]*admin.Session)},
		string(hash), time.Hour, clock,
	)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	t.Cleanup(limiter.Close)

	h := Handlers{Admin: admin.NewHandler(adminSvc, nil)}
	return New(cfg, h, adminSvc, limiter)
}

func postLogin(router http.Handler, password string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"password":"`+password+`"}`))
	req.RemoteAddr = "203.0.113.7:40000"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminLoginRateLimited(t *testing.T) {
	router := newTestRouter(t, 2)

	// Password guessing is throttled like every other caller-facing route.
	assert.Equal(t, http.StatusUnauthorized, postLogin(router, "guess-1").Code)
	assert.Equal(t, http.StatusUnauthorized, postLogin(router, "guess-2").Code)
	assert.Equal(t, http.StatusTooManyRequests, postLogin(router, "guess-3").Code)
}

func TestAdminLoginSucceedsWithinLimit(t *testing.T) {
	router := newTestRouter(t, 5)

	rec := postLogin(router, "sekret")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")
}
