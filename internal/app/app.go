// Package app initializes the application. app.go is the assembly point:
// pool, migrations, repositories, services, handlers, router and scheduler,
// in dependency order.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"sugarreset.app/server/internal/common"
	"sugarreset.app/server/internal/config"
	"sugarreset.app/server/internal/db/postgres"
	"sugarreset.app/server/internal/features/admin"
	"sugarreset.app/server/internal/features/checkin"
	"sugarreset.app/server/internal/features/plan"
	"sugarreset.app/server/internal/features/profile"
	"sugarreset.app/server/internal/features/stats"
	"sugarreset.app/server/internal/features/streak"
	"sugarreset.app/server/internal/jobs"
	"sugarreset.app/server/internal/server"
	"sugarreset.app/server/internal/server/middleware"
)

// App holds the assembled application.
type App struct {
	Handler   http.Handler
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	limiter   *middleware.RateLimiter
}

// New builds the application. Construction order matters: repositories need
// the pool, services need their repositories and each other.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	clock := common.NewClock(cfg.Location())

	profileRepo := profile.NewRepository(pool)
	checkInRepo := checkin.NewRepository(pool)
	streakRepo := streak.NewRepository(pool)
	statsRepo := stats.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	streakService := streak.NewService(streakRepo, checkInRepo, clock)
	profileService := profile.NewService(profileRepo, streakService, clock)
	checkInService := checkin.NewService(checkInRepo, profileService, streakService, clock)
	statsService := stats.NewService(statsRepo, clock, cfg.AggregationMaxUsers)
	adminService := admin.NewService(adminRepo, cfg.AdminPasswordHash, cfg.AdminSessionTTL, clock)

	handlers := server.Handlers{
		Profile: profile.NewHandler(profileService),
		Plan:    plan.NewHandler(profileService, clock),
		CheckIn: checkin.NewHandler(checkInService),
		Streak:  streak.NewHandler(streakService),
		Stats:   stats.NewHandler(statsService),
		Admin:   admin.NewHandler(adminService, statsService),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	router := server.New(cfg, handlers, adminService, limiter)
	scheduler := jobs.NewScheduler(cfg, streakService, profileService, statsService, adminService)

	return &App{
		Handler:   router,
		Scheduler: scheduler,
		DB:        pool,
		limiter:   limiter,
	}, nil
}

// Close releases the resources the app owns. The HTTP server and scheduler
// are stopped by the caller before this.
func (a *App) Close() {
	a.limiter.Close()
	a.DB.Close()
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Profiles},
		{2, migration002CheckIns},
		{3, migration003Streaks},
		{4, migration004CommunitySummary},
		{5, migration005AdminSessions},
	}

	for _, m := range migrations {
		if err := postgres.ApplyMigration(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
	}
	log.WithField("count", len(migrations)).Info("migrations up to date")
	return nil
}

// Migrations are embedded so deploys ship one binary.

var migration001Profiles = `
CREATE TABLE IF NOT EXISTS profiles (
    id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(64) UNIQUE NOT NULL,
    display_name VARCHAR(255) NOT NULL,
    plan_type VARCHAR(32) NOT NULL,
    plan_started_at TIMESTAMPTZ NOT NULL,
    health_score INTEGER NOT NULL DEFAULT 50,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id);
`

var migration002CheckIns = `
CREATE TABLE IF NOT EXISTS check_ins (
    id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL REFERENCES profiles(user_id),
    day DATE NOT NULL,
    sugar_free BOOLEAN NOT NULL,
    grams_consumed INTEGER,
    mood INTEGER,
    craving_level INTEGER,
    notes TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, day)
);
CREATE INDEX IF NOT EXISTS idx_check_ins_user_day ON check_ins(user_id, day DESC);
`

var migration003Streaks = `
CREATE TABLE IF NOT EXISTS streaks (
    user_id VARCHAR(64) PRIMARY KEY REFERENCES profiles(user_id),
    current_streak INTEGER NOT NULL DEFAULT 0,
    longest_streak INTEGER NOT NULL DEFAULT 0,
    total_days_sugar_free INTEGER NOT NULL DEFAULT 0,
    last_check_in DATE,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

var migration004CommunitySummary = `
CREATE TABLE IF NOT EXISTS community_summary (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    total_users INTEGER NOT NULL DEFAULT 0,
    active_users INTEGER NOT NULL DEFAULT 0,
    average_streak DOUBLE PRECISION NOT NULL DEFAULT 0,
    average_health_score INTEGER NOT NULL DEFAULT 0,
    total_days_sugar_free INTEGER NOT NULL DEFAULT 0,
    top_streak INTEGER NOT NULL DEFAULT 0,
    top_health_score INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

var migration005AdminSessions = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    token VARCHAR(64) UNIQUE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_token ON admin_sessions(token);
`
