// Package server assembles the chi router: middleware stack, feature routes
// and the operational endpoints.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sugarreset.app/server/internal/config"
	"sugarreset.app/server/internal/features/admin"
	"sugarreset.app/server/internal/features/checkin"
	"sugarreset.app/server/internal/features/plan"
	"sugarreset.app/server/internal/features/profile"
	"sugarreset.app/server/internal/features/stats"
	"sugarreset.app/server/internal/features/streak"
	"sugarreset.app/server/internal/server/middleware"
)

// Handlers collects the feature handlers the router mounts.
type Handlers struct {
	Profile *profile.Handler
	Plan    *plan.Handler
	CheckIn *checkin.Handler
	Streak  *streak.Handler
	Stats   *stats.Handler
	Admin   *admin.Handler
}

// New builds the router. The rate limiter is owned by the caller, which
// closes it on shutdown.
func New(cfg *config.Config, h Handlers, adminSvc *admin.Service, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.HTTPRequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if cfg.FeatureMetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Use(limiter.Handler)

			r.Post("/profile", h.Profile.Register)
			r.Get("/profile", h.Profile.Get)
			r.Put("/profile/plan", h.Profile.SwitchPlan)

			r.Get("/plan", h.Plan.Get)

			r.Post("/checkins", h.CheckIn.Record)
			r.Get("/checkins", h.CheckIn.List)
			// Static before the {date} wildcard.
			r.Get("/checkins/today", h.CheckIn.Today)
			r.Get("/checkins/{date}", h.CheckIn.Get)

			r.Get("/streak", h.Streak.Get)

			if cfg.FeatureCommunityEnabled {
				r.Get("/community", h.Stats.Community)
			}
		})

		r.Route("/admin", func(r chi.Router) {
			// Keyed by remote address here; admin callers carry no user id.
			r.Use(limiter.Handler)

			r.Post("/login", h.Admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(adminSvc))
				r.Post("/aggregate", h.Admin.Aggregate)
			})
		})
	})

	return r
}
