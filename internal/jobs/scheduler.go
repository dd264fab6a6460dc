// Package jobs runs the background work: the nightly streak rollover and
// the hourly community aggregation.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"sugarreset.app/server/internal/config"
	"sugarreset.app/server/internal/features/admin"
	"sugarreset.app/server/internal/features/profile"
	"sugarreset.app/server/internal/features/stats"
	"sugarreset.app/server/internal/features/streak"
)

// Scheduler owns the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	config   *config.Config
	streaks  *streak.Service
	profiles *profile.Service
	stats    *stats.Service
	admin    *admin.Service
}

// NewScheduler creates the scheduler. Schedules run in the application
// timezone, which is also the zone "today" is computed in; the rollover
// must fire just after that zone's midnight.
func NewScheduler(cfg *config.Config, streaks *streak.Service, profiles *profile.Service, statsSvc *stats.Service, adminSvc *admin.Service) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(cfg.Location())),
		config:   cfg,
		streaks:  streaks,
		profiles: profiles,
		stats:    statsSvc,
		admin:    adminSvc,
	}
}

// Start registers and starts all jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.config.RolloverSchedule, func() { s.runRollover(ctx) }); err != nil {
		return err
	}

	if s.config.FeatureCommunityEnabled {
		if _, err := s.cron.AddFunc(s.config.AggregationSchedule, func() {
			if _, err := s.stats.Run(ctx); err != nil {
				log.WithError(err).Error("community aggregation failed")
			}
		}); err != nil {
			return err
		}
	}

	// Piggyback session cleanup on a daily slot.
	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.admin.Cleanup(ctx); err != nil {
			log.WithError(err).Error("admin session cleanup failed")
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	log.WithField("timezone", s.config.AppTimezone).Info("scheduler started")
	return nil
}

// runRollover zeroes streaks for users who skipped yesterday, then refreshes
// their health scores so the next aggregation sees the drop.
func (s *Scheduler) runRollover(ctx context.Context) {
	broken, err := s.streaks.NightlyRollover(ctx)
	if err != nil {
		log.WithError(err).Error("nightly rollover failed")
		return
	}
	for _, userID := range broken {
		if err := s.profiles.RefreshHealthScore(ctx, userID); err != nil {
			log.WithError(err).WithField("user_id", userID).Error("health score refresh failed")
		}
	}
	log.WithField("broken", len(broken)).Info("nightly rollover completed")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("scheduler stopped")
}
