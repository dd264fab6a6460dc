package stats

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"sugarreset.app/server/internal/common"
	"sugarreset.app/server/internal/metrics"
)

// Store is the persistence surface for aggregation.
type Store interface {
	ListUserRecords(ctx context.Context, limit int) ([]UserRecord, error)
	ReplaceSummary(ctx context.Context, s CommunitySummary) error
	LatestSummary(ctx context.Context) (CommunitySummary, error)
}

// Service runs the community aggregation and serves the cached result.
// Reads never touch the per-user tables; they see whatever the last run
// stored.
type Service struct {
	store    Store
	clock    common.Clock
	maxUsers int
}

func NewService(store Store, clock common.Clock, maxUsers int) *Service {
	return &Service{store: store, clock: clock, maxUsers: maxUsers}
}

// Run performs one aggregation pass and replaces the stored summary.
func (s *Service) Run(ctx context.Context) (CommunitySummary, error) {
	records, err := s.store.ListUserRecords(ctx, s.maxUsers)
	if err != nil {
		metrics.AggregationRuns.WithLabelValues("error").Inc()
		return CommunitySummary{}, fmt.Errorf("aggregation read: %w", err)
	}

	summary := Aggregate(records, s.clock.Now())
	if err := s.store.ReplaceSummary(ctx, summary); err != nil {
		metrics.AggregationRuns.WithLabelValues("error").Inc()
		return CommunitySummary{}, fmt.Errorf("aggregation write: %w", err)
	}

	metrics.AggregationRuns.WithLabelValues("ok").Inc()
	metrics.AggregationUsers.Set(float64(summary.TotalUsers))
	log.WithFields(log.Fields{
		"total_users":  summary.TotalUsers,
		"active_users": summary.ActiveUsers,
		"top_streak":   summary.TopStreak,
	}).Info("community aggregation completed")
	return summary, nil
}

// Latest returns the most recently stored summary.
func (s *Service) Latest(ctx context.Context) (CommunitySummary, error) {
	return s.store.LatestSummary(ctx)
}
