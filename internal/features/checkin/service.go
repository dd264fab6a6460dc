// Package checkin — service.go validates and records daily check-ins, then
// hands the outcome to the streak feature.
package checkin

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"sugarreset.app/server/internal/common"
	"sugarreset.app/server/internal/metrics"
)

// Store is the persistence surface for check-ins. *Repository is the
// production implementation; tests supply an in-memory fake.
type Store interface {
	Upsert(ctx context.Context, c *CheckIn) error
	Get(ctx context.Context, userID, day string) (*CheckIn, error)
	List(ctx context.Context, userID, from, to string) ([]*CheckIn, error)
}

// PlanStarts supplies the user's plan start instant, the lower bound for
// check-in dates. Implemented by the profile service.
type PlanStarts interface {
	PlanStart(ctx context.Context, userID string) (time.Time, error)
}

// StreakTracker is notified after every persisted check-in. Implemented by
// the streak service.
type StreakTracker interface {
	OnCheckInRecorded(ctx context.Context, userID, day string, sugarFree bool) error
}

// Service is the check-in ledger.
type Service struct {
	store    Store
	profiles PlanStarts
	streaks  StreakTracker
	clock    common.Clock
}

// NewService creates the check-in service.
func NewService(store Store, profiles PlanStarts, streaks StreakTracker, clock common.Clock) *Service {
	return &Service{store: store, profiles: profiles, streaks: streaks, clock: clock}
}

// Record upserts one day's check-in. The date must be a real calendar day,
// not in the future, and not before the user's plan start. A second write
// for the same day replaces the first entirely; extras are overwritten as a
// whole, never merged field by field.
func (s *Service) Record(ctx context.Context, userID, day string, sugarFree bool, extras Extras) (*CheckIn, error) {
	if _, err := common.ParseDay(day); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if day > common.Today(now) {
		return nil, fmt.Errorf("%w: %s", common.ErrFutureDate, day)
	}

	start, err := s.profiles.PlanStart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if day < common.FormatDay(start.In(now.Location())) {
		return nil, fmt.Errorf("%w: %s", common.ErrBeforePlanStart, day)
	}

	if err := extras.Validate(); err != nil {
		return nil, err
	}

	c := &CheckIn{
		UserID:        userID,
		Day:           day,
		SugarFree:     sugarFree,
		GramsConsumed: extras.GramsConsumed,
		Mood:          extras.Mood,
		CravingLevel:  extras.CravingLevel,
		Notes:         extras.Notes,
	}
	if err := s.store.Upsert(ctx, c); err != nil {
		return nil, err
	}
	metrics.CheckInsRecorded.WithLabelValues(metrics.Outcome(sugarFree)).Inc()

	if err := s.streaks.OnCheckInRecorded(ctx, userID, day, sugarFree); err != nil {
		return nil, fmt.Errorf("update streak after check-in: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":    userID,
		"day":        day,
		"sugar_free": sugarFree,
	}).Info("check-in recorded")

	return s.store.Get(ctx, userID, day)
}

// Get returns one day's check-in, nil if the day is unlogged.
func (s *Service) Get(ctx context.Context, userID, day string) (*CheckIn, error) {
	if _, err := common.ParseDay(day); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, userID, day)
}

// List returns check-ins in [from, to], newest first. Empty bounds default
// to the plan start and today.
func (s *Service) List(ctx context.Context, userID, from, to string) ([]*CheckIn, error) {
	now := s.clock.Now()
	if to == "" {
		to = common.Today(now)
	}
	if from == "" {
		start, err := s.profiles.PlanStart(ctx, userID)
		if err != nil {
			return nil, err
		}
		from = common.FormatDay(start.In(now.Location()))
	}
	return s.store.List(ctx, userID, from, to)
}

// HasCheckedInToday reports whether today's entry exists.
func (s *Service) HasCheckedInToday(ctx context.Context, userID string) (bool, error) {
	c, err := s.store.Get(ctx, userID, common.Today(s.clock.Now()))
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

// Today returns today's check-in, nil if the user has not logged yet.
func (s *Service) Today(ctx context.Context, userID string) (*CheckIn, error) {
	return s.store.Get(ctx, userID, common.Today(s.clock.Now()))
}
