// Package profile — service.go contains profile business logic: registration,
// plan switching and health-score refresh.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"sugarreset.app/server/internal/common"
	"sugarreset.app/server/internal/features/plan"
)

// Store is the persistence surface the service needs. *Repository is the
// production implementation; tests supply an in-memory fake.
type Store interface {
	Create(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	UpdatePlan(ctx context.Context, userID string, planType plan.Type, startedAt time.Time) error
	UpdateHealthScore(ctx context.Context, userID string, score int) error
}

// Streaks is the slice of the streak feature the profile service uses:
// creating the empty state row at registration and reading the summary that
// feeds the health score.
type Streaks interface {
	EnsureState(ctx context.Context, userID string) error
	Summary(ctx context.Context, userID string) (currentStreak, totalDaysSugarFree int, err error)
}

// Service manages user profiles.
type Service struct {
	store   Store
	streaks Streaks
	clock   common.Clock
}

// NewService creates the profile service.
func NewService(store Store, streaks Streaks, clock common.Clock) *Service {
	return &Service{store: store, streaks: streaks, clock: clock}
}

// Register creates a profile and its empty streak state. If the user is
// already registered the existing profile comes back unchanged; the mobile
// app retries registration freely after reinstalls.
func (s *Service) Register(ctx context.Context, userID, displayName string, planType plan.Type) (*Profile, error) {
	if !planType.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownPlan, planType)
	}

	existing, err := s.store.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrProfileNotFound) {
		return nil, err
	}

	p := &Profile{
		UserID:        userID,
		DisplayName:   displayName,
		PlanType:      planType,
		PlanStartedAt: s.clock.Now(),
		HealthScore:   HealthScore(0, 0, 0),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.streaks.EnsureState(ctx, userID); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"plan":    planType,
	}).Info("profile registered")

	return s.store.GetByUserID(ctx, userID)
}

// Get returns the profile with a freshly computed health score. The score is
// persisted on read so the aggregation job sees current values without
// joining the check-in ledger.
func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	p, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	score, err := s.scoreFor(ctx, p)
	if err != nil {
		return nil, err
	}
	if score != p.HealthScore {
		if err := s.store.UpdateHealthScore(ctx, userID, score); err != nil {
			return nil, err
		}
		p.HealthScore = score
	}
	return p, nil
}

// SwitchPlan moves the user onto another plan. The plan start resets to now;
// past check-ins stay in the ledger but the week counter starts over.
func (s *Service) SwitchPlan(ctx context.Context, userID string, planType plan.Type) (*Profile, error) {
	if !planType.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownPlan, planType)
	}
	if err := s.store.UpdatePlan(ctx, userID, planType, s.clock.Now()); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"plan":    planType,
	}).Info("plan switched")

	return s.Get(ctx, userID)
}

// RefreshHealthScore recomputes and stores the health score. Called by the
// nightly rollover for users whose streak was just broken.
func (s *Service) RefreshHealthScore(ctx context.Context, userID string) error {
	p, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	score, err := s.scoreFor(ctx, p)
	if err != nil {
		return err
	}
	if score == p.HealthScore {
		return nil
	}
	return s.store.UpdateHealthScore(ctx, userID, score)
}

// PlanStart exposes the plan start instant to the check-in feature, which
// rejects check-ins that predate it.
func (s *Service) PlanStart(ctx context.Context, userID string) (time.Time, error) {
	p, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	return p.PlanStartedAt, nil
}

// PlanInfo returns the user's plan type and start instant for the plan
// progress endpoint. String-typed so the plan package does not have to
// import this one.
func (s *Service) PlanInfo(ctx context.Context, userID string) (string, time.Time, error) {
	p, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	return string(p.PlanType), p.PlanStartedAt, nil
}

func (s *Service) scoreFor(ctx context.Context, p *Profile) (int, error) {
	current, total, err := s.streaks.Summary(ctx, p.UserID)
	if err != nil {
		return 0, err
	}
	daysOnPlan := common.DaysBetween(p.PlanStartedAt, s.clock.Now()) + 1
	return HealthScore(current, total, daysOnPlan), nil
}
