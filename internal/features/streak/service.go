// Package streak — service.go keeps the cached streak state in step with
// the check-in ledger and applies the nightly gap rule.
package streak

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"sugarreset.app/server/internal/common"
	"sugarreset.app/server/internal/metrics"
)

// Store is the persistence surface for cached streak state. *Repository is
// the production implementation; tests use an in-memory fake.
type Store interface {
	Ensure(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (State, error)
	Save(ctx context.Context, st State) error
	All(ctx context.Context) ([]State, error)
	ResetCurrent(ctx context.Context, userID string) error
}

// Ledger reads day outcomes back out of the check-in feature for full
// recomputation. Implemented by the check-in repository.
type Ledger interface {
	DayOutcomes(ctx context.Context, userID string) ([]DayOutcome, error)
}

// Service maintains streak state.
type Service struct {
	store  Store
	ledger Ledger
	clock  common.Clock
}

// NewService creates the streak service.
func NewService(store Store, ledger Ledger, clock common.Clock) *Service {
	return &Service{store: store, ledger: ledger, clock: clock}
}

// EnsureState creates the empty state row at registration.
func (s *Service) EnsureState(ctx context.Context, userID string) error {
	return s.store.Ensure(ctx, userID)
}

// OnCheckInRecorded updates streak state after a check-in write. The fast
// incremental path only runs when the cache is trustworthy: the new day must
// extend the ledger (not rewrite it) and the cached run must not already be
// severed by a gap (the rollover may have zeroed it, losing the old run
// length). Everything else rebuilds from the full ledger, which is also what
// lets a backfilled day repair a broken streak.
//
// An empty cache is never trusted. The ledger write and this state save are
// separate statements, so a failed save can leave a populated ledger behind
// a blank state row; rebuilding from the ledger heals that on the next
// check-in instead of compounding it.
func (s *Service) OnCheckInRecorded(ctx context.Context, userID, day string, sugarFree bool) error {
	st, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}

	today := common.Today(s.clock.Now())
	appendSafe := st.LastCheckIn != "" &&
		day > st.LastCheckIn && st.LastCheckIn >= common.PrevDay(today)

	var next State
	if appendSafe {
		next = Advance(st, day, sugarFree)
	} else {
		metrics.StreakRecomputes.Inc()
		outcomes, err := s.ledger.DayOutcomes(ctx, userID)
		if err != nil {
			return fmt.Errorf("read ledger for recompute: %w", err)
		}
		next = Compute(outcomes, today)
	}
	next.UserID = userID

	if !sugarFree && st.CurrentStreak > 0 {
		metrics.StreaksBroken.WithLabelValues("had_sugar").Inc()
	}

	if err := s.store.Save(ctx, next); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"day":     day,
		"current": next.CurrentStreak,
		"longest": next.LongestStreak,
	}).Debug("streak state updated")

	return nil
}

// GetState returns the user's streak state with the gap rule applied.
func (s *Service) GetState(ctx context.Context, userID string) (State, error) {
	st, err := s.store.Get(ctx, userID)
	if err != nil {
		return State{}, err
	}
	return st.Effective(common.Today(s.clock.Now())), nil
}

// Summary feeds the profile health score: effective current streak and the
// lifetime sugar-free total.
func (s *Service) Summary(ctx context.Context, userID string) (int, int, error) {
	st, err := s.GetState(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return st.CurrentStreak, st.TotalDaysSugarFree, nil
}

// NightlyRollover persists the gap rule: every user whose cached current
// streak survived a fully elapsed unlogged day gets it zeroed. Returns the
// ids of affected users so the caller can refresh their health scores.
func (s *Service) NightlyRollover(ctx context.Context) ([]string, error) {
	states, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load streak states: %w", err)
	}

	today := common.Today(s.clock.Now())
	var broken []string
	for _, st := range states {
		if st.CurrentStreak == 0 || st.LastCheckIn == "" {
			continue
		}
		if st.LastCheckIn >= common.PrevDay(today) {
			continue
		}
		if err := s.store.ResetCurrent(ctx, st.UserID); err != nil {
			log.WithError(err).WithField("user_id", st.UserID).Error("reset streak")
			continue
		}
		metrics.StreaksBroken.WithLabelValues("gap").Inc()
		broken = append(broken, st.UserID)
	}

	log.WithFields(log.Fields{
		"total":  len(states),
		"broken": len(broken),
	}).Info("nightly rollover finished")

	return broken, nil
}
