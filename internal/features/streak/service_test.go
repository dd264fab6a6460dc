package streak

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sugarreset.app/server/internal/common"
)

// fakeStore keeps streak state in memory.
type fakeStore struct {
	states map[string]State
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: make(map[string]State)}
}

func (f *fakeStore) Ensure(_ context.Context, userID string) error {
	if _, ok := f.states[userID]; !ok {
		f.states[userID] = State{UserID: userID}
	}
	return nil
}

func (f *fakeStore) Get(_ context.Context, userID string) (State, error) {
	st, ok := f.states[userID]
	if !ok {
		return State{UserID: userID}, nil
	}
	return st, nil
}

func (f *fakeStore) Save(_ context.Context, st State) error {
	f.states[st.UserID] = st
	return nil
}

func (f *fakeStore) All(_ context.Context) ([]State, error) {
	var out []State
	for _, st := range f.states {
		out = append(out, st)
	}
	return out, nil
}

func (f *fakeStore) ResetCurrent(_ context.Context, userID string) error {
	st := f.states[userID]
	st.CurrentStreak = 0
	f.states[userID] = st
	return nil
}

// fakeLedger is an in-memory check-in ledger keyed by day.
type fakeLedger struct {
	outcomes map[string]map[string]bool // userID -> day -> sugarFree
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{outcomes: make(map[string]map[string]bool)}
}

func (f *fakeLedger) put(userID, day string, sugarFree bool) {
	if f.outcomes[userID] == nil {
		f.outcomes[userID] = make(map[string]bool)
	}
	f.outcomes[userID][day] = sugarFree
}

func (f *fakeLedger) DayOutcomes(_ context.Context, userID string) ([]DayOutcome, error) {
	var out []DayOutcome
	for day, sugarFree := range f.outcomes[userID] {
		out = append(out, DayOutcome{Day: day, SugarFree: sugarFree})
	}
	return out, nil
}

func newTestService(today string) (*Service, *fakeStore, *fakeLedger) {
	store := newFakeStore()
	ledger := newFakeLedger()
	day, err := common.ParseDay(today)
	if err != nil {
		panic(err)
	}
	clock := common.FixedClock{T: day.Add(12 * time.Hour)}
	return NewService(store, ledger, clock), store, ledger
}

// record mirrors what the check-in service does: write the ledger, then
// notify the streak service.
func record(t *testing.T, svc *Service, ledger *fakeLedger, userID, day string, sugarFree bool) {
	t.Helper()
	ledger.put(userID, day, sugarFree)
	require.NoError(t, svc.OnCheckInRecorded(context.Background(), userID, day, sugarFree))
}

func TestService_IncrementalRun(t *testing.T) {
	svc, _, ledger := newTestService("2026-03-05")
	ctx := context.Background()

	record(t, svc, ledger, "u1", "2026-03-03", true)
	record(t, svc, ledger, "u1", "2026-03-04", true)
	record(t, svc, ledger, "u1", "2026-03-05", true)

	st, err := svc.GetState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, st.CurrentStreak)
	assert.Equal(t, 3, st.LongestStreak)
	assert.Equal(t, 3, st.TotalDaysSugarFree)
	assert.Equal(t, "2026-03-05", st.LastCheckIn)
}

func TestService_OverwriteSameDayRecomputes(t *testing.T) {
	svc, _, ledger := newTestService("2026-03-05")
	ctx := context.Background()

	record(t, svc, ledger, "u1", "2026-03-04", true)
	record(t, svc, ledger, "u1", "2026-03-05", true)

	// The user corrects today's entry: actually had sugar. The second write
	// wins, the state is rebuilt from the corrected ledger, and the two-day
	// run that never really happened disappears from the record too.
	record(t, svc, ledger, "u1", "2026-03-05", false)

	st, err := svc.GetState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.CurrentStreak)
	assert.Equal(t, 1, st.LongestStreak)
	assert.Equal(t, 1, st.TotalDaysSugarFree)
}

func TestService_BackfillRepairsStreak(t *testing.T) {
	svc, _, ledger := newTestService("2026-03-06")
	ctx := context.Background()

	// Logged 1-2 and 4-6, missed day 3.
	for _, day := range []string{"2026-03-01", "2026-03-02", "2026-03-04", "2026-03-05", "2026-03-06"} {
		record(t, svc, ledger, "u1", day, true)
	}

	st, err := svc.GetState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, st.CurrentStreak)

	// Backfilling the missed day fuses the runs.
	record(t, svc, ledger, "u1", "2026-03-03", true)

	st, err = svc.GetState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, st.CurrentStreak)
	assert.Equal(t, 6, st.LongestStreak)
	assert.Equal(t, 6, st.TotalDaysSugarFree)
}

func TestService_GetStateAppliesGapRule(t *testing.T) {
	svc, store, ledger := newTestService("2026-03-10")
	ctx := context.Background()

	ledger.put("u1", "2026-03-01", true)
	ledger.put("u1", "2026-03-02", true)
	require.NoError(t, store.Save(ctx, State{
		UserID: "u1", CurrentStreak: 2, LongestStreak: 2,
		TotalDaysSugarFree: 2, LastCheckIn: "2026-03-02",
	}))

	st, err := svc.GetState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.CurrentStreak, "cache is stale, the gap rule zeroes it on read")
	assert.Equal(t, 2, st.LongestStreak)
}

func TestService_AppendAfterRolloverRecomputes(t *testing.T) {
	svc, store, ledger := newTestService("2026-03-10")
	ctx := context.Background()

	// Ten-day run that ended on 2026-03-08; the rollover has already zeroed
	// the cached current streak.
	day := "2026-02-27"
	for i := 0; i < 10; i++ {
		ledger.put("u1", day, true)
		day = common.NextDay(day)
	}
	require.NoError(t, store.Save(ctx, State{
		UserID: "u1", CurrentStreak: 0, LongestStreak: 10,
		TotalDaysSugarFree: 10, LastCheckIn: "2026-03-08",
	}))

	// Backfilling yesterday bridges the run to the present: the incremental
	// path cannot know the old run length, so a full recompute must happen.
	record(t, svc, ledger, "u1", "2026-03-09", true)

	st, err := svc.GetState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 11, st.CurrentStreak)
	assert.Equal(t, 11, st.LongestStreak)
}

func TestService_NightlyRollover(t *testing.T) {
	svc, store, _ := newTestService("2026-03-10")
	ctx := context.Background()

	// Alive: checked in yesterday.
	require.NoError(t, store.Save(ctx, State{
		UserID: "alive", CurrentStreak: 4, LongestStreak: 4,
		TotalDaysSugarFree: 4, LastCheckIn: "2026-03-09",
	}))
	// Stale: last check-in three days ago.
	require.NoError(t, store.Save(ctx, State{
		UserID: "stale", CurrentStreak: 7, LongestStreak: 7,
		TotalDaysSugarFree: 7, LastCheckIn: "2026-03-07",
	}))
	// Already zero: nothing to do.
	require.NoError(t, store.Save(ctx, State{
		UserID: "zero", CurrentStreak: 0, LongestStreak: 3,
		TotalDaysSugarFree: 3, LastCheckIn: "2026-03-01",
	}))

	broken, err := svc.NightlyRollover(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale"}, broken)

	st, _ := store.Get(ctx, "stale")
	assert.Equal(t, 0, st.CurrentStreak)
	assert.Equal(t, 7, st.LongestStreak)

	st, _ = store.Get(ctx, "alive")
	assert.Equal(t, 4, st.CurrentStreak)
}

func TestService_Summary(t *testing.T) {
	svc, store, _ := newTestService("2026-03-10")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, State{
		UserID: "u1", CurrentStreak: 5, LongestStreak: 9,
		TotalDaysSugarFree: 30, LastCheckIn: "2026-03-10",
	}))

	current, total, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, current)
	assert.Equal(t, 30, total)
}

// failOnceStore rejects the first Save, simulating a state write that dies
// after the check-in itself was already persisted.
type failOnceStore struct {
	*fakeStore
	failed bool
}

func (f *failOnceStore) Save(ctx context.Context, st State) error {
	if !f.failed {
		f.failed = true
		return errors.New("connection reset")
	}
	return f.fakeStore.Save(ctx, st)
}

func TestService_RebuildsAfterLostStateWrite(t *testing.T) {
	store := &failOnceStore{fakeStore: newFakeStore()}
	ledger := newFakeLedger()
	day, err := common.ParseDay("2026-03-05")
	require.NoError(t, err)
	svc := NewService(store, ledger, common.FixedClock{T: day.Add(12 * time.Hour)})
	ctx := context.Background()

	// Day 1: the ledger write sticks but the state save fails.
	ledger.put("u1", "2026-03-04", true)
	require.Error(t, svc.OnCheckInRecorded(ctx, "u1", "2026-03-04", true))

	// Day 2 succeeds. The blank cached state must not be advanced as if the
	// ledger were empty; the state is rebuilt from both logged days.
	ledger.put("u1", "2026-03-05", true)
	require.NoError(t, svc.OnCheckInRecorded(ctx, "u1", "2026-03-05", true))

	st, err := svc.GetState(ctx, "u1")
	require.NoError(t, err)

	outcomes, err := ledger.DayOutcomes(ctx, "u1")
	require.NoError(t, err)
	want := Compute(outcomes, "2026-03-05")

	assert.Equal(t, want.CurrentStreak, st.CurrentStreak)
	assert.Equal(t, want.TotalDaysSugarFree, st.TotalDaysSugarFree)
	assert.Equal(t, 2, st.CurrentStreak)
	assert.Equal(t, 2, st.TotalDaysSugarFree)
	assert.Equal(t, "2026-03-05", st.LastCheckIn)
}
