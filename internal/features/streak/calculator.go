// Package streak — calculator.go is the pure streak arithmetic. Two paths
// produce a State:
//
//   - Advance extends a cached State with one newly appended day. This is
//     the normal path, matching how the mobile app has always kept a running
//     counter per check-in.
//   - Compute rebuilds the State from the whole ledger. It runs after a
//     backfill or an edit of a past day, where append logic is wrong:
//     filling a missed day as sugar-free can fuse two runs into one.
//
// Both must agree; the tests check Advance sequences against Compute.
package streak

import (
	"sort"

	"sugarreset.app/server/internal/common"
)

// Compute derives streak state from the full ledger. outcomes may arrive in
// any order and are sorted by day; at most one outcome per day is assumed
// (the ledger upserts by day). today anchors the gap rule.
func Compute(outcomes []DayOutcome, today string) State {
	if len(outcomes) == 0 {
		return State{}
	}

	sorted := make([]DayOutcome, len(outcomes))
	copy(sorted, outcomes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Day < sorted[j].Day })

	var st State
	st.LastCheckIn = sorted[len(sorted)-1].Day

	// Lifetime total and longest run, walking forward.
	run := 0
	var prev string
	for _, o := range sorted {
		if o.SugarFree {
			st.TotalDaysSugarFree++
			if prev != "" && common.Consecutive(prev, o.Day) && run > 0 {
				run++
			} else {
				run = 1
			}
			if run > st.LongestStreak {
				st.LongestStreak = run
			}
		} else {
			run = 0
		}
		prev = o.Day
	}

	// Current streak, walking backward from the latest logged day. A latest
	// day older than yesterday means a full unlogged day has elapsed and the
	// streak is already broken, no matter what preceded it.
	if st.LastCheckIn < common.PrevDay(today) {
		return st
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if !sorted[i].SugarFree {
			break
		}
		if i < len(sorted)-1 && !common.Consecutive(sorted[i].Day, sorted[i+1].Day) {
			break
		}
		st.CurrentStreak++
	}

	return st
}

// Advance extends prev with a single day newer than prev.LastCheckIn. The
// caller guarantees day > prev.LastCheckIn; anything else needs Compute.
func Advance(prev State, day string, sugarFree bool) State {
	next := prev
	next.LastCheckIn = day

	if !sugarFree {
		next.CurrentStreak = 0
		return next
	}

	next.TotalDaysSugarFree++
	if prev.LastCheckIn != "" && common.Consecutive(prev.LastCheckIn, day) {
		next.CurrentStreak = prev.CurrentStreak + 1
	} else {
		next.CurrentStreak = 1
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	return next
}
