// Package streak derives and caches streak accounting from the check-in
// ledger: current streak, personal record, lifetime sugar-free days.
// models.go defines the streak data structures.
package streak

import (
	"time"

	"sugarreset.app/server/internal/common"
)

// DayOutcome is one ledger day reduced to what streak accounting needs.
type DayOutcome struct {
	Day       string // YYYY-MM-DD
	SugarFree bool
}

// State is a user's streak accounting, cached in the streaks table and
// recomputable from the ledger at any time.
type State struct {
	UserID             string    `db:"user_id" json:"userId"`
	CurrentStreak      int       `db:"current_streak" json:"currentStreak"`
	LongestStreak      int       `db:"longest_streak" json:"longestStreak"`
	TotalDaysSugarFree int       `db:"total_days_sugar_free" json:"totalDaysSugarFree"`
	LastCheckIn        string    `db:"last_check_in" json:"lastCheckIn,omitempty"` // empty until the first check-in
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// Effective applies the gap rule to a possibly stale cached state: once a
// full calendar day has passed with no check-in, the current streak is over
// even though the cache still holds the old count. Longest streak and the
// lifetime total never decay.
func (st State) Effective(today string) State {
	if st.LastCheckIn != "" && st.LastCheckIn < common.PrevDay(today) && st.CurrentStreak > 0 {
		st.CurrentStreak = 0
	}
	return st
}
