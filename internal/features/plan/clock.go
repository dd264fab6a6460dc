// Package plan — clock.go maps a plan start instant and the current time to
// the active week and its daily gram limit.
package plan

import (
	"fmt"
	"time"

	"sugarreset.app/server/internal/common"
)

// MaintenanceMessage is shown once the scheduled weeks are over.
const MaintenanceMessage = "Maintenance mode: stay at zero"

// CurrentWeekNumber returns the 1-based plan week containing now. Weeks are
// counted in whole elapsed 24-hour periods from the start instant (see
// common.DaysBetween), never less than 1. The result is not clamped to the
// plan length; callers that need the schedule row use CurrentLimit.
func CurrentWeekNumber(start, now time.Time) int {
	week := common.DaysBetween(start, now)/7 + 1
	if week < 1 {
		return 1
	}
	return week
}

// CurrentLimit returns the weekly limit active at now and whether the
// scheduled weeks are complete. Past the end of the schedule the final
// week's limit keeps applying: the answer is "stay at zero", not a
// sentinel.
func CurrentLimit(p *Plan, start, now time.Time) (WeeklyLimit, bool) {
	week := CurrentWeekNumber(start, now)
	if week > p.Weeks() {
		return p.FinalLimit(), true
	}
	return p.WeeklyLimits[week-1], false
}

// FormatProgress renders "Week {w} of {n}" while the schedule is running,
// or the fixed maintenance message after it.
func FormatProgress(p *Plan, start, now time.Time) string {
	week := CurrentWeekNumber(start, now)
	if week > p.Weeks() {
		return MaintenanceMessage
	}
	return fmt.Sprintf("Week %d of %d", week, p.Weeks())
}
