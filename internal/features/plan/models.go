// Package plan holds the static sugar-reduction plans and the clock that
// maps a plan start date to the active week and daily gram limit.
// models.go defines the plan data structures.
package plan

// Type identifies one of the two built-in plans.
type Type string

const (
	// ColdTurkey holds a 0 g daily limit from day one.
	ColdTurkey Type = "cold_turkey"
	// Gradual steps the daily limit down from 50 g to 0 g by week 8,
	// then holds at 0 g through week 13.
	Gradual Type = "gradual"
)

// Valid reports whether t names a known plan.
func (t Type) Valid() bool {
	return t == ColdTurkey || t == Gradual
}

// WeeklyLimit is one row of a plan schedule.
type WeeklyLimit struct {
	WeekNumber     int    `json:"weekNumber"`
	DailyGramLimit int    `json:"dailyGramLimit"`
	Title          string `json:"title"`
	Description    string `json:"description"`
}

// Plan is an ordered weekly schedule. Plans are defined at build time and
// never mutated; week numbers increase from 1 with no gaps.
type Plan struct {
	Type         Type          `json:"planType"`
	Name         string        `json:"name"`
	WeeklyLimits []WeeklyLimit `json:"weeklyLimits"`
}

// Weeks returns the schedule length.
func (p *Plan) Weeks() int {
	return len(p.WeeklyLimits)
}

// FinalLimit returns the last scheduled week, the limit that applies in
// maintenance mode.
func (p *Plan) FinalLimit() WeeklyLimit {
	return p.WeeklyLimits[len(p.WeeklyLimits)-1]
}
