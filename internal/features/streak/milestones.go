// Package streak — milestones.go is the fixed milestone ladder shown on the
// streak screen. Index-free lookup table keyed by streak length.
package streak

// Milestone is one rung of the ladder.
type Milestone struct {
	Days  int    `json:"days"`
	Title string `json:"title"`
}

// Milestones in ascending order of days.
var Milestones = []Milestone{
	{Days: 1, Title: "First Day"},
	{Days: 3, Title: "Three Days Clean"},
	{Days: 7, Title: "One Week"},
	{Days: 14, Title: "Two Weeks"},
	{Days: 30, Title: "One Month"},
	{Days: 60, Title: "Two Months"},
	{Days: 90, Title: "Full Reset"},
}

// Achieved returns the milestones reached by a streak of the given length.
func Achieved(currentStreak int) []Milestone {
	var out []Milestone
	for _, m := range Milestones {
		if currentStreak >= m.Days {
			out = append(out, m)
		}
	}
	return out
}

// Next returns the first milestone not yet reached, or false once the
// ladder is complete.
func Next(currentStreak int) (Milestone, bool) {
	for _, m := range Milestones {
		if currentStreak < m.Days {
			return m, true
		}
	}
	return Milestone{}, false
}
