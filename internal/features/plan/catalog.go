// Package plan — catalog.go is the static table of the two plans.
package plan

import (
	"fmt"

	"sugarreset.app/server/internal/common"
)

// planWeeks is the schedule length shared by both plans.
const planWeeks = 13

var coldTurkey = Plan{
	Type: ColdTurkey,
	Name: "Cold Turkey",
	WeeklyLimits: func() []WeeklyLimit {
		limits := make([]WeeklyLimit, planWeeks)
		for i := range limits {
			limits[i] = WeeklyLimit{
				WeekNumber:     i + 1,
				DailyGramLimit: 0,
				Title:          fmt.Sprintf("Week %d: Zero sugar", i+1),
				Description:    "No added sugar at all. Stay strong.",
			}
		}
		limits[0].Title = "Week 1: The hard stop"
		limits[0].Description = "Added sugar ends today. The first week is the hardest."
		return limits
	}(),
}

var gradual = Plan{
	Type: Gradual,
	Name: "Gradual Reduction",
	WeeklyLimits: []WeeklyLimit{
		{WeekNumber: 1, DailyGramLimit: 50, Title: "Week 1: Baseline", Description: "Stay under 50 g of added sugar a day and start noticing where it hides."},
		{WeekNumber: 2, DailyGramLimit: 42, Title: "Week 2: Trim the obvious", Description: "Cut sugary drinks first. 42 g a day."},
		{WeekNumber: 3, DailyGramLimit: 35, Title: "Week 3: Swap snacks", Description: "Replace one sweet snack with fruit. 35 g a day."},
		{WeekNumber: 4, DailyGramLimit: 28, Title: "Week 4: Halfway down", Description: "28 g a day. Cravings should be easing."},
		{WeekNumber: 5, DailyGramLimit: 21, Title: "Week 5: Read the labels", Description: "21 g a day. Watch for sugar in sauces and bread."},
		{WeekNumber: 6, DailyGramLimit: 14, Title: "Week 6: Almost there", Description: "14 g a day, about one small treat."},
		{WeekNumber: 7, DailyGramLimit: 7, Title: "Week 7: Final taper", Description: "7 g a day. The last step before zero."},
		{WeekNumber: 8, DailyGramLimit: 0, Title: "Week 8: Zero", Description: "No added sugar. You made it down the ladder."},
		{WeekNumber: 9, DailyGramLimit: 0, Title: "Week 9: Hold the line", Description: "Stay at zero. New habits are forming."},
		{WeekNumber: 10, DailyGramLimit: 0, Title: "Week 10: Steady", Description: "Zero added sugar. Notice your energy levels."},
		{WeekNumber: 11, DailyGramLimit: 0, Title: "Week 11: Routine", Description: "Zero is the default now."},
		{WeekNumber: 12, DailyGramLimit: 0, Title: "Week 12: Nearly done", Description: "One more week of the program."},
		{WeekNumber: 13, DailyGramLimit: 0, Title: "Week 13: Reset complete", Description: "Thirteen weeks sugar-free scheduled. Maintenance begins."},
	},
}

// Get returns the plan for t. An unknown type is a programming error on the
// caller's side and comes back as ErrUnknownPlan.
func Get(t Type) (*Plan, error) {
	switch t {
	case ColdTurkey:
		return &coldTurkey, nil
	case Gradual:
		return &gradual, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownPlan, t)
	}
}
