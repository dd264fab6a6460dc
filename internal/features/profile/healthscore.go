// Package profile — healthscore.go derives the 0-100 health score from
// streak accounting. The score feeds the community summary; it is stored on
// the profile so aggregation reads one table.
package profile

import "math"

const (
	scoreBase         = 50
	scorePerStreakDay = 2
	scoreStreakCap    = 30
	scoreRatioWeight  = 20
)

// HealthScore combines the current streak and the lifetime sugar-free ratio
// into a single 0-100 figure. daysOnPlan below 1 counts as 1 so a fresh
// profile starts at the baseline instead of dividing by zero.
func HealthScore(currentStreak, totalDaysSugarFree, daysOnPlan int) int {
	streakPart := currentStreak * scorePerStreakDay
	if streakPart > scoreStreakCap {
		streakPart = scoreStreakCap
	}

	if daysOnPlan < 1 {
		daysOnPlan = 1
	}
	ratio := float64(totalDaysSugarFree) / float64(daysOnPlan)
	if ratio > 1 {
		ratio = 1
	}
	ratioPart := int(math.Round(ratio * scoreRatioWeight))

	score := scoreBase + streakPart + ratioPart
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
