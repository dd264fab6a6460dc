package stats

import (
	"math"
	"time"
)

// activeWindow is how recently a user's streak row must have been touched
// for the user to count as active.
const activeWindow = 7 * 24 * time.Hour

// Aggregate reduces the user records into one summary. Zero records yields
// a summary of all zeros rather than NaN averages.
//
// totalDaysSugarFree sums the users' current streaks, not their lifetime
// totals. The mobile clients compute the community figure the same way, so
// the two stay in agreement.
func Aggregate(records []UserRecord, now time.Time) CommunitySummary {
	sum := CommunitySummary{UpdatedAt: now}
	if len(records) == 0 {
		return sum
	}

	cutoff := now.Add(-activeWindow)
	var streakSum, scoreSum int
	for _, r := range records {
		if r.UpdatedAt.After(cutoff) {
			sum.ActiveUsers++
		}
		streakSum += r.CurrentStreak
		scoreSum += r.HealthScore
		if r.CurrentStreak > sum.TopStreak {
			sum.TopStreak = r.CurrentStreak
		}
		if r.HealthScore > sum.TopHealthScore {
			sum.TopHealthScore = r.HealthScore
		}
	}

	n := len(records)
	sum.TotalUsers = n
	sum.TotalDaysSugarFree = streakSum
	sum.AverageStreak = math.Round(float64(streakSum)/float64(n)*10) / 10
	sum.AverageHealthScore = int(math.Round(float64(scoreSum) / float64(n)))
	return sum
}
