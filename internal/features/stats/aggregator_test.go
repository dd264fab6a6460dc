package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var aggNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func rec(streak, score int, updated time.Time) UserRecord {
	return UserRecord{CurrentStreak: streak, HealthScore: score, UpdatedAt: updated}
}

func TestAggregate_Empty(t *testing.T) {
	sum := Aggregate(nil, aggNow)

	assert.Equal(t, 0, sum.TotalUsers)
	assert.Equal(t, 0, sum.ActiveUsers)
	assert.Equal(t, 0.0, sum.AverageStreak)
	assert.Equal(t, 0, sum.AverageHealthScore)
	assert.Equal(t, 0, sum.TotalDaysSugarFree)
	assert.Equal(t, 0, sum.TopStreak)
	assert.Equal(t, 0, sum.TopHealthScore)
	assert.Equal(t, aggNow, sum.UpdatedAt)
}

func TestAggregate_ThreeUsers(t *testing.T) {
	records := []UserRecord{
		rec(3, 70, aggNow.Add(-time.Hour)),
		rec(5, 80, aggNow.Add(-2*24*time.Hour)),
		rec(10, 90, aggNow.Add(-6*24*time.Hour)),
	}

	sum := Aggregate(records, aggNow)

	assert.Equal(t, 3, sum.TotalUsers)
	assert.Equal(t, 3, sum.ActiveUsers)
	assert.Equal(t, 6.0, sum.AverageStreak)
	assert.Equal(t, 80, sum.AverageHealthScore)
	assert.Equal(t, 18, sum.TotalDaysSugarFree)
	assert.Equal(t, 10, sum.TopStreak)
	assert.Equal(t, 90, sum.TopHealthScore)
}

func TestAggregate_ActiveWindow(t *testing.T) {
	records := []UserRecord{
		rec(1, 60, aggNow.Add(-6*24*time.Hour)),  // inside the window
		rec(4, 75, aggNow.Add(-8*24*time.Hour)),  // stale
		rec(2, 65, aggNow.Add(-30*24*time.Hour)), // stale
	}

	sum := Aggregate(records, aggNow)

	assert.Equal(t, 3, sum.TotalUsers)
	assert.Equal(t, 1, sum.ActiveUsers)
}

func TestAggregate_RoundsAverages(t *testing.T) {
	records := []UserRecord{
		rec(1, 55, aggNow),
		rec(2, 56, aggNow),
		rec(2, 56, aggNow),
	}

	sum := Aggregate(records, aggNow)

	// 5/3 = 1.666... rounds to one decimal; 167/3 = 55.666... to nearest int.
	assert.Equal(t, 1.7, sum.AverageStreak)
	assert.Equal(t, 56, sum.AverageHealthScore)
}
