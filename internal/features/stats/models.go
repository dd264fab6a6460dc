// Package stats aggregates per-user streak records into the community
// summary shown on the home screen.
package stats

import "time"

// UserRecord is one user's slice of the aggregation input, joined from the
// streaks and profiles tables.
type UserRecord struct {
	UserID        string    `db:"user_id"`
	CurrentStreak int       `db:"current_streak"`
	HealthScore   int       `db:"health_score"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// CommunitySummary is the single aggregated row served to every user.
type CommunitySummary struct {
	TotalUsers         int       `db:"total_users" json:"totalUsers"`
	ActiveUsers        int       `db:"active_users" json:"activeUsers"`
	AverageStreak      float64   `db:"average_streak" json:"averageStreak"`
	AverageHealthScore int       `db:"average_health_score" json:"averageHealthScore"`
	TotalDaysSugarFree int       `db:"total_days_sugar_free" json:"totalDaysSugarFree"`
	TopStreak          int       `db:"top_streak" json:"topStreak"`
	TopHealthScore     int       `db:"top_health_score" json:"topHealthScore"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}
