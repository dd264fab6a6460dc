// Package profile manages user profiles: which plan a user is on, when they
// started it, and their derived health score.
// models.go defines the profile data structures.
package profile

import (
	"time"

	"sugarreset.app/server/internal/features/plan"
)

// Profile is one user's account record. UserID is the opaque id minted by
// the mobile app's identity provider; the server never parses it.
type Profile struct {
	ID            int64     `db:"id" json:"-"`
	UserID        string    `db:"user_id" json:"userId"`
	DisplayName   string    `db:"display_name" json:"displayName"`
	PlanType      plan.Type `db:"plan_type" json:"planType"`
	PlanStartedAt time.Time `db:"plan_started_at" json:"planStartedAt"`
	HealthScore   int       `db:"health_score" json:"healthScore"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
