// Package plan — handlers.go exposes the plan progress endpoint.
package plan

import (
	"context"
	"net/http"
	"time"

	"sugarreset.app/server/internal/common"
	"sugarreset.app/server/internal/httpx"
)

// Profiles supplies the caller's plan selection. Implemented by the profile
// service; string-typed to keep this package free of profile imports.
type Profiles interface {
	PlanInfo(ctx context.Context, userID string) (planType string, startedAt time.Time, err error)
}

// Handler serves GET /api/plan.
type Handler struct {
	profiles Profiles
	clock    common.Clock
}

// NewHandler creates the plan handler.
func NewHandler(profiles Profiles, clock common.Clock) *Handler {
	return &Handler{profiles: profiles, clock: clock}
}

type planResponse struct {
	*Plan
	StartedAt   time.Time   `json:"startedAt"`
	CurrentWeek int         `json:"currentWeek"`
	IsComplete  bool        `json:"isComplete"`
	TodayLimit  WeeklyLimit `json:"todayLimit"`
	Progress    string      `json:"progress"`
}

// Get handles GET /api/plan: the caller's full schedule plus where they are
// on it today.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserID(r.Context())

	planType, startedAt, err := h.profiles.PlanInfo(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	p, err := Get(Type(planType))
	if err != nil {
		httpx.Error(w, err)
		return
	}

	now := h.clock.Now()
	limit, complete := CurrentLimit(p, startedAt, now)
	httpx.JSON(w, http.StatusOK, planResponse{
		Plan:        p,
		StartedAt:   startedAt,
		CurrentWeek: CurrentWeekNumber(startedAt, now),
		IsComplete:  complete,
		TodayLimit:  limit,
		Progress:    FormatProgress(p, startedAt, now),
	})
}
