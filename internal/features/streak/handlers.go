// Package streak — handlers.go exposes the streak endpoint.
package streak

import (
	"net/http"

	"sugarreset.app/server/internal/httpx"
)

// Handler serves GET /api/streak.
type Handler struct {
	service *Service
}

// NewHandler creates the streak handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type streakResponse struct {
	State
	Milestones    []Milestone `json:"milestones"`
	NextMilestone *Milestone  `json:"nextMilestone,omitempty"`
}

// Get handles GET /api/streak.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserID(r.Context())

	st, err := h.service.GetState(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := streakResponse{
		State:      st,
		Milestones: Achieved(st.CurrentStreak),
	}
	if next, ok := Next(st.CurrentStreak); ok {
		resp.NextMilestone = &next
	}
	httpx.JSON(w, http.StatusOK, resp)
}
