// Package profile — handlers.go exposes the profile endpoints.
package profile

import (
	"net/http"

	"sugarreset.app/server/internal/features/plan"
	"sugarreset.app/server/internal/httpx"
)

// Handler serves the /api/profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the profile handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	DisplayName string    `json:"displayName"`
	PlanType    plan.Type `json:"planType"`
}

// Register handles POST /api/profile.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserID(r.Context())

	var req registerRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "malformed request body")
		return
	}
	if req.DisplayName == "" {
		httpx.BadRequest(w, "displayName is required")
		return
	}

	p, err := h.service.Register(r.Context(), userID, req.DisplayName, req.PlanType)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Get handles GET /api/profile.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserID(r.Context())

	p, err := h.service.Get(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

type switchPlanRequest struct {
	PlanType plan.Type `json:"planType"`
}

// SwitchPlan handles PUT /api/profile/plan.
func (h *Handler) SwitchPlan(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserID(r.Context())

	var req switchPlanRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "malformed request body")
		return
	}

	p, err := h.service.SwitchPlan(r.Context(), userID, req.PlanType)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}
