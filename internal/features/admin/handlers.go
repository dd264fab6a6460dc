package admin

import (
	"net/http"
	"time"

	"sugarreset.app/server/internal/features/stats"
	"sugarreset.app/server/internal/httpx"
)

// Handler serves the /api/admin endpoints.
type Handler struct {
	service *Service
	stats   *stats.Service
}

// NewHandler creates the admin handler.
func NewHandler(service *Service, stats *stats.Service) *Handler {
	return &Handler{service: service, stats: stats}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /api/admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid request body")
		return
	}
	if req.Password == "" {
		httpx.BadRequest(w, "password is required")
		return
	}

	session, err := h.service.Login(r.Context(), req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, loginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

// Aggregate handles POST /api/admin/aggregate: runs one aggregation pass
// outside the hourly schedule and returns the fresh summary.
func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	summary, err := h.stats.Run(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
