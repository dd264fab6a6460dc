// Package stats — handlers.go exposes the community summary endpoint.
package stats

import (
	"net/http"

	"sugarreset.app/server/internal/httpx"
)

// Handler serves GET /api/community.
type Handler struct {
	service *Service
}

// NewHandler creates the stats handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Community handles GET /api/community.
func (h *Handler) Community(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Latest(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
