// Package checkin — handlers.go exposes the check-in endpoints.
package checkin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sugarreset.app/server/internal/httpx"
)

// Handler serves the /api/checkins endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the check-in handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type recordRequest struct {
	Date      string `json:"date"`
	SugarFree *bool  `json:"sugarFree"`
	Extras
}

// Record handles POST /api/checkins.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserID(r.Context())

	var req recordRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "malformed request body")
		return
	}
	if req.Date == "" {
		httpx.BadRequest(w, "date is required")
		return
	}
	if req.SugarFree == nil {
		httpx.BadRequest(w, "sugarFree is required")
		return
	}

	c, err := h.service.Record(r.Context(), userID, req.Date, *req.SugarFree, req.Extras)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Get handles GET /api/checkins/{date}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserID(r.Context())
	day := chi.URLParam(r, "date")

	c, err := h.service.Get(r.Context(), userID, day)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if c == nil {
		httpx.JSON(w, http.StatusNotFound, map[string]string{"error": "no check-in for " + day})
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

type listResponse struct {
	CheckIns []*CheckIn `json:"checkIns"`
}

// List handles GET /api/checkins?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserID(r.Context())

	checkIns, err := h.service.List(r.Context(), userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if checkIns == nil {
		checkIns = []*CheckIn{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{CheckIns: checkIns})
}

type todayResponse struct {
	CheckedIn bool     `json:"checkedIn"`
	CheckIn   *CheckIn `json:"checkIn,omitempty"`
}

// Today handles GET /api/checkins/today.
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserID(r.Context())

	c, err := h.service.Today(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, todayResponse{CheckedIn: c != nil, CheckIn: c})
}
