// Package httpx holds the small HTTP plumbing shared by feature handlers:
// JSON responses, the domain-error to status-code mapping, and the request
// identity carried in the context by the auth middleware.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"sugarreset.app/server/internal/common"
)

type ctxKey int

const userIDKey ctxKey = iota

// WithUserID stores the authenticated user id on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user id, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encode response")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Error maps a domain error onto an HTTP status and writes it. Unrecognized
// errors are collaborator failures: logged in full, returned as a bare 500.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidDate),
		errors.Is(err, common.ErrFutureDate),
		errors.Is(err, common.ErrBeforePlanStart),
		errors.Is(err, common.ErrInvalidCheckIn),
		errors.Is(err, common.ErrUnknownPlan):
		JSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, common.ErrProfileNotFound):
		JSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, common.ErrProfileExists):
		JSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, common.ErrWrongPassword),
		errors.Is(err, common.ErrSessionExpired):
		JSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	default:
		log.WithError(err).Error("internal error")
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// BadRequest writes a plain 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
