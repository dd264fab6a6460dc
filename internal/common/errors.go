// Package common holds sentinel errors and calendar-day helpers shared by
// every feature package. Handlers match these errors to pick HTTP status
// codes and user-facing messages.
package common

import "errors"

// Check-in errors.
var (
	// ErrFutureDate — a check-in may not be logged for a date after today.
	ErrFutureDate = errors.New("check-in date is in the future")
	// ErrBeforePlanStart — a check-in may not predate the plan start date.
	ErrBeforePlanStart = errors.New("check-in date is before the plan start date")
	// ErrInvalidDate — the date is not a valid YYYY-MM-DD calendar day.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrInvalidCheckIn — an optional field is out of range (grams < 0,
	// mood/craving outside 1-5, notes over 200 characters).
	ErrInvalidCheckIn = errors.New("invalid check-in fields")
)

// Plan errors.
var (
	// ErrUnknownPlan — plan type is not cold_turkey or gradual. This is a
	// contract violation by the caller, not a runtime condition to retry.
	ErrUnknownPlan = errors.New("unknown plan type")
)

// Profile errors.
var (
	// ErrProfileNotFound — no profile exists for the user.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists — registration for a user that already has a profile.
	ErrProfileExists = errors.New("profile already exists")
)

// Admin errors.
var (
	// ErrWrongPassword — the maintenance password did not match.
	ErrWrongPassword = errors.New("wrong admin password")
	// ErrSessionExpired — the admin session token is missing, expired or revoked.
	ErrSessionExpired = errors.New("admin session expired")
)
