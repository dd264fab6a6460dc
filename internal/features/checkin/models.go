// Package checkin is the daily check-in ledger: one record per user per
// calendar day, upserted whole.
// models.go defines the check-in data structures.
package checkin

import (
	"fmt"
	"time"
	"unicode/utf8"

	"sugarreset.app/server/internal/common"
)

// maxNotesLen bounds the free-text note.
const maxNotesLen = 200

// CheckIn is one day's log entry. The optional fields travel together as
// Extras; a nil pointer means the user left the field blank.
type CheckIn struct {
	ID            int64     `db:"id" json:"-"`
	UserID        string    `db:"user_id" json:"userId"`
	Day           string    `db:"day" json:"date"`
	SugarFree     bool      `db:"sugar_free" json:"sugarFree"`
	GramsConsumed *int      `db:"grams_consumed" json:"gramsConsumed,omitempty"`
	Mood          *int      `db:"mood" json:"mood,omitempty"`
	CravingLevel  *int      `db:"craving_level" json:"cravingLevel,omitempty"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// Extras are the optional check-in fields. On overwrite the whole set
// replaces what was stored before. Omitted fields become absent, never
// merged with old values.
type Extras struct {
	GramsConsumed *int    `json:"gramsConsumed,omitempty"`
	Mood          *int    `json:"mood,omitempty"`
	CravingLevel  *int    `json:"cravingLevel,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// Validate checks the optional field ranges.
func (e Extras) Validate() error {
	if e.GramsConsumed != nil && *e.GramsConsumed < 0 {
		return fmt.Errorf("%w: gramsConsumed must be >= 0", common.ErrInvalidCheckIn)
	}
	if e.Mood != nil && (*e.Mood < 1 || *e.Mood > 5) {
		return fmt.Errorf("%w: mood must be 1-5", common.ErrInvalidCheckIn)
	}
	if e.CravingLevel != nil && (*e.CravingLevel < 1 || *e.CravingLevel > 5) {
		return fmt.Errorf("%w: cravingLevel must be 1-5", common.ErrInvalidCheckIn)
	}
	if e.Notes != nil && utf8.RuneCountInString(*e.Notes) > maxNotesLen {
		return fmt.Errorf("%w: notes longer than %d characters", common.ErrInvalidCheckIn, maxNotesLen)
	}
	return nil
}
