// Package common — dates.go works with calendar days. A "day" is the string
// form YYYY-MM-DD in the application timezone; the string form sorts in date
// order, so day strings are compared directly everywhere.
package common

import (
	"fmt"
	"math"
	"time"
)

// DayLayout is the wire and storage format for calendar days.
const DayLayout = "2006-01-02"

// Clock supplies the current time. Production uses the system clock in the
// application timezone; tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

type sysClock struct {
	loc *time.Location
}

// NewClock returns a Clock reading the system time in loc.
func NewClock(loc *time.Location) Clock {
	return &sysClock{loc: loc}
}

func (c *sysClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// FormatDay renders t as a calendar day in t's own location.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD string. The result is midnight UTC; it is
// only used for day arithmetic, never compared against wall-clock instants.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Today returns the calendar day containing now.
func Today(now time.Time) string {
	return FormatDay(now)
}

// DaysBetween counts whole elapsed days between two instants, flooring the
// raw duration. This is deliberately NOT calendar-date subtraction: a plan
// started at 23:59 stays on day 0 until a full 24 hours have passed. The
// mobile app has always computed plan weeks this way, so the server must
// match it exactly.
func DaysBetween(start, now time.Time) int {
	return int(math.Floor(now.Sub(start).Hours() / 24))
}

// AddDays shifts a day string by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return FormatDay(t.AddDate(0, 0, n)), nil
}

// PrevDay returns the day before. Panics on malformed input; day strings
// reaching this point have already been validated.
func PrevDay(day string) string {
	d, err := AddDays(day, -1)
	if err != nil {
		panic(err)
	}
	return d
}

// NextDay returns the day after.
func NextDay(day string) string {
	d, err := AddDays(day, 1)
	if err != nil {
		panic(err)
	}
	return d
}

// Consecutive reports whether b is exactly the day after a.
func Consecutive(a, b string) bool {
	return NextDay(a) == b
}
