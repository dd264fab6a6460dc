package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween_DurationFloored(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  int
	}{
		{
			name:  "same instant",
			start: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			now:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name: "new calendar day but under 24h elapsed",
			// Started 23:59, still day 0 the next morning.
			start: time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC),
			now:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "exactly 24h",
			start: time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC),
			now:   time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "a week and change",
			start: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
			now:   time.Date(2026, 3, 8, 9, 30, 0, 0, time.UTC),
			want:  7,
		},
		{
			name:  "now before start floors downward",
			start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			want:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.start, tt.now))
		})
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", FormatDay(d))

	_, err = ParseDay("05.03.2026")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDay("2026-13-40")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDayArithmetic(t *testing.T) {
	assert.Equal(t, "2026-03-01", PrevDay("2026-03-02"))
	assert.Equal(t, "2026-02-28", PrevDay("2026-03-01"))
	assert.Equal(t, "2027-01-01", NextDay("2026-12-31"))

	assert.True(t, Consecutive("2026-03-01", "2026-03-02"))
	assert.True(t, Consecutive("2026-02-28", "2026-03-01"))
	assert.False(t, Consecutive("2026-03-01", "2026-03-03"))
	assert.False(t, Consecutive("2026-03-02", "2026-03-01"))
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	var c Clock = FixedClock{T: at}
	assert.Equal(t, at, c.Now())
	assert.Equal(t, "2026-03-05", Today(c.Now()))
}
