package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sugarreset.app/server/internal/common"
)

func TestGet_KnownPlans(t *testing.T) {
	for _, typ := range []Type{ColdTurkey, Gradual} {
		p, err := Get(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, p.Type)
		assert.Equal(t, planWeeks, p.Weeks())
	}
}

func TestGet_UnknownPlan(t *testing.T) {
	_, err := Get(Type("keto"))
	assert.ErrorIs(t, err, common.ErrUnknownPlan)

	_, err = Get(Type(""))
	assert.ErrorIs(t, err, common.ErrUnknownPlan)
}

func TestCatalog_WeekNumbersContiguous(t *testing.T) {
	for _, typ := range []Type{ColdTurkey, Gradual} {
		p, err := Get(typ)
		require.NoError(t, err)
		for i, wl := range p.WeeklyLimits {
			assert.Equal(t, i+1, wl.WeekNumber, "plan %s week index %d", typ, i)
			assert.GreaterOrEqual(t, wl.DailyGramLimit, 0)
			assert.NotEmpty(t, wl.Title)
		}
	}
}

func TestColdTurkey_AlwaysZero(t *testing.T) {
	p, err := Get(ColdTurkey)
	require.NoError(t, err)
	for _, wl := range p.WeeklyLimits {
		assert.Equal(t, 0, wl.DailyGramLimit, "week %d", wl.WeekNumber)
	}
}

func TestGradual_StrictStepDownThenZero(t *testing.T) {
	p, err := Get(Gradual)
	require.NoError(t, err)

	assert.Equal(t, 50, p.WeeklyLimits[0].DailyGramLimit)
	assert.Equal(t, 0, p.WeeklyLimits[7].DailyGramLimit)

	// Strictly decreasing through week 8.
	for i := 1; i < 8; i++ {
		assert.Less(t, p.WeeklyLimits[i].DailyGramLimit, p.WeeklyLimits[i-1].DailyGramLimit,
			"week %d must be below week %d", i+1, i)
	}
	// Held at zero weeks 8-13.
	for i := 7; i < p.Weeks(); i++ {
		assert.Equal(t, 0, p.WeeklyLimits[i].DailyGramLimit, "week %d", i+1)
	}
}

func TestTypeValid(t *testing.T) {
	assert.True(t, ColdTurkey.Valid())
	assert.True(t, Gradual.Valid())
	assert.False(t, Type("gradual_reset").Valid())
}
