// Package metrics registers the server's Prometheus collectors. Everything
// is package-level; the /metrics endpoint is mounted by the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckInsRecorded counts persisted check-ins, labelled by outcome.
	CheckInsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sugarreset_checkins_recorded_total",
		Help: "Check-ins written to storage, by outcome (sugar_free / had_sugar).",
	}, []string{"outcome"})

	// StreaksBroken counts streak resets, labelled by cause.
	StreaksBroken = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sugarreset_streaks_broken_total",
		Help: "Current streaks reset to zero, by cause (had_sugar / gap).",
	}, []string{"cause"})

	// StreakRecomputes counts full ledger recomputations.
	StreakRecomputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sugarreset_streak_recomputes_total",
		Help: "Full streak recomputations from the check-in ledger.",
	})

	// AggregationRuns counts community aggregation runs, by result.
	AggregationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sugarreset_aggregation_runs_total",
		Help: "Community summary aggregation runs, by result (ok / error).",
	}, []string{"result"})

	// AggregationUsers reports the user count seen by the latest run.
	AggregationUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sugarreset_aggregation_users",
		Help: "User records read by the most recent aggregation run.",
	})
)

// Outcome converts a sugar-free flag into the metric label value.
func Outcome(sugarFree bool) string {
	if sugarFree {
		return "sugar_free"
	}
	return "had_sugar"
}
