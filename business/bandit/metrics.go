package bandit

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_selections_total",
			Help: "Count of bandit selections by context.",
		},
		[]string{"context_id"},
	)

	OutcomeEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_outcome_events_total",
			Help: "Count of bandit outcome events by context and event type.",
		},
		[]string{"context_id", "event_type"},
	)

	UnmatchedUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bandit_unmatched_updates_total",
			Help: "Updates that did not match the pending selection (update-without-select misuse).",
		},
	)
)

func init() {
	prometheus.MustRegister(SelectionsTotal, OutcomeEventsTotal, UnmatchedUpdatesTotal)
}
