package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the bandit selection HTTP handler
	SelectionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bandit_selection_latency_seconds",
		Help:    "Latency of bandit selection handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of selection requests served
	SelectionRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bandit_selection_requests_total",
		Help: "Total number of bandit selection requests",
	})

	// Total number of feedback requests served
	FeedbackRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bandit_feedback_requests_total",
		Help: "Total number of bandit feedback requests",
	})
)

func Init() {
	prometheus.MustRegister(
		SelectionLatency,
		SelectionRequests,
		FeedbackRequests,
	)
}
