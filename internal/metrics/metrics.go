// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EngineRequests counts API requests by endpoint and status.
	EngineRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loantrack_requests_total",
			Help: "API requests served, by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	// RequestDuration observes API latency by endpoint.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loantrack_request_duration_seconds",
			Help:    "API request latency, by endpoint",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Simulations counts payoff simulations by outcome so non-amortizing
	// configurations stay visible.
	Simulations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loantrack_simulations_total",
			Help: "Payoff simulations run, by outcome",
		},
		[]string{"outcome"},
	)

	// CacheLookups counts response cache hits and misses.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loantrack_cache_lookups_total",
			Help: "Response cache lookups, by result",
		},
		[]string{"result"},
	)
)

// Simulation outcome label values.
const (
	OutcomeAmortizing    = "amortizing"
	OutcomeNonAmortizing = "non_amortizing"
)

// RecordSimulation tracks one simulation outcome.
func RecordSimulation(nonAmortizing bool) {
	outcome := OutcomeAmortizing
	if nonAmortizing {
		outcome = OutcomeNonAmortizing
	}
	Simulations.WithLabelValues(outcome).Inc()
}
