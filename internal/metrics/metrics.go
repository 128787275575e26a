// Package metrics holds the Prometheus collectors exported by the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests counts API requests by endpoint and outcome.
	Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unit_analytics_requests_total",
			Help: "API requests handled, by endpoint and status class",
		},
		[]string{"endpoint", "status"},
	)

	// RequestErrors counts rejected requests by endpoint and reason.
	RequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unit_analytics_request_errors_total",
			Help: "API requests rejected, by endpoint and reason",
		},
		[]string{"endpoint", "reason"},
	)

	// UnitsAnalyzed counts units run through the analytics engine.
	UnitsAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unit_analytics_units_analyzed_total",
			Help: "Units run through the analytics engine",
		},
	)

	// RequestDuration observes request latency by endpoint.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unit_analytics_request_duration_seconds",
			Help:    "API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// StatusClass maps an HTTP status code to a low-cardinality label.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
