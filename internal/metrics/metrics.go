// Package metrics defines the Prometheus metrics exposed on /metrics.
//
// Naming follows Prometheus conventions: an examobuddy_ prefix, _total for
// counters and _seconds for duration histograms.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal counts calls to the upstream API by endpoint
	// and HTTP status.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examobuddy_upstream_requests_total",
			Help: "Total number of upstream API requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	// UpstreamRequestSeconds is a histogram of upstream API call latency
	// by endpoint.
	UpstreamRequestSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "examobuddy_upstream_request_seconds",
			Help:    "Latency of upstream API requests in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	// ForcedLogoutsTotal counts sessions cleared because the upstream API
	// rejected their token.
	ForcedLogoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "examobuddy_forced_logouts_total",
			Help: "Total number of sessions cleared after an upstream 401.",
		},
	)
)
