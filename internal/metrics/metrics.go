package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code", "service"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "service"},
	)

	// Upstream news API calls
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of calls to the upstream news API",
		},
		[]string{"feed", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream news API call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feed"},
	)

	// Browsing UI
	UISessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ui_sessions_active",
			Help: "Number of live browsing sessions",
		},
	)

	UIStaleResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ui_stale_responses_total",
			Help: "View loads discarded because a newer load superseded them",
		},
		[]string{"view"},
	)
)

// Outcome labels for UpstreamRequestsTotal.
const (
	OutcomeSuccess   = "success"
	OutcomeStatus    = "upstream_status"
	OutcomeMalformed = "malformed_body"
	OutcomeTransport = "transport"
)
