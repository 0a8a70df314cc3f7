// Package metrics provides Prometheus metrics for the D&D 5e MCP server.
// It tracks tool calls, upstream API calls, and recovered panics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "dnd5e_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// UpstreamRequestsTotal counts D&D 5e API requests
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "upstream_api_requests_total",
		Help:      "Total D&D 5e API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	// UpstreamLatency measures D&D 5e API call latency by endpoint
	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "upstream_api_latency_seconds",
		Help:      "D&D 5e API call latency by endpoint",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	// UpstreamErrors counts D&D 5e API errors by error code
	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "upstream_api_errors_total",
		Help:      "D&D 5e API errors by endpoint and error code",
	}, []string{"endpoint", "error_code"})

	// ActionEntries tracks how many entries the last action call returned
	ActionEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "action_entries",
		Help:      "Number of entries returned by the most recent action call",
	}, []string{"action"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a D&D 5e API call
func RecordAPICall(endpoint string, duration float64, success bool, errorCode string) {
	status := "success"
	if !success {
		status = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	UpstreamLatency.WithLabelValues(endpoint).Observe(duration)
	if errorCode != "" {
		UpstreamErrors.WithLabelValues(endpoint, errorCode).Inc()
	}
}

// SetActionEntries records the size of an action's result mapping
func SetActionEntries(action string, n int) {
	ActionEntries.WithLabelValues(action).Set(float64(n))
}
