// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ClassificationsTotal tracks successful message classifications.
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifications_total",
			Help: "Total messages classified",
		},
		[]string{"provider"},
	)

	// ClassificationFailuresTotal tracks failed classification requests.
	// Failures are recovered per message; they never abort a pass.
	ClassificationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classification_failures_total",
			Help: "Total classification requests that failed",
		},
		[]string{"provider"},
	)

	// AggregationDuration tracks aggregation pass duration.
	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_pass_duration_seconds",
			Help:    "Duration of full aggregation passes",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// AggregationConversations tracks conversations per aggregation pass.
	AggregationConversations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aggregation_conversations",
			Help: "Conversations covered by the last aggregation pass",
		},
	)

	// SuggestionsGenerated tracks suggestions produced per pass.
	SuggestionsGenerated = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "suggestions_generated",
			Help: "Workflow suggestions produced by the last aggregation pass",
		},
	)

	// ClassificationCacheSize tracks cached classification entries.
	ClassificationCacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "classification_cache_entries",
			Help: "Entries in the classification cache",
		},
		[]string{"tenant_id"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAggregationPass records metrics for one aggregation cycle.
func RecordAggregationPass(duration float64, conversations, suggestions int) {
	AggregationDuration.Observe(duration)
	AggregationConversations.Set(float64(conversations))
	SuggestionsGenerated.Set(float64(suggestions))
}
