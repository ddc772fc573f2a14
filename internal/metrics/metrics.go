// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nexa"

// Core ranking metrics.
var (
	SourceFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Duration of active-content fetches per kind",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind", "status"},
	)

	RankedItems = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranked_items",
			Help:      "Number of items returned per ranking operation",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"operation"},
	)

	OperationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Failed ranking operations",
		},
		[]string{"operation"},
	)
)

// Oracle metrics.
var (
	OracleRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_requests_total",
			Help:      "Total number of generative oracle requests",
		},
		[]string{"call", "model", "status"},
	)

	OracleRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_request_duration_seconds",
			Help:      "Generative oracle request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"call", "model"},
	)

	OracleErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_errors_total",
			Help:      "Generative oracle errors by type",
		},
		[]string{"call", "error_type"},
	)

	OracleFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_fallbacks_total",
			Help:      "Responses served from the canned fallback",
		},
		[]string{"call"},
	)

	SuggestionCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_cache_total",
			Help:      "Suggestion cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerOnce sync.Once

// Register registers every collector with the default registry. Call once from main; repeats are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			SourceFetchDuration,
			RankedItems,
			OperationErrorsTotal,
			OracleRequestsTotal,
			OracleRequestDuration,
			OracleErrorsTotal,
			OracleFallbacksTotal,
			SuggestionCacheTotal,
		)
	})
}
