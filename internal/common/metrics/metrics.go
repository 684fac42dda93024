package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_requests_total",
			Help: "Total number of quote requests by carrier and result",
		},
		[]string{"carrier", "result"},
	)

	QuoteCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_cache_hits_total",
			Help: "Total number of quote cache hits",
		},
	)

	QuoteCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_cache_misses_total",
			Help: "Total number of quote cache misses",
		},
	)

	PoliciesBound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policies_bound_total",
			Help: "Total number of policies bound by carrier",
		},
		[]string{"carrier"},
	)

	PolicyOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policy_operations_total",
			Help: "Total number of policy lifecycle operations by type and result",
		},
		[]string{"operation", "result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route"},
	)
)
