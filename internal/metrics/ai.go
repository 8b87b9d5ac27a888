package metrics

import "github.com/prometheus/client_golang/prometheus"

// AI and search Prometheus metrics.
var (
	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capacita",
			Name:      "ai_requests_total",
			Help:      "Total number of generative AI requests",
		},
		[]string{"provider", "model", "operation", "status"},
	)

	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "capacita",
			Name:      "ai_request_duration_seconds",
			Help:      "Generative AI request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model", "operation"},
	)

	AITokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capacita",
			Name:      "ai_tokens_total",
			Help:      "Total AI tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	ExpansionFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "capacita",
			Name:      "expansion_fallback_total",
			Help:      "Query expansions that degraded to the raw-query fallback",
		},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capacita",
			Name:      "search_cache_total",
			Help:      "Search cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var aiMetricsRegistered bool

// RegisterAIMetrics registers Prometheus AI metrics. Must be called once from main.
func RegisterAIMetrics() {
	if aiMetricsRegistered {
		return
	}
	prometheus.MustRegister(AIRequestsTotal)
	prometheus.MustRegister(AIRequestDuration)
	prometheus.MustRegister(AITokensTotal)
	prometheus.MustRegister(ExpansionFallbackTotal)
	prometheus.MustRegister(SearchCacheTotal)
	aiMetricsRegistered = true
}
