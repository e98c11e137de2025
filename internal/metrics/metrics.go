package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Outbound provider calls by outcome ("ok" or a failure kind).
	ProviderCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_calls_total",
		Help: "Outbound provider calls by provider, operation and outcome",
	}, []string{"provider", "op", "outcome"})

	// 0 closed, 1 half-open, 2 open.
	BreakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "provider_breaker_state",
		Help: "Circuit breaker state per provider",
	}, []string{"provider"})

	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_duration_seconds",
		Help:    "End-to-end latency of the recommendation pipeline",
		Buckets: prometheus.DefBuckets,
	})

	RecommendCandidates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_candidates",
		Help:    "Candidates returned by the nearby search per request",
		Buckets: []float64{0, 5, 10, 15, 30, 45},
	})

	MentionCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mention_cache_lookups_total",
		Help: "Mention-count cache lookups by result",
	}, []string{"result"})
)

var once sync.Once

// Init registers the collectors with the default registry. Idempotent.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			ProviderCalls,
			BreakerState,
			RecommendDuration,
			RecommendCandidates,
			MentionCacheLookups,
		)
	})
}
