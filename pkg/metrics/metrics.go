package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blogapi", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blogapi", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// PostOperations counts store operations by name and outcome (ok|invalid|not_found|error).
	PostOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blogapi", Name: "post_operations_total", Help: "Number of post operations by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	PostsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "blogapi", Name: "posts_stored", Help: "Number of posts currently held in memory."},
	)
	PostEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blogapi", Name: "post_events_published_total", Help: "Number of post lifecycle events published by type."},
		[]string{"type"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(PostOperations)
	reg.MustRegister(PostsStored)
	reg.MustRegister(PostEventsPublished)
}
