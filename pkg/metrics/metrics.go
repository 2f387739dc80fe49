package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	VersionsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "quill", Name: "versions_created_total", Help: "Number of snapshots recorded, by source."},
		[]string{"source"},
	)
	VersionsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "quill", Name: "versions_skipped_total", Help: "Number of snapshot requests dropped because versioning is disabled."},
	)
	Restores = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "quill", Name: "restores_total", Help: "Number of restore attempts by outcome."},
		[]string{"outcome"},
	)
	VersionsPruned = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "quill", Name: "versions_pruned_total", Help: "Number of snapshots deleted by the retention sweeper."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "quill", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "quill", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(VersionsCreated)
	reg.MustRegister(VersionsSkipped)
	reg.MustRegister(Restores)
	reg.MustRegister(VersionsPruned)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
