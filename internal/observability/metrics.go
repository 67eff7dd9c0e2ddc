// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chika_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// PipelineDuration records how long the feed and thread pipelines take.
	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chika_pipeline_duration_seconds",
		Help:    "Time spent shaping a snapshot for a viewer",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"view"})

	// HiddenRecords counts records removed by viewer preferences.
	HiddenRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chika_hidden_records_total",
		Help: "Records hidden by viewer moderation settings",
	}, []string{"kind", "reason"})

	// OrphanComments counts comments that could not be attached to a thread tree.
	OrphanComments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chika_orphan_comments_total",
		Help: "Comments whose parent is missing from the thread snapshot",
	})

	// VoteOutcomes counts vote toggles by target type and result.
	VoteOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chika_vote_outcomes_total",
		Help: "Vote toggles by target type and outcome",
	}, []string{"target", "outcome"})

	// CacheLookups counts cache hits and misses by cache name.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chika_cache_lookups_total",
		Help: "Cache lookups by cache and result",
	}, []string{"cache", "result"})
)

// TrackPipeline returns a function that records pipeline latency when called (e.g. defer).
func TrackPipeline(view string) func() {
	start := time.Now()
	return func() {
		PipelineDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	}
}

// RecordHidden adds the per-reason hidden counts for one pipeline run.
func RecordHidden(kind string, counts map[string]int) {
	for reason, n := range counts {
		if n > 0 {
			HiddenRecords.WithLabelValues(kind, reason).Add(float64(n))
		}
	}
}
