// Package metrics exposes Prometheus counters for the ingestion pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncRuns counts completed sync runs, partitioned by outcome.
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_sync_runs_total",
		Help: "Completed content sync runs by outcome.",
	}, []string{"outcome"})

	// SyncedItems counts records upserted across all providers.
	SyncedItems = promauto.NewCounter(prometheus.CounterOpts{
		Name: "content_sync_items_total",
		Help: "Content records upserted by sync runs.",
	})

	// ProviderFailures counts per-provider sync failures.
	ProviderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_sync_provider_failures_total",
		Help: "Provider sync failures by provider name.",
	}, []string{"provider"})

	// SyncDuration observes the wall time of full sync runs.
	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "content_sync_duration_seconds",
		Help:    "Duration of full content sync runs.",
		Buckets: prometheus.DefBuckets,
	})
)
