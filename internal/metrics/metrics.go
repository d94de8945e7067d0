// Package metrics содержит Prometheus-метрики feedfilter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups считает обращения к кэшу по результату: hit, miss (записи нет)
	// или stale (запись есть, но TTL истёк).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedfilter",
			Name:      "cache_lookups_total",
			Help:      "Total number of cache lookups",
		},
		[]string{"feed", "result"},
	)

	// Rebuilds считает пересборки фидов по статусу.
	Rebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedfilter",
			Name:      "rebuilds_total",
			Help:      "Total number of feed rebuilds",
		},
		[]string{"feed", "status"},
	)

	// RebuildDuration измеряет время загрузки и сборки.
	RebuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "feedfilter",
			Name:      "rebuild_duration_seconds",
			Help:      "Duration of feed rebuilds in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"feed"},
	)

	// Entries считает записи источника по исходу.
	Entries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedfilter",
			Name:      "entries_total",
			Help:      "Source entries processed by outcome",
		},
		[]string{"feed", "outcome"},
	)
)

// RecordLookup фиксирует обращение к кэшу.
func RecordLookup(feed, result string) {
	CacheLookups.WithLabelValues(feed, result).Inc()
}

// RecordRebuild фиксирует завершённую пересборку.
func RecordRebuild(feed, status string, duration float64) {
	Rebuilds.WithLabelValues(feed, status).Inc()
	RebuildDuration.WithLabelValues(feed).Observe(duration)
}

// RecordEntries фиксирует число оставленных, отфильтрованных и пропущенных записей.
func RecordEntries(feed string, kept, filtered, malformed int) {
	Entries.WithLabelValues(feed, "kept").Add(float64(kept))
	Entries.WithLabelValues(feed, "filtered").Add(float64(filtered))
	Entries.WithLabelValues(feed, "malformed").Add(float64(malformed))
}
