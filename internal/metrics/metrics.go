package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "classdiagram_parse_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FilesParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classdiagram_files_parsed_total",
		Help: "Total number of source files parsed.",
	}, []string{"language"})

	FilesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classdiagram_files_failed_total",
		Help: "Total number of source files that could not be read.",
	})

	Classes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "classdiagram_classes",
		Help: "Number of classes, inner classes included, in the last generated diagram.",
	})

	Relations = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "classdiagram_relations",
		Help: "Number of relations in the last generated diagram, by kind.",
	}, []string{"kind"})

	GenerateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "classdiagram_generate_seconds",
		Help:    "Time spent on a full generate run.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classdiagram_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classdiagram_watcher_runs_total",
		Help: "Total number of regenerations triggered by the watcher, by outcome.",
	}, []string{"outcome"})
)

// ObserveParse records one parsed file.
func ObserveParse(language string, took time.Duration) {
	ParseDuration.WithLabelValues(language).Observe(took.Seconds())
	FilesParsed.WithLabelValues(language).Inc()
}

// SetRelations replaces the per-kind relation gauges. Kinds missing from
// counts are reset to zero.
func SetRelations(kinds []string, counts map[string]int) {
	for _, k := range kinds {
		Relations.WithLabelValues(k).Set(float64(counts[k]))
	}
}
