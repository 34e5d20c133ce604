// Package observability provides run metrics for qmerge
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// Registry holds every qmerge collector; it is exported to a textfile
	// rather than served.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// RunsTotal tracks the number of pipeline runs
	RunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qmerge_runs_total",
			Help: "Total number of merge runs",
		},
		[]string{"status"}, // status: success, failed
	)

	// RunDuration measures run duration in seconds
	RunDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qmerge_run_duration_seconds",
			Help:    "Merge run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	// RowsTotal counts rows read per input table
	RowsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qmerge_rows_total",
			Help: "Total number of rows read",
		},
		[]string{"table"}, // table: base, override
	)

	// MatchesTotal counts base rows paired with an override row
	MatchesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qmerge_matches_total",
			Help: "Total number of base rows matched to an override row",
		},
		[]string{"rule"}, // rule: class_name, file_path
	)

	// UnmatchedRowsTotal counts rows left without a partner
	UnmatchedRowsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qmerge_unmatched_rows_total",
			Help: "Total number of rows without a match",
		},
		[]string{"table"}, // table: base, override
	)

	// ColumnsAddedTotal counts columns imported from the override table
	ColumnsAddedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "qmerge_columns_added_total",
			Help: "Total number of columns added from the override table",
		},
	)

	// MetricRecalculationsTotal counts metric outcomes
	MetricRecalculationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qmerge_metric_recalculations_total",
			Help: "Total number of metric recalculations",
		},
		[]string{"metric", "status"}, // status: recalculated, kept, defaulted
	)
)
