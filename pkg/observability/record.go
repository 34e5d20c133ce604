package observability

import (
	"time"

	"github.com/ethpandaops/qmerge/pkg/merge"
	"github.com/ethpandaops/qmerge/pkg/qmood"
)

// RecordInputs counts the rows read from the base and override tables
func RecordInputs(baseRows, overrideRows int) {
	RowsTotal.WithLabelValues("base").Add(float64(baseRows))
	RowsTotal.WithLabelValues("override").Add(float64(overrideRows))
}

// RecordMerge counts matches, unmatched rows and added columns
func RecordMerge(result *merge.Result) {
	for _, m := range result.Matches {
		MatchesTotal.WithLabelValues(m.Rule.String()).Inc()
	}

	UnmatchedRowsTotal.WithLabelValues("base").Add(float64(len(result.UnmatchedBase)))
	UnmatchedRowsTotal.WithLabelValues("override").Add(float64(len(result.UnmatchedOverride)))
	ColumnsAddedTotal.Add(float64(len(result.AddedColumns)))
}

// RecordRecalculation counts metric outcomes
func RecordRecalculation(report *qmood.Report) {
	for _, o := range report.Outcomes {
		MetricRecalculationsTotal.WithLabelValues(o.Metric, string(o.Status)).Inc()
	}
}

// RecordRun counts a finished run and observes its duration
func RecordRun(start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}

	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(time.Since(start).Seconds())
}
