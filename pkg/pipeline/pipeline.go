// Package pipeline runs load, merge, recalculate and write as one unit
package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethpandaops/qmerge/pkg/matcher"
	"github.com/ethpandaops/qmerge/pkg/merge"
	"github.com/ethpandaops/qmerge/pkg/observability"
	"github.com/ethpandaops/qmerge/pkg/qmood"
	"github.com/ethpandaops/qmerge/pkg/report"
	"github.com/ethpandaops/qmerge/pkg/table"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Result describes one completed run
type Result struct {
	RunID        string
	Base         string
	Override     string
	Output       string
	BaseRows     int
	OverrideRows int
	Merge        *merge.Result
	Metrics      *qmood.Report
	Duration     time.Duration
}

// Pipeline merges an override CSV into a base CSV and recomputes metrics
type Pipeline struct {
	config       *Config
	log          logrus.FieldLogger
	engine       *merge.Engine
	recalculator *qmood.Recalculator
	renderer     *report.Renderer

	// Stdout receives the report when its path is "-"
	Stdout io.Writer

	// OnRun, when set, is called after every run started by Watch
	OnRun func(*Result, error)
}

// New validates the configuration and prepares every component
func New(config *Config, log logrus.FieldLogger) (*Pipeline, error) {
	config.SetDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	recalculator, err := qmood.NewRecalculator(config.Metrics, log, qmood.WithPrecision(config.Precision))
	if err != nil {
		return nil, err
	}

	renderer, err := report.NewRenderer(config.Report.Template)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		config:       config,
		log:          log,
		engine:       merge.NewEngine(matcher.New(config.Matching), log),
		recalculator: recalculator,
		renderer:     renderer,
		Stdout:       os.Stdout,
	}, nil
}

// Recalculator returns the configured metric recalculator
func (p *Pipeline) Recalculator() *qmood.Recalculator {
	return p.recalculator
}

// Run loads both inputs, merges them, recomputes the metrics and writes the
// output. Only input, output, report and metrics-file failures are returned;
// matching and formula problems are logged and recorded in the Result.
func (p *Pipeline) Run(basePath, overridePath string) (result *Result, err error) {
	start := time.Now()
	result = &Result{
		RunID:    uuid.New().String(),
		Base:     basePath,
		Override: overridePath,
		Output:   p.config.Output,
	}
	log := p.log.WithField("run_id", result.RunID)

	defer func() {
		result.Duration = time.Since(start)
		observability.RecordRun(start, err)

		if p.config.MetricsFile == "" {
			return
		}
		if writeErr := observability.WriteTextfile(p.config.MetricsFile); writeErr != nil && err == nil {
			err = writeErr
		}
	}()

	log.Infof("Reading base CSV: %s", basePath)
	base, err := table.Load(basePath)
	if err != nil {
		return result, err
	}

	log.Infof("Reading override CSV: %s", overridePath)
	override, err := table.Load(overridePath)
	if err != nil {
		return result, err
	}

	result.BaseRows = base.Len()
	result.OverrideRows = override.Len()
	observability.RecordInputs(base.Len(), override.Len())

	log.Info("Merging CSVs...")
	result.Merge = p.engine.Merge(base, override, p.config.AddColumns)
	observability.RecordMerge(result.Merge)

	log.Info("Recalculating QMOOD metrics...")
	merged, metrics := p.recalculator.Recalculate(result.Merge.Table)
	result.Metrics = metrics
	observability.RecordRecalculation(metrics)

	log.Infof("Saving merged CSV to: %s", p.config.Output)
	if err := table.Save(p.config.Output, merged); err != nil {
		return result, err
	}

	result.Duration = time.Since(start)
	if err := p.writeReport(result); err != nil {
		return result, err
	}

	log.Info("Processing completed successfully")

	return result, nil
}

func (p *Pipeline) writeReport(result *Result) (err error) {
	path := p.config.Report.Path
	if path == "" {
		return nil
	}

	summary := Summarize(result)

	if path == "-" {
		return p.renderer.Render(p.Stdout, summary)
	}

	f, err := os.Create(path) //nolint:gosec // User-provided report path
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return p.renderer.Render(f, summary)
}

// Summarize converts a run result into report template data
func Summarize(result *Result) *report.Summary {
	summary := &report.Summary{
		RunID:        result.RunID,
		Base:         result.Base,
		Override:     result.Override,
		Output:       result.Output,
		BaseRows:     result.BaseRows,
		OverrideRows: result.OverrideRows,
		Duration:     result.Duration,
	}

	if result.Merge != nil {
		for _, m := range result.Merge.Matches {
			summary.Matches = append(summary.Matches, report.Match{
				BaseRow:     m.BaseRow,
				OverrideRow: m.OverrideRow,
				Rule:        m.Rule.String(),
				BaseName:    m.BaseName,
				OverrideID:  m.OverrideID,
			})
		}
		for _, u := range result.Merge.UnmatchedOverride {
			summary.UnmatchedOverride = append(summary.UnmatchedOverride, report.Unmatched{
				Row:   u.Index,
				Class: u.Class,
				File:  u.File,
			})
		}
		summary.UnmatchedBase = result.Merge.UnmatchedBase
		summary.AddedColumns = result.Merge.AddedColumns
	}

	if result.Metrics != nil {
		for _, o := range result.Metrics.Outcomes {
			metric := report.Metric{Name: o.Metric, Status: string(o.Status)}
			if o.Err != nil {
				metric.Error = o.Err.Error()
			}
			summary.Metrics = append(summary.Metrics, metric)
		}
	}

	return summary
}
