package qmood

import (
	"fmt"

	"github.com/ethpandaops/qmerge/pkg/table"
	"github.com/sirupsen/logrus"
)

// Status is the outcome of recalculating one metric
type Status string

// Metric outcomes
const (
	StatusRecalculated Status = "recalculated"
	StatusKept         Status = "kept"
	StatusDefaulted    Status = "defaulted"
)

// CompiledMetric is a metric with its parsed formula
type CompiledMetric struct {
	Name    string
	Formula *Formula
}

// Outcome records what happened to one metric column
type Outcome struct {
	Metric string
	Status Status
	Err    error
}

// Report lists metric outcomes in evaluation order
type Report struct {
	Outcomes []Outcome
}

// Failed returns the number of metrics whose formula could not be evaluated
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}

	return n
}

// Recalculator recomputes a fixed, ordered set of metric columns
type Recalculator struct {
	metrics   []*CompiledMetric
	byName    map[string]*CompiledMetric
	graph     *Graph
	precision int
	log       logrus.FieldLogger
}

// Option configures a Recalculator
type Option func(*Recalculator)

// WithPrecision rounds written values to the given number of decimal places
func WithPrecision(precision int) Option {
	return func(r *Recalculator) {
		r.precision = precision
	}
}

// NewRecalculator parses every formula and orders the metrics. Formulas are
// validated here so that evaluation never sees a malformed expression.
func NewRecalculator(metrics []Metric, log logrus.FieldLogger, opts ...Option) (*Recalculator, error) {
	r := &Recalculator{
		byName: make(map[string]*CompiledMetric, len(metrics)),
		graph:  NewGraph(),
		log:    log.WithField("component", "recalculator"),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.precision < 0 || r.precision > MaxPrecision {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrecision, r.precision)
	}

	compiled := make([]*CompiledMetric, 0, len(metrics))
	for _, m := range metrics {
		if m.Name == "" {
			return nil, ErrMetricNameRequired
		}
		if _, exists := r.byName[m.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMetric, m.Name)
		}

		formula, err := ParseFormula(m.Formula)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.Name, err)
		}

		cm := &CompiledMetric{Name: m.Name, Formula: formula}
		compiled = append(compiled, cm)
		r.byName[m.Name] = cm
	}

	if err := r.graph.Build(compiled); err != nil {
		return nil, err
	}

	for _, name := range r.graph.Order() {
		r.metrics = append(r.metrics, r.byName[name])
	}

	return r, nil
}

// Metrics returns the compiled metrics in evaluation order
func (r *Recalculator) Metrics() []*CompiledMetric {
	return r.metrics
}

// Metric returns one compiled metric by name
func (r *Recalculator) Metric(name string) (*CompiledMetric, error) {
	m, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMetricNotRegistered, name)
	}

	return m, nil
}

// Graph returns the metric dependency graph
func (r *Recalculator) Graph() *Graph {
	return r.graph
}

// Recalculate returns a copy of t with every metric column (re)computed.
// A metric whose formula cannot be evaluated keeps its existing column, or
// gets a column of 0.0 when the table had none; the failure is reported and
// the remaining metrics still run.
func (r *Recalculator) Recalculate(t *table.Table) (*table.Table, *Report) {
	out := t.Clone()
	report := &Report{Outcomes: make([]Outcome, 0, len(r.metrics))}

	for _, m := range r.metrics {
		log := r.log.WithField("metric", m.Name)
		log.Infof("Recalculating %s using formula: %s", m.Name, m.Formula.Source)

		values, err := m.Formula.Evaluate(out)
		if err == nil {
			err = out.SetColumn(m.Name, r.format(values))
		}

		if err == nil {
			log.Infof("Successfully recalculated %s", m.Name)
			report.Outcomes = append(report.Outcomes, Outcome{Metric: m.Name, Status: StatusRecalculated})

			continue
		}

		log.WithError(err).Errorf("Error calculating %s", m.Name)

		if out.Has(m.Name) {
			log.Warnf("Keeping original values for %s", m.Name)
			report.Outcomes = append(report.Outcomes, Outcome{Metric: m.Name, Status: StatusKept, Err: err})

			continue
		}

		log.Warnf("Setting %s to 0.0", m.Name)
		zeros := make([]float64, out.Len())
		if setErr := out.SetColumn(m.Name, r.format(zeros)); setErr != nil {
			log.WithError(setErr).Error("Failed to write default values")
		}
		report.Outcomes = append(report.Outcomes, Outcome{Metric: m.Name, Status: StatusDefaulted, Err: err})
	}

	return out, report
}

func (r *Recalculator) format(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatValue(v, r.precision)
	}

	return out
}
