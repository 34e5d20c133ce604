package pipeline

import (
	"errors"
	"fmt"

	"github.com/ethpandaops/qmerge/pkg/matcher"
	"github.com/ethpandaops/qmerge/pkg/qmood"
	"github.com/sirupsen/logrus"
)

var (
	// ErrOutputRequired is returned when no output path is configured
	ErrOutputRequired = errors.New("output path is required")
)

// Config holds everything one merge run needs
type Config struct {
	// Logging level
	Logging string `yaml:"logging" default:"info" validate:"oneof=panic fatal warn info debug trace"`

	// Output is the merged CSV path
	Output string `yaml:"output" default:"merged-output.csv"`

	// AddColumns are override columns imported as new columns
	AddColumns []string `yaml:"addColumns,omitempty"`

	// Matching configures row identity
	Matching matcher.Config `yaml:"matching"`

	// Metrics are recomputed in dependency order; empty selects the QMOOD defaults
	Metrics []qmood.Metric `yaml:"metrics,omitempty"`

	// Precision rounds metric values; 0 keeps the shortest round-trip form
	Precision int `yaml:"precision"`

	// Report renders a run summary
	Report ReportConfig `yaml:"report"`

	// MetricsFile receives run counters in Prometheus text format
	MetricsFile string `yaml:"metricsFile,omitempty"`
}

// ReportConfig configures the run summary
type ReportConfig struct {
	// Path receives the summary; "-" is stdout, empty disables the report
	Path string `yaml:"path,omitempty"`
	// Template is a text/template with Sprig functions; empty uses the default
	Template string `yaml:"template,omitempty"`
}

// SetDefaults fills in the QMOOD metrics when none are configured
func (c *Config) SetDefaults() {
	if len(c.Metrics) == 0 {
		c.Metrics = qmood.DefaultMetrics()
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Output == "" {
		return ErrOutputRequired
	}

	if _, err := logrus.ParseLevel(c.Logging); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}

	if c.Precision < 0 || c.Precision > qmood.MaxPrecision {
		return fmt.Errorf("%w: %d", qmood.ErrInvalidPrecision, c.Precision)
	}

	return c.Matching.Validate()
}
