// Package cmd contains the CLI commands for qmerge
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethpandaops/qmerge/pkg/pipeline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfgFile string
	logger  *logrus.Logger
)

// rootCmd merges an override CSV into a base CSV
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "qmerge <base-csv> <override-csv>",
	Short: "Merge class metric CSVs and recalculate QMOOD quality attributes",
	Long: `qmerge overrides metric values in a base CSV with the values of matching
rows from an override CSV, then recomputes the six QMOOD quality attributes
(Reusability, Flexibility, Understandability, Functionality, Extendibility,
Effectiveness) and writes the merged table.

Rows are matched by fully qualified class name when both tables carry one,
otherwise by file name with directories and the .java extension removed.`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
	// Execute prints the error once
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./qmerge.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error, fatal, panic)")
	flags.StringP("output", "o", "merged-output.csv", "output CSV file")
	flags.String("add-columns", "", "comma-separated override columns to add to the base table")
	flags.Int("precision", 0, "decimal places for recalculated metrics (0 keeps full precision)")
	flags.String("report", "", "write a run summary to this file (\"-\" for stdout)")
	flags.String("metrics-file", "", "write run metrics in Prometheus text format to this file")

	// Initialize logger
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "./qmerge.yaml"
	}

	// Set log level
	logLevel, err := rootCmd.PersistentFlags().GetString("log-level")
	if err != nil {
		logLevel = "info" // Default to info if error
	}
	level, parseErr := logrus.ParseLevel(logLevel)
	if parseErr != nil {
		logger.WithError(parseErr).Warn("Invalid log level, defaulting to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

func runMerge(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}

	_, err = p.Run(args[0], args[1])

	return err
}

// newPipeline loads the config file, applies flags that were set explicitly
// and builds the pipeline
func newPipeline(cmd *cobra.Command) (*pipeline.Pipeline, error) {
	config, err := LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, config); err != nil {
		return nil, err
	}

	if !cmd.Flags().Changed("log-level") {
		level, parseErr := logrus.ParseLevel(config.Logging)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid logging level: %w", parseErr)
		}
		logger.SetLevel(level)
	}

	p, err := pipeline.New(config, logger)
	if err != nil {
		return nil, err
	}
	p.Stdout = cmd.OutOrStdout()

	return p, nil
}

func applyFlags(cmd *cobra.Command, config *pipeline.Config) error {
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		v, err := flags.GetString("log-level")
		if err != nil {
			return err
		}
		config.Logging = v
	}

	if flags.Changed("output") {
		v, err := flags.GetString("output")
		if err != nil {
			return err
		}
		config.Output = v
	}

	if flags.Changed("add-columns") {
		v, err := flags.GetString("add-columns")
		if err != nil {
			return err
		}
		config.AddColumns = parseColumns(v)
	}

	if flags.Changed("precision") {
		v, err := flags.GetInt("precision")
		if err != nil {
			return err
		}
		config.Precision = v
	}

	if flags.Changed("report") {
		v, err := flags.GetString("report")
		if err != nil {
			return err
		}
		config.Report.Path = v
	}

	if flags.Changed("metrics-file") {
		v, err := flags.GetString("metrics-file")
		if err != nil {
			return err
		}
		config.MetricsFile = v
	}

	return nil
}

// parseColumns splits a comma-separated column list, trimming whitespace and
// dropping empty and repeated names
func parseColumns(s string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}

	return out
}
