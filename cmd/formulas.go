package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ethpandaops/qmerge/pkg/qmood"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// formulasCmd prints the configured metric formulas
//
//nolint:gochecknoglobals // Cobra commands are typically global
var formulasCmd = &cobra.Command{
	Use:   "formulas",
	Short: "List the metric formulas in evaluation order",
	Long:  `List the configured metric formulas in evaluation order, as parsed weighted sums, as a YAML config snippet, or as a DOT graph of their inputs.`,
	Args:  cobra.NoArgs,
	RunE:  runFormulas,
}

func init() {
	rootCmd.AddCommand(formulasCmd)

	formulasCmd.Flags().Bool("dot", false, "Output in DOT format for graphviz")
	formulasCmd.Flags().Bool("yaml", false, "Output as a metrics config snippet")
}

func runFormulas(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Keep parse logs out of the listing unless asked for
	if !cmd.Flags().Changed("log-level") {
		logger.SetLevel(logrus.ErrorLevel)
	}

	config, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	config.SetDefaults()

	recalculator, err := qmood.NewRecalculator(config.Metrics, logger)
	if err != nil {
		return err
	}

	dot, _ := cmd.Flags().GetBool("dot")
	asYAML, _ := cmd.Flags().GetBool("yaml")

	switch {
	case dot:
		_, err = fmt.Fprint(cmd.OutOrStdout(), recalculator.GenerateDOTFormat())
		return err
	case asYAML:
		return writeFormulasYAML(cmd.OutOrStdout(), recalculator)
	default:
		return writeFormulas(cmd.OutOrStdout(), recalculator)
	}
}

func writeFormulas(out io.Writer, r *qmood.Recalculator) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "METRIC\tFORMULA\tDEPENDS ON")
	for _, m := range r.Metrics() {
		deps := "-"
		if d := r.Graph().GetDependencies(m.Name); len(d) > 0 {
			deps = strings.Join(d, ", ")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, m.Formula, deps)
	}

	return w.Flush()
}

func writeFormulasYAML(out io.Writer, r *qmood.Recalculator) error {
	metrics := make([]qmood.Metric, 0, len(r.Metrics()))
	for _, m := range r.Metrics() {
		metrics = append(metrics, qmood.Metric{Name: m.Name, Formula: m.Formula.Source})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]qmood.Metric{"metrics": metrics}); err != nil {
		return err
	}

	return enc.Close()
}
