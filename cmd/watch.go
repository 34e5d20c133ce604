package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var watchCmd = &cobra.Command{
	Use:   "watch <base-csv> <override-csv>",
	Short: "Re-run the merge whenever either input changes",
	Long:  `Runs the merge once, then again every time the base or override CSV is written. Stops on SIGINT or SIGTERM.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return p.Watch(ctx, args[0], args[1])
}
