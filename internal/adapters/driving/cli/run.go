package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecotrack/internal/core/ports/driving"
	"github.com/custodia-labs/ecotrack/internal/core/services"
)

var (
	runDryRun bool
	runTop    int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch all ecosystems and sync the catalog",
	Long: `Checks the search quota, searches every configured ecosystem topic,
ranks the results by forks and creates or updates catalog records.
With --dry-run the catalog is read but never written.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "decide changes without writing to the catalog")
	runCmd.Flags().IntVarP(&runTop, "top", "n", services.DefaultTopN, "number of top repositories to report")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	t, err := requireTracker(ctx)
	if err != nil {
		return err
	}

	report, err := t.Run(ctx, driving.RunOptions{
		DryRun: runDryRun,
		TopN:   runTop,
	})
	printRunReport(cmd, report)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}
