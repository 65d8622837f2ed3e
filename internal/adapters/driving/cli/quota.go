package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show the remaining search API quota",
	Args:  cobra.NoArgs,
	RunE:  runQuota,
}

func init() {
	rootCmd.AddCommand(quotaCmd)
}

func runQuota(cmd *cobra.Command, _ []string) error {
	s, err := requireSearcher()
	if err != nil {
		return err
	}

	quota, err := s.Quota(cmd.Context())
	if err != nil {
		return fmt.Errorf("quota check failed: %w", err)
	}

	cmd.Printf("Search quota: %d/%d remaining\n", quota.Remaining, quota.Limit)
	if !quota.ResetAt.IsZero() {
		cmd.Printf("Resets at:    %s\n", quota.ResetAt.UTC().Format(time.RFC3339))
	}
	return nil
}
