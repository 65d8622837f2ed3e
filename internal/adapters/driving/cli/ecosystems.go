package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var ecosystemsCmd = &cobra.Command{
	Use:   "ecosystems",
	Short: "List configured ecosystems and their topics",
	Args:  cobra.NoArgs,
	RunE:  runEcosystems,
}

func init() {
	rootCmd.AddCommand(ecosystemsCmd)
}

func runEcosystems(cmd *cobra.Command, _ []string) error {
	if settings == nil {
		return errNotConfigured
	}

	specs := settings.EcosystemSpecs()
	if len(specs) == 0 {
		cmd.Println("No ecosystems configured.")
		return nil
	}

	for _, spec := range specs {
		cmd.Printf("%-20s %-28s %2d topics: %s\n",
			spec.Name, spec.Name.DisplayName(), len(spec.Topics), strings.Join(spec.Topics, ", "))
	}
	cmd.Printf("\n%d ecosystems, %d topics\n", len(specs), settings.TopicCount())

	if settings.Keywords.Enabled {
		kw := settings.KeywordSpec()
		cmd.Printf("Keyword pass: %s, %d queries\n", kw.Ecosystem.DisplayName(), len(kw.Pairs()))
	}
	return nil
}
