package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecotrack/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

var (
	fetchJSON  bool
	fetchLimit int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Search all ecosystems without touching the catalog",
	Long: `Runs the discovery pass only: every configured ecosystem topic is
searched, the hits are deduplicated and ranked by forks, and the result is
printed. The catalog is neither read nor written.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output repositories as JSON")
	fetchCmd.Flags().IntVarP(&fetchLimit, "limit", "n", 0, "maximum number of repositories to print (0 prints all)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	d, err := requireDiscovery()
	if err != nil {
		return err
	}

	result, err := d.FetchAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	repos := result.Repositories
	if fetchLimit > 0 && len(repos) > fetchLimit {
		repos = repos[:fetchLimit]
	}

	if fetchJSON {
		return outputFetchJSON(cmd, repos)
	}
	outputFetchTable(cmd, result, repos)
	return nil
}

// repositoryJSON is the JSON shape of one fetched repository.
type repositoryJSON struct {
	FullName       string    `json:"full_name"`
	Description    string    `json:"description,omitempty"`
	URL            string    `json:"url"`
	Homepage       string    `json:"homepage,omitempty"`
	Language       string    `json:"language,omitempty"`
	License        string    `json:"license,omitempty"`
	Forks          int       `json:"forks"`
	Stars          int       `json:"stars"`
	OpenIssues     int       `json:"open_issues"`
	Ecosystem      string    `json:"ecosystem"`
	Topics         []string  `json:"topics,omitempty"`
	ToolCategories []string  `json:"tool_categories,omitempty"`
	MatchedTopic   string    `json:"matched_topic,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func outputFetchJSON(cmd *cobra.Command, repos []domain.Repository) error {
	out := make([]repositoryJSON, 0, len(repos))
	for i := range repos {
		r := &repos[i]
		out = append(out, repositoryJSON{
			FullName:       r.FullName,
			Description:    r.Description,
			URL:            r.HTMLURL,
			Homepage:       r.Homepage,
			Language:       r.Language,
			License:        r.License,
			Forks:          r.Forks,
			Stars:          r.Stars,
			OpenIssues:     r.OpenIssues,
			Ecosystem:      string(r.Ecosystem),
			Topics:         r.Topics,
			ToolCategories: r.ToolCategories,
			MatchedTopic:   r.MatchedTopic,
			UpdatedAt:      r.UpdatedAt,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal repositories: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFetchTable(cmd *cobra.Command, result domain.DiscoveryResult, repos []domain.Repository) {
	st := styles.For(cmd.OutOrStdout())

	for _, eco := range result.Ecosystems {
		line := fmt.Sprintf("%-28s %4d repositories from %d queries",
			eco.Ecosystem.DisplayName(), len(eco.Repositories), eco.Queries)
		if n := len(eco.Failures); n > 0 {
			line += st.Warning.Render(fmt.Sprintf(" (%d failed)", n))
		}
		cmd.Println(line)
	}

	if len(repos) == 0 {
		cmd.Println("No repositories found.")
		return
	}

	cmd.Println()
	cmd.Println(st.Subtitle.Render(fmt.Sprintf("%d of %d repositories by forks", len(repos), len(result.Repositories))))
	printRepositoryTable(cmd, st, repos)
}
