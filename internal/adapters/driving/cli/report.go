package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecotrack/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// printRunReport writes the end-of-run summary.
func printRunReport(cmd *cobra.Command, report domain.RunReport) {
	st := styles.For(cmd.OutOrStdout())

	title := "Run summary"
	if report.DryRun {
		title += " (dry run)"
	}
	cmd.Println()
	cmd.Println(st.Title.Render(title))

	cmd.Printf("%s %s ecosystems, %s topics\n",
		st.Label.Render("Tracked:"),
		st.Value.Render(fmt.Sprint(report.Ecosystems)),
		st.Value.Render(fmt.Sprint(report.Topics)))

	if report.Quota != nil {
		cmd.Printf("%s %d/%d remaining\n", st.Label.Render("Quota:"), report.Quota.Remaining, report.Quota.Limit)
	}

	cmd.Printf("%s %s unique repositories\n",
		st.Label.Render("Fetched:"),
		st.Value.Render(fmt.Sprint(report.Fetched)))

	cmd.Printf("%s %s created, %s updated, %s skipped, %s failed\n",
		st.Label.Render("Sync:"),
		st.Success.Render(fmt.Sprint(report.Sync.Created)),
		st.Value.Render(fmt.Sprint(report.Sync.Updated)),
		st.Muted.Render(fmt.Sprint(report.Sync.Skipped)),
		failedStyle(st, report.Sync.Failed).Render(fmt.Sprint(report.Sync.Failed)))

	if len(report.Failures) > 0 {
		cmd.Println()
		cmd.Println(st.Warning.Render(fmt.Sprintf("Skipped %d queries:", len(report.Failures))))
		for _, f := range report.Failures {
			cmd.Printf("  - %s/%s: %v\n", f.Ecosystem, f.Topic, f.Err)
		}
	}

	if len(report.Top) > 0 {
		cmd.Println()
		cmd.Println(st.Subtitle.Render(fmt.Sprintf("Top %d by forks", len(report.Top))))
		printRepositoryTable(cmd, st, report.Top)
	}

	cmd.Println()
	cmd.Printf("%s %s\n", st.Label.Render("Elapsed:"), report.Elapsed.Round(time.Millisecond))
}

// printRepositoryTable writes one ranked line per repository.
func printRepositoryTable(cmd *cobra.Command, st *styles.Styles, repos []domain.Repository) {
	width := 0
	for i := range repos {
		width = max(width, len(repos[i].FullName))
	}

	for i := range repos {
		r := &repos[i]
		cmd.Printf("%3d. %s  %s forks  %s stars  %s\n",
			i+1,
			st.Value.Render(r.FullName+strings.Repeat(" ", width-len(r.FullName))),
			fmt.Sprintf("%7d", r.Forks),
			fmt.Sprintf("%7d", r.Stars),
			st.Muted.Render(r.Ecosystem.DisplayName()))
	}
}

func failedStyle(st *styles.Styles, failed int) lipgloss.Style {
	if failed > 0 {
		return st.Error
	}
	return st.Muted
}
