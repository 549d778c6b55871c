package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-activity/internal/gateway"
	"github.com/naka-gawa/readme-activity/internal/readme"
	"github.com/naka-gawa/readme-activity/internal/render"
	"github.com/naka-gawa/readme-activity/internal/usecase"
)

var commitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "Refreshes the recent commits table in the README",
	Long: `Scans the user's public event feed for push events inside the lookback
window and splices an HTML table of the most recent commits into the README
between the recent_commits markers. Push events without an inline commit
list are resolved through a single-commit lookup.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, logger := setup(cmd)

		gw, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			fail(err)
		}
		report := usecase.NewCommitReport(gw, logger)
		rows, err := report.Collect(ctx, usecase.CommitOptions{
			User:         cfg.Username,
			Limit:        cfg.MaxCommits,
			LookbackDays: cfg.CommitLookbackDays,
			PerPage:      cfg.EventsPerPage,
			MaxPages:     cfg.MaxEventPages,
		})
		if err != nil {
			fail(err)
		}

		table, err := render.CommitTable(rows)
		if err != nil {
			fail(err)
		}
		changed, err := readme.UpdateFile(cfg.ReadmePath, readme.CommitStartMarker, readme.CommitEndMarker, table)
		if err != nil {
			fail(err)
		}
		if changed {
			fmt.Printf("Updated %s with %d commits\n", cfg.ReadmePath, len(rows))
		} else {
			fmt.Printf("Commits section of %s already up to date\n", cfg.ReadmePath)
		}
	},
}

func init() {
	rootCmd.AddCommand(commitsCmd)
}
