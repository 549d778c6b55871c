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

var prsCmd = &cobra.Command{
	Use:   "prs",
	Short: "Refreshes the recent pull requests table in the README",
	Long: `Scans the user's public event feed for pull request events inside the
lookback window and splices an HTML table of the most recent ones into the
README between the recent_prs markers.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, logger := setup(cmd)

		gw, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			fail(err)
		}
		report := usecase.NewPRReport(gw, logger)
		rows, err := report.Collect(ctx, usecase.PROptions{
			User:          cfg.Username,
			Limit:         cfg.MaxPRs,
			LookbackDays:  cfg.PRLookbackDays,
			IncludeDrafts: cfg.IncludeDrafts,
			PerPage:       cfg.EventsPerPage,
			MaxPages:      cfg.MaxEventPages,
		})
		if err != nil {
			fail(err)
		}

		table, err := render.PRTable(rows)
		if err != nil {
			fail(err)
		}
		changed, err := readme.UpdateFile(cfg.ReadmePath, readme.PRStartMarker, readme.PREndMarker, table)
		if err != nil {
			fail(err)
		}
		if changed {
			fmt.Printf("Updated %s with %d pull requests\n", cfg.ReadmePath, len(rows))
		} else {
			fmt.Printf("Pull requests section of %s already up to date\n", cfg.ReadmePath)
		}
	},
}

func init() {
	rootCmd.AddCommand(prsCmd)
}
