package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-activity/internal/gateway"
	"github.com/naka-gawa/readme-activity/internal/readme"
	"github.com/naka-gawa/readme-activity/internal/render"
	"github.com/naka-gawa/readme-activity/internal/usecase"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refreshes both README tables and the language badge",
	Long: `Runs the pull request report, the commit report, and the language badge
in sequence against one shared gateway. The badge step is skipped without a
token, the same as the langs subcommand.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, logger := setup(cmd)

		gw, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			fail(err)
		}

		prRows, err := usecase.NewPRReport(gw, logger).Collect(ctx, usecase.PROptions{
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
		prTable, err := render.PRTable(prRows)
		if err != nil {
			fail(err)
		}
		if _, err := readme.UpdateFile(cfg.ReadmePath, readme.PRStartMarker, readme.PREndMarker, prTable); err != nil {
			fail(err)
		}

		commitRows, err := usecase.NewCommitReport(gw, logger).Collect(ctx, usecase.CommitOptions{
			User:         cfg.Username,
			Limit:        cfg.MaxCommits,
			LookbackDays: cfg.CommitLookbackDays,
			PerPage:      cfg.EventsPerPage,
			MaxPages:     cfg.MaxEventPages,
		})
		if err != nil {
			fail(err)
		}
		commitTable, err := render.CommitTable(commitRows)
		if err != nil {
			fail(err)
		}
		if _, err := readme.UpdateFile(cfg.ReadmePath, readme.CommitStartMarker, readme.CommitEndMarker, commitTable); err != nil {
			fail(err)
		}

		if cfg.Token == "" {
			fmt.Printf("Updated %s; skipped language badge (GITHUB_TOKEN is not set)\n", cfg.ReadmePath)
			return
		}
		langs, err := usecase.NewLangStats(gw, logger).Aggregate(ctx, cfg.Username, cfg.LangRepoLimit, cfg.LangsPerRepo, cfg.TopLanguages)
		if err != nil {
			fail(err)
		}
		svg, err := render.LangBar(langs)
		if err != nil {
			fail(err)
		}
		if err := os.WriteFile(cfg.BadgePath, svg, 0o644); err != nil {
			fail(fmt.Errorf("failed to write %s: %w", cfg.BadgePath, err))
		}
		fmt.Printf("Updated %s and %s\n", cfg.ReadmePath, cfg.BadgePath)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
