package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-activity/internal/gateway"
	"github.com/naka-gawa/readme-activity/internal/render"
	"github.com/naka-gawa/readme-activity/internal/usecase"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "Regenerates the language usage badge",
	Long: `Aggregates language byte sizes across repositories the user recently
contributed to and overwrites the badge SVG. The GraphQL API requires
authentication, so the run is skipped (successfully) without a token.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, logger := setup(cmd)

		if cfg.Token == "" {
			fmt.Println("GITHUB_TOKEN is not set; skipping language badge (GraphQL requires authentication)")
			return
		}

		gw, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			fail(err)
		}
		langStats := usecase.NewLangStats(gw, logger)
		langs, err := langStats.Aggregate(ctx, cfg.Username, cfg.LangRepoLimit, cfg.LangsPerRepo, cfg.TopLanguages)
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
		fmt.Printf("Wrote %s with %d languages\n", cfg.BadgePath, len(langs))
	},
}

func init() {
	rootCmd.AddCommand(langsCmd)
}
