// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-activity/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "readme-activity",
	Short: "Updates a profile README with recent GitHub activity.",
	Long: `readme-activity refreshes the generated sections of a profile README:
a table of recent pull requests, a table of recent commits, and a language
usage badge rendered as an SVG image. Each subcommand performs one
stateless fetch, render, and write pass.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("user", "u", "", "GitHub user to report on (overrides GITHUB_USERNAME)")
}

// setup loads the configuration and builds the logger shared by all
// subcommands. Logs are discarded unless --verbose is set.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger) {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if user, _ := cmd.InheritedFlags().GetString("user"); user != "" {
		cfg.Username = user
	}
	if cfg.Username == "" {
		fail(errors.New("no GitHub user configured: set GITHUB_USERNAME or pass --user"))
	}
	return cfg, logger
}

// fail prints a fatal error and exits with a non-zero code. Nothing is
// retried; every fatal error ends the run here.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
