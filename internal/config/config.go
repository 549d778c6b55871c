// Package config reads the runtime configuration from the environment.
// A .env file in the working directory is honored if present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable of the tool. All fields come from environment
// variables with documented defaults; only the username has no default.
type Config struct {
	Username string
	Token    string

	ReadmePath string
	BadgePath  string

	MaxPRs         int
	PRLookbackDays int
	IncludeDrafts  bool

	MaxCommits         int
	CommitLookbackDays int

	EventsPerPage int
	MaxEventPages int

	LangRepoLimit int
	LangsPerRepo  int
	TopLanguages  int
}

// Load builds a Config from the environment. Malformed numeric or boolean
// values are reported as errors rather than silently replaced.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Username:   os.Getenv("GITHUB_USERNAME"),
		Token:      os.Getenv("GITHUB_TOKEN"),
		ReadmePath: stringEnv("README_PATH", "README.md"),
		BadgePath:  stringEnv("LANG_BADGE_PATH", "langs.svg"),
	}

	var err error
	ints := []struct {
		dst *int
		key string
		def int
	}{
		{&cfg.MaxPRs, "MAX_PRS", 5},
		{&cfg.PRLookbackDays, "PR_LOOKBACK_DAYS", 30},
		{&cfg.MaxCommits, "MAX_COMMITS", 5},
		{&cfg.CommitLookbackDays, "COMMIT_LOOKBACK_DAYS", 30},
		{&cfg.EventsPerPage, "EVENTS_PER_PAGE", 100},
		{&cfg.MaxEventPages, "MAX_EVENT_PAGES", 3},
		{&cfg.LangRepoLimit, "LANG_REPO_LIMIT", 25},
		{&cfg.LangsPerRepo, "LANGS_PER_REPO", 10},
		{&cfg.TopLanguages, "TOP_LANGUAGES", 8},
	}
	for _, v := range ints {
		if *v.dst, err = intEnv(v.key, v.def); err != nil {
			return nil, err
		}
	}

	if cfg.IncludeDrafts, err = boolEnv("INCLUDE_DRAFT_PRS", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for %s: %w", v, key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid value %q for %s: %w", v, key, err)
	}
	return b, nil
}
