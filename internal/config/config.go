// Package config loads application configuration from environment variables.
// Business logic never reads the environment directly; it receives a Config
// (or individual values from it) at construction time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the pipeline needs for one run.
type Config struct {
	// Token is the GitHub bearer token used for both REST and GraphQL calls.
	Token string
	// User is the GitHub login whose statistics are fetched. Commit
	// authorship is attributed against this login as the repository owner.
	User string
	// SVGPath is the badge file patched in place.
	SVGPath string
	// CacheDir is the directory holding the per-user LOC cache files.
	CacheDir string
	// MaxCommits caps how many recent commits are inspected per repository
	// when (re)computing its LOC entry. Older history is truncated.
	MaxCommits int
	// ContributionsSince is the start of the contribution counting window.
	ContributionsSince time.Time
}

// contributionsEpoch is the fixed start date for the all-time contribution
// count shown on the badge.
const contributionsEpoch = "2025-01-01T00:00:00Z"

// Load reads configuration from environment variables.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	token := os.Getenv("GH_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GH_TOKEN is required")
	}

	user := os.Getenv("GH_USER_NAME")
	if user == "" {
		return nil, fmt.Errorf("GH_USER_NAME is required")
	}

	since, err := time.Parse(time.RFC3339, getEnv("CONTRIBUTIONS_SINCE", contributionsEpoch))
	if err != nil {
		return nil, fmt.Errorf("invalid CONTRIBUTIONS_SINCE: %w", err)
	}

	return &Config{
		Token:              token,
		User:               user,
		SVGPath:            getEnv("SVG_PATH", "light-mode-profile.svg"),
		CacheDir:           getEnv("CACHE_DIR", "cache"),
		MaxCommits:         getInt("MAX_COMMITS", 200),
		ContributionsSince: since,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
