// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hemanthp-txst/profile-stats/internal/badge"
	"github.com/hemanthp-txst/profile-stats/internal/cache"
	"github.com/hemanthp-txst/profile-stats/internal/config"
	"github.com/hemanthp-txst/profile-stats/internal/gateway"
	"github.com/hemanthp-txst/profile-stats/internal/usecase"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetches the latest stats and rewrites the badge SVG",
	Long: `Fetches the user's current GitHub statistics and patches them into the
identified text nodes of the badge SVG. The SVG and the LOC cache are only
written once every fetch has succeeded; a failed run leaves both untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
		applyFlags(cmd, cfg)

		// Inject dependencies and run the pipeline.
		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		store := cache.NewStore(cache.FileFor(cfg.CacheDir, cfg.User, "loc"))
		aggregator := usecase.NewAggregator(githubGateway, store, logger, cfg.MaxCommits)

		stats, err := aggregator.Aggregate(ctx, cfg.User, cfg.ContributionsSince)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to aggregate stats: %v\n", err)
			os.Exit(1)
		}

		patched, err := badge.PatchFile(cfg.SVGPath, stats)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to patch SVG: %v\n", err)
			os.Exit(1)
		}
		logger.Printf("Patched %d stat fields in %s\n", patched, cfg.SVGPath)
	},
}

// applyFlags lets command-line flags override the environment configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.User = user
	}
	if svg, _ := cmd.Flags().GetString("svg"); svg != "" {
		cfg.SVGPath = svg
	}
	if dir, _ := cmd.Flags().GetString("cache-dir"); dir != "" {
		cfg.CacheDir = dir
	}
	if max, _ := cmd.Flags().GetInt("max-commits"); max > 0 {
		cfg.MaxCommits = max
	}
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringP("user", "u", "", "GitHub user name (overrides GH_USER_NAME)")
	updateCmd.Flags().String("svg", "", "Path to the badge SVG (overrides SVG_PATH)")
	updateCmd.Flags().String("cache-dir", "", "Directory for LOC cache files (overrides CACHE_DIR)")
	updateCmd.Flags().Int("max-commits", 0, "Maximum commits inspected per repository (overrides MAX_COMMITS)")
}
