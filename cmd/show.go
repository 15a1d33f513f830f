// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hemanthp-txst/profile-stats/internal/cache"
	"github.com/hemanthp-txst/profile-stats/internal/config"
	"github.com/hemanthp-txst/profile-stats/internal/gateway"
	"github.com/hemanthp-txst/profile-stats/internal/usecase"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetches the stats and prints them as JSON without touching the SVG",
	Long: `Fetches the same statistics the update command renders into the badge and
prints them as indented JSON, together with a per-repository distribution
summary computed from the LOC cache. The SVG is not modified.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags)
		if verbose {
			logger.SetOutput(os.Stderr)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
		if user, _ := cmd.Flags().GetString("user"); user != "" {
			cfg.User = user
		}

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

		// The cache was just refreshed by Aggregate, so the summary reflects
		// this run.
		entries, err := store.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load cache: %v\n", err)
			os.Exit(1)
		}
		summary, err := usecase.Summarize(entries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to summarize cache: %v\n", err)
			os.Exit(1)
		}

		out := struct {
			Stats   any `json:"stats"`
			Summary any `json:"per_repo_summary"`
		}{stats, summary}

		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("user", "u", "", "GitHub user name (overrides GH_USER_NAME)")
}
