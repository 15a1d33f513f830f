// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profile-stats",
	Short: "A CLI tool to render GitHub activity stats into a profile badge SVG.",
	Long: `profile-stats fetches a GitHub user's activity statistics (repositories,
followers, stars, contributions, and lines of code across owned repositories)
and writes them into the text fields of a profile badge SVG. Line-of-code
totals are cached per repository so unchanged repositories cost no API calls.`,
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
	// A .env file is optional; real environments set the variables directly.
	_ = godotenv.Load()

	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
