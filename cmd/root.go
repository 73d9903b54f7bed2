// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"github.com/spf13/cobra"
)

var cliFlags = &structures.CliFlags{}

var rootCmd = &cobra.Command{
	Use:   "github-profile-stats",
	Short: "Analyze public GitHub profiles and keep a history of the results.",
	Long: `github-profile-stats resolves a GitHub user or organization, pages through its
repositories and stores aggregated statistics (languages, stars, forks, top
repositories) as immutable snapshots. It runs as an HTTP service or as a CLI.`,
	SilenceUsage: true,
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
	rootCmd.PersistentFlags().StringVarP(&cliFlags.ConfigPath, "config", "c", "config.yaml", "Path to the YAML configuration file")
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolVarP(&cliFlags.DebugMode, "verbose", "v", false, "Enable verbose/debug logging")
}
