package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/naka-gawa/github-profile-stats/internal/di"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <name>",
	Short: "Analyze a user or organization and store the snapshot",
	Long: `Resolves the name as a GitHub user or organization, aggregates its repositories,
stores the result as a snapshot and prints it as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := di.InitService(cliFlags)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer svc.Close()

		owner, _ := cmd.Flags().GetString("owner")
		token, _ := cmd.Flags().GetString("token")
		var ownerUserID *string
		if owner != "" {
			ownerUserID = &owner
		}

		ctx := cmd.Context()
		id, err := svc.Analysis.Analyze(ctx, args[0], token, ownerUserID)
		if err != nil {
			return err
		}
		snapshot, err := svc.Analysis.GetAnalysis(ctx, id)
		if err != nil {
			return err
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		fmt.Println(string(jsonData))

		if snapshot.IsPartial {
			color.New(color.FgYellow).Fprintf(os.Stderr,
				"Note: the repository listing was cut short (limit %d); totals cover the fetched repositories only.\n", svc.Config.Fetch.MaxRepos)
		}
		color.New(color.FgGreen).Fprintf(os.Stderr, "Stored analysis %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("owner", "", "User id recorded as the owner of the snapshot")
	analyzeCmd.Flags().String("token", "", "GitHub token used instead of the configured one")
}
