package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/naka-gawa/github-profile-stats/internal/di"
	"github.com/spf13/cobra"
)

var contributionsCmd = &cobra.Command{
	Use:   "contributions <login>",
	Short: "Show contribution calendar statistics for a user",
	Long: `Fetches the last year of the user's contribution calendar and derives
streaks, the most productive weekday and the average per active day.
Nothing is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := di.InitService(cliFlags)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer svc.Close()

		token, _ := cmd.Flags().GetString("token")
		data, err := svc.Analysis.Contributions(cmd.Context(), args[0], token)
		if err != nil {
			return err
		}

		if summary, _ := cmd.Flags().GetBool("summary"); summary {
			bold := color.New(color.Bold)
			bold.Printf("%s\n", args[0])
			fmt.Printf("  Contributions (last year): %d\n", data.Stats.TotalYearContributions)
			fmt.Printf("  Longest streak:            %d days\n", data.Stats.LongestStreak)
			streak := color.New(color.FgGreen)
			if data.Stats.CurrentStreak == 0 {
				streak = color.New(color.FgYellow)
			}
			streak.Printf("  Current streak:            %d days\n", data.Stats.CurrentStreak)
			fmt.Printf("  Most productive day:       %s\n", data.Stats.MostProductiveDay)
			fmt.Printf("  Average per active day:    %.2f\n", data.Stats.AveragePerActiveDay)
			return nil
		}

		jsonData, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contributionsCmd)
	contributionsCmd.Flags().String("token", "", "GitHub token used instead of the configured one")
	contributionsCmd.Flags().BoolP("summary", "s", false, "Print only the derived statistics")
}
