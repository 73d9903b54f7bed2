package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/naka-gawa/github-profile-stats/internal/di"
	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <first> <second>",
	Short: "Compare the latest stored snapshots of two accounts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := di.InitService(cliFlags)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer svc.Close()

		comparison, err := svc.Analysis.Compare(cmd.Context(), args[0]+"-vs-"+args[1])
		if err != nil {
			return err
		}
		return printComparisonTable(comparison)
	},
}

func printComparisonTable(c *domain.Comparison) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Metric", c.First.AccountName, c.Second.AccountName})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{
		{"Stars", strconv.Itoa(c.First.TotalStars), strconv.Itoa(c.Second.TotalStars)},
		{"Forks", strconv.Itoa(c.First.TotalForks), strconv.Itoa(c.Second.TotalForks)},
		{"Languages", strconv.Itoa(len(c.First.Languages)), strconv.Itoa(len(c.Second.Languages))},
		{"Most starred", mostStarredLabel(c.First.MostStarredRepo), mostStarredLabel(c.Second.MostStarredRepo)},
		{"Top repo language", topRepoLanguage(c.First), topRepoLanguage(c.Second)},
		{"Partial", strconv.FormatBool(c.First.IsPartial), strconv.FormatBool(c.Second.IsPartial)},
		{"Analyzed", c.First.CreatedAt.UTC().Format("2006-01-02 15:04"), c.Second.CreatedAt.UTC().Format("2006-01-02 15:04")},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func mostStarredLabel(m domain.MostStarredRepo) string {
	if m.Empty() {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", m.Name, m.Stars)
}

func topRepoLanguage(s *domain.StatsSnapshot) string {
	if len(s.TopRepos) == 0 {
		return "-"
	}
	return s.TopRepos[0].LanguageLabel()
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
