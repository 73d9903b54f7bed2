package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/naka-gawa/github-profile-stats/internal/di"
	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <owner-user-id>",
	Short: "List the snapshots stored for an owner, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := di.InitService(cliFlags)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer svc.Close()

		page, _ := cmd.Flags().GetInt("page")
		history, err := svc.Analysis.History(cmd.Context(), args[0], page)
		if err != nil {
			return err
		}
		if len(history.Items) == 0 {
			color.New(color.FgYellow).Fprintf(os.Stderr, "No snapshots stored for %s (page %d).\n", args[0], history.Page)
			return nil
		}
		if err := printHistoryTable(history); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Page %d, %d of %d snapshots\n", history.Page, len(history.Items), history.TotalCount)
		return nil
	},
}

// printHistoryTable renders one history page using the tablewriter API.
func printHistoryTable(history *domain.HistoryPage) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"#", "ID", "Account", "Created"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	offset := (history.Page - 1) * history.PageSize
	var data [][]string
	for i, item := range history.Items {
		data = append(data, []string{
			strconv.Itoa(offset + i + 1),
			item.ID,
			item.AccountName,
			item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("page", "p", 1, "Page number, 1-based")
}
