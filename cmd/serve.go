package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/naka-gawa/github-profile-stats/internal/di"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Starts the HTTP API serving analyses, contribution calendars, history and comparisons until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := di.InitApp(cliFlags)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return app.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
