package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/naka-gawa/github-profile-stats/internal/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the snapshot database schema",
	Long: `Applies the embedded schema migrations for the configured database backend.
By default the schema is moved to the latest version; --version 0 rolls every
migration back.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := providers.NewConfigProvider(cliFlags)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		version, _ := cmd.Flags().GetInt("version")

		backend := store.Backend(conf.Database.Backend)
		db, err := store.Open(backend, conf.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		result, err := store.Migrate(db, backend, version)
		if err != nil {
			return err
		}
		if !result.Changed {
			color.New(color.FgYellow).Printf("Schema already at version %d, nothing to do\n", result.To)
			return nil
		}
		color.New(color.FgGreen).Printf("Migrated %s schema from version %d to %d\n", backend, result.From, result.To)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Int("version", -1, "Target schema version (-1 latest, 0 roll back all)")
}
