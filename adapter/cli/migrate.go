package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Long: `Apply pending schema migrations to the configured Postgres database.

SQLite databases are migrated automatically on startup; this command
is only needed when DATABASE_URL points at Postgres.

Examples:
  pulso migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Migrator == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		if err := app.Migrator.MigratePostgres(cmd.Context()); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Println("Migrations applied.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
