package comm

import (
	"fmt"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/crm/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <communication-id>",
	Short: "Resolve a follow-up",
	Long: `Mark a follow-up as handled by its communication ID.

Examples:
  pulso comm resolve 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ResolveFollowupHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		commID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid communication ID: %w", err)
		}

		resolveCmd := commands.ResolveFollowupCommand{CommunicationID: commID}
		if err := app.ResolveFollowupHandler.Handle(cmd.Context(), resolveCmd); err != nil {
			return fmt.Errorf("failed to resolve follow-up: %w", err)
		}

		fmt.Printf("Follow-up resolved: %s\n", commID)
		return nil
	},
}
