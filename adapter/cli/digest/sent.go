package digest

import (
	"fmt"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/digests/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var sentCmd = &cobra.Command{
	Use:   "sent <digest-id>",
	Short: "Mark a digest as sent",
	Long: `Mark a digest as delivered to the client. Sent digests count
toward the client's digest regularity in health scoring.

Examples:
  pulso digest sent 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.MarkDigestSentHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		digestID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid digest ID: %w", err)
		}

		sentCommand := commands.MarkDigestSentCommand{DigestID: digestID}
		if err := app.MarkDigestSentHandler.Handle(cmd.Context(), sentCommand); err != nil {
			return fmt.Errorf("failed to mark digest sent: %w", err)
		}

		fmt.Printf("Digest sent: %s\n", digestID)
		return nil
	},
}
