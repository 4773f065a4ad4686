package digest

import (
	"fmt"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/digests/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review <digest-id>",
	Short: "Mark a digest as reviewed",
	Long: `Mark a draft digest as reviewed and ready to send.

Examples:
  pulso digest review 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ReviewDigestHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		digestID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid digest ID: %w", err)
		}

		reviewCommand := commands.ReviewDigestCommand{DigestID: digestID}
		if err := app.ReviewDigestHandler.Handle(cmd.Context(), reviewCommand); err != nil {
			return fmt.Errorf("failed to review digest: %w", err)
		}

		fmt.Printf("Digest reviewed: %s\n", digestID)
		return nil
	},
}
