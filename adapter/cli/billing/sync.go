package billing

import (
	"fmt"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/billing/application/commands"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync clients with Holded contacts",
	Long: `Match Holded contacts against the client roster by contact ID,
name, or email, and link the matches. Unmatched contacts are reported,
never auto-created.

Requires HOLDED_API_KEY to be configured.

Examples:
  pulso billing sync`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SyncContactsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		result, err := app.SyncContactsHandler.Handle(cmd.Context(), commands.SyncContactsCommand{})
		if err != nil {
			return fmt.Errorf("failed to sync contacts: %w", err)
		}

		if result.Disabled {
			fmt.Println("Holded integration is not configured.")
			fmt.Println("Set HOLDED_API_KEY to enable contact sync.")
			return nil
		}

		fmt.Printf("Synced %d Holded contact(s).\n", result.Contacts)
		fmt.Printf("  Linked: %d\n", result.Linked)
		fmt.Printf("  Already linked: %d\n", result.AlreadyLinked)
		fmt.Printf("  Unmatched: %d\n", result.Unmatched)

		return nil
	},
}
