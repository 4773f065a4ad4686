package billing

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/billing/application/queries"
	"github.com/spf13/cobra"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status <client>",
	Short: "Show a client's billing journal",
	Long: `Show a client's recent billing events, newest first.

Examples:
  pulso billing status "Acme Corp"
  pulso billing status "Acme Corp" --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListBillingEventsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, args[0])
		if err != nil {
			return err
		}

		events, err := app.ListBillingEventsHandler.Handle(ctx, queries.ListBillingEventsQuery{
			ClientID: clientID,
			Limit:    statusLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list billing events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No billing events recorded.")
			return nil
		}

		fmt.Printf("Billing events (%d):\n", len(events))
		fmt.Println(strings.Repeat("-", 60))
		for _, e := range events {
			amount := ""
			if e.Amount != nil {
				amount = fmt.Sprintf("  %.2f", *e.Amount)
			}
			fmt.Printf("%s  %-18s%s\n", e.EventDate.Format("2006-01-02"), e.Type, amount)
			if e.Description != "" {
				fmt.Printf("   %s\n", e.Description)
			}
		}

		return nil
	},
}

func init() {
	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 20, "max number of events to show")
}
