package client

import (
	"fmt"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/crm/application/queries"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <client>",
	Short: "Show client details",
	Long: `Show the full record for one client, referenced by name or ID.

Examples:
  pulso client show "Acme Corp"
  pulso client show 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetClientHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, args[0])
		if err != nil {
			return err
		}

		c, err := app.GetClientHandler.Handle(ctx, queries.GetClientQuery{ClientID: clientID})
		if err != nil {
			return fmt.Errorf("failed to fetch client: %w", err)
		}

		fmt.Printf("%s\n", c.Name)
		fmt.Printf("  ID: %s\n", c.ID)
		fmt.Printf("  Status: %s\n", c.Status)
		fmt.Printf("  Contract: %s\n", c.ContractType)
		if c.Email != "" {
			fmt.Printf("  Email: %s\n", c.Email)
		}
		if c.Company != "" {
			fmt.Printf("  Company: %s\n", c.Company)
		}
		if c.MonthlyBudget != nil {
			fmt.Printf("  Budget: %.2f %s/month\n", *c.MonthlyBudget, c.Currency)
		}
		if c.HoldedContactID != "" {
			fmt.Printf("  Holded contact: %s\n", c.HoldedContactID)
		}
		fmt.Printf("  Since: %s\n", c.CreatedAt.Format("2006-01-02"))

		return nil
	},
}
