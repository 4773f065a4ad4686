package client

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/crm/application/queries"
	"github.com/spf13/cobra"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Long: `List clients with an optional status filter.

Examples:
  pulso client list
  pulso client list --status active
  pulso client list --status paused`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListClientsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		clients, err := app.ListClientsHandler.Handle(cmd.Context(), queries.ListClientsQuery{
			Status: listStatus,
		})
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found.")
			return nil
		}

		fmt.Printf("Clients (%d):\n", len(clients))
		fmt.Println(strings.Repeat("-", 72))
		fmt.Printf("%-10s %-24s %-10s %-10s %s\n", "ID", "NAME", "STATUS", "CONTRACT", "BUDGET")
		for _, c := range clients {
			budget := "-"
			if c.MonthlyBudget != nil {
				budget = fmt.Sprintf("%.2f %s", *c.MonthlyBudget, c.Currency)
			}
			fmt.Printf("%-10s %-24s %-10s %-10s %s\n",
				c.ID.String()[:8], truncate(c.Name, 24), c.Status, c.ContractType, budget)
		}

		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (active, paused, finished)")
}
