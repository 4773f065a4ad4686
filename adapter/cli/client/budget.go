package client

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/crm/application/commands"
	"github.com/spf13/cobra"
)

var budgetClear bool

var budgetCmd = &cobra.Command{
	Use:   "budget <client> [amount]",
	Short: "Set or clear a client's monthly budget",
	Long: `Set a client's monthly budget, or clear it with --clear.

A client without a budget is scored on activity signals alone.

Examples:
  pulso client budget "Acme Corp" 2500
  pulso client budget "Acme Corp" --clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateClientBudgetHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, args[0])
		if err != nil {
			return err
		}

		updateCmd := commands.UpdateClientBudgetCommand{ClientID: clientID}
		switch {
		case budgetClear:
			if len(args) > 1 {
				return fmt.Errorf("--clear does not take an amount")
			}
		case len(args) == 2:
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			updateCmd.Budget = &amount
		default:
			return fmt.Errorf("provide an amount or --clear")
		}

		if err := app.UpdateClientBudgetHandler.Handle(ctx, updateCmd); err != nil {
			return fmt.Errorf("failed to update budget: %w", err)
		}

		if budgetClear {
			fmt.Println("Budget cleared.")
		} else {
			fmt.Printf("Budget set to %.2f/month.\n", *updateCmd.Budget)
		}
		return nil
	},
}

func init() {
	budgetCmd.Flags().BoolVar(&budgetClear, "clear", false, "remove the monthly budget")
}
