package client

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/crm/application/commands"
	"github.com/spf13/cobra"
)

var (
	addEmail    string
	addCompany  string
	addContract string
	addCurrency string
	addBudget   float64
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new client",
	Long: `Add a new client to the roster.

Examples:
  pulso client add "Acme Corp" --email hello@acme.test
  pulso client add "Beta GmbH" --contract monthly --budget 2500
  pulso client add "Gamma Studio" --contract one_time`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateClientHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		createCmd := commands.CreateClientCommand{
			Name:         strings.Join(args, " "),
			Email:        addEmail,
			Company:      addCompany,
			ContractType: addContract,
			Currency:     addCurrency,
		}
		if addBudget > 0 {
			createCmd.MonthlyBudget = &addBudget
		}

		result, err := app.CreateClientHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to add client: %w", err)
		}

		fmt.Println("Client added!")
		fmt.Printf("  Name: %s\n", createCmd.Name)
		fmt.Printf("  ID: %s\n", result.ClientID.String()[:8])
		if addBudget > 0 {
			fmt.Printf("  Budget: %.2f/month\n", addBudget)
		}

		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addEmail, "email", "e", "", "client contact email")
	addCmd.Flags().StringVar(&addCompany, "company", "", "legal company name")
	addCmd.Flags().StringVar(&addContract, "contract", "monthly", "contract type (monthly, one_time)")
	addCmd.Flags().StringVar(&addCurrency, "currency", "", "billing currency (default EUR)")
	addCmd.Flags().Float64VarP(&addBudget, "budget", "b", 0, "monthly budget (0 = no budget)")
}
