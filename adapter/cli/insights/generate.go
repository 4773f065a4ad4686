package insights

import (
	"fmt"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/insights/application/commands"
	"github.com/spf13/cobra"
)

var generateClient string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate insights now",
	Long: `Run insight generation on demand instead of waiting for the next
sweep. Insights already open for a client stay untouched; only new
findings are added.

Examples:
  pulso insights generate
  pulso insights generate --client "Acme Corp"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GenerateInsightsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		generateCommand := commands.GenerateInsightsCommand{}
		if generateClient != "" {
			clientID, err := app.ResolveClientID(ctx, generateClient)
			if err != nil {
				return err
			}
			generateCommand.ClientID = &clientID
		}

		result, err := app.GenerateInsightsHandler.Handle(ctx, generateCommand)
		if err != nil {
			return fmt.Errorf("failed to generate insights: %w", err)
		}

		fmt.Printf("Analyzed %d client(s).\n", result.ClientsAnalyzed)
		fmt.Printf("  Generated: %d\n", result.Generated)
		if result.SkippedDuplicate > 0 {
			fmt.Printf("  Already open: %d\n", result.SkippedDuplicate)
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateClient, "client", "c", "", "generate for one client only")
}
