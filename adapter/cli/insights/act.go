package insights

import (
	"fmt"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/insights/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var actCmd = &cobra.Command{
	Use:   "act <insight-id>",
	Short: "Mark an insight as acted on",
	Long: `Record that the suggested action was taken.

Examples:
  pulso insights act 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.MarkInsightActedHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		insightID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid insight ID: %w", err)
		}

		actCommand := commands.MarkInsightActedCommand{InsightID: insightID}
		if err := app.MarkInsightActedHandler.Handle(cmd.Context(), actCommand); err != nil {
			return fmt.Errorf("failed to mark insight acted: %w", err)
		}

		fmt.Printf("Insight acted on: %s\n", insightID)
		return nil
	},
}
