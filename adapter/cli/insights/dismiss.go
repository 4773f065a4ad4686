package insights

import (
	"fmt"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/insights/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss <insight-id>",
	Short: "Dismiss an insight",
	Long: `Dismiss an active insight as not relevant. A dismissed insight
frees its slot, so the same finding can resurface on a later sweep.

Examples:
  pulso insights dismiss 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DismissInsightHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		insightID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid insight ID: %w", err)
		}

		dismissCommand := commands.DismissInsightCommand{InsightID: insightID}
		if err := app.DismissInsightHandler.Handle(cmd.Context(), dismissCommand); err != nil {
			return fmt.Errorf("failed to dismiss insight: %w", err)
		}

		fmt.Printf("Insight dismissed: %s\n", insightID)
		return nil
	},
}
