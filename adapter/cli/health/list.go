package health

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/health/application/queries"
	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/spf13/cobra"
)

var listRisk string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Score the whole portfolio",
	Long: `Score every active client, worst first.

Served from the sweep worker's cached snapshot when one is fresh,
otherwise evaluated on the spot.

Examples:
  pulso health list
  pulso health list --risk at_risk`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListHealthScoresHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.ListHealthScoresQuery{}
		if listRisk != "" {
			level := domain.RiskLevel(listRisk)
			if !level.IsValid() {
				return fmt.Errorf("invalid risk level %q (healthy, warning, at_risk)", listRisk)
			}
			query.RiskLevel = level
		}

		scores, err := app.ListHealthScoresHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to score portfolio: %w", err)
		}

		if len(scores) == 0 {
			fmt.Println("No active clients to score.")
			return nil
		}

		fmt.Printf("Portfolio health (%d clients):\n", len(scores))
		fmt.Println(strings.Repeat("-", 60))
		for _, s := range scores {
			fmt.Printf("%s %3d  %-24s %s\n", riskBadge(s.RiskLevel), s.Score, truncate(s.ClientName, 24), s.RiskLevel)
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
	listCmd.Flags().StringVarP(&listRisk, "risk", "r", "", "filter by risk level (healthy, warning, at_risk)")
}
