package health

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/health/application/queries"
	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <client>",
	Short: "Score one client's health",
	Long: `Evaluate a single client's health on demand.

The score combines five factors: communication recency (25), task
momentum (25), digest regularity (15), budget health (20) and
follow-up discipline (15).

Examples:
  pulso health score "Acme Corp"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetClientHealthHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, args[0])
		if err != nil {
			return err
		}

		score, err := app.GetClientHealthHandler.Handle(ctx, queries.GetClientHealthQuery{ClientID: clientID})
		if err != nil {
			return fmt.Errorf("failed to score client: %w", err)
		}

		printScore(score)
		return nil
	},
}

func printScore(s domain.HealthScore) {
	fmt.Printf("%s %s  %d/100 (%s)\n", riskBadge(s.RiskLevel), s.ClientName, s.Score, s.RiskLevel)
	fmt.Println(strings.Repeat("-", 44))
	printFactor("Communication", s.Factors.Communication, 25)
	printFactor("Tasks", s.Factors.Tasks, 25)
	printFactor("Digests", s.Factors.Digests, 15)
	printFactor("Budget", s.Factors.Profitability, 20)
	printFactor("Follow-ups", s.Factors.Followups, 15)
}

func printFactor(name string, points, max int) {
	fmt.Printf("  %-14s %3d/%d  %s\n", name, points, max, bar(points, max))
}

// bar renders a 10-slot gauge scaled to the factor budget.
func bar(points, max int) string {
	filled := 0
	if max > 0 {
		filled = points * 10 / max
	}
	if filled > 10 {
		filled = 10
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}

func riskBadge(level domain.RiskLevel) string {
	switch level {
	case domain.RiskAtRisk:
		return "[!!]"
	case domain.RiskWarning:
		return "[! ]"
	default:
		return "[ok]"
	}
}
