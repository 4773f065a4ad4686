package insights

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/insights/application/queries"
	"github.com/spf13/cobra"
)

var (
	listClient string
	listStatus string
	listAll    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List insights",
	Long: `List insights, active ones by default, newest first.

Examples:
  pulso insights list
  pulso insights list --client "Acme Corp"
  pulso insights list --all
  pulso insights list --status dismissed`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListInsightsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		query := queries.ListInsightsQuery{Status: "active"}
		if listAll {
			query.Status = ""
		} else if listStatus != "" {
			query.Status = listStatus
		}
		if listClient != "" {
			clientID, err := app.ResolveClientID(ctx, listClient)
			if err != nil {
				return err
			}
			query.ClientID = &clientID
		}

		insights, err := app.ListInsightsHandler.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to list insights: %w", err)
		}

		if len(insights) == 0 {
			fmt.Println("No insights found.")
			return nil
		}

		fmt.Printf("Insights (%d):\n", len(insights))
		fmt.Println(strings.Repeat("-", 60))
		for _, in := range insights {
			fmt.Printf("%s %s\n", priorityBadge(in.Priority), in.Title)
			fmt.Printf("   ID: %s\n", in.ID.String()[:8])
			fmt.Printf("   %s\n", in.Detail)
			if in.SuggestedAction != "" {
				fmt.Printf("   -> %s\n", in.SuggestedAction)
			}
			if in.Status != "active" {
				fmt.Printf("   Status: %s\n", in.Status)
			}
			fmt.Println()
		}

		return nil
	},
}

func priorityBadge(priority string) string {
	switch priority {
	case "high":
		return "(!!!)"
	case "medium":
		return "(!)"
	default:
		return "(.)"
	}
}

func init() {
	listCmd.Flags().StringVarP(&listClient, "client", "c", "", "filter by client name or ID")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (active, dismissed, acted)")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include dismissed and acted insights")
}
