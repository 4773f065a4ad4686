package comm

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/crm/application/queries"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list <client>",
	Short: "List a client's recent touchpoints",
	Long: `List a client's communications, newest first.

Examples:
  pulso comm list "Acme Corp"
  pulso comm list "Acme Corp" --limit 5`,
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListCommunicationsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, args[0])
		if err != nil {
			return err
		}

		comms, err := app.ListCommunicationsHandler.Handle(ctx, queries.ListCommunicationsQuery{
			ClientID: clientID,
			Limit:    listLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list communications: %w", err)
		}

		if len(comms) == 0 {
			fmt.Println("No communications logged.")
			return nil
		}

		fmt.Printf("Communications (%d):\n", len(comms))
		fmt.Println(strings.Repeat("-", 60))
		for _, c := range comms {
			marker := ""
			if c.RequiresFollowup {
				marker = " [FOLLOW-UP]"
			}
			fmt.Printf("%s  %-8s %-8s %s%s\n",
				c.OccurredAt.Format("2006-01-02"), c.Channel, c.Direction, c.Subject, marker)
			fmt.Printf("   ID: %s\n", c.ID.String()[:8])
			if c.FollowupDue != nil {
				fmt.Printf("   Due: %s\n", c.FollowupDue.Format("2006-01-02"))
			}
		}

		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "max number of touchpoints to show")
}
