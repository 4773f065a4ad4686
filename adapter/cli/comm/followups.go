package comm

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/crm/application/queries"
	"github.com/spf13/cobra"
)

var followupsCmd = &cobra.Command{
	Use:   "followups",
	Short: "List overdue follow-ups",
	Long: `List every unresolved follow-up past its due date, across all
clients, oldest first.

Examples:
  pulso comm followups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListOverdueFollowupsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		followups, err := app.ListOverdueFollowupsHandler.Handle(cmd.Context(), queries.ListOverdueFollowupsQuery{})
		if err != nil {
			return fmt.Errorf("failed to list follow-ups: %w", err)
		}

		if len(followups) == 0 {
			fmt.Println("No overdue follow-ups. Inbox zero!")
			return nil
		}

		fmt.Printf("Overdue follow-ups (%d):\n", len(followups))
		fmt.Println(strings.Repeat("-", 60))

		now := time.Now()
		for _, f := range followups {
			overdueDays := 0
			if f.FollowupDue != nil {
				overdueDays = int(now.Sub(*f.FollowupDue).Hours() / 24)
			}
			fmt.Printf("%s (%d days overdue)\n", f.Subject, overdueDays)
			fmt.Printf("   ID: %s\n", f.ID.String()[:8])
			fmt.Printf("   Logged: %s via %s\n", f.OccurredAt.Format("2006-01-02"), f.Channel)
			if f.FollowupDue != nil {
				fmt.Printf("   Due: %s\n", f.FollowupDue.Format("2006-01-02"))
			}
			fmt.Println()
		}

		return nil
	},
}
