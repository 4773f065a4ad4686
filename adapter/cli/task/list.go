package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/work/application/queries"
	"github.com/spf13/cobra"
)

var (
	listClient  string
	listStatus  string
	listOverdue bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List deliverables",
	Long: `List deliverables with optional filtering.

Examples:
  pulso task list                      # All open tasks
  pulso task list --client "Acme Corp" # One client's tasks
  pulso task list --status completed   # Completed tasks
  pulso task list --overdue            # Open tasks past their due date`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		query := queries.ListTasksQuery{
			Status:      listStatus,
			OnlyOverdue: listOverdue,
		}
		if listClient != "" {
			clientID, err := app.ResolveClientID(ctx, listClient)
			if err != nil {
				return err
			}
			query.ClientID = &clientID
		}

		tasks, err := app.ListTasksHandler.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Printf("Tasks (%d):\n", len(tasks))
		fmt.Println(strings.Repeat("-", 60))
		for _, t := range tasks {
			marker := ""
			if t.Overdue {
				marker = " [OVERDUE]"
			}
			fmt.Printf("%s %s %s%s\n", statusIcon(t.Status), t.Title, priorityBadge(t.Priority), marker)
			fmt.Printf("   ID: %s\n", t.ID.String()[:8])
			if t.DueDate != nil {
				fmt.Printf("   Due: %s\n", t.DueDate.Format("2006-01-02"))
			}
			if t.EstimatedMinutes != nil && *t.EstimatedMinutes > 0 {
				fmt.Printf("   Estimate: %d min\n", *t.EstimatedMinutes)
			}
			fmt.Println()
		}

		return nil
	},
}

func statusIcon(status string) string {
	switch status {
	case "completed":
		return "[x]"
	case "in_progress":
		return "[>]"
	default:
		return "[ ]"
	}
}

func priorityBadge(priority string) string {
	switch priority {
	case "urgent":
		return "(!!!)"
	case "high":
		return "(!)"
	case "medium":
		return "(~)"
	case "low":
		return "(.)"
	default:
		return ""
	}
}

func init() {
	listCmd.Flags().StringVarP(&listClient, "client", "c", "", "filter by client name or ID")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (pending, in_progress, completed)")
	listCmd.Flags().BoolVar(&listOverdue, "overdue", false, "show only open tasks past their due date")
}
