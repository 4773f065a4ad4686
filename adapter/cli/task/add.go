package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/work/application/commands"
	"github.com/spf13/cobra"
)

var (
	addClient   string
	addPriority string
	addDue      string
	addEstimate int
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a deliverable",
	Long: `Add a deliverable for a client.

Examples:
  pulso task add "Landing page redesign" --client "Acme Corp"
  pulso task add "Q3 campaign" --client "Acme Corp" --due 2026-09-15 --priority high
  pulso task add "Copy review" --client "Acme Corp" --estimate 90`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}
		if addClient == "" {
			return fmt.Errorf("--client is required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, addClient)
		if err != nil {
			return err
		}

		createCmd := commands.CreateTaskCommand{
			ClientID:         clientID,
			Title:            strings.Join(args, " "),
			Priority:         addPriority,
			EstimatedMinutes: addEstimate,
		}
		if addDue != "" {
			t, err := time.Parse("2006-01-02", addDue)
			if err != nil {
				return fmt.Errorf("invalid --due format, use YYYY-MM-DD: %w", err)
			}
			createCmd.DueDate = &t
		}

		result, err := app.CreateTaskHandler.Handle(ctx, createCmd)
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		fmt.Println("Task added!")
		fmt.Printf("  Title: %s\n", createCmd.Title)
		fmt.Printf("  ID: %s\n", result.TaskID.String()[:8])
		if createCmd.DueDate != nil {
			fmt.Printf("  Due: %s\n", createCmd.DueDate.Format("2006-01-02"))
		}
		if addEstimate > 0 {
			fmt.Printf("  Estimate: %d min\n", addEstimate)
		}

		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addClient, "client", "c", "", "client name or ID (required)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority (low, medium, high, urgent)")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().IntVar(&addEstimate, "estimate", 0, "estimated effort in minutes")
}
