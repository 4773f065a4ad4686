package timelog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/work/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	logMember string
	logDate   string
	logNote   string
)

var logCmd = &cobra.Command{
	Use:   "log <task-id> <minutes>",
	Short: "Log time against a deliverable",
	Long: `Log minutes worked on a deliverable.

Logged time feeds the client's profitability factor: minutes times the
member's hourly rate against the monthly budget.

Examples:
  pulso time log 550e8400-e29b-41d4-a716-446655440000 90 --member 6ba7b810-9dad-11d1-80b4-00c04fd430c8
  pulso time log 550e8400-e29b-41d4-a716-446655440000 45 --member 6ba7b810-9dad-11d1-80b4-00c04fd430c8 --date 2026-08-20 --note "copy edits"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.LogTimeHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}
		if logMember == "" {
			return fmt.Errorf("--member is required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}
		memberID, err := uuid.Parse(logMember)
		if err != nil {
			return fmt.Errorf("invalid member ID: %w", err)
		}

		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid minutes %q: %w", args[1], err)
		}

		logCommand := commands.LogTimeCommand{
			TaskID:   taskID,
			MemberID: memberID,
			Minutes:  minutes,
			Note:     logNote,
		}
		if logDate != "" {
			t, err := time.Parse("2006-01-02", logDate)
			if err != nil {
				return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
			}
			logCommand.EntryDate = t
		}

		result, err := app.LogTimeHandler.Handle(cmd.Context(), logCommand)
		if err != nil {
			return fmt.Errorf("failed to log time: %w", err)
		}

		fmt.Println("Time logged!")
		fmt.Printf("  Entry: %s\n", result.EntryID.String()[:8])
		fmt.Printf("  Minutes: %d\n", minutes)

		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logMember, "member", "m", "", "member ID (required)")
	logCmd.Flags().StringVar(&logDate, "date", "", "entry date (YYYY-MM-DD, default today)")
	logCmd.Flags().StringVar(&logNote, "note", "", "what the time went into")
}
