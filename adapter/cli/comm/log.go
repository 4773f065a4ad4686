package comm

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/crm/application/commands"
	"github.com/spf13/cobra"
)

var (
	logChannel     string
	logDirection   string
	logSummary     string
	logWhen        string
	logFollowup    bool
	logFollowupDue string
)

var logCmd = &cobra.Command{
	Use:   "log <client> <subject>",
	Short: "Log a client touchpoint",
	Long: `Log a communication with a client.

Every logged touchpoint resets the client's last-contact clock in
health scoring. Flag a follow-up when the ball is in our court.

Examples:
  pulso comm log "Acme Corp" "Kickoff call" --channel call --direction outbound
  pulso comm log "Acme Corp" "Scope question" --followup --due 2026-09-01
  pulso comm log "Acme Corp" "Sent April report" --when 2026-08-20`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.LogCommunicationHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, args[0])
		if err != nil {
			return err
		}

		logCommand := commands.LogCommunicationCommand{
			ClientID:         clientID,
			Channel:          logChannel,
			Direction:        logDirection,
			Subject:          strings.Join(args[1:], " "),
			Summary:          logSummary,
			RequiresFollowup: logFollowup,
		}

		if logWhen != "" {
			t, err := time.Parse("2006-01-02", logWhen)
			if err != nil {
				return fmt.Errorf("invalid --when format, use YYYY-MM-DD: %w", err)
			}
			logCommand.OccurredAt = t
		}
		if logFollowupDue != "" {
			t, err := time.Parse("2006-01-02", logFollowupDue)
			if err != nil {
				return fmt.Errorf("invalid --due format, use YYYY-MM-DD: %w", err)
			}
			logCommand.FollowupDue = &t
			logCommand.RequiresFollowup = true
		}

		result, err := app.LogCommunicationHandler.Handle(ctx, logCommand)
		if err != nil {
			return fmt.Errorf("failed to log communication: %w", err)
		}

		fmt.Println("Communication logged!")
		fmt.Printf("  ID: %s\n", result.CommunicationID.String()[:8])
		fmt.Printf("  Subject: %s\n", logCommand.Subject)
		if logCommand.RequiresFollowup {
			if logCommand.FollowupDue != nil {
				fmt.Printf("  Follow-up due: %s\n", logCommand.FollowupDue.Format("2006-01-02"))
			} else {
				fmt.Println("  Follow-up required")
			}
		}

		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logChannel, "channel", "c", "email", "channel (email, call, meeting, whatsapp, slack, other)")
	logCmd.Flags().StringVarP(&logDirection, "direction", "d", "outbound", "direction (inbound, outbound)")
	logCmd.Flags().StringVarP(&logSummary, "summary", "m", "", "free-form notes")
	logCmd.Flags().StringVar(&logWhen, "when", "", "when it happened (YYYY-MM-DD, default now)")
	logCmd.Flags().BoolVar(&logFollowup, "followup", false, "flag a follow-up")
	logCmd.Flags().StringVar(&logFollowupDue, "due", "", "follow-up due date (YYYY-MM-DD, implies --followup)")
}
