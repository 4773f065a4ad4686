package digest

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/digests/application/commands"
	"github.com/spf13/cobra"
)

var recordWeek string

var recordCmd = &cobra.Command{
	Use:   "record <client>",
	Short: "Record a weekly digest",
	Long: `Record a digest for a client's week. The week is identified by any
date inside it; recording the same week twice returns the existing
digest instead of failing.

Examples:
  pulso digest record "Acme Corp"
  pulso digest record "Acme Corp" --week 2026-08-17`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecordDigestHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, args[0])
		if err != nil {
			return err
		}

		recordCommand := commands.RecordDigestCommand{ClientID: clientID}
		if recordWeek != "" {
			t, err := time.Parse("2006-01-02", recordWeek)
			if err != nil {
				return fmt.Errorf("invalid --week format, use YYYY-MM-DD: %w", err)
			}
			recordCommand.Anchor = t
		}

		result, err := app.RecordDigestHandler.Handle(ctx, recordCommand)
		if err != nil {
			return fmt.Errorf("failed to record digest: %w", err)
		}

		if result.Created {
			fmt.Println("Digest recorded!")
		} else {
			fmt.Println("Week already covered, returning existing digest.")
		}
		fmt.Printf("  ID: %s\n", result.DigestID.String()[:8])
		fmt.Printf("  Week of: %s\n", result.PeriodStart.Format("2006-01-02"))

		return nil
	},
}

func init() {
	recordCmd.Flags().StringVar(&recordWeek, "week", "", "any date in the target week (YYYY-MM-DD, default this week)")
}
