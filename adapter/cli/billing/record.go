package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/billing/application/commands"
	"github.com/spf13/cobra"
)

var (
	recordType   string
	recordAmount float64
	recordDate   string
)

var recordCmd = &cobra.Command{
	Use:   "record <client> [description]",
	Short: "Record a billing event",
	Long: `Record a billing event in a client's journal. Events are
append-only; corrections are new events.

Examples:
  pulso billing record "Acme Corp" "May retainer" --type invoice_sent --amount 2400
  pulso billing record "Acme Corp" --type payment_received --amount 2400
  pulso billing record "Acme Corp" "chased by phone" --type reminder_sent`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecordBillingEventHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, args[0])
		if err != nil {
			return err
		}

		recordCommand := commands.RecordBillingEventCommand{
			ClientID:    clientID,
			Type:        recordType,
			Description: strings.Join(args[1:], " "),
		}
		if cmd.Flags().Changed("amount") {
			recordCommand.Amount = &recordAmount
		}
		if recordDate != "" {
			t, err := time.Parse("2006-01-02", recordDate)
			if err != nil {
				return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
			}
			recordCommand.EventDate = t
		}

		result, err := app.RecordBillingEventHandler.Handle(ctx, recordCommand)
		if err != nil {
			return fmt.Errorf("failed to record billing event: %w", err)
		}

		fmt.Println("Billing event recorded!")
		fmt.Printf("  ID: %s\n", result.EventID.String()[:8])
		fmt.Printf("  Type: %s\n", recordType)
		if recordCommand.Amount != nil {
			fmt.Printf("  Amount: %.2f\n", *recordCommand.Amount)
		}

		return nil
	},
}

func init() {
	recordCmd.Flags().StringVarP(&recordType, "type", "t", "note", "event type (invoice_sent, payment_received, reminder_sent, note)")
	recordCmd.Flags().Float64VarP(&recordAmount, "amount", "a", 0, "amount in the client's currency")
	recordCmd.Flags().StringVar(&recordDate, "date", "", "event date (YYYY-MM-DD, default today)")
}
