package digest

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/digests/application/queries"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list <client>",
	Short:   "List a client's recent digests",
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListDigestsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		clientID, err := app.ResolveClientID(ctx, args[0])
		if err != nil {
			return err
		}

		digests, err := app.ListDigestsHandler.Handle(ctx, queries.ListDigestsQuery{
			ClientID: clientID,
			Limit:    listLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list digests: %w", err)
		}

		if len(digests) == 0 {
			fmt.Println("No digests recorded.")
			return nil
		}

		fmt.Printf("Digests (%d):\n", len(digests))
		fmt.Println(strings.Repeat("-", 60))
		for _, d := range digests {
			sent := ""
			if d.SentAt != nil {
				sent = " sent " + d.SentAt.Format("2006-01-02")
			}
			fmt.Printf("Week of %s  %-9s%s\n", d.PeriodStart.Format("2006-01-02"), d.Status, sent)
			fmt.Printf("   ID: %s\n", d.ID.String()[:8])
		}

		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 8, "max number of digests to show")
}
