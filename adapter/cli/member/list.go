package member

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/work/application/queries"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List agency members",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListMembersHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		members, err := app.ListMembersHandler.Handle(cmd.Context(), queries.ListMembersQuery{})
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}

		if len(members) == 0 {
			fmt.Println("No members found.")
			return nil
		}

		fmt.Printf("Members (%d):\n", len(members))
		fmt.Println(strings.Repeat("-", 60))
		for _, m := range members {
			rate := "default"
			if m.HourlyRate != nil {
				rate = fmt.Sprintf("%.2f/h", *m.HourlyRate)
			}
			fmt.Printf("%-10s %-24s %s\n", m.ID.String()[:8], m.Name, rate)
		}

		return nil
	},
}
