package billing

import (
	"github.com/spf13/cobra"
)

// Cmd is the billing command group
var Cmd = &cobra.Command{
	Use:   "billing",
	Short: "Track billing events",
	Long:  `Record billing events and sync clients with Holded contacts.`,
}

func init() {
	Cmd.AddCommand(recordCmd)
	Cmd.AddCommand(syncCmd)
	Cmd.AddCommand(statusCmd)
}
