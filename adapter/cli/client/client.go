package client

import (
	"github.com/spf13/cobra"
)

// Cmd is the client command group
var Cmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
	Long:  `Add, list, and manage the agency's client roster.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(budgetCmd)
	Cmd.AddCommand(pauseCmd)
	Cmd.AddCommand(resumeCmd)
	Cmd.AddCommand(finishCmd)
}
