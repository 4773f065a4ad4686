package comm

import (
	"github.com/spf13/cobra"
)

// Cmd is the comm command group
var Cmd = &cobra.Command{
	Use:   "comm",
	Short: "Manage client communications",
	Long:  `Log client touchpoints and track follow-ups.`,
}

func init() {
	Cmd.AddCommand(logCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(followupsCmd)
	Cmd.AddCommand(resolveCmd)
}
