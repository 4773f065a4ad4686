package health

import (
	"github.com/spf13/cobra"
)

// Cmd is the health command group
var Cmd = &cobra.Command{
	Use:   "health",
	Short: "Score client health",
	Long:  `Evaluate client health from communication, task, digest, budget and follow-up signals.`,
}

func init() {
	Cmd.AddCommand(scoreCmd)
	Cmd.AddCommand(listCmd)
}
