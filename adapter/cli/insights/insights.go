package insights

import (
	"github.com/spf13/cobra"
)

// Cmd is the insights command group
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Review actionable insights",
	Long:  `List, generate, and handle the insights derived from client health.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(dismissCmd)
	Cmd.AddCommand(actCmd)
}
