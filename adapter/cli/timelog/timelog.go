package timelog

import (
	"github.com/spf13/cobra"
)

// Cmd is the time command group
var Cmd = &cobra.Command{
	Use:   "time",
	Short: "Track time",
	Long:  `Log hours worked against deliverables.`,
}

func init() {
	Cmd.AddCommand(logCmd)
}
