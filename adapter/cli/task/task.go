package task

import (
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage deliverables",
	Long:  `Create, start, complete, and list client deliverables.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(listCmd)
}
