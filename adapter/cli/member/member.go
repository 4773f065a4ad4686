package member

import (
	"github.com/spf13/cobra"
)

// Cmd is the member command group
var Cmd = &cobra.Command{
	Use:   "member",
	Short: "Manage agency staff",
	Long:  `Add and list the agency members who log time.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
}
