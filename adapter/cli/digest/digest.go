package digest

import (
	"github.com/spf13/cobra"
)

// Cmd is the digest command group
var Cmd = &cobra.Command{
	Use:   "digest",
	Short: "Manage weekly digests",
	Long:  `Record, review, and send weekly client digests.`,
}

func init() {
	Cmd.AddCommand(recordCmd)
	Cmd.AddCommand(reviewCmd)
	Cmd.AddCommand(sentCmd)
	Cmd.AddCommand(listCmd)
}
