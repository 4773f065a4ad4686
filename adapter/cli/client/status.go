package client

import (
	"fmt"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/crm/application/commands"
	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause <client>",
	Short: "Pause a client engagement",
	Long: `Pause an active client. Paused clients keep their history but are
excluded from health sweeps until resumed.

Examples:
  pulso client pause "Acme Corp"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(cmd, args[0], domain.ClientPaused, "Client paused.")
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <client>",
	Short: "Resume a paused client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(cmd, args[0], domain.ClientActive, "Client resumed.")
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish <client>",
	Short: "Finish a client engagement",
	Long: `Mark a client engagement as finished. Finished is terminal; the
client cannot be paused or resumed afterwards.

Examples:
  pulso client finish "Acme Corp"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(cmd, args[0], domain.ClientFinished, "Client finished.")
	},
}

func changeStatus(cmd *cobra.Command, ref string, target domain.ClientStatus, done string) error {
	app := cli.GetApp()
	if app == nil || app.ChangeClientStatusHandler == nil {
		return fmt.Errorf("application not initialized - database connection required")
	}

	ctx := cmd.Context()
	clientID, err := app.ResolveClientID(ctx, ref)
	if err != nil {
		return err
	}

	statusCmd := commands.ChangeClientStatusCommand{
		ClientID: clientID,
		Target:   target,
	}
	if err := app.ChangeClientStatusHandler.Handle(ctx, statusCmd); err != nil {
		return fmt.Errorf("failed to change client status: %w", err)
	}

	fmt.Println(done)
	return nil
}
