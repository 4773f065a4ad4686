package member

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	"github.com/felixgeelhaar/pulso/internal/work/application/commands"
	"github.com/spf13/cobra"
)

var (
	addEmail string
	addRate  float64
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an agency member",
	Long: `Add a member of the agency team.

Members without an hourly rate cost the configured default rate when
time is valued.

Examples:
  pulso member add "Maria Lopez" --email maria@agency.test --rate 55
  pulso member add "Jo Carver"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddMemberHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		addCommand := commands.AddMemberCommand{
			Name:  strings.Join(args, " "),
			Email: addEmail,
		}
		if addRate > 0 {
			addCommand.HourlyRate = &addRate
		}

		result, err := app.AddMemberHandler.Handle(cmd.Context(), addCommand)
		if err != nil {
			return fmt.Errorf("failed to add member: %w", err)
		}

		fmt.Println("Member added!")
		fmt.Printf("  Name: %s\n", addCommand.Name)
		fmt.Printf("  ID: %s\n", result.MemberID.String()[:8])
		if addRate > 0 {
			fmt.Printf("  Rate: %.2f/h\n", addRate)
		}

		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addEmail, "email", "e", "", "member email")
	addCmd.Flags().Float64VarP(&addRate, "rate", "r", 0, "hourly rate (0 = default rate)")
}
