package cli

import (
	"fmt"

	"github.com/fulcrumagent/reverter/internal/enhancements"
	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask ENHANCEMENT",
		Short: "Prompt the operator about an optional enhancement",
		Long: `Prompts for one of the supported enhancements and prints its
choice. Currently supported: "redirect" (redirect HTTP to HTTPS by
default).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			display := enhancements.NewTUIDisplay()
			choice, err := enhancements.Ask(display, enhancements.Enhancement(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), choice)
			return nil
		},
	}
}
