package cli

import (
	"fmt"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/settings"
	"github.com/spf13/cobra"
)

func newRecoverCmd() *cobra.Command {
	var tempOnly bool

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Clean up any checkpoint left over from a crashed prior run",
		Long: `Inspects the temporary and in-progress checkpoint directories and,
for each one found, restores any backed-up files and removes any
files that run had registered as newly created, then deletes the
checkpoint directory. Safe to run when there is nothing to recover.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			r, err := newReverter(cmd.Context(), s)
			if err != nil {
				return err
			}
			if tempOnly {
				return r.RevertTemporaryConfig()
			}
			return r.RecoveryRoutine()
		},
	}

	cmd.Flags().BoolVar(&tempOnly, "temp-only", false, "Only revert the scratch temporary checkpoint")

	return cmd
}
