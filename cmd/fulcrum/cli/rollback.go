package cli

import (
	"fmt"
	"strconv"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/settings"
	"github.com/spf13/cobra"
)

func newRollbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback [N]",
		Short: "Roll back the N most recent finalized checkpoints (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				parsed, err := parsePositiveInt(args[0])
				if err != nil {
					return fmt.Errorf("invalid checkpoint count %q: %w", args[0], err)
				}
				n = parsed
			}

			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			r, err := newReverter(cmd.Context(), s)
			if err != nil {
				return err
			}
			return r.RollbackCheckpoints(n)
		},
	}

	return cmd
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return n, nil
}
