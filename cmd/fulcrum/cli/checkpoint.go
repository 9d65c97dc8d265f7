package cli

import (
	"fmt"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/settings"
	"github.com/spf13/cobra"
)

func newCheckpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Capture file state into a checkpoint",
	}

	cmd.AddCommand(newCheckpointAddCmd())
	cmd.AddCommand(newCheckpointCreateCmd())
	cmd.AddCommand(newCheckpointFinalizeCmd())

	return cmd
}

func newCheckpointAddCmd() *cobra.Command {
	var notes string
	var temp bool

	cmd := &cobra.Command{
		Use:   "add PATH...",
		Short: "Back up the current contents of one or more files into a checkpoint",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			r, err := newReverter(cmd.Context(), s)
			if err != nil {
				return err
			}
			if temp {
				return r.AddToTempCheckpoint(args, notes)
			}
			return r.AddToCheckpoint(args, notes)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Append text verbatim (no newline added) to the checkpoint's change log")
	cmd.Flags().BoolVar(&temp, "temp", false, "Target the scratch temporary checkpoint instead of the in-progress one")

	return cmd
}

func newCheckpointCreateCmd() *cobra.Command {
	var temp bool

	cmd := &cobra.Command{
		Use:   "register-new PATH...",
		Short: "Record that one or more files were created by this run",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			r, err := newReverter(cmd.Context(), s)
			if err != nil {
				return err
			}
			return r.RegisterFileCreation(temp, args...)
		},
	}

	cmd.Flags().BoolVar(&temp, "temp", false, "Target the scratch temporary checkpoint instead of the in-progress one")

	return cmd
}

func newCheckpointFinalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize TITLE",
		Short: "Promote the in-progress checkpoint to a permanent, numbered checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			r, err := newReverter(cmd.Context(), s)
			if err != nil {
				return err
			}
			return r.FinalizeCheckpoint(args[0])
		},
	}

	return cmd
}
