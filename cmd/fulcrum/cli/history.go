package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/settings"
	"github.com/fulcrumagent/reverter/internal/reverter"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var full bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finalized checkpoints, most recent last",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			r, err := newReverter(cmd.Context(), s)
			if err != nil {
				return err
			}
			summaries, err := r.ViewConfigChanges()
			if err != nil {
				return err
			}
			if asJSON {
				return printHistoryJSON(cmd.OutOrStdout(), summaries)
			}
			return printHistory(cmd.OutOrStdout(), summaries, full)
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Show the full change log for each checkpoint instead of just its title")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the checkpoint list as JSON instead of a table")

	return cmd
}

func printHistory(w io.Writer, summaries []reverter.CheckpointSummary, full bool) error {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "no checkpoints have been made yet")
		return nil
	}

	for _, s := range summaries {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", s.Name, s.Time.Format("2006-01-02 15:04:05"), title)
		if full && s.FullLog != "" {
			fmt.Fprintln(w, s.FullLog)
		}
	}

	return nil
}

func printHistoryJSON(w io.Writer, summaries []reverter.CheckpointSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
