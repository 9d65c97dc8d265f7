package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/settings"
	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/telemetry"
	"github.com/spf13/cobra"
)

const gettingStarted = `

Getting Started:
  fulcrum wraps every file edit the agent makes in a checkpoint, so a
  bad run can be rolled back without touching anything the agent didn't
  itself change. Use 'fulcrum history' to see what's been checkpointed
  and 'fulcrum rollback' to undo the most recent runs.

`

const accessibilityHelp = `
Environment Variables:
  FULCRUM_STATE_DIR     Override the state directory (default: the OS
                         user config directory, e.g. ~/.config/fulcrum).
  FULCRUM_LOG_LEVEL      Override the log level (debug, info, warn, error).
  FULCRUM_TELEMETRY_OPTOUT  Set to any value to disable telemetry entirely.
`

// Version information (can be set at build time)
var (
	Version = "dev"
	Commit  = "unknown"
)

// NewRootCmd builds the fulcrum command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fulcrum",
		Short: "Transactional checkpoint and rollback for agent-managed config",
		Long:  "fulcrum is a checkpoint and rollback facility for files an automated agent edits." + gettingStarted + accessibilityHelp,
		// Let main.go handle error printing to avoid duplication
		SilenceErrors: true,
		// Hide completion command from help but keep it functional
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			s, err := settings.Load()
			var telemetryEnabled *bool
			enabled := true
			checkpointCount := 0
			if err == nil {
				telemetryEnabled = s.Telemetry
				enabled = s.Enabled
				checkpointCount = countCheckpoints(s)
			}

			telemetryClient := telemetry.NewClient(Version, telemetryEnabled)
			defer telemetryClient.Close()
			telemetryClient.TrackCommand(cmd, checkpointCount, enabled)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newCheckpointCmd())
	cmd.AddCommand(newRollbackCmd())
	cmd.AddCommand(newRecoverCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newVersionCmd())

	// Replace default help command with custom one that supports -t flag
	cmd.SetHelpCommand(NewHelpCmd(cmd))

	return cmd
}

// countCheckpoints returns the number of finalized checkpoints currently
// on disk, or 0 if they can't be listed. Used only to enrich telemetry;
// failures here must never affect command execution.
func countCheckpoints(s *settings.FulcrumSettings) int {
	r, err := newReverter(context.Background(), s)
	if err != nil {
		return 0
	}
	summaries, err := r.ViewConfigChanges()
	if err != nil {
		return 0
	}
	return len(summaries)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("fulcrum %s (%s)\n", Version, Commit)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
