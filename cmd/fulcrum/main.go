package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli"
	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/logging"
	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/settings"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	runID := uuid.NewString()
	logging.SetLogLevelGetter(func() string {
		s, err := settings.Load()
		if err != nil {
			return ""
		}
		return s.LogLevel
	})
	if err := logging.Init(runID); err != nil {
		fmt.Fprintf(os.Stderr, "[fulcrum] failed to initialize logging: %v\n", err)
	}
	defer logging.Close()
	ctx = logging.WithRunID(ctx, runID)

	// Create and execute root command
	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)

	if err != nil {
		switch {
		case strings.Contains(err.Error(), "unknown command") || strings.Contains(err.Error(), "unknown flag"):
			showSuggestion(rootCmd, err)
		default:
			fmt.Fprintln(rootCmd.OutOrStderr(), err)
		}

		cancel()
		os.Exit(1)
	}
	cancel() // Cleanup on successful exit
}

func showSuggestion(cmd *cobra.Command, err error) {
	// Print usage first (brew style)
	fmt.Fprint(cmd.OutOrStderr(), cmd.UsageString())
	fmt.Fprintf(cmd.OutOrStderr(), "\nError: Invalid usage: %v\n", err)
}
