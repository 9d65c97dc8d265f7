package telemetry

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestNewClientOptOut(t *testing.T) {
	t.Setenv("FULCRUM_TELEMETRY_OPTOUT", "1")

	client := NewClient("1.0.0", nil)

	if _, ok := client.(*NoOpClient); !ok {
		t.Error("FULCRUM_TELEMETRY_OPTOUT=1 should return NoOpClient")
	}
}

func TestNewClientOptOutWithAnyValue(t *testing.T) {
	t.Setenv("FULCRUM_TELEMETRY_OPTOUT", "yes")

	client := NewClient("1.0.0", nil)

	if _, ok := client.(*NoOpClient); !ok {
		t.Error("FULCRUM_TELEMETRY_OPTOUT with any value should return NoOpClient")
	}
}

func TestNewClientTelemetryDisabledInSettings(t *testing.T) {
	disabled := false
	client := NewClient("1.0.0", &disabled)

	if _, ok := client.(*NoOpClient); !ok {
		t.Error("telemetryEnabled=false should return NoOpClient")
	}
}

func TestNewClientTelemetryNotConfigured(t *testing.T) {
	client := NewClient("1.0.0", nil)

	if _, ok := client.(*NoOpClient); !ok {
		t.Error("telemetryEnabled=nil should return NoOpClient")
	}
}

func TestNoOpClientMethods(_ *testing.T) {
	client := &NoOpClient{}

	// Should not panic
	client.TrackCommand(nil, 0, true)
	client.TrackCommand(&cobra.Command{Use: "test"}, 3, true)
	client.Close()
}

func TestPostHogClientSkipsHiddenCommands(_ *testing.T) {
	client := &PostHogClient{
		machineID: "test-id",
	}

	hiddenCmd := &cobra.Command{
		Use:    "hidden",
		Hidden: true,
	}

	client.TrackCommand(hiddenCmd, 0, true)
}

func TestPostHogClientSkipsNilCommand(_ *testing.T) {
	client := &PostHogClient{
		machineID: "test-id",
	}

	client.TrackCommand(nil, 0, true)
}

func TestPostHogClientClose(_ *testing.T) {
	client := &PostHogClient{
		machineID: "test-id",
		// client is nil, should not panic
	}

	client.Close()
}

func TestTrackCommandUsesCommandPath(t *testing.T) {
	client := &PostHogClient{
		machineID: "test-id",
	}

	cmd := &cobra.Command{
		Use: "rollback",
	}
	rootCmd := &cobra.Command{
		Use: "fulcrum",
	}
	rootCmd.AddCommand(cmd)

	if cmd.CommandPath() != "fulcrum rollback" {
		t.Errorf("CommandPath() = %q, want %q", cmd.CommandPath(), "fulcrum rollback")
	}

	// Should not panic with nil internal client (best-effort telemetry).
	client.TrackCommand(cmd, 2, true)
}
