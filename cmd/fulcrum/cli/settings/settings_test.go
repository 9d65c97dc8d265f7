package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/paths"
	"github.com/stretchr/testify/require"
)

func withStateDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FULCRUM_STATE_DIR", dir)
	paths.ClearStateDirCache()
	t.Cleanup(paths.ClearStateDirCache)
	return dir
}

func TestLoadDefaultsWhenNoFilesExist(t *testing.T) {
	withStateDir(t)

	s, err := Load()
	require.NoError(t, err)
	require.True(t, s.Enabled)
	require.Equal(t, "info", s.LogLevel)
	require.Nil(t, s.Telemetry)
}

func TestLoadParsesSettingsFile(t *testing.T) {
	stateDir := withStateDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "settings.json"),
		[]byte(`{"log_level":"debug","telemetry":true}`), 0o640))

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, "debug", s.LogLevel)
	require.NotNil(t, s.Telemetry)
	require.True(t, *s.Telemetry)
}

func TestLoadLocalOverridesBase(t *testing.T) {
	stateDir := withStateDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "settings.json"),
		[]byte(`{"log_level":"debug"}`), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "settings.local.json"),
		[]byte(`{"log_level":"warn"}`), 0o640))

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, "warn", s.LogLevel)
}

func TestReverterConfigFallsBackToDefaults(t *testing.T) {
	stateDir := withStateDir(t)

	s := &FulcrumSettings{Enabled: true}
	backup, temp, progress, err := s.ReverterConfig()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(stateDir, "backup"), backup)
	require.Equal(t, filepath.Join(stateDir, "temp"), temp)
	require.Equal(t, filepath.Join(stateDir, "backup", "in_progress"), progress)
}

func TestReverterConfigHonorsOverrides(t *testing.T) {
	withStateDir(t)

	s := &FulcrumSettings{Enabled: true, BackupDir: "/var/lib/fulcrum/backup"}
	backup, _, _, err := s.ReverterConfig()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/fulcrum/backup", backup)
}
