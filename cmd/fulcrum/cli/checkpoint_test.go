package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/paths"
	"github.com/stretchr/testify/require"
)

// withStateDir points FULCRUM_STATE_DIR at a fresh temp directory for the
// duration of t, the CLI-package equivalent of the teacher's
// setupTestRepo fixture.
func withStateDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FULCRUM_STATE_DIR", dir)
	paths.ClearStateDirCache()
	t.Cleanup(paths.ClearStateDirCache)
	return dir
}

func TestCheckpointAddFinalizeAndRollback(t *testing.T) {
	stateDir := withStateDir(t)

	configFile := filepath.Join(stateDir, "app.conf")
	require.NoError(t, os.WriteFile(configFile, []byte("v1"), 0o640))

	root := NewRootCmd()
	root.SetArgs([]string{"checkpoint", "add", configFile, "--notes", "capture v1"})
	require.NoError(t, root.Execute())

	require.NoError(t, os.WriteFile(configFile, []byte("v2"), 0o640))

	root = NewRootCmd()
	root.SetArgs([]string{"checkpoint", "finalize", "Bump config to v2"})
	require.NoError(t, root.Execute())

	root = NewRootCmd()
	root.SetArgs([]string{"rollback", "1"})
	require.NoError(t, root.Execute())

	restored, err := os.ReadFile(configFile)
	require.NoError(t, err)
	require.Equal(t, "v1", string(restored))
}

func TestCheckpointRegisterNewAndRecover(t *testing.T) {
	stateDir := withStateDir(t)
	created := filepath.Join(stateDir, "new.conf")

	root := NewRootCmd()
	root.SetArgs([]string{"checkpoint", "register-new", created})
	require.NoError(t, root.Execute())

	require.NoError(t, os.WriteFile(created, []byte("fresh"), 0o640))

	root = NewRootCmd()
	root.SetArgs([]string{"recover"})
	require.NoError(t, root.Execute())

	_, err := os.Stat(created)
	require.True(t, os.IsNotExist(err))
}

func TestHistoryCommandNoCheckpoints(t *testing.T) {
	withStateDir(t)

	root := NewRootCmd()
	root.SetArgs([]string{"history"})
	require.NoError(t, root.Execute())
}
