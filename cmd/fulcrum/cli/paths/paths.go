// Package paths resolves the on-disk locations fulcrum uses for its
// state: the reverter's backup/temp/progress directories, its log
// directory, and its settings files.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fulcrumagent/reverter/internal/reverter"
)

// Dir is the dot-prefixed name of fulcrum's state directory. StateDir
// does not use it: the default state directory is named "fulcrum" (no
// dot) under os.UserConfigDir().
const Dir = ".fulcrum"

// LogsDir is the directory where log files are stored, relative to the
// state directory.
const LogsDir = "logs"

// SettingsFileName is the primary settings file, relative to the state
// directory.
const SettingsFileName = "settings.json"

// LocalSettingsFileName is an optional, uncommitted settings override,
// relative to the state directory.
const LocalSettingsFileName = "settings.local.json"

var (
	stateDirMu    sync.RWMutex
	stateDirCache string
)

// StateDir returns the absolute path to fulcrum's state directory,
// creating it if necessary. The location is "fulcrum" under
// os.UserConfigDir() ($XDG_CONFIG_HOME or ~/.config on most Unix
// systems), overridable with $FULCRUM_STATE_DIR for tests and
// containerized deployments.
func StateDir() (string, error) {
	stateDirMu.RLock()
	if stateDirCache != "" {
		cached := stateDirCache
		stateDirMu.RUnlock()
		return cached, nil
	}
	stateDirMu.RUnlock()

	dir, err := resolveStateDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}

	stateDirMu.Lock()
	stateDirCache = dir
	stateDirMu.Unlock()

	return dir, nil
}

func resolveStateDir() (string, error) {
	if override := os.Getenv("FULCRUM_STATE_DIR"); override != "" {
		return override, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}

	return filepath.Join(configDir, "fulcrum"), nil
}

// ClearStateDirCache clears the cached state directory. Used by tests
// that set FULCRUM_STATE_DIR between runs.
func ClearStateDirCache() {
	stateDirMu.Lock()
	stateDirCache = ""
	stateDirMu.Unlock()
}

// AbsPath resolves relPath against the state directory root. An already
// absolute path is returned unchanged.
func AbsPath(relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return relPath, nil
	}

	root, err := StateDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(root, relPath), nil
}

// DefaultReverterConfig returns the reverter.Config rooted at the state
// directory: <state>/backup, <state>/temp, <state>/backup/in_progress.
func DefaultReverterConfig() (reverter.Config, error) {
	dir, err := StateDir()
	if err != nil {
		return reverter.Config{}, err
	}
	return reverter.DefaultConfig(dir), nil
}

// LogsPath returns the absolute path to the logs directory, creating it
// if necessary.
func LogsPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	logs := filepath.Join(dir, LogsDir)
	if err := os.MkdirAll(logs, 0o750); err != nil {
		return "", fmt.Errorf("create logs directory: %w", err)
	}
	return logs, nil
}

// SettingsPath returns the absolute path to the primary settings file.
func SettingsPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// LocalSettingsPath returns the absolute path to the optional local
// settings override file.
func LocalSettingsPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LocalSettingsFileName), nil
}
