// Package settings provides configuration loading for fulcrum.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/paths"
)

// FulcrumSettings represents the <state-dir>/settings.json configuration.
type FulcrumSettings struct {
	// Enabled indicates whether fulcrum is active. It is reported with
	// telemetry events; commands run the same way whatever its value.
	// Defaults to true.
	Enabled bool `json:"enabled"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	// Can be overridden by the FULCRUM_LOG_LEVEL environment variable.
	// Defaults to "info".
	LogLevel string `json:"log_level,omitempty"`

	// Telemetry controls anonymous usage analytics.
	// nil = not configured (telemetry stays off), true = opted in, false = opted out
	Telemetry *bool `json:"telemetry,omitempty"`

	// BackupDir, TempDir, and ProgressDir override the reverter's three
	// working directories. Empty values fall back to
	// paths.DefaultReverterConfig(). Relative paths are resolved against
	// the state directory root.
	BackupDir   string `json:"backup_dir,omitempty"`
	TempDir     string `json:"temp_dir,omitempty"`
	ProgressDir string `json:"progress_dir,omitempty"`
}

// Load loads fulcrum settings from <state-dir>/settings.json, then
// applies any overrides from <state-dir>/settings.local.json if it
// exists. Returns default settings if neither file exists.
func Load() (*FulcrumSettings, error) {
	settingsFileAbs, err := paths.SettingsPath()
	if err != nil {
		return nil, fmt.Errorf("resolving settings path: %w", err)
	}
	localSettingsFileAbs, err := paths.LocalSettingsPath()
	if err != nil {
		return nil, fmt.Errorf("resolving local settings path: %w", err)
	}

	settings, err := loadFromFile(settingsFileAbs)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	localData, err := os.ReadFile(localSettingsFileAbs) //nolint:gosec // path is from paths.LocalSettingsPath
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading local settings file: %w", err)
		}
	} else {
		if err := mergeJSON(settings, localData); err != nil {
			return nil, fmt.Errorf("merging local settings: %w", err)
		}
	}

	applyDefaults(settings)

	return settings, nil
}

// loadFromFile loads settings from a specific file path.
// Returns default settings if the file doesn't exist.
func loadFromFile(filePath string) (*FulcrumSettings, error) {
	settings := &FulcrumSettings{
		Enabled: true,
	}

	data, err := os.ReadFile(filePath) //nolint:gosec // path is from caller
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("%w", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	applyDefaults(settings)

	return settings, nil
}

// mergeJSON merges JSON data into existing settings.
// Only fields present in data override existing settings.
func mergeJSON(settings *FulcrumSettings, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}

	if enabledRaw, ok := raw["enabled"]; ok {
		var e bool
		if err := json.Unmarshal(enabledRaw, &e); err != nil {
			return fmt.Errorf("parsing enabled field: %w", err)
		}
		settings.Enabled = e
	}

	if logLevelRaw, ok := raw["log_level"]; ok {
		var ll string
		if err := json.Unmarshal(logLevelRaw, &ll); err != nil {
			return fmt.Errorf("parsing log_level field: %w", err)
		}
		if ll != "" {
			settings.LogLevel = ll
		}
	}

	if telemetryRaw, ok := raw["telemetry"]; ok {
		var t bool
		if err := json.Unmarshal(telemetryRaw, &t); err != nil {
			return fmt.Errorf("parsing telemetry field: %w", err)
		}
		settings.Telemetry = &t
	}

	if backupRaw, ok := raw["backup_dir"]; ok {
		var s string
		if err := json.Unmarshal(backupRaw, &s); err != nil {
			return fmt.Errorf("parsing backup_dir field: %w", err)
		}
		if s != "" {
			settings.BackupDir = s
		}
	}

	if tempRaw, ok := raw["temp_dir"]; ok {
		var s string
		if err := json.Unmarshal(tempRaw, &s); err != nil {
			return fmt.Errorf("parsing temp_dir field: %w", err)
		}
		if s != "" {
			settings.TempDir = s
		}
	}

	if progressRaw, ok := raw["progress_dir"]; ok {
		var s string
		if err := json.Unmarshal(progressRaw, &s); err != nil {
			return fmt.Errorf("parsing progress_dir field: %w", err)
		}
		if s != "" {
			settings.ProgressDir = s
		}
	}

	return nil
}

func applyDefaults(settings *FulcrumSettings) {
	if settings.LogLevel == "" {
		settings.LogLevel = "info"
	}
}

// ReverterConfig resolves the settings' directory overrides (if any)
// into a reverter.Config, falling back to paths.DefaultReverterConfig()
// for any directory left unset. Relative overrides are resolved against
// the state directory root.
func (s *FulcrumSettings) ReverterConfig() (backup, temp, progress string, err error) {
	defaults, err := paths.DefaultReverterConfig()
	if err != nil {
		return "", "", "", err
	}

	backup, err = resolveOverride(s.BackupDir, defaults.Backup)
	if err != nil {
		return "", "", "", err
	}
	temp, err = resolveOverride(s.TempDir, defaults.Temp)
	if err != nil {
		return "", "", "", err
	}
	progress, err = resolveOverride(s.ProgressDir, defaults.Progress)
	if err != nil {
		return "", "", "", err
	}

	return backup, temp, progress, nil
}

func resolveOverride(override, fallback string) (string, error) {
	if override == "" {
		return fallback, nil
	}
	return paths.AbsPath(override)
}
