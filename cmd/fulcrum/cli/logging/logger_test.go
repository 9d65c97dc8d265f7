package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/paths"
	"github.com/stretchr/testify/require"
)

const (
	testRunID = "2026-07-30-test-run"
	levelINFO = "INFO"
)

func withStateDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FULCRUM_STATE_DIR", dir)
	paths.ClearStateDirCache()
	t.Cleanup(paths.ClearStateDirCache)
	return dir
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     slog.Level
	}{
		{"empty defaults to INFO", "", slog.LevelInfo},
		{"DEBUG lowercase", "debug", slog.LevelDebug},
		{"DEBUG uppercase", "DEBUG", slog.LevelDebug},
		{"INFO lowercase", "info", slog.LevelInfo},
		{"WARN lowercase", "warn", slog.LevelWarn},
		{"ERROR uppercase", "ERROR", slog.LevelError},
		{"invalid defaults to INFO", "invalid", slog.LevelInfo},
		{"warning alias", "warning", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parseLogLevel(tt.envValue))
		})
	}
}

func TestInitCreatesLogFile(t *testing.T) {
	stateDir := withStateDir(t)

	require.NoError(t, Init(testRunID))
	defer Close()

	logFile := filepath.Join(stateDir, "logs", testRunID+".log")
	require.FileExists(t, logFile)
}

func TestInitWritesJSONLogs(t *testing.T) {
	stateDir := withStateDir(t)

	require.NoError(t, Init(testRunID))
	Info(context.Background(), "test message", slog.String("key", "value"))
	Close()

	content, err := os.ReadFile(filepath.Join(stateDir, "logs", testRunID+".log"))
	require.NoError(t, err)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &logEntry))
	require.Equal(t, "test message", logEntry["msg"])
	require.Equal(t, "value", logEntry["key"])
	require.Contains(t, logEntry, "time")
	require.Contains(t, logEntry, "level")
}

func TestInitRespectsLogLevel(t *testing.T) {
	stateDir := withStateDir(t)
	t.Setenv(LogLevelEnvVar, "WARN")

	require.NoError(t, Init(testRunID))

	ctx := context.Background()
	Debug(ctx, "debug message")
	Info(ctx, "info message")
	Warn(ctx, "warn message")
	Close()

	content, err := os.ReadFile(filepath.Join(stateDir, "logs", testRunID+".log"))
	require.NoError(t, err)

	contentStr := string(content)
	require.NotContains(t, contentStr, "debug message")
	require.NotContains(t, contentStr, "info message")
	require.Contains(t, contentStr, "warn message")
}

func TestInitInvalidLogLevelWarns(t *testing.T) {
	withStateDir(t)

	var buf bytes.Buffer
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	t.Setenv(LogLevelEnvVar, "INVALID_LEVEL")

	require.NoError(t, Init(testRunID))

	w.Close()
	os.Stderr = oldStderr
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	require.Contains(t, buf.String(), "invalid log level")
	Close()
}

func TestInitFallsBackToStderrOnError(t *testing.T) {
	stateDir := withStateDir(t)

	logsDir := filepath.Join(stateDir, "logs")
	require.NoError(t, os.MkdirAll(logsDir, 0o755))

	logFilePath := filepath.Join(logsDir, testRunID+".log")
	require.NoError(t, os.MkdirAll(logFilePath, 0o755))

	require.NoError(t, Init(testRunID))
	Info(context.Background(), "fallback test")
	Close()
}

func TestCloseSafeToCallMultipleTimes(t *testing.T) {
	withStateDir(t)

	require.NoError(t, Init(testRunID))
	Close()
	Close()
	Close()
}

func TestLoggingBeforeInit(t *testing.T) {
	resetLogger()

	ctx := context.Background()
	Debug(ctx, "debug before init")
	Info(ctx, "info before init")
	Warn(ctx, "warn before init")
	Error(ctx, "error before init")
}

func TestLoggingGlobalRunIDOverridesContext(t *testing.T) {
	stateDir := withStateDir(t)

	// Global run ID comes from Init(); context run ID is only used when
	// no global run ID is set.
	require.NoError(t, Init(testRunID))

	ctx := WithRunID(context.Background(), "context-run-id")
	Info(ctx, "context test message")
	Close()

	content, err := os.ReadFile(filepath.Join(stateDir, "logs", testRunID+".log"))
	require.NoError(t, err)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &logEntry))
	require.Equal(t, testRunID, logEntry["run_id"])
}

func TestLoggingAdditionalAttrs(t *testing.T) {
	stateDir := withStateDir(t)

	require.NoError(t, Init(testRunID))

	Info(context.Background(), "attrs test",
		slog.String("hook", "finalize_checkpoint"),
		slog.Int("duration_ms", 150),
		slog.Bool("success", true),
	)
	Close()

	content, err := os.ReadFile(filepath.Join(stateDir, "logs", testRunID+".log"))
	require.NoError(t, err)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &logEntry))
	require.Equal(t, testRunID, logEntry["run_id"])
	require.Equal(t, "finalize_checkpoint", logEntry["hook"])
	require.Equal(t, float64(150), logEntry["duration_ms"])
	require.Equal(t, true, logEntry["success"])
}

func TestLogDuration(t *testing.T) {
	stateDir := withStateDir(t)

	require.NoError(t, Init(testRunID))

	start := time.Now().Add(-100 * time.Millisecond)
	LogDuration(context.Background(), slog.LevelInfo, "operation completed", start,
		slog.String("hook", "finalize_checkpoint"),
		slog.Bool("success", true),
	)
	Close()

	content, err := os.ReadFile(filepath.Join(stateDir, "logs", testRunID+".log"))
	require.NoError(t, err)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &logEntry))

	durationMs, ok := logEntry["duration_ms"].(float64)
	require.True(t, ok)
	require.InDelta(t, 100, durationMs, 110)

	require.Equal(t, testRunID, logEntry["run_id"])
	require.Equal(t, "finalize_checkpoint", logEntry["hook"])
	require.Equal(t, true, logEntry["success"])
	require.Equal(t, levelINFO, logEntry["level"])
}

func TestLoggingContextRunIDWhenNoGlobalSet(t *testing.T) {
	resetLogger()

	var buf bytes.Buffer
	mu.Lock()
	logger = createLogger(&buf, slog.LevelInfo)
	mu.Unlock()

	ctx := WithRunID(context.Background(), "context-only-run")
	Info(ctx, "context run test")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	require.Equal(t, "context-only-run", logEntry["run_id"])

	resetLogger()
}

func TestInitRejectsInvalidRunIDs(t *testing.T) {
	tests := []struct {
		name    string
		runID   string
		wantErr bool
	}{
		{"empty run ID", "", true},
		{"path traversal with slash", "../../../tmp/evil", true},
		{"path traversal with backslash", "..\\..\\tmp\\evil", true},
		{"contains forward slash", "2026-07-30/run", true},
		{"contains backslash", "2026-07-30\\run", true},
		{"valid run ID", "2026-07-30-valid-run", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLogger()
			if !tt.wantErr {
				withStateDir(t)
			}

			err := Init(tt.runID)
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, strings.ToLower(err.Error()), "run id")
			} else {
				require.NoError(t, err)
			}
			Close()
		})
	}
}
