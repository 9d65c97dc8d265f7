// Package logging provides structured logging for the fulcrum CLI using
// slog.
//
// Usage:
//
//	// Initialize logger for a run (typically at process start)
//	if err := logging.Init(runID); err != nil {
//	    // handle error
//	}
//	defer logging.Close()
//
//	ctx = logging.WithRunID(ctx, runID)
//	logging.Info(ctx, "checkpoint finalized", slog.String("title", title))
package logging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/paths"
	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/validation"
)

// LogLevelEnvVar is the environment variable that controls log level.
const LogLevelEnvVar = "FULCRUM_LOG_LEVEL"

var (
	// logger is the package-level logger instance
	logger *slog.Logger

	// logFile holds the current log file handle for cleanup
	logFile *os.File

	// logBufWriter wraps logFile with buffered I/O for performance
	logBufWriter *bufio.Writer

	// currentRunID stores the run ID from Init() to include in all logs
	currentRunID string

	// mu protects logger, logFile, logBufWriter, and currentRunID
	mu sync.RWMutex

	// logLevelGetter is an optional callback to get log level from settings.
	// Set by SetLogLevelGetter before Init is called.
	logLevelGetter func() string
)

// SetLogLevelGetter sets a callback function to get the log level from settings.
// This allows the logging package to read settings without a circular dependency.
// The callback is only used if FULCRUM_LOG_LEVEL env var is not set.
func SetLogLevelGetter(getter func() string) {
	mu.Lock()
	defer mu.Unlock()
	logLevelGetter = getter
}

// Init initializes the logger for a run, writing JSON logs to
// <state-dir>/logs/<run-id>.log.
//
// If the log file cannot be created, falls back to stderr.
// Log level is controlled by FULCRUM_LOG_LEVEL environment variable.
func Init(runID string) error {
	if err := validation.ValidateRunID(runID); err != nil {
		return fmt.Errorf("invalid run ID for logging: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if logBufWriter != nil {
		_ = logBufWriter.Flush()
		logBufWriter = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	levelStr := os.Getenv(LogLevelEnvVar)
	if levelStr == "" && logLevelGetter != nil {
		levelStr = logLevelGetter()
	}
	level := parseLogLevel(levelStr)

	if levelStr != "" && !isValidLogLevel(levelStr) {
		fmt.Fprintf(os.Stderr, "[fulcrum] Warning: invalid log level %q, defaulting to INFO\n", levelStr)
	}

	logsPath, err := paths.LogsPath()
	if err != nil {
		logger = createLogger(os.Stderr, level)
		return nil
	}

	logFilePath := filepath.Join(logsPath, runID+".log")
	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // runID validated above
	if err != nil {
		logger = createLogger(os.Stderr, level)
		return nil
	}

	logFile = f
	logBufWriter = bufio.NewWriterSize(f, 8192) // 8KB buffer for batched writes
	logger = createLogger(logBufWriter, level)
	currentRunID = runID

	return nil
}

// Close closes the log file if one is open.
// Flushes any buffered data before closing.
// Safe to call multiple times.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logBufWriter != nil {
		_ = logBufWriter.Flush()
		logBufWriter = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	currentRunID = ""
}

// resetLogger resets the logger to nil (for testing).
func resetLogger() {
	mu.Lock()
	defer mu.Unlock()
	logger = nil
	currentRunID = ""
	if logBufWriter != nil {
		_ = logBufWriter.Flush()
		logBufWriter = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// getLogger returns the current logger, or a default stderr logger if not initialized.
func getLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if logger == nil {
		return slog.Default()
	}
	return logger
}

// getRunID returns the current run ID (thread-safe).
func getRunID() string {
	mu.RLock()
	defer mu.RUnlock()
	return currentRunID
}

// createLogger creates a JSON logger writing to the given writer at the specified level.
func createLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewJSONHandler(w, opts)
	return slog.New(handler)
}

// parseLogLevel parses a log level string to slog.Level.
// Returns slog.LevelInfo for empty or invalid values.
func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// isValidLogLevel checks if the given string is a valid log level.
func isValidLogLevel(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR", "":
		return true
	default:
		return false
	}
}

// Debug logs at DEBUG level with context values automatically extracted.
func Debug(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs at INFO level with context values automatically extracted.
func Info(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs at WARN level with context values automatically extracted.
func Warn(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs at ERROR level with context values automatically extracted.
func Error(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelError, msg, attrs...)
}

// LogDuration logs a message with duration_ms calculated from the start time.
// Designed for use with defer:
//
//	defer logging.LogDuration(ctx, slog.LevelInfo, "operation completed", time.Now())
func LogDuration(ctx context.Context, level slog.Level, msg string, start time.Time, attrs ...any) {
	durationMs := time.Since(start).Milliseconds()

	allAttrs := make([]any, 0, len(attrs)+1)
	allAttrs = append(allAttrs, slog.Int64("duration_ms", durationMs))
	allAttrs = append(allAttrs, attrs...)

	log(ctx, level, msg, allAttrs...)
}

// log is the internal logging function that extracts context values and logs.
func log(ctx context.Context, level slog.Level, msg string, attrs ...any) {
	l := getLogger()

	var allAttrs []any

	globalRunID := getRunID()
	if globalRunID != "" {
		allAttrs = append(allAttrs, slog.String("run_id", globalRunID))
	}

	contextAttrs := attrsFromContext(ctx, globalRunID)
	for _, a := range contextAttrs {
		allAttrs = append(allAttrs, a)
	}

	allAttrs = append(allAttrs, attrs...)

	// Pass nil context to slog as we've already extracted context values as attributes.
	// slog handlers are expected to handle nil context gracefully.
	l.Log(nil, level, msg, allAttrs...) //nolint:staticcheck // nil context is intentional - we extract values as attributes
}

// attrsFromContext extracts logging attributes from a context.
// If globalRunID is non-empty, skips adding run_id from context to avoid duplicates.
func attrsFromContext(ctx context.Context, globalRunID string) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr

	if globalRunID == "" {
		if v := ctx.Value(runIDKey); v != nil {
			if s, ok := v.(string); ok && s != "" {
				attrs = append(attrs, slog.String("run_id", s))
			}
		}
	}

	return attrs
}
