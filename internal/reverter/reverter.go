// Package reverter implements a crash-safe, filesystem-backed journal of
// file edits and file-creation events for an automated configuration
// agent. It supports a scratch "temporary" checkpoint discarded at the
// end of every run, an "in-progress" checkpoint promoted atomically to a
// numbered permanent checkpoint on success, rollback of the N most
// recent permanent checkpoints, and a recovery routine that cleans up
// any checkpoint left in progress by a crashed prior run.
//
// The Reverter is designed for a single process, single thread of
// control: it performs no in-process locking and assumes the caller
// serializes operations. Durability is purchased at checkpoint
// granularity (a directory rename to promote, plus a blanket recovery
// routine), not per-file.
package reverter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fulcrumagent/reverter/internal/reverter/rerrors"
)

// File names within a checkpoint directory, per the on-disk layout
// contract (stable across versions).
const (
	filePaths              = "FILEPATHS"
	newFiles               = "NEW_FILES"
	changesSince           = "CHANGES_SINCE"
	progressDirDefaultName = "in_progress"
)

// checkpointNameWidth is the zero-padded width used for finalized
// permanent checkpoint directory names, chosen so that lexicographic and
// numeric ordering coincide without parsing.
const checkpointNameWidth = 10

// Logger is the minimal collaborator interface the Reverter needs.
type Logger interface {
	Info(msg string, args ...any)
	Warning(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger discards everything. Used when no logger is supplied so the
// Reverter never needs a nil check before logging.
type nopLogger struct{}

func (nopLogger) Info(string, ...any)    {}
func (nopLogger) Warning(string, ...any) {}
func (nopLogger) Error(string, ...any)   {}

// Config is the three-key directory mapping the Reverter is constructed
// with: backup is the root for finalized permanent checkpoints and the
// in-progress permanent checkpoint, temp is the single temporary
// checkpoint path, and progress is the in-progress permanent checkpoint
// path (conventionally backup/in_progress).
type Config struct {
	Backup   string
	Temp     string
	Progress string
}

// Reverter is the transactional checkpoint/rollback facility. Construct
// with New; the zero value is not usable.
type Reverter struct {
	cfg    Config
	logger Logger
}

// New constructs a Reverter backed by the three directories in cfg. If
// logger is nil, log calls are silently discarded. No directories are
// created eagerly; they come into existence lazily on first write.
func New(cfg Config, logger Logger) *Reverter {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Reverter{cfg: cfg, logger: logger}
}

// DefaultConfig returns a Config rooted at the given state directory,
// following the convention backup=<state>/backup, temp=<state>/temp,
// progress=<state>/backup/in_progress. All three keys are always
// non-empty.
func DefaultConfig(stateDir string) Config {
	backup := filepath.Join(stateDir, "backup")
	return Config{
		Backup:   backup,
		Temp:     filepath.Join(stateDir, "temp"),
		Progress: filepath.Join(backup, progressDirDefaultName),
	}
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o750)
}

func filePathsPath(dir string) string    { return filepath.Join(dir, filePaths) }
func newFilesPath(dir string) string     { return filepath.Join(dir, newFiles) }
func changesSincePath(dir string) string { return filepath.Join(dir, changesSince) }

// checkpointName formats n as a zero-padded decimal checkpoint directory
// name whose lexicographic order equals its numeric order.
func checkpointName(n int) string {
	return fmt.Sprintf("%0*d", checkpointNameWidth, n)
}

func ioErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return rerrors.Wrap(rerrors.CategoryIO, op, err)
}
