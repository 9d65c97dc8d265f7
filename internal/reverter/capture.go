package reverter

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fulcrumagent/reverter/internal/reverter/fsutil"
	"github.com/fulcrumagent/reverter/internal/reverter/rerrors"
)

// AddToTempCheckpoint captures the current contents of paths into the
// temporary checkpoint, then appends notes to that checkpoint's change
// log. See AddToCheckpoint for the full capture contract.
func (r *Reverter) AddToTempCheckpoint(paths []string, notes string) error {
	return r.addToCheckpoint(r.cfg.Temp, paths, notes)
}

// AddToCheckpoint captures the current contents of paths into the
// in-progress permanent checkpoint, then appends notes to that
// checkpoint's change log.
//
// For each path not already recorded in the target checkpoint's
// FILEPATHS, its current contents are byte-copied into the checkpoint
// (preserving metadata) and its absolute path appended to FILEPATHS. A
// path already present in FILEPATHS is skipped (first capture wins,
// making repeated additions idempotent). A path already present in the
// checkpoint's NEW_FILES is rejected: a file cannot be both "created by
// us" and "backed up from prior state" in the same checkpoint.
func (r *Reverter) AddToCheckpoint(paths []string, notes string) error {
	return r.addToCheckpoint(r.cfg.Progress, paths, notes)
}

func (r *Reverter) addToCheckpoint(dir string, paths []string, notes string) error {
	if err := ensureDir(dir); err != nil {
		return ioErr("add_to_checkpoint: create checkpoint dir", err)
	}

	existing, err := readLines(filePathsPath(dir))
	if err != nil {
		return ioErr("add_to_checkpoint: read filepaths", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p] = true
	}

	registered, err := readLines(newFilesPath(dir))
	if err != nil {
		return ioErr("add_to_checkpoint: read new_files", err)
	}
	isNewFile := make(map[string]bool, len(registered))
	for _, p := range registered {
		isNewFile[p] = true
	}

	nextIndex := len(existing)
	for _, path := range paths {
		if seen[path] {
			continue
		}
		if isNewFile[path] {
			return rerrors.New(rerrors.CategoryInvariant, "add_to_checkpoint",
				"%s is registered as a new file in this checkpoint and cannot also be backed up", path)
		}

		dst := filepath.Join(dir, strconv.Itoa(nextIndex))
		if err := fsutil.CopyFile(path, dst); err != nil {
			return ioErr("add_to_checkpoint: copy file", err)
		}
		if err := appendLine(filePathsPath(dir), path); err != nil {
			return ioErr("add_to_checkpoint: append filepaths", err)
		}

		seen[path] = true
		nextIndex++
	}

	if notes != "" {
		if err := appendRaw(changesSincePath(dir), notes); err != nil {
			return ioErr("add_to_checkpoint: append notes", err)
		}
	}

	return nil
}

// readLines reads a file as a slice of non-empty trimmed lines. A
// missing file yields an empty slice, not an error.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from checkpoint dirs we own
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// appendLine appends s plus a trailing newline to path, creating it if
// necessary.
func appendLine(path, s string) error {
	return appendRaw(path, s+"\n")
}

// appendRaw appends s verbatim (no separator inserted) to path, creating
// it if necessary.
func appendRaw(path, s string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(s); err != nil {
		return err
	}
	return nil
}

// prependLine prepends s plus a trailing newline to path's existing
// contents (creating it if missing), used by FinalizeCheckpoint to make
// the title the first line of CHANGES_SINCE.
func prependLine(path, s string) error {
	existing, err := os.ReadFile(path) //nolint:gosec // path is built from checkpoint dirs we own
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	var b strings.Builder
	b.WriteString(s)
	b.WriteString("\n")
	b.Write(existing)
	return os.WriteFile(path, []byte(b.String()), 0o640)
}
