package reverter

import (
	"github.com/fulcrumagent/reverter/internal/reverter/rerrors"
)

// RegisterFileCreation records that the caller is about to create (or has
// just created) one or more paths under the protection of the temporary
// checkpoint (temporary=true) or the in-progress permanent checkpoint
// (temporary=false). Registration happens before the file actually
// exists on disk, so a crash between registration and creation leaves a
// harmless dangling entry that rollback/recovery tolerate.
//
// Paths already present in NEW_FILES are silently skipped (dedup by
// exact string match). At least one path must be supplied.
func (r *Reverter) RegisterFileCreation(temporary bool, paths ...string) error {
	if len(paths) == 0 {
		return rerrors.New(rerrors.CategoryInput, "register_file_creation", "at least one path is required")
	}

	dir := r.cfg.Progress
	if temporary {
		dir = r.cfg.Temp
	}

	if err := ensureDir(dir); err != nil {
		return ioErr("register_file_creation: create checkpoint dir", err)
	}

	registered, err := readLines(newFilesPath(dir))
	if err != nil {
		return ioErr("register_file_creation: read new_files", err)
	}
	seen := make(map[string]bool, len(registered))
	for _, p := range registered {
		seen[p] = true
	}

	for _, path := range paths {
		if seen[path] {
			continue
		}
		if err := appendLine(newFilesPath(dir), path); err != nil {
			return ioErr("register_file_creation: append new_files", err)
		}
		seen[path] = true
	}

	return nil
}
