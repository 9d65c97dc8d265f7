package reverter

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/fulcrumagent/reverter/internal/reverter/fsutil"
	"github.com/fulcrumagent/reverter/internal/reverter/rerrors"
)

// RevertTemporaryConfig undoes everything recorded in the temporary
// checkpoint and removes it. If the temp directory does not exist, this
// is a no-op.
func (r *Reverter) RevertTemporaryConfig() error {
	if _, err := os.Stat(r.cfg.Temp); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return ioErr("revert_temporary_config: stat temp dir", err)
	}

	if err := r.recoverCheckpoint(r.cfg.Temp); err != nil {
		return rerrors.Wrap(rerrors.CategoryRecovery, "revert_temporary_config", err)
	}
	return nil
}

// RollbackCheckpoints recovers (and deletes) the n most recent finalized
// permanent checkpoints, newest first. n must be a non-negative integer;
// rollback_checkpoints(0) is a no-op. If fewer than n checkpoints exist,
// all of them are rolled back and a single warning is logged.
func (r *Reverter) RollbackCheckpoints(n int) error {
	if n < 0 {
		return rerrors.New(rerrors.CategoryInput, "rollback_checkpoints", "count %d is negative", n)
	}

	for i := 0; i < n; i++ {
		names, err := finalizedCheckpoints(r.cfg.Backup)
		if err != nil {
			return ioErr("rollback_checkpoints: list backup dir", err)
		}
		if len(names) == 0 {
			r.logger.Warning("rollback_checkpoints: no more finalized checkpoints to roll back")
			return nil
		}

		latest := names[len(names)-1]
		dir := filepath.Join(r.cfg.Backup, latest)
		if err := r.recoverCheckpoint(dir); err != nil {
			return rerrors.Wrap(rerrors.CategoryRecovery, "rollback_checkpoints", err)
		}
	}

	return nil
}

// RecoveryRoutine cleans up after a crashed prior run: it recovers the
// temporary checkpoint (if any) and then the in-progress permanent
// checkpoint (if any), newest first, so a file captured in both ends at
// the snapshot taken before the run. Finalized permanent checkpoints are
// never touched.
func (r *Reverter) RecoveryRoutine() error {
	if _, err := os.Stat(r.cfg.Temp); err == nil {
		if err := r.recoverCheckpoint(r.cfg.Temp); err != nil {
			return rerrors.Wrap(rerrors.CategoryRecovery, "recovery_routine", err)
		}
	} else if !os.IsNotExist(err) {
		return ioErr("recovery_routine: stat temp dir", err)
	}

	if _, err := os.Stat(r.cfg.Progress); err == nil {
		if err := r.recoverCheckpoint(r.cfg.Progress); err != nil {
			return rerrors.Wrap(rerrors.CategoryRecovery, "recovery_routine", err)
		}
	} else if !os.IsNotExist(err) {
		return ioErr("recovery_routine: stat progress dir", err)
	}

	return nil
}

// recoverCheckpoint undoes everything recorded in the checkpoint
// directory dir and then removes dir. Created files (NEW_FILES) are
// deleted before backed-up files (FILEPATHS) are restored, so that a
// file both created and later captured in the same checkpoint (forbidden
// by the data model, but defensively ordered) resolves toward deletion.
func (r *Reverter) recoverCheckpoint(dir string) error {
	created, err := readLines(newFilesPath(dir))
	if err != nil {
		return ioErr("recover_checkpoint: read new_files", err)
	}
	for _, path := range created {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				r.logger.Warning("recover_checkpoint: registered new file already missing, skipping")
				continue
			}
			return ioErr("recover_checkpoint: remove created file", err)
		}
	}

	paths, err := readLines(filePathsPath(dir))
	if err != nil {
		return ioErr("recover_checkpoint: read filepaths", err)
	}
	for i, path := range paths {
		src := filepath.Join(dir, strconv.Itoa(i))
		if err := fsutil.CopyFile(src, path); err != nil {
			return ioErr("recover_checkpoint: restore backup", err)
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return ioErr("recover_checkpoint: remove checkpoint dir", err)
	}

	return nil
}
