package reverter

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// FinalizeCheckpoint promotes the in-progress permanent checkpoint to a
// finalized, numbered one. title becomes the first line of the
// checkpoint's CHANGES_SINCE. If no in-progress checkpoint exists, this
// logs a warning and returns nil (idempotent).
func (r *Reverter) FinalizeCheckpoint(title string) error {
	if _, err := os.Stat(r.cfg.Progress); err != nil {
		if os.IsNotExist(err) {
			r.logger.Warning("finalize_checkpoint: no in-progress checkpoint to finalize")
			return nil
		}
		return ioErr("finalize_checkpoint: stat progress dir", err)
	}

	if err := prependLine(changesSincePath(r.cfg.Progress), title); err != nil {
		return ioErr("finalize_checkpoint: write title", err)
	}

	next, err := nextCheckpointNumber(r.cfg.Backup)
	if err != nil {
		return ioErr("finalize_checkpoint: list backup dir", err)
	}

	dst := filepath.Join(r.cfg.Backup, checkpointName(next))
	if err := os.Rename(r.cfg.Progress, dst); err != nil {
		return ioErr("finalize_checkpoint: rename to finalized checkpoint", err)
	}

	return nil
}

// nextCheckpointNumber returns the integer one greater than the largest
// existing finalized checkpoint number under backup, or 0 if none exist.
func nextCheckpointNumber(backup string) (int, error) {
	entries, err := os.ReadDir(backup)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	max := -1
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() == progressDirDefaultName {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

// finalizedCheckpoints returns the names of finalized permanent
// checkpoint directories under backup, sorted oldest-first (numeric
// order, which lexicographic order matches by construction).
func finalizedCheckpoints(backup string) ([]string, error) {
	entries, err := os.ReadDir(backup)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == progressDirDefaultName {
			continue
		}
		if _, err := strconv.Atoi(e.Name()); err != nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
