package reverter

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/fulcrumagent/reverter/internal/reverter/rerrors"
)

// CheckpointSummary describes one finalized permanent checkpoint for
// display purposes.
type CheckpointSummary struct {
	Name    string
	Time    time.Time
	Title   string
	FullLog string
}

// ViewConfigChanges returns a summary of every finalized permanent
// checkpoint, ordered oldest first. Unlike RollbackCheckpoints, this
// operation treats any non-numeric, non-in_progress entry in the backup
// directory as a data corruption: the backup directory is expected to
// contain only finalized checkpoints and, at most, one in-progress
// directory.
func (r *Reverter) ViewConfigChanges() ([]CheckpointSummary, error) {
	entries, err := os.ReadDir(r.cfg.Backup)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Info("view_config_changes: no checkpoints have been made yet")
			return nil, nil
		}
		return nil, ioErr("view_config_changes: list backup dir", err)
	}

	var names []string
	for _, e := range entries {
		if e.Name() == progressDirDefaultName {
			continue
		}
		if !e.IsDir() {
			return nil, rerrors.New(rerrors.CategoryInvariant, "view_config_changes",
				"unexpected non-directory entry %q in backup directory", e.Name())
		}
		if _, err := strconv.Atoi(e.Name()); err != nil {
			return nil, rerrors.New(rerrors.CategoryInvariant, "view_config_changes",
				"unexpected non-numeric checkpoint directory %q in backup directory", e.Name())
		}
		names = append(names, e.Name())
	}

	if len(names) == 0 {
		r.logger.Info("view_config_changes: no checkpoints have been made yet")
		return nil, nil
	}

	sort.Strings(names)

	summaries := make([]CheckpointSummary, 0, len(names))
	for _, name := range names {
		dir := filepath.Join(r.cfg.Backup, name)

		info, err := os.Stat(dir)
		if err != nil {
			return nil, ioErr("view_config_changes: stat checkpoint dir", err)
		}

		log, err := os.ReadFile(changesSincePath(dir)) //nolint:gosec // path built from backup dir we own
		if err != nil && !os.IsNotExist(err) {
			return nil, ioErr("view_config_changes: read changes_since", err)
		}

		title, _, _ := cutFirstLine(string(log))

		summaries = append(summaries, CheckpointSummary{
			Name:    name,
			Time:    info.ModTime(),
			Title:   title,
			FullLog: string(log),
		})
	}

	return summaries, nil
}

// cutFirstLine splits s into its first line and the remainder, without
// the trailing newline on either part.
func cutFirstLine(s string) (first, rest string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
