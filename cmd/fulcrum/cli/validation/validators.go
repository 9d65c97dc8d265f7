// Package validation provides input validation functions for the fulcrum
// CLI. This package has no dependencies to avoid import cycles.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// pathSafeRegex matches alphanumeric characters, underscores, and hyphens only.
// Used to validate IDs that will be used in file paths.
var pathSafeRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateRunID validates that a run ID doesn't contain path separators.
// This prevents path traversal attacks when run IDs are used to name log
// files under the logs directory.
func ValidateRunID(id string) error {
	if id == "" {
		return errors.New("run ID cannot be empty")
	}
	if strings.ContainsAny(id, "/\\") {
		return fmt.Errorf("invalid run ID %q: contains path separators", id)
	}
	if !pathSafeRegex.MatchString(id) {
		return fmt.Errorf("invalid run ID %q: must be alphanumeric with underscores/hyphens only", id)
	}
	return nil
}

// ValidateAbsPath validates that path is non-empty and absolute. The
// Reverter's on-disk contract requires absolute paths in FILEPATHS and
// NEW_FILES so that recovery works regardless of the caller's working
// directory at recovery time.
func ValidateAbsPath(path string) error {
	if path == "" {
		return errors.New("path cannot be empty")
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path %q must be absolute", path)
	}
	return nil
}
