// Package fsutil provides the byte-preserving file copy primitive the
// reverter uses to capture and restore configuration files.
package fsutil

import (
	"io"
	"os"
)

// CopyFile copies src to dst byte-for-byte, preserving the source file's
// mode and modification time as faithfully as the filesystem allows.
// dst is created if missing and truncated if it already exists.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // src is caller-controlled, not user-supplied
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
