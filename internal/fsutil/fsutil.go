// Package fsutil provides the filesystem helpers shared by the scan and copy
// engines: root normalization, size formatting, structure-preserving file
// copies and platform drive listing.
package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

// NormalizeRoots resolves each root to an absolute path and drops entries
// that do not resolve to an existing directory. Invalid roots are user-input
// hygiene, not errors, and are discarded silently.
func NormalizeRoots(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		if r == "" {
			continue
		}
		abs, err := filepath.Abs(r)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		out = append(out, abs)
	}
	return out
}

// Exists reports whether a path exists
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CopyFile copies a file from src to dst and propagates the source's
// modification time onto the copy
func CopyFile(src, dst string, modTime time.Time) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err = io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	if err = destFile.Sync(); err != nil {
		destFile.Close()
		return err
	}
	if err = destFile.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, time.Now(), modTime)
}
