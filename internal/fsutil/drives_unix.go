//go:build !windows

package fsutil

// ListDrives returns the filesystem roots available for scanning (Unix)
func ListDrives() []string {
	return []string{"/"}
}
