//go:build windows

package fsutil

import "os"

// ListDrives returns the filesystem roots available for scanning (Windows).
// Probes drive letters A: through Z: and keeps the ones that exist.
func ListDrives() []string {
	var drives []string
	for letter := 'A'; letter <= 'Z'; letter++ {
		drive := string(letter) + `:\`
		if _, err := os.Stat(drive); err == nil {
			drives = append(drives, drive)
		}
	}
	return drives
}
