//go:build !windows

package privilege

import "os"

// IsElevated returns true if the scan is running with UID 0 (root).
// Elevation is never required, it only improves per-connection owner
// visibility.
func IsElevated() bool {
	return os.Getuid() == 0
}
