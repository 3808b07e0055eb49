//go:build windows

package privilege

import "golang.org/x/sys/windows"

// IsElevated returns true if the scan is running with an elevated token
// (administrator). Elevation is never required, it only improves
// per-connection owner visibility.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
