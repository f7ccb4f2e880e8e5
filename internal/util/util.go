//go:build !windows

package util

// IsRunFromGUI reports whether the process was started by a double click.
// That only ever happens on Windows; hidraw access makes every other
// platform CLI territory.
func IsRunFromGUI() bool {
	return false
}
