//go:build darwin

package autostart

import (
	"os"
	"path/filepath"
)

// entryDir is replaced in tests
var entryDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents"), nil
}

func entryPath() (string, error) {
	dir, err := entryDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, Label+".plist"), nil
}

// Enable writes a LaunchAgent that starts kabin at login
func Enable() error {
	path, err := entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return writeEntry(path, macLaunchAgentPlist)
}

// Disable removes the LaunchAgent
func Disable() error {
	path, err := entryPath()
	if err != nil {
		return err
	}
	return removeEntry(path)
}

// IsEnabled checks if the LaunchAgent exists
func IsEnabled() bool {
	path, err := entryPath()
	return err == nil && entryExists(path)
}
