//go:build !darwin && !windows

package autostart

import (
	"os"
	"path/filepath"
)

// entryDir is replaced in tests
var entryDir = func() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart"), nil
}

func entryPath() (string, error) {
	dir, err := entryDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kabin.desktop"), nil
}

// Enable writes an XDG autostart entry
func Enable() error {
	path, err := entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return writeEntry(path, xdgDesktopEntry)
}

// Disable removes the XDG autostart entry
func Disable() error {
	path, err := entryPath()
	if err != nil {
		return err
	}
	return removeEntry(path)
}

// IsEnabled checks if the XDG autostart entry exists
func IsEnabled() bool {
	path, err := entryPath()
	return err == nil && entryExists(path)
}
