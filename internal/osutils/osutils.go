// Package osutils wraps the native dialogs and shell helpers the tray uses.
package osutils

import (
	"errors"
	"os/exec"
	"strings"
)

var (
	// ErrCancelled is returned when the user dismisses a dialog
	ErrCancelled = errors.New("dialog cancelled")
	// ErrUnsupported is returned when no native helper is available
	ErrUnsupported = errors.New("not supported on this platform")
)

// chooserResult turns the output of a folder chooser process into a path.
// A non-zero exit or empty output means the user cancelled.
func chooserResult(out []byte, err error) (string, error) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", ErrCancelled
	}
	if err != nil {
		return "", err
	}
	path := trimSeparators(strings.TrimSpace(string(out)))
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

// trimSeparators drops trailing slashes but keeps a root such as "/" or "C:\"
func trimSeparators(path string) string {
	for len(path) > 1 && strings.ContainsRune(`/\`, rune(path[len(path)-1])) {
		if len(path) == 3 && path[1] == ':' {
			break
		}
		path = path[:len(path)-1]
	}
	return path
}

// quoteAppleScript escapes s for use inside an AppleScript string literal
func quoteAppleScript(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// quotePowerShell escapes s for use inside a single-quoted PowerShell string
func quotePowerShell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
