//go:build darwin

package osutils

import (
	"os/exec"
)

// ChooseFolder shows the native folder picker starting at start
func ChooseFolder(prompt, start string) (string, error) {
	script := "POSIX path of (choose folder with prompt " + quoteAppleScript(prompt)
	if start != "" {
		script += " default location (POSIX file " + quoteAppleScript(start) + ")"
	}
	script += ")"
	return chooserResult(exec.Command("osascript", "-e", script).Output())
}

// RevealFolder opens path in Finder
func RevealFolder(path string) error {
	return exec.Command("open", path).Run()
}

// OpenAccessibilitySettings opens the privacy pane where the input tap
// permission is granted
func OpenAccessibilitySettings() error {
	return exec.Command("open", "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility").Run()
}
