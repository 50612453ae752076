//go:build !darwin && !windows

package osutils

import (
	"os/exec"
)

// ChooseFolder shows a zenity folder picker when zenity is installed
func ChooseFolder(prompt, start string) (string, error) {
	if _, err := exec.LookPath("zenity"); err != nil {
		return "", ErrUnsupported
	}
	args := []string{"--file-selection", "--directory", "--title=" + prompt}
	if start != "" {
		args = append(args, "--filename="+start+"/")
	}
	return chooserResult(exec.Command("zenity", args...).Output())
}

// RevealFolder opens path with the desktop's default file manager
func RevealFolder(path string) error {
	return exec.Command("xdg-open", path).Start()
}

// OpenAccessibilitySettings has no equivalent here
func OpenAccessibilitySettings() error {
	return ErrUnsupported
}
