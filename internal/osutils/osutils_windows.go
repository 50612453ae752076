//go:build windows

package osutils

import (
	"fmt"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// ChooseFolder shows the native folder picker starting at start
func ChooseFolder(prompt, start string) (string, error) {
	ps := fmt.Sprintf(
		"Add-Type -AssemblyName System.Windows.Forms; "+
			"$d = New-Object System.Windows.Forms.FolderBrowserDialog; "+
			"$d.Description = %s; $d.SelectedPath = %s; "+
			"if ($d.ShowDialog() -eq 'OK') { $d.SelectedPath }",
		quotePowerShell(prompt), quotePowerShell(start),
	)
	cmd := exec.Command("powershell", "-NoProfile", "-STA", "-Command", ps)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	return chooserResult(cmd.Output())
}

// RevealFolder opens path in Explorer
func RevealFolder(path string) error {
	verbPtr, _ := syscall.UTF16PtrFromString("open")
	exePtr, _ := syscall.UTF16PtrFromString("explorer.exe")
	argPtr, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	var showCmd int32 = 1 // SW_SHOWNORMAL
	return windows.ShellExecute(0, verbPtr, exePtr, argPtr, nil, showCmd)
}

// OpenAccessibilitySettings is a no-op; low-level hooks need no grant
func OpenAccessibilitySettings() error {
	return nil
}
