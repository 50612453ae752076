// Package autostart registers the recorder to launch at login.
package autostart

import (
	"fmt"
	"io"
	"os"
	"text/template"
)

// Label identifies the login item on every platform
const Label = "com.kabin.recorder"

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.ExecutablePath}}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

const xdgDesktopEntry = `[Desktop Entry]
Type=Application
Name=Kabin
Exec="{{.ExecutablePath}}"
X-GNOME-Autostart-enabled=true
`

type entry struct {
	Label          string
	ExecutablePath string
}

func render(w io.Writer, text, execPath string) error {
	tmpl, err := template.New("autostart").Parse(text)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, entry{Label: Label, ExecutablePath: execPath})
}

func writeEntry(path, text string) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f, text, execPath); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func removeEntry(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func entryExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
