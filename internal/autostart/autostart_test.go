package autostart

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderPlist(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, macLaunchAgentPlist, "/Applications/Kabin.app/Contents/MacOS/kabin"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<string>"+Label+"</string>") {
		t.Error("Expected the label in the plist")
	}
	if !strings.Contains(out, "<string>/Applications/Kabin.app/Contents/MacOS/kabin</string>") {
		t.Error("Expected the executable path in the plist")
	}
}

func TestRenderDesktopEntry(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, xdgDesktopEntry, "/usr/local/bin/kabin"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), `Exec="/usr/local/bin/kabin"`) {
		t.Errorf("Unexpected desktop entry:\n%s", buf.String())
	}
}
