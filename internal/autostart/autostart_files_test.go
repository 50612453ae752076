//go:build !windows

package autostart

import "testing"

func TestEnableDisable(t *testing.T) {
	dir := t.TempDir()
	orig := entryDir
	entryDir = func() (string, error) { return dir, nil }
	defer func() { entryDir = orig }()

	if IsEnabled() {
		t.Fatal("Expected autostart to be disabled initially")
	}
	if err := Enable(); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if !IsEnabled() {
		t.Error("Expected autostart to be enabled")
	}
	if err := Disable(); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if IsEnabled() {
		t.Error("Expected autostart to be disabled")
	}
	if err := Disable(); err != nil {
		t.Errorf("Expected second Disable to be a no-op, got %v", err)
	}
}
