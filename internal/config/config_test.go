package config

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
	if cfg.CaptureDelay() != 10*time.Millisecond {
		t.Errorf("Expected 10ms delay, got %v", cfg.CaptureDelay())
	}
	if home, err := os.UserHomeDir(); err == nil {
		if want := filepath.Join(home, "Documents"); cfg.Directory != want {
			t.Errorf("Expected default directory %s, got %s", want, cfg.Directory)
		}
	}
}

func TestValidateMessages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directory = "relative/dir"
	cfg.CaptureDelayMS = 5000
	cfg.PNGCompression = "ultra"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"directory must be an absolute path", "capture_delay_ms", "png_compression"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in %q", want, msg)
		}
	}
}

func TestEmptyDirectoryAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directory = ""
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected empty directory to be allowed, got %v", err)
	}
}

func TestCompression(t *testing.T) {
	cases := map[string]png.CompressionLevel{
		"default": png.DefaultCompression,
		"speed":   png.BestSpeed,
		"best":    png.BestCompression,
		"none":    png.NoCompression,
	}
	for in, want := range cases {
		if got := (Config{PNGCompression: in}).Compression(); got != want {
			t.Errorf("Compression(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoadMissingKeepsDefaults(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	if err := m.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if m.Get().PNGCompression != "default" {
		t.Error("Expected defaults after loading a missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	dir := t.TempDir()

	m := NewManagerAt(path)
	if err := m.Update(func(c *Config) {
		c.Directory = dir
		c.CaptureDelayMS = 25
		c.Log.Level = "debug"
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	m2 := NewManagerAt(path)
	var changed Config
	m2.RegisterChangeCallback(func(c Config) { changed = c })
	if err := m2.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got := m2.Get()
	if got.Directory != dir || got.CaptureDelayMS != 25 || got.Log.Level != "debug" {
		t.Errorf("Unexpected loaded config: %+v", got)
	}
	if changed.Directory != dir {
		t.Error("Expected change callback on load")
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"capture_delay_ms": -1}`), 0644); err != nil {
		t.Fatal(err)
	}
	m := NewManagerAt(path)
	if err := m.Load(); err == nil {
		t.Error("Expected invalid config to be rejected")
	}
	if m.Get().CaptureDelayMS != 10 {
		t.Error("Expected defaults to survive a rejected load")
	}
}

func TestSetRejectsInvalid(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	cfg := m.Get()
	cfg.Log.Format = "xml"
	if err := m.Set(cfg); err == nil {
		t.Error("Expected Set to validate")
	}
}
