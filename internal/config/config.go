// Package config provides configuration management for the recorder.
package config

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"kabin/internal/logger"
)

// Config represents the application configuration
type Config struct {
	// Directory is where captures are written
	Directory string `json:"directory" validate:"omitempty,abspath"`

	// CaptureDelayMS is the delay between an input event and its capture
	CaptureDelayMS int `json:"capture_delay_ms" validate:"min=0,max=1000"`

	// PNGCompression is one of default, speed, best, none
	PNGCompression string `json:"png_compression" validate:"oneof=default speed best none"`

	// RecordOnLaunch starts recording as soon as the tap is installed
	RecordOnLaunch bool `json:"record_on_launch"`

	// Log configures the root logger
	Log LogConfig `json:"log"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `json:"level" validate:"oneof=trace debug info warn error"`
	Format string `json:"format" validate:"oneof=auto console json"`
}

// CaptureDelay returns the capture delay as a duration
func (c Config) CaptureDelay() time.Duration {
	return time.Duration(c.CaptureDelayMS) * time.Millisecond
}

// Compression maps PNGCompression to an encoder level
func (c Config) Compression() png.CompressionLevel {
	switch c.PNGCompression {
	case "speed":
		return png.BestSpeed
	case "best":
		return png.BestCompression
	case "none":
		return png.NoCompression
	default:
		return png.DefaultCompression
	}
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Directory:      DefaultDirectory(),
		CaptureDelayMS: 10,
		PNGCompression: "default",
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// DefaultDirectory is the user's Documents folder, or "" if the home
// directory is unknown
func DefaultDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Documents")
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func(Config)
}

// NewManager creates a manager for the per-user config file
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a manager for an explicit config file path
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "kabin")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "kabin")
	default:
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(dir, "kabin")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk. A missing file keeps the defaults.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", m.configPath, err)
	}
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("%s: %w", m.configPath, err)
	}

	m.mu.Lock()
	m.config = cfg
	cb := m.onChanged
	m.mu.Unlock()

	if cb != nil {
		cb(*cfg)
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	data, err := json.MarshalIndent(m.config, "", "  ")
	m.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}
	logger.Named("config").Debug().Str("path", m.configPath).Int("bytes", len(data)).Msg("saving configuration")
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set validates and replaces the configuration
func (m *Manager) Set(cfg Config) error {
	if err := Validate(&cfg); err != nil {
		return err
	}
	m.mu.Lock()
	m.config = &cfg
	cb := m.onChanged
	m.mu.Unlock()

	if cb != nil {
		cb(cfg)
	}
	return nil
}

// Update applies fn to a copy of the configuration, validates, stores and
// saves it
func (m *Manager) Update(fn func(*Config)) error {
	cfg := m.Get()
	fn(&cfg)
	if err := m.Set(cfg); err != nil {
		return err
	}
	return m.Save()
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func(Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
