// Package config handles configuration file management.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
)

// AppName names the config directory
const AppName = "i3blocks-mpris"

// Config represents the configuration
type Config struct {
	// StateFile holds the selected player between invocations
	StateFile string `json:"stateFile"`

	// ReferencePlayer is the bus name suffix of the background player
	// that is only picked when nothing else qualifies
	ReferencePlayer string `json:"referencePlayer"`

	// Font used for the Pango span around the track text
	Font string `json:"font"`

	// MaxWidth limits the track text to this many display cells (0: no limit)
	MaxWidth int `json:"maxWidth"`

	// Colors per playback status
	Colors ColorConfig `json:"colors"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"logLevel"`
}

// ColorConfig contains the status colors as #rrggbb
type ColorConfig struct {
	Playing string `json:"playing"`
	Paused  string `json:"paused"`
	Stopped string `json:"stopped"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		StateFile:       "/tmp/current_player",
		ReferencePlayer: "mpd",
		Font:            "Sarasa Gothic J 13",
		MaxWidth:        0,
		Colors: ColorConfig{
			Playing: "#00ff00",
			Paused:  "#ffa500",
			Stopped: "#ff0000",
		},
		LogLevel: "warn",
	}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the config and fills empty fields from the defaults
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.StateFile == "" {
		c.StateFile = def.StateFile
	}
	if c.ReferencePlayer == "" {
		c.ReferencePlayer = def.ReferencePlayer
	}
	if c.MaxWidth < 0 {
		return fmt.Errorf("maxWidth must not be negative, got %d", c.MaxWidth)
	}
	for name, color := range map[string]string{
		"playing": c.Colors.Playing,
		"paused":  c.Colors.Paused,
		"stopped": c.Colors.Stopped,
	} {
		if !hexColor.MatchString(color) {
			return fmt.Errorf("colors.%s must be #rrggbb, got %q", name, color)
		}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a config level name to a slog level. Empty means warn.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// DefaultPath returns $XDG_CONFIG_HOME/i3blocks-mpris/config.json
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.json")
}

// Manager handles loading and saving configuration
type Manager struct {
	configPath string
	config     *Config
}

// NewManager creates a new configuration manager. An empty path means DefaultPath.
func NewManager(configPath string) *Manager {
	if configPath == "" {
		configPath = DefaultPath()
	}
	return &Manager{
		configPath: configPath,
		config:     DefaultConfig(),
	}
}

// Load reads the configuration from disk. A missing file leaves the defaults in place.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			m.config = DefaultConfig()
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}

	m.config = config
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// GetPath returns the config file path
func (m *Manager) GetPath() string {
	return m.configPath
}
