package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/speechtimer/internal/preset"
)

// FileName is the settings file looked up in the settings directory.
const FileName = "config.yaml"

// Settings are the persisted user preferences.
type Settings struct {
	TickInterval    time.Duration `yaml:"tick_interval"`
	DefaultPreset   string        `yaml:"default_preset"`
	Sound           bool          `yaml:"sound"`
	Volume          float64       `yaml:"volume"`
	PresetsPath     string        `yaml:"presets_path"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	HealthcheckPort int           `yaml:"healthcheck_port"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		TickInterval:    100 * time.Millisecond,
		DefaultPreset:   preset.DefaultName,
		Sound:           false,
		Volume:          0,
		PresetsPath:     "",
		LogLevel:        "info",
		LogFormat:       "text",
		HealthcheckPort: 0,
	}
}

// DefaultPath returns $HOME/.speechtimer/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".speechtimer", FileName), nil
}

// Load reads settings from path. A missing file yields DefaultSettings; keys
// absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating the directory if needed.
func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", s.TickInterval)
	}
	if s.Volume < -10 || s.Volume > 10 {
		return fmt.Errorf("volume must be between -10 and 10, got %v", s.Volume)
	}
	if s.HealthcheckPort < 0 || s.HealthcheckPort > 65535 {
		return fmt.Errorf("healthcheck_port out of range: %d", s.HealthcheckPort)
	}
	return nil
}
