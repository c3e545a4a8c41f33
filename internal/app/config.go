package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/speechtimer/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PresetsPath string // hcl preset library, file or directory
	Preset      string // initially selected preset

	TickInterval time.Duration
	Sound        bool
	Volume       float64
	Plain        bool // uncolored, line-per-change output

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// ConfigFromSettings converts persisted settings into an app configuration.
func ConfigFromSettings(s *config.Settings) Config {
	return Config{
		PresetsPath:     s.PresetsPath,
		Preset:          s.DefaultPreset,
		TickInterval:    s.TickInterval,
		Sound:           s.Sound,
		Volume:          s.Volume,
		LogFormat:       s.LogFormat,
		LogLevel:        s.LogLevel,
		HealthcheckPort: s.HealthcheckPort,
	}
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.TickInterval <= 0 {
		return nil, errors.New("tick interval must be positive")
	}
	if cfg.Preset == "" {
		return nil, errors.New("preset is a required configuration field and cannot be empty")
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck-port %d", cfg.HealthcheckPort)
	}
	if cfg.Volume < -10 || cfg.Volume > 10 {
		return nil, fmt.Errorf("invalid volume %v: must be between -10 and 10", cfg.Volume)
	}

	return &cfg, nil
}
