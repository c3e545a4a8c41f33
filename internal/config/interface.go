package config

import (
	"context"

	"github.com/specialistvlad/speechtimer/internal/preset"
)

// PresetLoader is the interface for a format-specific preset library loader.
type PresetLoader interface {
	// Load reads every preset file found under the given paths. Presets
	// that break the preset invariants are reported as errors, not skipped.
	Load(ctx context.Context, paths ...string) ([]preset.Preset, error)
}
