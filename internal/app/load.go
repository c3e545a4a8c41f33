package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/speechtimer/internal/config"
	"github.com/specialistvlad/speechtimer/internal/ctxlog"
	"github.com/specialistvlad/speechtimer/internal/preset"
)

// loadPresets returns the built-in presets merged with the preset library.
// Library presets replace built-ins of the same name.
func loadPresets(ctx context.Context, loader config.PresetLoader, path string) ([]preset.Preset, error) {
	logger := ctxlog.FromContext(ctx)
	builtins := preset.Builtins()

	if path == "" || loader == nil {
		logger.Debug("No preset library configured, using built-in presets.", "count", len(builtins))
		return builtins, nil
	}

	logger.Debug("Loading preset library...", "presets_path", path)
	library, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset library: %w", err)
	}

	merged := preset.Merge(builtins, library)
	logger.Info("Preset library loaded.", "library", len(library), "total", len(merged))
	return merged, nil
}

// selectPreset finds the preset the timer starts with.
func selectPreset(presets []preset.Preset, name string) (preset.Preset, error) {
	p, ok := preset.Lookup(presets, name)
	if !ok {
		return preset.Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}
