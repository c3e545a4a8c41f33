package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/speechtimer/internal/ctxlog"
	"github.com/specialistvlad/speechtimer/internal/fsutil"
	"github.com/specialistvlad/speechtimer/internal/preset"
	"github.com/specialistvlad/speechtimer/internal/schema"
)

// Extension is the file extension of preset library files.
const Extension = ".hcl"

// Loader is the HCL implementation of config.PresetLoader.
type Loader struct {
	evalCtx *hcl.EvalContext
}

// NewLoader creates a Loader with the threshold functions installed.
func NewLoader() *Loader {
	return &Loader{evalCtx: newEvalContext()}
}

// Load parses every .hcl file under paths. Empty paths are skipped. Preset
// names must be unique across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]preset.Preset, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, Extension)
		if err != nil {
			return nil, fmt.Errorf("failed to find preset files in %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Preset files discovered.", "count", len(files))

	parser := hclparse.NewParser()
	var presets []preset.Preset
	seen := make(map[string]string)

	for _, file := range files {
		filePresets, err := l.loadFile(parser, file)
		if err != nil {
			return nil, err
		}
		for _, p := range filePresets {
			key := strings.ToLower(p.Name)
			if first, dup := seen[key]; dup {
				return nil, fmt.Errorf("duplicate preset %q in %s, first defined in %s", p.Name, file, first)
			}
			seen[key] = file
			presets = append(presets, p)
		}
		logger.Debug("Preset file loaded.", "file", file, "presets", len(filePresets))
	}

	return presets, nil
}

func (l *Loader) loadFile(parser *hclparse.Parser, file string) ([]preset.Preset, error) {
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse preset file %s: %w", file, diags)
	}

	var parsed schema.PresetFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode preset file %s: %w", file, diags)
	}

	out := make([]preset.Preset, 0, len(parsed.Presets))
	for _, block := range parsed.Presets {
		p, err := l.translatePreset(block)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		out = append(out, p)
	}
	return out, nil
}
