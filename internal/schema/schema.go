// Package schema holds the gohcl decoding targets for preset library files.
package schema

import "github.com/hashicorp/hcl/v2"

// Preset represents a `preset` block. Thresholds are kept as expressions so
// they can be evaluated with the loader's functions, e.g. minutes(5).
type Preset struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Green       hcl.Expression `hcl:"green"`
	Yellow      hcl.Expression `hcl:"yellow"`
	Red         hcl.Expression `hcl:"red"`
}

// PresetFile is the top-level structure of a preset library file.
type PresetFile struct {
	Presets []*Preset `hcl:"preset,block"`
	Body    hcl.Body  `hcl:",remain"`
}
