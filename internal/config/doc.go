// Package config holds the user-editable settings of the timer and the
// format-agnostic interface for loading preset libraries.
//
// Settings live in a YAML file (config.yaml). Preset libraries are loaded
// through PresetLoader; the HCL implementation lives in the hcl package so
// that nothing else depends on a file format.
package config
