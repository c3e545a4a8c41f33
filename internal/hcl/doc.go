// Package hcl provides the HCL implementation of config.PresetLoader. It
// parses preset library files, evaluates threshold expressions with a small
// set of go-cty functions, and translates the result into preset.Preset
// values.
//
// A library file looks like:
//
//	preset "Club Contest" {
//	  description = "Contest speeches, 5 to 7 minutes"
//	  green       = minutes(5)
//	  yellow      = mmss("6:00")
//	  red         = 7 * 60
//	}
package hcl
