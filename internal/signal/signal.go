// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package signal maps elapsed speaking time to the green/yellow/red timing
// bands of a preset.
package signal

import "github.com/specialistvlad/speechtimer/internal/preset"

// Signal is the current timing band. Bands are ordered, so a later band
// compares greater than an earlier one.
type Signal int

const (
	None Signal = iota
	Green
	Yellow
	Red
)

var names = [...]string{
	None:   "none",
	Green:  "green",
	Yellow: "yellow",
	Red:    "red",
}

func (s Signal) String() string {
	if s < None || s > Red {
		return "unknown"
	}
	return names[s]
}

// Title returns the band name with a leading capital, e.g. "Yellow".
func (s Signal) Title() string {
	switch s {
	case Green:
		return "Green"
	case Yellow:
		return "Yellow"
	case Red:
		return "Red"
	default:
		return "None"
	}
}

// ToneCount is the number of beeps announcing a transition into s.
func (s Signal) ToneCount() int {
	switch s {
	case Green:
		return 1
	case Yellow:
		return 2
	case Red:
		return 3
	default:
		return 0
	}
}

// All lists the bands a timer can show, excluding None.
func All() []Signal {
	return []Signal{Green, Yellow, Red}
}

// Evaluate returns the highest band whose threshold elapsedSeconds has
// reached. Thresholds are inclusive.
func Evaluate(p preset.Preset, elapsedSeconds float64) Signal {
	switch {
	case elapsedSeconds >= float64(p.Red):
		return Red
	case elapsedSeconds >= float64(p.Yellow):
		return Yellow
	case elapsedSeconds >= float64(p.Green):
		return Green
	default:
		return None
	}
}
