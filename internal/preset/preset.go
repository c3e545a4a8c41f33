package preset

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultName is the preset a fresh timer starts with.
const DefaultName = "Ice Breaker"

// CustomName is the name given to presets built from a Form.
const CustomName = "Custom"

// Preset is a named set of signal thresholds, in seconds from the start of
// the speech.
type Preset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Green       int    `yaml:"green"`
	Yellow      int    `yaml:"yellow"`
	Red         int    `yaml:"red"`
}

// String renders the preset the way the preset list shows it, e.g.
// "Ice Breaker (4:00 - 5:00 - 6:00)".
func (p Preset) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Range())
}

// Range renders the three thresholds as "M:SS - M:SS - M:SS".
func (p Preset) Range() string {
	return fmt.Sprintf("%s - %s - %s", FormatThreshold(p.Green), FormatThreshold(p.Yellow), FormatThreshold(p.Red))
}

// builtins is the fixed preset table. The entries are trusted and are not
// passed through Validate.
var builtins = []Preset{
	{Name: "Ice Breaker", Green: 4 * 60, Yellow: 5 * 60, Red: 6 * 60},
	{Name: "Standard Speech", Green: 5 * 60, Yellow: 6 * 60, Red: 7 * 60},
	{Name: "Table Topics", Green: 1 * 60, Yellow: 90, Red: 2 * 60},
	{Name: "Evaluation", Green: 2 * 60, Yellow: 150, Red: 3 * 60},
	{Name: "1 Minute", Green: 30, Yellow: 45, Red: 1 * 60},
}

// Builtins returns a copy of the built-in preset table in display order.
func Builtins() []Preset {
	out := make([]Preset, len(builtins))
	copy(out, builtins)
	return out
}

// Default returns the preset a new timer starts with.
func Default() Preset {
	return builtins[0]
}

// Lookup finds a preset by name, ignoring case and surrounding spaces.
func Lookup(presets []Preset, name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Validate checks the ordering and non-negativity invariant of p.
func Validate(p Preset) error {
	switch {
	case p.Green < 0:
		return newValidationError("green", ErrNegative)
	case p.Yellow < 0:
		return newValidationError("yellow", ErrNegative)
	case p.Red < 0:
		return newValidationError("red", ErrNegative)
	case p.Green >= p.Yellow:
		return newValidationError("yellow", ErrOrdering)
	case p.Yellow >= p.Red:
		return newValidationError("red", ErrOrdering)
	}
	return nil
}

// FormatThreshold renders seconds as "M:SS" with unpadded minutes.
func FormatThreshold(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ParseThreshold parses "M:SS" (or a bare number of seconds) into seconds.
// Seconds after the colon are not limited to 59.
func ParseThreshold(s string) (int, error) {
	minutes, seconds, err := ParseThresholdParts(s)
	if err != nil {
		return 0, err
	}
	total, ok := totalSeconds(minutes, seconds)
	if !ok {
		return 0, fmt.Errorf("parse threshold %q: %w", s, ErrTooLarge)
	}
	return total, nil
}

// ParseThresholdParts splits "M:SS" into its minutes and seconds without
// carrying seconds over 59 into minutes. A bare number is all seconds.
func ParseThresholdParts(s string) (minutes, seconds int, err error) {
	s = strings.TrimSpace(s)
	minStr, secStr, found := strings.Cut(s, ":")
	if !found {
		secStr, minStr = minStr, "0"
	}
	minutes, err = strconv.Atoi(minStr)
	if err != nil {
		return 0, 0, fmt.Errorf("parse threshold %q: bad minutes: %w", s, err)
	}
	seconds, err = strconv.Atoi(secStr)
	if err != nil {
		return 0, 0, fmt.Errorf("parse threshold %q: bad seconds: %w", s, err)
	}
	if minutes < 0 || seconds < 0 {
		return 0, 0, fmt.Errorf("parse threshold %q: %w", s, ErrNegative)
	}
	return minutes, seconds, nil
}

// totalSeconds returns minutes*60+seconds for non-negative inputs and
// reports false when the sum exceeds MaxSeconds.
func totalSeconds(minutes, seconds int) (int, bool) {
	if minutes > MaxSeconds/60 {
		return 0, false
	}
	m := minutes * 60
	if seconds > MaxSeconds-m {
		return 0, false
	}
	return m + seconds, true
}

// Merge returns base followed by extra. An extra preset whose name matches an
// earlier one (ignoring case) replaces it in place.
func Merge(base, extra []Preset) []Preset {
	out := make([]Preset, 0, len(base)+len(extra))
	out = append(out, base...)
	for _, p := range extra {
		replaced := false
		for i := range out {
			if strings.EqualFold(out[i].Name, p.Name) {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out
}
