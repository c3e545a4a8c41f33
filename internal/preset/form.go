package preset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// MaxMinutes is the largest minutes value a Form accepts for any band.
const MaxMinutes = 99

// MaxSeconds bounds any threshold total. Seconds fields are otherwise
// unlimited, so this only guards the minutes*60+seconds arithmetic.
const MaxSeconds = math.MaxInt32

// Form holds the raw minutes/seconds fields of a custom preset.
type Form struct {
	GreenMin, GreenSec   int
	YellowMin, YellowSec int
	RedMin, RedSec       int
}

// FormFromThresholds builds a Form from three "M:SS" thresholds, keeping
// the minutes and seconds as written.
func FormFromThresholds(green, yellow, red string) (Form, error) {
	var f Form
	for _, v := range []struct {
		field    string
		text     string
		min, sec *int
	}{
		{"green", green, &f.GreenMin, &f.GreenSec},
		{"yellow", yellow, &f.YellowMin, &f.YellowSec},
		{"red", red, &f.RedMin, &f.RedSec},
	} {
		m, sec, err := ParseThresholdParts(v.text)
		if err != nil {
			return Form{}, fmt.Errorf("%s: %w", v.field, err)
		}
		*v.min, *v.sec = m, sec
	}
	return f, nil
}

// FormFromFields builds a Form from six text fields in the order
// green min, green sec, yellow min, yellow sec, red min, red sec. Missing or
// non-numeric fields become zero.
func FormFromFields(fields []string) Form {
	get := func(i int) int {
		if i >= len(fields) {
			return 0
		}
		return ParseField(fields[i])
	}
	return Form{
		GreenMin: get(0), GreenSec: get(1),
		YellowMin: get(2), YellowSec: get(3),
		RedMin: get(4), RedSec: get(5),
	}
}

// ParseField reads the leading integer of a form field, so "12abc" is 12 and
// "5.5" is 5. Text without a leading integer is zero. Values outside the int
// range saturate.
func ParseField(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	return n
}

// Preset validates the form and converts it into a preset named CustomName.
func (f Form) Preset() (Preset, error) {
	for _, v := range []int{f.GreenMin, f.GreenSec, f.YellowMin, f.YellowSec, f.RedMin, f.RedSec} {
		if v < 0 {
			return Preset{}, newValidationError("", ErrNegative)
		}
	}

	for _, v := range []struct {
		field string
		min   int
	}{{"green", f.GreenMin}, {"yellow", f.YellowMin}, {"red", f.RedMin}} {
		if v.min > MaxMinutes {
			return Preset{}, newValidationError(v.field, ErrMinutesRange)
		}
	}

	var totals [3]int
	for i, v := range []struct {
		field    string
		min, sec int
	}{{"green", f.GreenMin, f.GreenSec}, {"yellow", f.YellowMin, f.YellowSec}, {"red", f.RedMin, f.RedSec}} {
		total, ok := totalSeconds(v.min, v.sec)
		if !ok {
			return Preset{}, newValidationError(v.field, ErrTooLarge)
		}
		totals[i] = total
	}

	p := Preset{Name: CustomName, Green: totals[0], Yellow: totals[1], Red: totals[2]}

	if p.Green == 0 && p.Yellow == 0 && p.Red == 0 {
		return Preset{}, newValidationError("", ErrAllZero)
	}
	if p.Green >= p.Yellow || p.Yellow >= p.Red {
		return Preset{}, newValidationError("", ErrOrdering)
	}
	return p, nil
}
