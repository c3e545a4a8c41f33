package hcl

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/speechtimer/internal/preset"
	"github.com/specialistvlad/speechtimer/internal/schema"
)

// errMissing marks a threshold attribute left out of the block; gohcl
// decodes it to a null expression rather than failing.
var errMissing = errors.New("missing")

// translatePreset evaluates the thresholds of a preset block and validates
// the result.
func (l *Loader) translatePreset(s *schema.Preset) (preset.Preset, error) {
	p := preset.Preset{Name: s.Name, Description: s.Description}

	fields := []struct {
		name string
		expr hcl.Expression
		dst  *int
	}{
		{"green", s.Green, &p.Green},
		{"yellow", s.Yellow, &p.Yellow},
		{"red", s.Red, &p.Red},
	}
	for _, f := range fields {
		seconds, err := l.evalSeconds(f.expr)
		if errors.Is(err, errMissing) {
			return preset.Preset{}, fmt.Errorf("preset %q: missing required argument %q", s.Name, f.name)
		}
		if err != nil {
			return preset.Preset{}, fmt.Errorf("preset %q: %s: %w", s.Name, f.name, err)
		}
		*f.dst = seconds
	}

	if err := preset.Validate(p); err != nil {
		return preset.Preset{}, fmt.Errorf("preset %q: %w", s.Name, err)
	}
	return p, nil
}

// evalSeconds evaluates expr and converts it to a whole number of seconds.
func (l *Loader) evalSeconds(expr hcl.Expression) (int, error) {
	val, diags := expr.Value(l.evalCtx)
	if diags.HasErrors() {
		return 0, diags
	}
	if val.IsNull() {
		return 0, errMissing
	}
	if !val.IsKnown() {
		return 0, fmt.Errorf("value must be a known number")
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("value must be a number: %w", err)
	}

	var seconds int
	if err := gocty.FromCtyValue(num, &seconds); err != nil {
		return 0, fmt.Errorf("value must be a whole number of seconds: %w", err)
	}
	return seconds, nil
}
