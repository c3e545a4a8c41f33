package hcl

import (
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/specialistvlad/speechtimer/internal/preset"
)

// minutesFunc converts a (possibly fractional) number of minutes to seconds.
var minutesFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "minutes", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		seconds := new(big.Float).Mul(args[0].AsBigFloat(), big.NewFloat(60))
		return cty.NumberVal(seconds), nil
	},
})

// mmssFunc parses "M:SS" into seconds.
var mmssFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "clock", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		seconds, err := preset.ParseThreshold(args[0].AsString())
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		return cty.NumberIntVal(int64(seconds)), nil
	},
})

// newEvalContext returns the evaluation context for threshold expressions.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"minutes": minutesFunc,
			"mmss":    mmssFunc,
		},
	}
}
