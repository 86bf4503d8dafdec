package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// maxPow2 keeps pow2 results far from int overflow once multiplied into an
// extent.
const maxPow2 = 40

// pow2Func implements pow2(n) = 1 << n for extents such as [pow2(20)].
var pow2Func = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "exp", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var exp int
		if err := gocty.FromCtyValue(args[0], &exp); err != nil {
			return cty.UnknownVal(cty.Number), fmt.Errorf("pow2: %w", err)
		}
		if exp < 0 || exp > maxPow2 {
			return cty.UnknownVal(cty.Number), fmt.Errorf("pow2: exponent %d out of range [0, %d]", exp, maxPow2)
		}
		return cty.NumberIntVal(int64(1) << exp), nil
	},
})
