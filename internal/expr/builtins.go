package expr

import (
	"fmt"
	"math"
)

type builtin struct {
	minArgs, maxArgs int
	fn               func(args []float64) float64
}

func unary(f func(float64) float64) builtin {
	return builtin{
		minArgs: 1,
		maxArgs: 1,
		fn:      func(args []float64) float64 { return f(args[0]) },
	}
}

var builtins = map[string]builtin{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tanh": unary(math.Tanh),
	"abs":  unary(math.Abs),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"clip": {minArgs: 1, maxArgs: 3, fn: clip},
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// clip clamps args[0] to [-1, 1], or to [args[1], args[2]] when bounds are given.
func clip(args []float64) float64 {
	lo, hi := -1.0, 1.0
	if len(args) == 3 {
		lo, hi = args[1], args[2]
	}
	return math.Max(lo, math.Min(hi, args[0]))
}

// arityOK reports whether n arguments are valid for b. clip takes one or
// three, never two.
func (b builtin) arityOK(n int) bool {
	if n < b.minArgs || n > b.maxArgs {
		return false
	}
	return b.maxArgs != 3 || n != 2
}

func (b builtin) arityText() string {
	switch {
	case b.minArgs == b.maxArgs:
		return fmt.Sprintf("%d argument(s)", b.minArgs)
	case b.maxArgs == 3:
		return fmt.Sprintf("%d or %d arguments", b.minArgs, b.maxArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", b.minArgs, b.maxArgs)
	}
}
