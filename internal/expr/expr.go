// Package expr parses and evaluates reference-curve expressions such as
// "tanh(3*x)" or "clip(1.5*x)".
//
// The language is deliberately small: numbers, the variable x, the constants
// pi and e, unary + and -, binary + - * / and ^ (right associative),
// parentheses, and calls to a fixed set of math functions. Expressions are
// compiled to a tree once and evaluated without any reflection or host code.
package expr

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrSyntax is returned for malformed expressions.
	ErrSyntax = errors.New("syntax error")

	// ErrUnknownFunction is returned for calls to functions outside the builtin set.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrUnknownIdentifier is returned for names other than x, pi and e.
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrArity is returned when a builtin is called with the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
)

// Expr is a compiled expression of one variable x.
type Expr struct {
	src  string
	root node
}

// Parse compiles src.
func Parse(src string) (*Expr, error) {
	p := &parser{input: src}
	if p.peek() == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	root, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.peek() != 0 {
		return nil, p.unexpected()
	}

	return &Expr{src: strings.TrimSpace(src), root: root}, nil
}

// MustParse is like Parse but panics on error. Intended for constant
// expressions in tests and examples.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval evaluates the expression at x. Domain errors follow IEEE 754, so
// log(-1) is NaN and 1/0 is +Inf.
func (e *Expr) Eval(x float64) float64 {
	return e.root.eval(x)
}

// EvalVector evaluates the expression at every element of xs.
func (e *Expr) EvalVector(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = e.root.eval(x)
	}
	return out
}

// String returns the source the expression was parsed from.
func (e *Expr) String() string {
	return e.src
}

type node interface {
	eval(x float64) float64
}

type constant float64

func (c constant) eval(float64) float64 { return float64(c) }

type variable struct{}

func (variable) eval(x float64) float64 { return x }

type negate struct{ arg node }

func (n negate) eval(x float64) float64 { return -n.arg.eval(x) }

type binary struct {
	op          byte
	left, right node
}

func (b binary) eval(x float64) float64 {
	l, r := b.left.eval(x), b.right.eval(x)
	switch b.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	default:
		return math.Pow(l, r)
	}
}

type call struct {
	fn   func(args []float64) float64
	args []node
}

func (c call) eval(x float64) float64 {
	var buf [3]float64
	vals := buf[:len(c.args)]
	for i, a := range c.args {
		vals[i] = a.eval(x)
	}
	return c.fn(vals)
}
