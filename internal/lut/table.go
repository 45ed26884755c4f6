// Package lut turns a normalized transfer curve into a lookup table and
// serializes it as C-style source for interpolated playback.
package lut

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

// ErrInvalidExport is returned for tables that cannot be exported.
var ErrInvalidExport = errors.New("invalid LUT export")

// DefaultName is the identifier prefix used when none is given.
const DefaultName = "shaper"

// minTableSize is the smallest table the interpolation formula works on.
const minTableSize = 2

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Table is a lookup table over a uniform input axis of len(Values) points
// spanning [-1, 1].
type Table struct {
	Name   string
	Values []float64
}

// New validates values and returns a Table holding a copy of them. The name
// must be a C identifier; an empty name selects DefaultName.
func New(name string, values []float64) (*Table, error) {
	if name == "" {
		name = DefaultName
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if len(values) < minTableSize {
		return nil, fmt.Errorf("%w: %d entries, need at least %d", ErrInvalidExport, len(values), minTableSize)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: entry %d is %v", ErrInvalidExport, i, v)
		}
	}

	return &Table{
		Name:   name,
		Values: append([]float64(nil), values...),
	}, nil
}

// ValidateName checks that name can prefix the exported C identifiers.
func ValidateName(name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("%w: %q is not a valid identifier", ErrInvalidExport, name)
	}
	return nil
}

// Size returns the number of entries.
func (t *Table) Size() int {
	return len(t.Values)
}

// Scale returns (Size-1)/2, the factor mapping x+1 onto a table position.
func (t *Table) Scale() float64 {
	return float64(t.Size()-1) / 2.0
}

// Eval linearly interpolates the table at x. Inputs outside [-1, 1] are
// clamped, and x = 1 reads the end of the last segment. NaN yields NaN.
func (t *Table) Eval(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	x = math.Max(-1, math.Min(1, x))
	pos := (x + 1) * t.Scale()
	index := int(math.Floor(pos))
	if last := t.Size() - minTableSize; index > last {
		index = last
	}
	frac := pos - float64(index)
	return t.Values[index]*(1-frac) + t.Values[index+1]*frac
}

// EvalVector evaluates the table at each element of xs.
func (t *Table) EvalVector(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = t.Eval(x)
	}
	return out
}
