// Package analysis recovers per-step transfer curves from a calibration
// signal and its processed counterpart, and normalizes them.
package analysis

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-shaper-lut/internal/simdops"
)

var (
	// ErrInsufficientData is returned together with the curves when no
	// complete step block could be recovered.
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// ErrInvalidParameter is returned for non-positive step geometry.
	ErrInvalidParameter = errors.New("invalid analysis parameter")
)

// Curves holds the per-step mean amplitudes of the calibration input and
// the measured output. Both slices always have the same length.
type Curves struct {
	Input  []float64
	Output []float64
}

// Len returns the number of recovered steps.
func (c Curves) Len() int {
	return len(c.Input)
}

// Truncated reports whether fewer than stepCount steps were recovered.
func (c Curves) Truncated(stepCount int) bool {
	return c.Len() < stepCount
}

// Analyze averages each step block of input and measured. Block i spans
// samples [pad+i*samplesPerStep, pad+(i+1)*samplesPerStep) with
// pad = samplesPerStep, identically in both sequences. Analysis stops at the
// first block that does not fit inside both sequences, so the curves may be
// shorter than stepCount. When no block fits, the empty curves are returned
// with ErrInsufficientData.
func Analyze(input, measured []float64, stepCount, samplesPerStep int) (Curves, error) {
	if stepCount <= 0 || samplesPerStep <= 0 {
		return Curves{}, fmt.Errorf("%w: %d steps of %d samples", ErrInvalidParameter, stepCount, samplesPerStep)
	}

	pad := samplesPerStep
	available := min(len(input), len(measured))

	curves := Curves{
		Input:  make([]float64, 0, stepCount),
		Output: make([]float64, 0, stepCount),
	}
	for i := range stepCount {
		start := pad + i*samplesPerStep
		end := start + samplesPerStep
		if end > available {
			break
		}
		curves.Input = append(curves.Input, simdops.Mean(input[start:end]))
		curves.Output = append(curves.Output, simdops.Mean(measured[start:end]))
	}

	if curves.Len() == 0 {
		return curves, fmt.Errorf("%w: need at least %d samples, input has %d, measured has %d",
			ErrInsufficientData, pad+samplesPerStep, len(input), len(measured))
	}
	return curves, nil
}
