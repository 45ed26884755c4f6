// Package calib builds the stepped calibration signal used to probe an
// unknown waveshaper and writes it as a mono PCM WAV file.
package calib

import (
	"errors"
	"fmt"
	"math/bits"
	"time"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidParameter is returned for plans that cannot be generated.
var ErrInvalidParameter = errors.New("invalid calibration parameter")

// Plan defines a calibration signal: StepCount evenly spaced levels over
// [-1, 1], each held for SamplesPerStep samples, framed by one pad block on
// either side.
type Plan struct {
	StepCount      int
	SamplesPerStep int
	BitDepth       int
	SampleRate     int

	// relaxed allows non-production step sizes; set only by NewTestPlan.
	relaxed bool
}

// NewPlan returns a production plan with the fixed step length and rate.
func NewPlan(stepCount, bitDepth int) Plan {
	return Plan{
		StepCount:      stepCount,
		SamplesPerStep: SamplesPerStep,
		BitDepth:       bitDepth,
		SampleRate:     SampleRate,
	}
}

// DefaultPlan returns a 4096-step, 32-bit production plan.
func DefaultPlan() Plan {
	return NewPlan(DefaultStepCount, DefaultBitDepth)
}

// NewTestPlan returns a plan that skips the production limits on step count,
// step length and sample rate. Bit depth is still validated.
func NewTestPlan(stepCount, samplesPerStep, bitDepth int) Plan {
	return Plan{
		StepCount:      stepCount,
		SamplesPerStep: samplesPerStep,
		BitDepth:       bitDepth,
		SampleRate:     SampleRate,
		relaxed:        true,
	}
}

// Validate reports whether the plan can be generated.
func (p Plan) Validate() error {
	if p.BitDepth != BitDepth16 && p.BitDepth != BitDepth32 {
		return fmt.Errorf("%w: bit depth %d (want 16 or 32)", ErrInvalidParameter, p.BitDepth)
	}

	if p.relaxed {
		if p.StepCount < minTestStepCount {
			return fmt.Errorf("%w: step count %d", ErrInvalidParameter, p.StepCount)
		}
		if p.SamplesPerStep < 1 {
			return fmt.Errorf("%w: samples per step %d", ErrInvalidParameter, p.SamplesPerStep)
		}
		return nil
	}

	if p.StepCount < MinStepCount || p.StepCount > MaxStepCount || bits.OnesCount(uint(p.StepCount)) != 1 {
		return fmt.Errorf("%w: step count %d (want a power of two in [%d, %d])",
			ErrInvalidParameter, p.StepCount, MinStepCount, MaxStepCount)
	}
	if p.SamplesPerStep != SamplesPerStep {
		return fmt.Errorf("%w: samples per step %d (want %d)", ErrInvalidParameter, p.SamplesPerStep, SamplesPerStep)
	}
	if p.SampleRate != SampleRate {
		return fmt.Errorf("%w: sample rate %d (want %d)", ErrInvalidParameter, p.SampleRate, SampleRate)
	}
	return nil
}

// Levels returns the StepCount calibration amplitudes in ascending order.
// The first value is exactly -1 and the last exactly 1.
func (p Plan) Levels() []float64 {
	if p.StepCount < minTestStepCount {
		return nil
	}
	levels := floats.Span(make([]float64, p.StepCount), levelMin, levelMax)
	// Span accumulates step*i, which can miss the upper endpoint by an ulp.
	levels[len(levels)-1] = levelMax
	return levels
}

// FrameCount returns the total number of frames in the generated signal.
func (p Plan) FrameCount() int {
	return (p.StepCount + 2) * p.SamplesPerStep
}

// Duration returns the playback length of the generated signal.
func (p Plan) Duration() time.Duration {
	if p.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(p.FrameCount()) / float64(p.SampleRate) * float64(time.Second))
}

// Samples returns the full calibration sequence: a pad block holding the
// first level, one block per level in ascending order, and a pad block
// holding the last level.
func (p Plan) Samples() []float64 {
	levels := p.Levels()
	if levels == nil || p.SamplesPerStep < 1 {
		return nil
	}

	out := make([]float64, 0, p.FrameCount())
	out = appendBlock(out, levels[0], p.SamplesPerStep)
	for _, level := range levels {
		out = appendBlock(out, level, p.SamplesPerStep)
	}
	out = appendBlock(out, levels[len(levels)-1], p.SamplesPerStep)
	return out
}

func appendBlock(dst []float64, value float64, n int) []float64 {
	for range n {
		dst = append(dst, value)
	}
	return dst
}
