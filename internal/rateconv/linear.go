// Package rateconv converts a decoded sample buffer to another sample rate
// so that a measured recording can be analyzed against the calibration
// timeline.
package rateconv

import (
	"errors"
	"fmt"
)

// ErrInvalidRate is returned for non-positive sample rates.
var ErrInvalidRate = errors.New("invalid sample rate")

// Linear resamples by 2-point linear interpolation. Output sample j sits at
// input position j*inRate/outRate, computed in integer arithmetic so that
// positions never drift over long buffers.
type Linear struct {
	inRate  int
	outRate int
}

// NewLinear creates a converter from inRate to outRate.
func NewLinear(inRate, outRate int) (*Linear, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz -> %d Hz", ErrInvalidRate, inRate, outRate)
	}
	return &Linear{inRate: inRate, outRate: outRate}, nil
}

// Ratio returns outRate/inRate.
func (l *Linear) Ratio() float64 {
	return float64(l.outRate) / float64(l.inRate)
}

// OutputLen returns the number of samples Process produces for n input
// samples: every output position up to and including the last input sample.
func (l *Linear) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)*l.outRate/l.inRate + 1
}

// Process returns input resampled to the output rate. The input is not
// modified; equal rates return a copy.
func (l *Linear) Process(input []float64) []float64 {
	if l.inRate == l.outRate {
		return append([]float64{}, input...)
	}

	output := make([]float64, l.OutputLen(len(input)))
	last := len(input) - 1
	for j := range output {
		num := j * l.inRate
		index := num / l.outRate
		if index >= last {
			output[j] = input[last]
			continue
		}
		// y = (1-x)*prev + x*next
		frac := float64(num%l.outRate) / float64(l.outRate)
		output[j] = (1-frac)*input[index] + frac*input[index+1]
	}
	return output
}
