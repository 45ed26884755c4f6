package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a pair of normalized curves.
type Summary struct {
	Steps int

	OutputMin  float64
	OutputMax  float64
	OutputPeak float64

	// Monotonic is true when the output never decreases from step to step.
	Monotonic bool

	// ResidualMean and ResidualStdDev describe output - input per step,
	// i.e. how far the process departs from identity.
	ResidualMean   float64
	ResidualStdDev float64

	// RMSError is the root mean square of the residual.
	RMSError float64
}

// Summarize computes a Summary. Curves of unequal length are compared over
// their common prefix; empty curves yield a zero Summary.
func Summarize(input, output []float64) Summary {
	n := min(len(input), len(output))
	if n == 0 {
		return Summary{}
	}
	input, output = input[:n], output[:n]

	residual := make([]float64, n)
	floats.SubTo(residual, output, input)
	mean, std := stat.MeanStdDev(residual, nil)
	if n == 1 {
		std = 0
	}

	monotonic := true
	for i := 1; i < n; i++ {
		if output[i] < output[i-1] {
			monotonic = false
			break
		}
	}

	return Summary{
		Steps:          n,
		OutputMin:      floats.Min(output),
		OutputMax:      floats.Max(output),
		OutputPeak:     PeakMagnitude(output),
		Monotonic:      monotonic,
		ResidualMean:   mean,
		ResidualStdDev: std,
		RMSError:       floats.Distance(output, input, 2) / math.Sqrt(float64(n)),
	}
}
