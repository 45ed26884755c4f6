package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormalizeAffine maps curve onto [-1, 1] with y' = 2*(y-min)/(max-min) - 1.
// The minimum lands exactly on -1 and the maximum exactly on +1. A constant
// curve is returned unchanged. The input is not modified.
//
// Used for the calibration curve, which spans the full test range by
// construction.
func NormalizeAffine(curve []float64) []float64 {
	out := append([]float64(nil), curve...)
	if len(out) == 0 {
		return out
	}

	ymin, ymax := floats.Min(out), floats.Max(out)
	if ymax == ymin {
		return out
	}

	span := ymax - ymin
	for i, y := range out {
		out[i] = 2*(y-ymin)/span - 1
	}
	// Pin the extremes against rounding in the division.
	out[floats.MinIdx(curve)] = -1
	out[floats.MaxIdx(curve)] = 1
	return out
}

// NormalizePeak scales curve by 1/max|y|, preserving sign and zero
// crossings. The result peaks at magnitude 1 but need not span [-1, 1]. An
// all-zero curve is returned unchanged. The input is not modified.
//
// Used for the measured curve, whose level depends on the unknown process.
func NormalizePeak(curve []float64) []float64 {
	out := append([]float64(nil), curve...)
	if len(out) == 0 {
		return out
	}

	peak := PeakMagnitude(out)
	if peak == 0 {
		return out
	}
	// Divide rather than multiply by 1/peak so the peak maps to exactly 1.
	for i, y := range out {
		out[i] = y / peak
	}
	return out
}

// PeakMagnitude returns max|y| over curve, or 0 for an empty curve.
func PeakMagnitude(curve []float64) float64 {
	var peak float64
	for _, y := range curve {
		peak = math.Max(peak, math.Abs(y))
	}
	return peak
}
