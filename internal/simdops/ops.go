// Package simdops exposes the SIMD reductions used by the step analyzer.
// Samples are decoded to float64 throughout, so only float64 kernels are
// wired.
package simdops

import (
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f64"
)

// Sum returns the sum of all elements of a.
func Sum(a []float64) float64 {
	return f64.Sum(a)
}

// Mean returns the arithmetic mean of a, or 0 for an empty slice.
func Mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return f64.Sum(a) / float64(len(a))
}

// Info describes the SIMD instruction set selected at runtime.
func Info() string {
	return cpu.Info()
}
