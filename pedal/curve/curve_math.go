//go:build !fastmath

package curve

import "math"

// mathLog10 computes log10(x) using the standard library.
func mathLog10(x float64) float64 {
	return math.Log10(x)
}

// mathPow10 computes 10^x using the standard library.
func mathPow10(x float64) float64 {
	return math.Pow(10, x)
}
