// Package curve provides the response curves used to map normalized control
// inputs (pots, expression sources) onto parameter ranges.
//
// All curves are total on [0, 1]: inputs are clamped before shaping, the
// endpoints are fixed (Map(0) = 0, Map(1) = 1) and every curve is monotone
// non-decreasing.
package curve

import "github.com/cwbudde/algo-pedal/pedal/core"

// Type identifies a response curve.
type Type int

const (
	// Linear is the identity mapping.
	Linear Type = iota
	// Log10 expands resolution near zero: log10(1 + 9v).
	Log10
	// Exp10 expands resolution near one: (10^v - 1) / 9.
	Exp10
)

// String returns the curve name.
func (t Type) String() string {
	switch t {
	case Linear:
		return "linear"
	case Log10:
		return "log10"
	case Exp10:
		return "exp10"
	default:
		return "unknown"
	}
}

// Map shapes a normalized input along the given curve. The input is clamped
// to [0, 1] first; unknown curve values fall back to Linear.
func Map(v float64, c Type) float64 {
	v = core.Clamp(v, 0, 1)

	switch c {
	case Log10:
		return mathLog10(1 + 9*v)
	case Exp10:
		return (mathPow10(v) - 1) / 9
	default:
		return v
	}
}

// MapRange shapes a normalized input along the given curve and rescales it
// onto [min, max]. This is the entry point used by mapped pot reads.
func MapRange(v float64, c Type, min, max float64) float64 {
	return min + (max-min)*Map(v, c)
}
