package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 0.5, 96)
	RequireFinite(t, s)

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}
}

func TestDC(t *testing.T) {
	d := DC(0.25, 4)
	RequireSliceNearlyEqual(t, d, []float64{0.25, 0.25, 0.25, 0.25}, 0)
}
