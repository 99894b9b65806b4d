package curve_test

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/pedal/curve"
)

func ExampleMapRange() {
	// Map a pot position onto a delay time with low-end emphasis.
	ms := curve.MapRange(0.5, curve.Log10, 20, 1000)
	fmt.Printf("%.1f ms\n", ms)
	// Output:
	// 745.6 ms
}

func ExampleMap() {
	fmt.Printf("%.4f\n", curve.Map(0.25, curve.Exp10))
	// Output:
	// 0.0865
}
