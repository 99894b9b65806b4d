// Package hal declares the hardware capabilities the control plane consumes.
//
// The concrete implementations live outside this module: a board support
// package on the target, or internal/simhw in tests. Analog reads are
// normalized by the platform's full-scale ADC code before they cross this
// boundary, and the clock is a free-running millisecond counter that is
// allowed to wrap; all timing arithmetic on it is uint32 subtraction.
package hal

// AnalogReader samples an analog pin and returns a normalized value in
// [0, 1].
type AnalogReader interface {
	ReadRawAnalog(pin uint8) float64
}

// DigitalReader samples the raw electrical level of a digital pin. No
// debouncing or polarity handling happens at this layer.
type DigitalReader interface {
	ReadRawDigital(pin uint8) bool
}

// DigitalWriter drives a digital output pin (LEDs).
type DigitalWriter interface {
	WriteDigital(pin uint8, level bool)
}

// Clock provides a monotonic millisecond counter.
type Clock interface {
	NowMillis() uint32
}

// Hardware aggregates the capabilities a full board needs.
type Hardware interface {
	AnalogReader
	DigitalReader
	DigitalWriter
	Clock
}
