// Package simhw provides a scripted in-memory hardware implementation for
// tests and the demo command. Digital inputs idle high (pull-up wiring), the
// clock only moves when Advance is called.
package simhw

import "github.com/cwbudde/algo-pedal/pedal/hal"

// Sim implements hal.Hardware with settable pin state and a manual clock.
// It is not safe for concurrent use; tests drive it from a single goroutine.
type Sim struct {
	now     uint32
	analog  map[uint8]float64
	digital map[uint8]bool
	leds    map[uint8]bool
}

var _ hal.Hardware = (*Sim)(nil)

// New returns a Sim at t=0 with all digital pins pulled high and all analog
// pins at zero.
func New() *Sim {
	return &Sim{
		analog:  make(map[uint8]float64),
		digital: make(map[uint8]bool),
		leds:    make(map[uint8]bool),
	}
}

// ReadRawAnalog returns the scripted normalized value for pin.
func (s *Sim) ReadRawAnalog(pin uint8) float64 {
	return s.analog[pin]
}

// ReadRawDigital returns the scripted electrical level for pin. Pins that
// were never set read high, matching pulled-up inputs.
func (s *Sim) ReadRawDigital(pin uint8) bool {
	level, ok := s.digital[pin]
	if !ok {
		return true
	}
	return level
}

// WriteDigital records an output level (LED drive).
func (s *Sim) WriteDigital(pin uint8, level bool) {
	s.leds[pin] = level
}

// NowMillis returns the simulated clock.
func (s *Sim) NowMillis() uint32 {
	return s.now
}

// Advance moves the simulated clock forward by ms.
func (s *Sim) Advance(ms uint32) {
	s.now += ms
}

// SetNow jumps the simulated clock to an absolute value. Useful for
// exercising counter wraparound.
func (s *Sim) SetNow(ms uint32) {
	s.now = ms
}

// SetAnalog scripts the normalized value returned for an analog pin.
func (s *Sim) SetAnalog(pin uint8, v float64) {
	s.analog[pin] = v
}

// SetDigital scripts the electrical level of a digital pin.
func (s *Sim) SetDigital(pin uint8, level bool) {
	s.digital[pin] = level
}

// Press pulls a pulled-up input pin low (switch closed).
func (s *Sim) Press(pin uint8) {
	s.digital[pin] = false
}

// Release lets a pulled-up input pin float high again (switch open).
func (s *Sim) Release(pin uint8) {
	s.digital[pin] = true
}

// LED reports the last level written to an output pin.
func (s *Sim) LED(pin uint8) bool {
	return s.leds[pin]
}
