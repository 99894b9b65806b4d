package control

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/pedal/core"
	"github.com/cwbudde/algo-pedal/pedal/curve"
	"github.com/cwbudde/algo-pedal/pedal/hal"
)

const defaultTickIntervalMs = 1.0

// Inputs is the hardware surface the control service consumes.
type Inputs interface {
	hal.AnalogReader
	hal.DigitalReader
	hal.Clock
}

// LevelSink receives master-level updates computed from a bound pot. The
// audio bridge implements it with an atomic scalar.
type LevelSink interface {
	SetLevel(v float64)
}

// Option mutates service construction parameters.
type Option func(*config) error

type config struct {
	potPins    []uint8
	togglePins []uint8
	switchPins []uint8
	timing     Timing
	tickMs     float64
	sink       LevelSink
}

func defaultConfig() config {
	return config{
		timing: DefaultTiming(),
		tickMs: defaultTickIntervalMs,
	}
}

// WithPotPins sets the analog pin for each pot channel, in channel order.
func WithPotPins(pins ...uint8) Option {
	return func(cfg *config) error {
		cfg.potPins = append([]uint8(nil), pins...)
		return nil
	}
}

// WithTogglePins sets the digital pin for each toggle channel.
func WithTogglePins(pins ...uint8) Option {
	return func(cfg *config) error {
		cfg.togglePins = append([]uint8(nil), pins...)
		return nil
	}
}

// WithFootswitchPins sets the digital pin for each footswitch channel.
func WithFootswitchPins(pins ...uint8) Option {
	return func(cfg *config) error {
		cfg.switchPins = append([]uint8(nil), pins...)
		return nil
	}
}

// WithTiming sets the footswitch gesture thresholds.
func WithTiming(t Timing) Option {
	return func(cfg *config) error {
		cfg.timing = t
		return nil
	}
}

// WithTickIntervalMs sets the nominal Tick period used as dt by pot
// smoothing.
func WithTickIntervalMs(ms float64) Option {
	return func(cfg *config) error {
		if ms <= 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("control tick interval must be > 0 and finite: %f", ms)
		}
		cfg.tickMs = ms
		return nil
	}
}

// WithLevelSink registers the receiver for bound master-level updates.
func WithLevelSink(sink LevelSink) Option {
	return func(cfg *config) error {
		cfg.sink = sink
		return nil
	}
}

// Service owns every control-input channel and advances them once per Tick.
// It must be driven from a single goroutine; none of its state is shared
// with the audio context except through the LevelSink.
type Service struct {
	in hal.AnalogReader

	dig   hal.DigitalReader
	clock hal.Clock

	potPins    []uint8
	togglePins []uint8
	switchPins []uint8

	timing Timing
	tickMs float64

	switches []footswitch
	pots     []pot

	sink       LevelSink
	levelPot   int
	levelCurve curve.Type
	levelBound bool
}

// New builds a Service reading from the given hardware.
func New(in Inputs, opts ...Option) (*Service, error) {
	if in == nil {
		return nil, fmt.Errorf("control: hardware inputs must not be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	s := &Service{
		in:         in,
		dig:        in,
		clock:      in,
		potPins:    cfg.potPins,
		togglePins: cfg.togglePins,
		switchPins: cfg.switchPins,
		timing:     cfg.timing,
		tickMs:     cfg.tickMs,
		switches:   make([]footswitch, len(cfg.switchPins)),
		pots:       make([]pot, len(cfg.potPins)),
		sink:       cfg.sink,
	}

	// Backdate the debounce windows so a transition right at t=0 is
	// accepted instead of waiting out one debounce period.
	now := in.NowMillis()
	for i := range s.switches {
		s.switches[i].lastChange = now - s.timing.DebounceMs
		s.switches[i].lastPress = now
	}

	return s, nil
}

// Tick advances all footswitch machines by one step and, when a master-level
// binding is active, recomputes and pushes the level. Control context only.
func (s *Service) Tick() {
	now := s.clock.NowMillis()

	for i := range s.switches {
		// Pulled-up inputs: electrically low means pressed.
		raw := !s.dig.ReadRawDigital(s.switchPins[i])
		s.switches[i].service(raw, now, s.timing)
	}

	if s.levelBound && s.sink != nil {
		s.sink.SetLevel(curve.Map(s.rawPot(s.levelPot), s.levelCurve))
	}
}

// Pressed reports the debounced level of a footswitch. Idempotent.
// Out-of-range indices read as not pressed.
func (s *Service) Pressed(i int) bool {
	if i < 0 || i >= len(s.switches) {
		return false
	}
	return s.switches[i].pressed
}

// Released reports the inverse of Pressed. Idempotent.
func (s *Service) Released(i int) bool {
	return !s.Pressed(i)
}

// LongPressed reports and clears the long-press latch: true exactly once per
// gesture. Out-of-range indices read false.
func (s *Service) LongPressed(i int) bool {
	if i < 0 || i >= len(s.switches) {
		return false
	}
	return s.switches[i].takeLong()
}

// DoublePressed reports and clears the double-press latch.
func (s *Service) DoublePressed(i int) bool {
	if i < 0 || i >= len(s.switches) {
		return false
	}
	return s.switches[i].takeDouble()
}

// DoubleLongPressed reports and clears the double-long-press latch.
func (s *Service) DoubleLongPressed(i int) bool {
	if i < 0 || i >= len(s.switches) {
		return false
	}
	return s.switches[i].takeDoubleLong()
}

// ReadPot samples a pot and returns its normalized position. No filtering.
// Out-of-range indices read 0.
func (s *Service) ReadPot(i int) float64 {
	if i < 0 || i >= len(s.potPins) {
		return 0
	}
	return s.rawPot(i)
}

// ReadPotMapped samples a pot and maps it onto [min, max] along the given
// curve. Stateless: every call takes a fresh sample.
func (s *Service) ReadPotMapped(i int, min, max float64, c curve.Type) float64 {
	return curve.MapRange(s.ReadPot(i), c, min, max)
}

// ReadPotSmoothed samples a pot through the channel's one-pole filter with
// the given time constant in milliseconds. smoothMs <= 0 is passthrough.
// The filter state persists across calls, so this must only be used from
// the control context.
func (s *Service) ReadPotSmoothed(i int, smoothMs float64) float64 {
	if i < 0 || i >= len(s.pots) {
		return 0
	}
	return s.pots[i].smooth(s.rawPot(i), smoothMs, s.tickMs)
}

// ReadToggle reports whether a toggle is ON (pulled-up input, low = on).
// Out-of-range indices read false.
func (s *Service) ReadToggle(i int) bool {
	if i < 0 || i >= len(s.togglePins) {
		return false
	}
	return !s.dig.ReadRawDigital(s.togglePins[i])
}

// SetTiming replaces all gesture thresholds.
func (s *Service) SetTiming(t Timing) { s.timing = t }

// SetDebounce sets the debounce duration in milliseconds.
func (s *Service) SetDebounce(ms uint32) { s.timing.DebounceMs = ms }

// SetLongPress sets the long-press threshold in milliseconds.
func (s *Service) SetLongPress(ms uint32) { s.timing.LongPressMs = ms }

// SetMultiClickGap sets the double-click gap in milliseconds.
func (s *Service) SetMultiClickGap(ms uint32) { s.timing.MultiClickGapMs = ms }

// SetTickIntervalMs updates the nominal Tick period used by pot smoothing.
// Non-positive values are ignored.
func (s *Service) SetTickIntervalMs(ms float64) {
	if ms > 0 && !math.IsNaN(ms) && !math.IsInf(ms, 0) {
		s.tickMs = ms
	}
}

// Timing returns the current gesture thresholds.
func (s *Service) Timing() Timing { return s.timing }

// NumFootswitches returns the number of footswitch channels.
func (s *Service) NumFootswitches() int { return len(s.switches) }

// NumPots returns the number of pot channels.
func (s *Service) NumPots() int { return len(s.potPins) }

// NumToggles returns the number of toggle channels.
func (s *Service) NumToggles() int { return len(s.togglePins) }

// BindMasterLevel ties the master level to a pot: from the next Tick on the
// level is recomputed as Map(ReadPot(pot), c) and pushed to the sink,
// overriding direct SetLevel calls. Binding is one-time; a second call
// fails.
func (s *Service) BindMasterLevel(pot int, c curve.Type) error {
	if s.levelBound {
		return fmt.Errorf("control: master level already bound to pot %d", s.levelPot)
	}
	if pot < 0 || pot >= len(s.potPins) {
		return fmt.Errorf("control: master level pot index %d out of range [0, %d)", pot, len(s.potPins))
	}
	if s.sink == nil {
		return fmt.Errorf("control: no level sink registered")
	}

	s.levelPot = pot
	s.levelCurve = c
	s.levelBound = true
	return nil
}

// MasterLevelBound reports whether a pot is bound to the master level.
func (s *Service) MasterLevelBound() bool { return s.levelBound }

// SetLevelSink registers the receiver for bound master-level updates.
// Must be called before BindMasterLevel.
func (s *Service) SetLevelSink(sink LevelSink) { s.sink = sink }

func (s *Service) rawPot(i int) float64 {
	return core.Clamp(s.in.ReadRawAnalog(s.potPins[i]), 0, 1)
}
