// Package board is the top-level facade for one pedal: fixed channel counts
// and pin tables in the shape of the reference hardware, a control service
// polled from the host loop, and the audio bridge handed to the platform's
// block callback.
//
// One Board drives one physical unit; running several per process is
// possible but each needs its own hal.Hardware.
package board

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/pedal/bridge"
	"github.com/cwbudde/algo-pedal/pedal/control"
	"github.com/cwbudde/algo-pedal/pedal/core"
	"github.com/cwbudde/algo-pedal/pedal/curve"
	"github.com/cwbudde/algo-pedal/pedal/hal"
)

// Board shape: how many controls callers can count on.
const (
	NumPots         = 6 // RV1..RV6
	NumToggles      = 4 // TS1..TS4
	NumFootswitches = 2 // FS1..FS2
	NumLEDs         = 2 // LED1..LED2
)

// Pot channel indices.
const (
	RV1 = iota
	RV2
	RV3
	RV4
	RV5
	RV6
)

// Toggle channel indices.
const (
	TS1 = iota
	TS2
	TS3
	TS4
)

// Footswitch channel indices.
const (
	FS1 = iota
	FS2
)

// LED channel indices.
const (
	LED1 = iota
	LED2
)

const version = "0.1.0"

// Version returns the library version string.
func Version() string { return version }

// The bridge satisfies the control service's level sink.
var _ control.LevelSink = (*bridge.Bridge)(nil)

// Config holds the board wiring and timing. The pin defaults match the
// reference layout; boards wired differently override them through options.
type Config struct {
	PotPins        [NumPots]uint8
	TogglePins     [NumToggles]uint8
	FootswitchPins [NumFootswitches]uint8
	LEDPins        [NumLEDs]uint8

	Audio  core.AudioConfig
	Timing control.Timing

	InputAverage  bool
	OutputChannel int
}

// DefaultConfig returns the reference wiring with stock audio and timing
// settings.
func DefaultConfig() Config {
	return Config{
		PotPins:        [NumPots]uint8{14, 15, 16, 17, 18, 19},
		TogglePins:     [NumToggles]uint8{2, 3, 4, 5},
		FootswitchPins: [NumFootswitches]uint8{6, 7},
		LEDPins:        [NumLEDs]uint8{8, 9},
		Audio:          core.DefaultAudioConfig(),
		Timing:         control.DefaultTiming(),
	}
}

// Option mutates board construction parameters.
type Option func(*Config) error

// WithPotPins overrides the analog pin table.
func WithPotPins(pins [NumPots]uint8) Option {
	return func(cfg *Config) error {
		cfg.PotPins = pins
		return nil
	}
}

// WithTogglePins overrides the toggle pin table.
func WithTogglePins(pins [NumToggles]uint8) Option {
	return func(cfg *Config) error {
		cfg.TogglePins = pins
		return nil
	}
}

// WithFootswitchPins overrides the footswitch pin table.
func WithFootswitchPins(pins [NumFootswitches]uint8) Option {
	return func(cfg *Config) error {
		cfg.FootswitchPins = pins
		return nil
	}
}

// WithLEDPins overrides the LED pin table.
func WithLEDPins(pins [NumLEDs]uint8) Option {
	return func(cfg *Config) error {
		cfg.LEDPins = pins
		return nil
	}
}

// WithAudioConfig sets the audio driver settings. Validated at New.
func WithAudioConfig(audio core.AudioConfig) Option {
	return func(cfg *Config) error {
		cfg.Audio = audio
		return nil
	}
}

// WithTiming sets the footswitch gesture thresholds.
func WithTiming(t control.Timing) Option {
	return func(cfg *Config) error {
		cfg.Timing = t
		return nil
	}
}

// WithInputAverage routes the mean of both audio inputs into the transform
// instead of the left channel alone.
func WithInputAverage() Option {
	return func(cfg *Config) error {
		cfg.InputAverage = true
		return nil
	}
}

// WithOutputChannel selects which output channel carries the processed
// signal; the rest are muted.
func WithOutputChannel(ch int) Option {
	return func(cfg *Config) error {
		if ch < 0 {
			return fmt.Errorf("board output channel must be >= 0: %d", ch)
		}
		cfg.OutputChannel = ch
		return nil
	}
}

// Board ties the control service and the audio bridge to one set of
// hardware.
type Board struct {
	hw  hal.Hardware
	cfg Config
	ctl *control.Service
	br  *bridge.Bridge
}

// New builds a Board on the given hardware.
func New(hw hal.Hardware, opts ...Option) (*Board, error) {
	if hw == nil {
		return nil, fmt.Errorf("board: hardware must not be nil")
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Audio.SampleRate <= 0 {
		return nil, fmt.Errorf("board sample rate must be > 0: %f", cfg.Audio.SampleRate)
	}
	if cfg.Audio.BlockSize <= 0 {
		return nil, fmt.Errorf("board block size must be > 0: %d", cfg.Audio.BlockSize)
	}

	bridgeOpts := []bridge.Option{bridge.WithOutputChannel(cfg.OutputChannel)}
	if cfg.InputAverage {
		bridgeOpts = append(bridgeOpts, bridge.WithInputAverage())
	}
	br, err := bridge.New(bridgeOpts...)
	if err != nil {
		return nil, err
	}

	ctl, err := control.New(hw,
		control.WithPotPins(cfg.PotPins[:]...),
		control.WithTogglePins(cfg.TogglePins[:]...),
		control.WithFootswitchPins(cfg.FootswitchPins[:]...),
		control.WithTiming(cfg.Timing),
		control.WithTickIntervalMs(cfg.Audio.BlockPeriodMs()),
		control.WithLevelSink(br),
	)
	if err != nil {
		return nil, err
	}

	return &Board{hw: hw, cfg: cfg, ctl: ctl, br: br}, nil
}

// Service advances all control-input state machines by one tick. Call it
// from the host loop at a roughly regular, sub-10 ms cadence; never from
// the audio context.
func (b *Board) Service() {
	b.ctl.Tick()
}

// Process is the audio entry point, invoked once per block by the driver.
func (b *Board) Process(in, out [][]float64) {
	b.br.Process(in, out)
}

// StartAudio registers the user per-sample transform. Audio processed
// before a successful StartAudio passes through unscaled.
func (b *Board) StartAudio(t bridge.Transform) error {
	return b.br.SetTransform(t)
}

// StopAudio removes the user transform; the bridge reverts to passthrough.
func (b *Board) StopAudio() {
	b.br.ClearTransform()
}

// ReadPot returns a pot's normalized position, unfiltered.
func (b *Board) ReadPot(i int) float64 {
	return b.ctl.ReadPot(i)
}

// ReadPotMapped returns a pot's position mapped onto [min, max] along the
// given curve.
func (b *Board) ReadPotMapped(i int, min, max float64, c curve.Type) float64 {
	return b.ctl.ReadPotMapped(i, min, max, c)
}

// ReadPotSmoothed returns a pot's position through its one-pole filter.
func (b *Board) ReadPotSmoothed(i int, smoothMs float64) float64 {
	return b.ctl.ReadPotSmoothed(i, smoothMs)
}

// ReadToggle reports whether a toggle switch is ON.
func (b *Board) ReadToggle(i int) bool {
	return b.ctl.ReadToggle(i)
}

// FootswitchIsPressed reports the debounced footswitch level.
func (b *Board) FootswitchIsPressed(i int) bool {
	return b.ctl.Pressed(i)
}

// FootswitchIsReleased reports the inverse of FootswitchIsPressed.
func (b *Board) FootswitchIsReleased(i int) bool {
	return b.ctl.Released(i)
}

// FootswitchIsLongPressed reports and clears the long-press latch.
func (b *Board) FootswitchIsLongPressed(i int) bool {
	return b.ctl.LongPressed(i)
}

// FootswitchIsDoublePressed reports and clears the double-press latch.
func (b *Board) FootswitchIsDoublePressed(i int) bool {
	return b.ctl.DoublePressed(i)
}

// FootswitchIsDoubleLongPressed reports and clears the double-long-press
// latch.
func (b *Board) FootswitchIsDoubleLongPressed(i int) bool {
	return b.ctl.DoubleLongPressed(i)
}

// SetLED drives an LED (active-high). Out-of-range indices are ignored.
func (b *Board) SetLED(i int, on bool) {
	if i < 0 || i >= NumLEDs {
		return
	}
	b.hw.WriteDigital(b.cfg.LEDPins[i], on)
}

// SetLevel sets the master output level directly, clamped to [0, 1]. While
// a master-level binding is active the bound pot wins on the next Service.
func (b *Board) SetLevel(v float64) {
	b.br.SetLevel(v)
}

// Level returns the current master level.
func (b *Board) Level() float64 {
	return b.br.Level()
}

// BindMasterLevel ties the master level to a pot through the given curve.
// One-time; see control.Service.BindMasterLevel.
func (b *Board) BindMasterLevel(pot int, c curve.Type) error {
	return b.ctl.BindMasterLevel(pot, c)
}

// SetTiming replaces all footswitch gesture thresholds.
func (b *Board) SetTiming(t control.Timing) { b.ctl.SetTiming(t) }

// SetDebounce sets the debounce duration in milliseconds.
func (b *Board) SetDebounce(ms uint32) { b.ctl.SetDebounce(ms) }

// SetLongPress sets the long-press threshold in milliseconds.
func (b *Board) SetLongPress(ms uint32) { b.ctl.SetLongPress(ms) }

// SetMultiClickGap sets the double-click gap in milliseconds.
func (b *Board) SetMultiClickGap(ms uint32) { b.ctl.SetMultiClickGap(ms) }

// SampleRate returns the configured audio sample rate in Hz.
func (b *Board) SampleRate() float64 { return b.cfg.Audio.SampleRate }

// BlockSize returns the configured audio block size in samples.
func (b *Board) BlockSize() int { return b.cfg.Audio.BlockSize }

// Config returns a copy of the board configuration.
func (b *Board) Config() Config { return b.cfg }
