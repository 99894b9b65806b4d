// Package bridge implements the real-time audio callback layer: it reduces
// the driver's input block to mono per the routing policy, runs the user's
// per-sample transform, applies the master level and writes the primary
// output channel, muting every other one.
//
// Process runs in the audio context; everything else is control-context
// configuration. The only shared state is the master level (an atomic
// float64 word) and the transform pointer, both read once per block.
package bridge

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pedal/pedal/core"
)

// Transform is the user per-sample processing function. It runs inside the
// audio callback and must not block or allocate.
type Transform func(sample float64) float64

// Option mutates bridge construction parameters.
type Option func(*config) error

type config struct {
	inputChannel  int
	averageInputs bool
	outputChannel int
}

func defaultConfig() config {
	return config{}
}

// WithInputChannel selects the single input channel fed to the transform.
func WithInputChannel(ch int) Option {
	return func(cfg *config) error {
		if ch < 0 {
			return fmt.Errorf("bridge input channel must be >= 0: %d", ch)
		}
		cfg.inputChannel = ch
		cfg.averageInputs = false
		return nil
	}
}

// WithInputAverage feeds the transform the mean of the first two input
// channels instead of a single channel.
func WithInputAverage() Option {
	return func(cfg *config) error {
		cfg.averageInputs = true
		return nil
	}
}

// WithOutputChannel selects the output channel carrying the processed
// signal. All other output channels are muted.
func WithOutputChannel(ch int) Option {
	return func(cfg *config) error {
		if ch < 0 {
			return fmt.Errorf("bridge output channel must be >= 0: %d", ch)
		}
		cfg.outputChannel = ch
		return nil
	}
}

// Bridge routes audio blocks through the user transform. The zero routing
// policy is channel 0 in, channel 0 out.
type Bridge struct {
	inputChannel  int
	averageInputs bool
	outputChannel int

	level     atomic.Uint64
	transform atomic.Pointer[Transform]
}

// New builds a Bridge with the given routing policy and unity master level.
func New(opts ...Option) (*Bridge, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	b := &Bridge{
		inputChannel:  cfg.inputChannel,
		averageInputs: cfg.averageInputs,
		outputChannel: cfg.outputChannel,
	}
	b.level.Store(math.Float64bits(1))
	return b, nil
}

// SetTransform registers the user per-sample function. Registering nil is
// the one fatal misuse the audio path recognizes and is reported as an
// error instead of being stored.
func (b *Bridge) SetTransform(t Transform) error {
	if t == nil {
		return fmt.Errorf("bridge: transform must not be nil")
	}
	b.transform.Store(&t)
	return nil
}

// ClearTransform removes the user transform; Process falls back to muted
// passthrough.
func (b *Bridge) ClearTransform() {
	b.transform.Store(nil)
}

// HasTransform reports whether a user transform is registered.
func (b *Bridge) HasTransform() bool {
	return b.transform.Load() != nil
}

// SetLevel stores the master level, clamped to [0, 1]. Control context;
// the audio context picks the new value up at the next block boundary.
// Bridge satisfies control.LevelSink with this method.
func (b *Bridge) SetLevel(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	b.level.Store(math.Float64bits(core.Clamp(v, 0, 1)))
}

// Level returns the current master level snapshot.
func (b *Bridge) Level() float64 {
	return math.Float64frombits(b.level.Load())
}

// Process handles one audio block. Samples are processed strictly in order;
// the master level is snapshotted once per block so a bound pot moving
// mid-block cannot introduce intra-block discontinuities. Output channels
// not carrying the signal are zeroed every block, and with no transform
// registered the input passes through unscaled. Never allocates.
func (b *Bridge) Process(in, out [][]float64) {
	for c := range out {
		if c != b.outputChannel {
			zeroFill(out[c])
		}
	}
	if b.outputChannel >= len(out) {
		return
	}
	primary := out[b.outputChannel]

	tp := b.transform.Load()
	if tp == nil {
		for i := range primary {
			primary[i] = b.inputSample(in, i)
		}
		return
	}

	level := b.Level()
	f := *tp
	for i := range primary {
		primary[i] = f(b.inputSample(in, i))
	}
	vecmath.ScaleBlockInPlace(primary, level)
}

// inputSample reduces the input block to one mono sample per the routing
// policy. Missing channels or short input blocks read as silence.
func (b *Bridge) inputSample(in [][]float64, i int) float64 {
	if b.averageInputs && len(in) >= 2 {
		var l, r float64
		if i < len(in[0]) {
			l = in[0][i]
		}
		if i < len(in[1]) {
			r = in[1][i]
		}
		return 0.5 * (l + r)
	}

	ch := b.inputChannel
	if b.averageInputs {
		ch = 0
	}
	if ch >= len(in) || i >= len(in[ch]) {
		return 0
	}
	return in[ch][i]
}

func zeroFill(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}
