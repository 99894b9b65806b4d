// Package otohost plays a pedal's audio path through a desktop sound device
// using oto. It adapts oto's pull model (an io.Reader of float32 frames) to
// the bridge's push-model block callback, so the same Process surface runs
// unmodified on hardware and on a workstation.
//
// The processing target is held behind an atomic pointer: Read never locks,
// the mutex only guards start/stop.
package otohost

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-pedal/pedal/core"
)

// Processor is the audio surface the host drives; both bridge.Bridge and
// board.Board satisfy it.
type Processor interface {
	Process(in, out [][]float64)
}

// Source fills the input block before each Process call, standing in for
// the instrument signal the codec would deliver on hardware. A nil source
// means silence.
type Source func(dst []float64)

// Option mutates host construction parameters.
type Option func(*Host) error

// WithSource sets the input signal generator.
func WithSource(src Source) Option {
	return func(h *Host) error {
		h.source = src
		return nil
	}
}

type targetBox struct {
	p Processor
}

// Host owns the oto context and feeds the attached processor block by
// block. Output channel 0 is played mono; channel 1 exists only so the
// processor's muting policy has somewhere to write.
type Host struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player

	target atomic.Pointer[targetBox]
	source Source

	block   int
	in      []float64
	out     [][]float64
	inView  [][]float64
	outView [][]float64
}

// New opens an audio device for the given configuration and returns a host
// ready to Attach and Start.
func New(cfg core.AudioConfig, opts ...Option) (*Host, error) {
	h, err := newHost(cfg, opts...)
	if err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("otohost: opening audio context: %w", err)
	}
	<-ready

	h.ctx = ctx
	return h, nil
}

// newHost builds the block plumbing without touching the audio device.
func newHost(cfg core.AudioConfig, opts ...Option) (*Host, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("otohost sample rate must be > 0: %f", cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("otohost block size must be > 0: %d", cfg.BlockSize)
	}

	h := &Host{
		block: cfg.BlockSize,
		in:    make([]float64, cfg.BlockSize),
		out: [][]float64{
			make([]float64, cfg.BlockSize),
			make([]float64, cfg.BlockSize),
		},
		inView:  make([][]float64, 1),
		outView: make([][]float64, 2),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Attach sets the processing target. Safe to call while playing; the next
// block picks it up.
func (h *Host) Attach(p Processor) {
	if p == nil {
		h.target.Store(nil)
		return
	}
	h.target.Store(&targetBox{p: p})
}

// Detach removes the processing target; subsequent blocks play silence.
func (h *Host) Detach() {
	h.target.Store(nil)
}

// Start begins playback, creating the device player on first use.
func (h *Host) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctx == nil {
		return fmt.Errorf("otohost: no audio context")
	}
	if h.player == nil {
		h.player = h.ctx.NewPlayer(h)
	}
	h.player.Play()
	return nil
}

// Stop pauses playback. The player can be restarted with Start.
func (h *Host) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.player != nil {
		h.player.Pause()
	}
}

// Close stops playback and releases the device player.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.player == nil {
		return nil
	}
	err := h.player.Close()
	h.player = nil
	return err
}

// Read implements the oto player contract: fill p with little-endian
// float32 mono frames. Runs on oto's audio goroutine; no locks, no
// allocation.
func (h *Host) Read(p []byte) (int, error) {
	frames := len(p) / 4

	tb := h.target.Load()
	if tb == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	off := 0
	for off < frames {
		chunk := h.block
		if rem := frames - off; rem < chunk {
			chunk = rem
		}

		in := h.in[:chunk]
		if h.source != nil {
			h.source(in)
		} else {
			for i := range in {
				in[i] = 0
			}
		}

		h.inView[0] = in
		h.outView[0] = h.out[0][:chunk]
		h.outView[1] = h.out[1][:chunk]
		tb.p.Process(h.inView, h.outView)

		for i := 0; i < chunk; i++ {
			bits := math.Float32bits(float32(h.out[0][i]))
			binary.LittleEndian.PutUint32(p[(off+i)*4:], bits)
		}
		off += chunk
	}

	// Trailing bytes that do not make a whole frame stay silent.
	for i := frames * 4; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}
