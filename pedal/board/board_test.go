package board

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedal/internal/simhw"
	"github.com/cwbudde/algo-pedal/internal/testutil"
	"github.com/cwbudde/algo-pedal/pedal/control"
	"github.com/cwbudde/algo-pedal/pedal/core"
	"github.com/cwbudde/algo-pedal/pedal/curve"
)

func newTestBoard(t *testing.T, opts ...Option) (*simhw.Sim, *Board) {
	t.Helper()

	sim := simhw.New()
	b, err := New(sim, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sim, b
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("New(nil) expected error")
	}

	sim := simhw.New()
	if _, err := New(sim, WithAudioConfig(core.AudioConfig{SampleRate: 0, BlockSize: 8})); err == nil {
		t.Fatal("New() expected error for zero sample rate")
	}
	if _, err := New(sim, WithAudioConfig(core.AudioConfig{SampleRate: 48000, BlockSize: 0})); err == nil {
		t.Fatal("New() expected error for zero block size")
	}
	if _, err := New(sim, WithOutputChannel(-1)); err == nil {
		t.Fatal("New() expected error for negative output channel")
	}
}

func TestDefaults(t *testing.T) {
	_, b := newTestBoard(t)

	if b.SampleRate() != 48000 || b.BlockSize() != 8 {
		t.Fatalf("audio defaults = %v/%v, want 48000/8", b.SampleRate(), b.BlockSize())
	}
	if got := b.Config().Timing; got != control.DefaultTiming() {
		t.Fatalf("timing = %+v, want defaults", got)
	}
	if got := b.Level(); got != 1 {
		t.Fatalf("Level() = %v, want unity", got)
	}
}

func TestFootswitchGestureThroughBoard(t *testing.T) {
	sim, b := newTestBoard(t)
	pin := b.Config().FootswitchPins[FS1]

	sim.Press(pin)
	b.Service()
	if !b.FootswitchIsPressed(FS1) {
		t.Fatal("FootswitchIsPressed(FS1) = false after press")
	}
	if b.FootswitchIsPressed(FS2) {
		t.Fatal("FootswitchIsPressed(FS2) = true without press")
	}

	sim.Advance(600)
	sim.Release(pin)
	b.Service()

	if !b.FootswitchIsReleased(FS1) {
		t.Fatal("FootswitchIsReleased(FS1) = false after release")
	}
	if !b.FootswitchIsLongPressed(FS1) {
		t.Fatal("FootswitchIsLongPressed(FS1) = false after 600 ms hold")
	}
	if b.FootswitchIsLongPressed(FS1) {
		t.Fatal("long-press latch not cleared on read")
	}
	if b.FootswitchIsDoublePressed(FS1) || b.FootswitchIsDoubleLongPressed(FS1) {
		t.Fatal("unrelated latches fired")
	}
}

func TestPotReadsThroughBoard(t *testing.T) {
	sim, b := newTestBoard(t)
	pin := b.Config().PotPins[RV2]

	sim.SetAnalog(pin, 0.5)
	testutil.RequireNearlyEqual(t, b.ReadPot(RV2), 0.5, 1e-12)
	testutil.RequireNearlyEqual(t, b.ReadPotMapped(RV2, 0, 10, curve.Linear), 5, 1e-12)

	got := b.ReadPotSmoothed(RV2, 0)
	testutil.RequireNearlyEqual(t, got, 0.5, 1e-12)
}

func TestMasterLevelBindingEndToEnd(t *testing.T) {
	sim, b := newTestBoard(t)
	pin := b.Config().PotPins[RV1]

	sim.SetAnalog(pin, 0.5)
	if err := b.BindMasterLevel(RV1, curve.Log10); err != nil {
		t.Fatalf("BindMasterLevel() error = %v", err)
	}
	b.Service()

	want := math.Log10(1 + 9*0.5)
	testutil.RequireNearlyEqual(t, b.Level(), want, 1e-12)

	// A unity transform exposes the level directly on the output.
	if err := b.StartAudio(func(float64) float64 { return 1 }); err != nil {
		t.Fatalf("StartAudio() error = %v", err)
	}

	in := [][]float64{testutil.DC(0.1, 8)}
	out := [][]float64{make([]float64, 8), make([]float64, 8)}
	b.Process(in, out)

	testutil.RequireSliceNearlyEqual(t, out[0], testutil.DC(want, 8), 1e-12)
	testutil.RequireSliceNearlyEqual(t, out[1], make([]float64, 8), 0)

	// Direct SetLevel loses to the binding on the next Service.
	b.SetLevel(1)
	b.Service()
	testutil.RequireNearlyEqual(t, b.Level(), want, 1e-12)
}

func TestStartAudioRejectsNilTransform(t *testing.T) {
	_, b := newTestBoard(t)

	if err := b.StartAudio(nil); err == nil {
		t.Fatal("StartAudio(nil) expected error")
	}

	// The audio path stays defined: passthrough on the primary channel.
	in := [][]float64{{0.5, -0.2, 1.0}}
	out := [][]float64{make([]float64, 3), make([]float64, 3)}
	b.Process(in, out)

	testutil.RequireSliceNearlyEqual(t, out[0], in[0], 0)
	testutil.RequireSliceNearlyEqual(t, out[1], make([]float64, 3), 0)
}

func TestStopAudioRevertsToPassthrough(t *testing.T) {
	_, b := newTestBoard(t)

	if err := b.StartAudio(func(float64) float64 { return 0 }); err != nil {
		t.Fatalf("StartAudio() error = %v", err)
	}
	b.StopAudio()

	in := [][]float64{{0.25}}
	out := [][]float64{make([]float64, 1)}
	b.Process(in, out)
	testutil.RequireNearlyEqual(t, out[0][0], 0.25, 0)
}

func TestSetLED(t *testing.T) {
	sim, b := newTestBoard(t)
	pins := b.Config().LEDPins

	b.SetLED(LED1, true)
	b.SetLED(LED2, false)
	if !sim.LED(pins[LED1]) {
		t.Fatal("LED1 not driven high")
	}
	if sim.LED(pins[LED2]) {
		t.Fatal("LED2 driven high unexpectedly")
	}

	b.SetLED(-1, true) // ignored
	b.SetLED(NumLEDs, true)
}

func TestToggleThroughBoard(t *testing.T) {
	sim, b := newTestBoard(t)
	pin := b.Config().TogglePins[TS3]

	if b.ReadToggle(TS3) {
		t.Fatal("ReadToggle(TS3) = true for open toggle")
	}
	sim.SetDigital(pin, false)
	if !b.ReadToggle(TS3) {
		t.Fatal("ReadToggle(TS3) = false for closed toggle")
	}
}

func TestTimingDelegation(t *testing.T) {
	sim, b := newTestBoard(t)

	b.SetDebounce(0)
	b.SetLongPress(50)
	b.SetMultiClickGap(20)

	pin := b.Config().FootswitchPins[FS2]
	sim.Press(pin)
	b.Service()
	sim.Advance(80)
	sim.Release(pin)
	b.Service()

	if !b.FootswitchIsLongPressed(FS2) {
		t.Fatal("adjusted long-press threshold not in effect")
	}
}

func TestVersion(t *testing.T) {
	if Version() == "" {
		t.Fatal("Version() returned empty string")
	}
}
