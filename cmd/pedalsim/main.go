// Command pedalsim exercises a pedal board against simulated hardware.
//
// Usage:
//
//	pedalsim [flags]
//
// Without flags it runs a scripted footswitch session through the control
// service and prints every gesture event it reports. With -play it also
// routes a test tone through the audio bridge to the default sound device.
//
// Examples:
//
//	pedalsim -list
//	pedalsim -long 800 -gap 250
//	pedalsim -play -duration 3s
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-pedal/host/otohost"
	"github.com/cwbudde/algo-pedal/internal/simhw"
	"github.com/cwbudde/algo-pedal/pedal/board"
	"github.com/cwbudde/algo-pedal/pedal/control"
	"github.com/cwbudde/algo-pedal/pedal/core"
	"github.com/cwbudde/algo-pedal/pedal/curve"
)

var (
	flagList     = flag.Bool("list", false, "print the response curve table and exit")
	flagDebounce = flag.Uint("debounce", 12, "debounce time in ms")
	flagLong     = flag.Uint("long", 500, "long-press threshold in ms")
	flagGap      = flag.Uint("gap", 300, "double-click gap in ms")
	flagRate     = flag.Float64("samplerate", 48000, "audio sample rate in Hz")
	flagBlock    = flag.Int("block", 8, "audio block size in samples")
	flagMaster   = flag.Float64("master", 0.5, "simulated master pot position in [0, 1]")
	flagPlay     = flag.Bool("play", false, "play a test tone through the bridge")
	flagDuration = flag.Duration("duration", 2*time.Second, "playback duration with -play")
)

// scriptStep flips a footswitch pin at a simulated time.
type scriptStep struct {
	atMs  uint32
	press bool
}

// The scripted session: a short click, a double click, a long press and a
// double long press, in that order.
var script = []scriptStep{
	{100, true}, {180, false},
	{600, true}, {660, false}, {740, true}, {800, false},
	{1400, true}, {2000, false},
	{2600, true}, {2660, false}, {2740, true}, {3400, false},
}

func main() {
	flag.Parse()

	if *flagList {
		printCurves(os.Stdout)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pedalsim:", err)
		os.Exit(1)
	}
}

func printCurves(w *os.File) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "curve\tv=0.25\tv=0.50\tv=0.75")
	for _, c := range []curve.Type{curve.Linear, curve.Log10, curve.Exp10} {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\n",
			c, curve.Map(0.25, c), curve.Map(0.5, c), curve.Map(0.75, c))
	}
	tw.Flush()
}

func run() error {
	hw := simhw.New()
	b, err := board.New(hw,
		board.WithAudioConfig(core.AudioConfig{SampleRate: *flagRate, BlockSize: *flagBlock}),
		board.WithTiming(control.Timing{
			DebounceMs:      uint32(*flagDebounce),
			LongPressMs:     uint32(*flagLong),
			MultiClickGapMs: uint32(*flagGap),
		}),
	)
	if err != nil {
		return err
	}

	// Soft-clip drive as the demo transform; RV1 drives the master level.
	if err := b.StartAudio(func(x float64) float64 { return math.Tanh(2 * x) }); err != nil {
		return err
	}
	hw.SetAnalog(b.Config().PotPins[board.RV1], *flagMaster)
	if err := b.BindMasterLevel(board.RV1, curve.Log10); err != nil {
		return err
	}

	runScript(hw, b)
	fmt.Printf("master level %.4f (pot %.2f through %s)\n", b.Level(), *flagMaster, curve.Log10)

	if *flagPlay {
		return play(b)
	}
	return nil
}

func runScript(hw *simhw.Sim, b *board.Board) {
	pin := b.Config().FootswitchPins[board.FS1]
	step := 0

	for t := uint32(0); t <= script[len(script)-1].atMs+100; t++ {
		for step < len(script) && script[step].atMs == t {
			if script[step].press {
				hw.Press(pin)
			} else {
				hw.Release(pin)
			}
			step++
		}

		b.Service()
		b.SetLED(board.LED1, b.FootswitchIsPressed(board.FS1))

		if b.FootswitchIsLongPressed(board.FS1) {
			fmt.Printf("t=%4dms FS1 long press\n", t)
		}
		if b.FootswitchIsDoublePressed(board.FS1) {
			fmt.Printf("t=%4dms FS1 double press\n", t)
		}
		if b.FootswitchIsDoubleLongPressed(board.FS1) {
			fmt.Printf("t=%4dms FS1 double long press\n", t)
		}

		hw.Advance(1)
	}
}

func play(b *board.Board) error {
	cfg := core.AudioConfig{SampleRate: *flagRate, BlockSize: *flagBlock}

	phase := 0.0
	step := 2 * math.Pi * 220 / cfg.SampleRate
	host, err := otohost.New(cfg, otohost.WithSource(func(dst []float64) {
		for i := range dst {
			dst[i] = 0.5 * math.Sin(phase)
			phase += step
			if phase >= 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
	}))
	if err != nil {
		return err
	}
	defer host.Close()

	host.Attach(b)
	if err := host.Start(); err != nil {
		return err
	}
	fmt.Printf("playing %s of 220 Hz through the bridge...\n", *flagDuration)
	time.Sleep(*flagDuration)
	host.Stop()
	return nil
}
