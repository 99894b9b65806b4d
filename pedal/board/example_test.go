package board_test

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/internal/simhw"
	"github.com/cwbudde/algo-pedal/pedal/board"
	"github.com/cwbudde/algo-pedal/pedal/curve"
)

func Example() {
	hw := simhw.New()
	b, err := board.New(hw)
	if err != nil {
		fmt.Println("error")
		return
	}

	// Volume pedal: RV1 drives the master level, the transform is a gain.
	if err := b.StartAudio(func(x float64) float64 { return x }); err != nil {
		fmt.Println("error")
		return
	}
	hw.SetAnalog(b.Config().PotPins[board.RV1], 0.5)
	if err := b.BindMasterLevel(board.RV1, curve.Linear); err != nil {
		fmt.Println("error")
		return
	}
	b.Service()

	in := [][]float64{{1, 1}}
	out := [][]float64{make([]float64, 2), make([]float64, 2)}
	b.Process(in, out)

	fmt.Printf("%.2f %.2f\n", out[0][0], out[1][0])
	// Output:
	// 0.50 0.00
}
