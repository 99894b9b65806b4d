package bridge

import "testing"

func BenchmarkProcessBlock(b *testing.B) {
	br, _ := New(WithInputAverage())
	_ = br.SetTransform(func(x float64) float64 { return x * 0.7 })
	br.SetLevel(0.8)

	in := [][]float64{make([]float64, 64), make([]float64, 64)}
	out := [][]float64{make([]float64, 64), make([]float64, 64)}
	for i := range in[0] {
		in[0][i] = float64(i%16) / 16
		in[1][i] = -in[0][i]
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		br.Process(in, out)
	}
}

func BenchmarkProcessBlockPassthrough(b *testing.B) {
	br, _ := New()

	in := [][]float64{make([]float64, 64)}
	out := [][]float64{make([]float64, 64), make([]float64, 64)}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		br.Process(in, out)
	}
}
