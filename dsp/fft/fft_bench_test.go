package fft

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
)

func BenchmarkTransform(b *testing.B) {
	for _, backend := range []Backend{BackendRadix2, BackendAlgoFFT} {
		for _, n := range []int{1024, 8192} {
			b.Run(backend.String()+"/"+strconv.Itoa(n), func(b *testing.B) {
				tr, err := New(backend, n)
				if err != nil {
					b.Fatal(err)
				}

				src := testutil.Noise(1, 1, n)
				re := make([]float64, n)
				im := make([]float64, n)

				b.ReportAllocs()
				b.SetBytes(int64(n * 8))

				for range b.N {
					copy(re, src)
					clear(im)

					if err := tr.Transform(re, im); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
