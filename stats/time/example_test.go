package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-spectra/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f peak=%.1f zc=%d\n", s.RMS, s.Peak, s.ZeroCrossings)
	// Output:
	// rms=1.0 peak=1.0 zc=3
}

func ExampleEnvelope() {
	env, _ := timestats.Envelope([]float64{0, 1, 0, -1, 0}, 200)
	fmt.Println(env)
	// Output:
	// [0.5 0.3333333333333333 0.6666666666666666 0.3333333333333333 0.5]
}
