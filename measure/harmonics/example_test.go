package harmonics_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/measure/harmonics"
	"github.com/cwbudde/algo-spectra/measure/peaks"
)

func ExampleGroup() {
	found := []peaks.Feature{
		{Frequency: 110, Magnitude: 1},
		{Frequency: 220, Magnitude: 0.5},
		{Frequency: 330, Magnitude: 0.3},
		{Frequency: 1050, Magnitude: 0.2},
	}

	for _, s := range harmonics.Group(found) {
		fmt.Printf("f0=%.0f members=%d strength=%.1f\n", s.Fundamental, len(s.Overtones), s.Strength)
	}
	// Output:
	// f0=110 members=3 strength=1.8
}
