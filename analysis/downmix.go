package analysis

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Downmix averages the first two channels sample by sample. A single channel
// is used as both left and right, so it is returned as a copy. Further
// channels are ignored but must match the length of the first.
func Downmix(channels [][]float64) ([]float64, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("analysis: no channels: %w", core.ErrEmptyInput)
	}

	n := len(channels[0])
	if n == 0 {
		return nil, fmt.Errorf("analysis: no samples: %w", core.ErrEmptyInput)
	}

	for i, ch := range channels[1:] {
		if len(ch) != n {
			return nil, fmt.Errorf("analysis: channel %d has %d samples, channel 0 has %d: %w",
				i+1, len(ch), n, core.ErrInvalidParameter)
		}
	}

	left := channels[0]
	right := left

	if len(channels) > 1 {
		right = channels[1]
	}

	out := make([]float64, n)
	vecmath.AddBlock(out, left, right)
	vecmath.ScaleBlockInPlace(out, 0.5)

	return out, nil
}
