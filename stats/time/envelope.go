package time

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// EnvelopeWindow is the envelope averaging span in seconds.
const EnvelopeWindow = 0.01

// EnvelopeWidth returns the averaging width in samples, round(sr*0.01),
// and at least 1.
func EnvelopeWidth(sampleRate float64) int {
	return max(int(math.Round(sampleRate*EnvelopeWindow)), 1)
}

// Envelope returns the mean absolute value over a centered window of
// [EnvelopeWidth] samples for every input sample. The window is clamped to
// the signal bounds, so edge values average fewer samples. The result has
// the same length as signal.
func Envelope(signal []float64, sampleRate float64) ([]float64, error) {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("envelope: sample rate must be positive and finite: %v: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	n := len(signal)
	out := make([]float64, n)

	if n == 0 {
		return out, nil
	}

	// prefix[i] = sum |x[0:i]|
	prefix := make([]float64, n+1)
	for i, x := range signal {
		prefix[i+1] = prefix[i] + math.Abs(x)
	}

	half := EnvelopeWidth(sampleRate) / 2

	for i := range out {
		lo := max(i-half, 0)
		hi := min(i+half, n-1)
		out[i] = math.Max((prefix[hi+1]-prefix[lo])/float64(hi-lo+1), 0)
	}

	return out, nil
}
