package peaks

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

const (
	// margin is the number of bins skipped at each end of the spectrum.
	margin = 2
	// maxBandwidthBins bounds the -3 dB walk away from a peak.
	maxBandwidthBins = 20
	// halfPowerRatio is the -3 dB amplitude ratio.
	halfPowerRatio = 0.707
)

// Feature is one detected spectral peak.
type Feature struct {
	Frequency float64 `json:"frequency" yaml:"frequency"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
	// Phase is always 0; peak picking does not carry phase through.
	Phase float64 `json:"phase" yaml:"phase"`
	// Bandwidth is two-sided: 2*j bins when the first neighbour below the
	// -3 dB level sits j bins from the peak. A peak with no such neighbour
	// within 20 bins reports one bin, so a resolved peak is never narrower
	// than 2 bins and a value of 1 bin marks an unresolved width.
	Bandwidth float64 `json:"bandwidth" yaml:"bandwidth"`
}

// Config holds peak detection parameters.
type Config struct {
	SampleRate float64
	// Threshold is the minimum peak height relative to the spectrum maximum,
	// in (0, 1].
	Threshold    float64
	MinFrequency float64
	MaxFrequency float64
}

// Validate reports whether cfg is usable.
func (c Config) Validate() error {
	switch {
	case !(c.SampleRate > 0) || !core.IsFinite(c.SampleRate):
		return fmt.Errorf("peaks: sample rate must be positive and finite: %v: %w", c.SampleRate, core.ErrInvalidParameter)
	case !(c.Threshold > 0 && c.Threshold <= 1):
		return fmt.Errorf("peaks: threshold must be in (0, 1]: %v: %w", c.Threshold, core.ErrInvalidParameter)
	case !(c.MinFrequency >= 0):
		return fmt.Errorf("peaks: min frequency must be >= 0: %v: %w", c.MinFrequency, core.ErrInvalidParameter)
	case !(c.MaxFrequency > c.MinFrequency):
		return fmt.Errorf("peaks: max frequency %v must exceed min frequency %v: %w",
			c.MaxFrequency, c.MinFrequency, core.ErrInvalidParameter)
	}

	return nil
}

// Resolution returns the bin spacing in Hz for a half spectrum of n bins.
func Resolution(sampleRate float64, n int) float64 {
	if n <= 0 {
		return 0
	}

	return sampleRate / float64(n*2)
}

// Detect returns the peaks of the half-spectrum mag sorted by descending
// magnitude. Spectra shorter than five bins have no interior and yield no
// peaks.
func Detect(mag []float64, cfg Config) ([]Feature, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(mag)
	if n < 2*margin+1 {
		return []Feature{}, nil
	}

	threshold := slices.Max(mag) * cfg.Threshold
	res := Resolution(cfg.SampleRate, n)

	out := make([]Feature, 0, 16)

	for i := margin; i < n-margin; i++ {
		y := mag[i]
		if !(y > threshold) || !isLocalMax(mag, i) {
			continue
		}

		freq := (float64(i) + interpolate(mag[i-1], y, mag[i+1])) * res
		if freq < cfg.MinFrequency || freq > cfg.MaxFrequency {
			continue
		}

		out = append(out, Feature{
			Frequency: freq,
			Magnitude: y,
			Bandwidth: bandwidth(mag, i, res),
		})
	}

	SortByMagnitude(out)

	return out, nil
}

// SortByMagnitude orders features by descending magnitude. Ties keep bin order.
func SortByMagnitude(features []Feature) {
	slices.SortStableFunc(features, func(a, b Feature) int {
		switch {
		case a.Magnitude > b.Magnitude:
			return -1
		case a.Magnitude < b.Magnitude:
			return 1
		default:
			return 0
		}
	})
}

func isLocalMax(mag []float64, i int) bool {
	y := mag[i]

	return y > mag[i-1] && y > mag[i+1] && y > mag[i-2] && y > mag[i+2]
}

// interpolate returns the vertex offset of the parabola through three
// equally spaced points, clamped to one bin.
func interpolate(y1, y2, y3 float64) float64 {
	a := (y1 - 2*y2 + y3) / 2
	if a == 0 {
		return 0
	}

	b := (y3 - y1) / 2

	return core.Clamp(-b/(2*a), -1, 1)
}

// bandwidth walks outward until either side drops below the half-power
// level and returns the two-sided width. Without such a point it returns
// one bin.
func bandwidth(mag []float64, peak int, res float64) float64 {
	level := mag[peak] * halfPowerRatio

	for j := 1; j <= maxBandwidthBins; j++ {
		lo, hi := peak-j, peak+j
		if (lo >= 0 && mag[lo] < level) || (hi < len(mag) && mag[hi] < level) {
			return float64(2*j) * res
		}
	}

	return res
}
