package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// RolloffFraction is the cumulative energy fraction used by [Rolloff].
const RolloffFraction = 0.85

// Stats holds frequency-domain descriptors of a magnitude spectrum.
type Stats struct {
	BinCount int     `json:"binCount" yaml:"binCount"`
	Centroid float64 `json:"centroid" yaml:"centroid"`
	Spread   float64 `json:"spread" yaml:"spread"`
	Flatness float64 `json:"flatness" yaml:"flatness"`
	Rolloff  float64 `json:"rolloff" yaml:"rolloff"`
	// Bandwidth is the -3 dB width around the strongest bin.
	Bandwidth float64 `json:"bandwidth" yaml:"bandwidth"`
	Energy    float64 `json:"energy" yaml:"energy"`
}

// BinFrequency returns the frequency of bin i in a half spectrum of
// binCount bins.
func BinFrequency(i int, sampleRate float64, binCount int) float64 {
	if binCount <= 0 {
		return 0
	}

	return float64(i) * sampleRate / float64(2*binCount)
}

// Calculate computes every descriptor in one call.
func Calculate(magnitude []float64, sampleRate float64) Stats {
	s := Stats{BinCount: len(magnitude)}
	if len(magnitude) == 0 {
		return s
	}

	sum := floats.Sum(magnitude)
	s.Energy = floats.Dot(magnitude, magnitude)
	s.Centroid = centroid(magnitude, sampleRate, sum)
	s.Spread = spread(magnitude, sampleRate, s.Centroid, sum)
	s.Flatness = Flatness(magnitude)
	s.Rolloff = rolloff(magnitude, sampleRate, RolloffFraction, s.Energy)
	s.Bandwidth = Bandwidth(magnitude, sampleRate)

	return s
}

// Centroid returns sum(f_i*|X_i|) / sum(|X_i|), or 0 when the spectrum sums
// to zero.
func Centroid(magnitude []float64, sampleRate float64) float64 {
	return centroid(magnitude, sampleRate, floats.Sum(magnitude))
}

func centroid(magnitude []float64, sampleRate, sum float64) float64 {
	if sum == 0 {
		return 0
	}

	n := len(magnitude)

	weighted := 0.0
	for i, v := range magnitude {
		weighted += BinFrequency(i, sampleRate, n) * v
	}

	return weighted / sum
}

// spread is the magnitude-weighted standard deviation around the centroid.
func spread(magnitude []float64, sampleRate, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}

	n := len(magnitude)

	acc := 0.0
	for i, v := range magnitude {
		d := BinFrequency(i, sampleRate, n) - cent
		acc += d * d * v
	}

	return math.Sqrt(acc / sum)
}

// Flatness returns the geometric over arithmetic mean of bins 1..N-1, in
// [0, 1]. Any zero bin makes it 0.
func Flatness(magnitude []float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	bins := magnitude[1:]

	mean := floats.Sum(bins) / float64(len(bins))
	if mean == 0 {
		return 0
	}

	logSum := 0.0
	for _, v := range bins {
		if v <= 0 {
			return 0
		}

		logSum += math.Log(v)
	}

	return math.Exp(logSum/float64(len(bins))) / mean
}

// Rolloff returns the frequency of the first bin at which cumulative squared
// magnitude reaches fraction of the total. It falls back to the top bin and
// returns 0 for a silent spectrum.
func Rolloff(magnitude []float64, sampleRate, fraction float64) float64 {
	return rolloff(magnitude, sampleRate, fraction, floats.Dot(magnitude, magnitude))
}

func rolloff(magnitude []float64, sampleRate, fraction, total float64) float64 {
	n := len(magnitude)
	if n == 0 || total == 0 {
		return 0
	}

	threshold := fraction * total
	cum := 0.0

	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return BinFrequency(i, sampleRate, n)
		}
	}

	return BinFrequency(n-1, sampleRate, n)
}

// Bandwidth returns the -3 dB width around the strongest bin in Hz, with
// linear interpolation between the bins straddling each crossing.
func Bandwidth(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	peak := floats.MaxIdx(magnitude)
	if magnitude[peak] <= 0 {
		return 0
	}

	level := magnitude[peak] / math.Sqrt2
	freq := func(i int) float64 { return BinFrequency(i, sampleRate, n) }

	lower := freq(0)
	for i := peak; i >= 1; i-- {
		if magnitude[i-1] <= level && magnitude[i] > level {
			lower = crossing(freq(i-1), freq(i), magnitude[i-1], magnitude[i], level)
			break
		}
	}

	upper := freq(n - 1)
	for i := peak; i < n-1; i++ {
		if magnitude[i+1] <= level && magnitude[i] > level {
			upper = crossing(freq(i), freq(i+1), magnitude[i], magnitude[i+1], level)
			break
		}
	}

	return math.Max(upper-lower, 0)
}

func crossing(f0, f1, m0, m1, level float64) float64 {
	if m1 == m0 {
		return (f0 + f1) / 2
	}

	return f0 + (level-m0)/(m1-m0)*(f1-f0)
}
