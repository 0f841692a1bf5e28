package time

import (
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"gonum.org/v1/gonum/floats"
)

// levelFloor bounds dB conversions at -300 dB so zero signals stay finite.
const levelFloor = 1e-15

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int     `json:"length" yaml:"length"`
	DC            float64 `json:"dc" yaml:"dc"`
	RMS           float64 `json:"rms" yaml:"rms"`
	RMSdB         float64 `json:"rmsDb" yaml:"rmsDb"`
	Peak          float64 `json:"peak" yaml:"peak"`
	PeakdB        float64 `json:"peakDb" yaml:"peakDb"`
	CrestFactor   float64 `json:"crestFactor" yaml:"crestFactor"`
	Energy        float64 `json:"energy" yaml:"energy"`
	ZeroCrossings int     `json:"zeroCrossings" yaml:"zeroCrossings"`
}

// RMS returns sqrt(mean(x^2)), or 0 for an empty signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// Peak returns max(|x|), or 0 for an empty signal.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Max(floats.Max(signal), -floats.Min(signal))
}

// Calculate computes all statistics. Crest factor is 0 when RMS is 0.
func Calculate(signal []float64) Stats {
	n := len(signal)

	s := Stats{
		Length: n,
		RMSdB:  core.FlooredDB(0, levelFloor),
		PeakdB: core.FlooredDB(0, levelFloor),
	}

	if n == 0 {
		return s
	}

	s.Energy = floats.Dot(signal, signal)
	s.DC = floats.Sum(signal) / float64(n)
	s.RMS = math.Sqrt(s.Energy / float64(n))
	s.Peak = Peak(signal)
	s.RMSdB = core.FlooredDB(s.RMS, levelFloor)
	s.PeakdB = core.FlooredDB(s.Peak, levelFloor)

	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	for i := 1; i < n; i++ {
		if (signal[i-1] >= 0) != (signal[i] >= 0) {
			s.ZeroCrossings++
		}
	}

	return s
}
