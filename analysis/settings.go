package analysis

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Settings governs every threshold of one analysis.
type Settings struct {
	FFTSize    int `json:"fftSize" yaml:"fftSize" mapstructure:"fft_size"`
	WindowSize int `json:"windowSize" yaml:"windowSize" mapstructure:"window_size"`
	HopSize    int `json:"hopSize" yaml:"hopSize" mapstructure:"hop_size"`
	// MinFreq and MaxFreq bound reported peaks in Hz.
	MinFreq float64 `json:"minFreq" yaml:"minFreq" mapstructure:"min_freq"`
	MaxFreq float64 `json:"maxFreq" yaml:"maxFreq" mapstructure:"max_freq"`
	// HarmonicThreshold is the peak height relative to the spectrum maximum.
	HarmonicThreshold float64 `json:"harmonicThreshold" yaml:"harmonicThreshold" mapstructure:"harmonic_threshold"`
	// NoiseFloor in dB is carried into the result; detection is relative and
	// does not use it.
	NoiseFloor float64 `json:"noiseFloor" yaml:"noiseFloor" mapstructure:"noise_floor"`
}

// DefaultSettings returns the standard analysis settings.
func DefaultSettings() Settings {
	return Settings{
		FFTSize:           8192,
		WindowSize:        2048,
		HopSize:           512,
		MinFreq:           20,
		MaxFreq:           20000,
		HarmonicThreshold: 0.1,
		NoiseFloor:        -60,
	}
}

// Validate checks the settings against a signal of sampleCount samples.
// A negative sampleCount skips the length checks.
func (s Settings) Validate(sampleCount int) error {
	switch {
	case s.FFTSize < 2 || !core.IsPowerOfTwo(s.FFTSize):
		return invalid("fft size must be a power of two >= 2: %d", s.FFTSize)
	case s.WindowSize < 2 || !core.IsPowerOfTwo(s.WindowSize):
		return invalid("window size must be a power of two >= 2: %d", s.WindowSize)
	case s.HopSize <= 0:
		return invalid("hop size must be > 0: %d", s.HopSize)
	case !(s.HarmonicThreshold > 0 && s.HarmonicThreshold <= 1):
		return invalid("harmonic threshold must be in (0, 1]: %v", s.HarmonicThreshold)
	case !(s.MinFreq >= 0) || !core.IsFinite(s.MinFreq):
		return invalid("min frequency must be >= 0: %v", s.MinFreq)
	case !(s.MaxFreq > s.MinFreq):
		return invalid("max frequency %v must exceed min frequency %v", s.MaxFreq, s.MinFreq)
	case !core.IsFinite(s.NoiseFloor):
		return invalid("noise floor must be finite: %v", s.NoiseFloor)
	}

	if sampleCount < 0 {
		return nil
	}

	if s.FFTSize > sampleCount {
		return invalid("fft size %d exceeds %d samples", s.FFTSize, sampleCount)
	}

	if s.WindowSize > sampleCount {
		return invalid("window size %d exceeds %d samples", s.WindowSize, sampleCount)
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("analysis: "+format+": %w", append(args, core.ErrInvalidParameter)...)
}
