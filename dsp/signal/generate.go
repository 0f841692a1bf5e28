// Package signal synthesizes deterministic test signals: pure and harmonic
// tones, seeded white noise, and peak normalization.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Generator creates deterministic signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator returns a generator for the given sample rate.
func NewGenerator(sampleRate float64, opts ...Option) (*Generator, error) {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("signal: sample rate must be positive and finite: %v: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	g := &Generator{sampleRate: sampleRate, seed: 1}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g, nil
}

// SampleRate returns the generator sample rate.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

// Samples converts a duration in seconds to a sample count.
func (g *Generator) Samples(seconds float64) int {
	return int(math.Round(seconds * g.sampleRate))
}

// Sine generates amplitude*sin(2*pi*f*t).
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.Harmonic(freqHz, []float64{amplitude}, samples)
}

// Harmonic generates a sum of sines at freqHz*(k+1) with amplitudes[k].
// Partials at or above Nyquist are skipped.
func (g *Generator) Harmonic(freqHz float64, amplitudes []float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: samples must be > 0: %d: %w", samples, core.ErrInvalidParameter)
	}

	if !(freqHz > 0) || freqHz >= g.sampleRate/2 {
		return nil, fmt.Errorf("signal: frequency must be in (0, %v): %v: %w",
			g.sampleRate/2, freqHz, core.ErrInvalidParameter)
	}

	out := make([]float64, samples)

	for k, amp := range amplitudes {
		f := freqHz * float64(k+1)
		if f >= g.sampleRate/2 {
			break
		}

		step := 2 * math.Pi * f / g.sampleRate
		for i := range out {
			out[i] += amp * math.Sin(step*float64(i))
		}
	}

	return out, nil
}

// HarmonicSeries returns amplitudes 1, 1/2, ... 1/count for use with
// [Generator.Harmonic].
func HarmonicSeries(count int) []float64 {
	out := make([]float64, max(count, 0))
	for k := range out {
		out[k] = 1 / float64(k+1)
	}

	return out
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude) from the
// generator seed.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: samples must be > 0: %d: %w", samples, core.ErrInvalidParameter)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %v: %w", amplitude, core.ErrInvalidParameter)
	}

	rng := rand.New(rand.NewSource(g.seed))

	out := make([]float64, samples)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// Normalize returns a copy of data scaled to targetPeak. Silent input stays
// silent.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: target peak must be >= 0: %v: %w", targetPeak, core.ErrInvalidParameter)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize: %w", core.ErrEmptyInput)
	}

	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}

	out := make([]float64, len(data))
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / peak
	for i, v := range data {
		out[i] = v * scale
	}

	return out, nil
}
