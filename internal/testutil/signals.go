// Package testutil provides deterministic fixtures and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine generates amplitude*sin(2*pi*f*i/sr) for length samples.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] += amplitude * math.Sin(step*float64(i))
	}

	return out
}

// HarmonicTone sums partials f, 2f, ... count*f with amplitude 1/k.
func HarmonicTone(fundamental, sampleRate float64, count, length int) []float64 {
	out := make([]float64, length)

	for k := 1; k <= count; k++ {
		step := 2 * math.Pi * fundamental * float64(k) / sampleRate
		amp := 1 / float64(k)

		for i := range out {
			out[i] += amp * math.Sin(step*float64(i))
		}
	}

	return out
}

// Noise generates uniform white noise in [-amplitude, amplitude) from a
// fixed seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, length)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse returns a unit impulse at pos; out-of-range positions yield silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// Constant returns length copies of value.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return Constant(1, n)
}
