// Package fft implements the forward discrete Fourier transform used by the
// analysis pipeline.
//
// The default backend is an iterative radix-2 Cooley-Tukey transform over
// split real/imaginary slices. Plans precompute twiddle factors and the
// bit-reversal permutation; [Forward] caches one plan per size.
//
// The transform is unnormalized and uses the e^{-i 2 pi k n / N} kernel:
//
//	X[k] = sum_{n=0}^{N-1} x[n] * e^{-i 2 pi k n / N}
//
// An alternative backend wraps github.com/MeKo-Christian/algo-fft.
package fft
