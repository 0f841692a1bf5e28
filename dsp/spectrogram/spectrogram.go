// Package spectrogram builds a time-frequency magnitude grid from hopped,
// Blackman-Harris windowed frames.
//
// Frames are independent, so [Builder.Build] spreads them across a fixed
// number of workers. Each worker owns its transformer and borrows scratch
// frames from a shared pool; rows are written back by frame index, so the
// output does not depend on scheduling.
package spectrogram

import (
	"fmt"
	"runtime"

	"github.com/cwbudde/algo-spectra/dsp/buffer"
	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/fft"
	"github.com/cwbudde/algo-spectra/dsp/spectrum"
	"github.com/cwbudde/algo-spectra/dsp/window"
	"golang.org/x/sync/errgroup"
)

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers sets the number of concurrent frame workers. Values <= 0
// select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// WithBackend selects the FFT implementation.
func WithBackend(backend fft.Backend) Option {
	return func(b *Builder) {
		b.backend = backend
	}
}

// Builder computes spectrograms for a fixed window and hop size. A Builder
// is safe for concurrent use.
type Builder struct {
	windowSize int
	hopSize    int
	workers    int
	backend    fft.Backend
	coeffs     []float64
	frames     *buffer.Pool
}

// NewBuilder validates the framing parameters and precomputes the window.
func NewBuilder(windowSize, hopSize int, opts ...Option) (*Builder, error) {
	if windowSize < 2 || !core.IsPowerOfTwo(windowSize) {
		return nil, fmt.Errorf("spectrogram: window size must be a power of two >= 2: %d: %w",
			windowSize, core.ErrInvalidParameter)
	}

	if hopSize <= 0 {
		return nil, fmt.Errorf("spectrogram: hop size must be > 0: %d: %w", hopSize, core.ErrInvalidParameter)
	}

	coeffs, err := window.BlackmanHarris(windowSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		windowSize: windowSize,
		hopSize:    hopSize,
		backend:    fft.BackendRadix2,
		coeffs:     coeffs,
		frames:     buffer.NewPool(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	if b.workers <= 0 {
		b.workers = runtime.GOMAXPROCS(0)
	}

	// Fail on an unusable backend here rather than inside a worker.
	if _, err := fft.New(b.backend, windowSize); err != nil {
		return nil, err
	}

	return b, nil
}

// WindowSize returns the frame length in samples.
func (b *Builder) WindowSize() int { return b.windowSize }

// HopSize returns the frame advance in samples.
func (b *Builder) HopSize() int { return b.hopSize }

// Bins returns the row length, windowSize/2.
func (b *Builder) Bins() int { return b.windowSize / 2 }

// FrameCount returns floor((n - windowSize) / hopSize) + 1, or 0 when the
// signal is shorter than one window.
func (b *Builder) FrameCount(n int) int {
	if n < b.windowSize {
		return 0
	}

	return (n-b.windowSize)/b.hopSize + 1
}

// Build returns one row per frame in time order. Each row holds
// windowSize/2 normalized dB magnitudes (see [spectrum.NormalizedDB]).
// Frames reaching past the end of samples are zero-padded.
func (b *Builder) Build(samples []float64) ([][]float64, error) {
	frames := b.FrameCount(len(samples))
	rows := make([][]float64, frames)

	if frames == 0 {
		return rows, nil
	}

	workers := min(b.workers, frames)

	var g errgroup.Group

	for w := range workers {
		g.Go(func() error {
			tr, err := fft.New(b.backend, b.windowSize)
			if err != nil {
				return err
			}

			for i := w; i < frames; i += workers {
				row, err := b.frame(tr, samples, i)
				if err != nil {
					return fmt.Errorf("spectrogram: frame %d: %w", i, err)
				}

				rows[i] = row
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

func (b *Builder) frame(tr fft.Transformer, samples []float64, index int) ([]float64, error) {
	start := index * b.hopSize
	end := min(start+b.windowSize, len(samples))

	f := b.frames.Get(b.windowSize)
	defer b.frames.Put(f)

	f.Load(samples[start:end])

	if err := window.ApplyCoefficientsInPlace(f.Re, b.coeffs); err != nil {
		return nil, err
	}

	if err := tr.Transform(f.Re, f.Im); err != nil {
		return nil, err
	}

	row := make([]float64, b.Bins())
	if err := spectrum.MagnitudeInto(row, f.Re, f.Im); err != nil {
		return nil, err
	}

	spectrum.NormalizeDBInPlace(row)

	return row, nil
}
