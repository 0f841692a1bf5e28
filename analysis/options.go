package analysis

import "github.com/cwbudde/algo-spectra/dsp/fft"

// Option configures how an analysis is executed. Worker count never changes
// the result; FFT backends agree to floating-point rounding.
type Option func(*runConfig)

type runConfig struct {
	workers int
	backend fft.Backend
}

// WithWorkers sets the spectrogram worker count. Values <= 0 select
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *runConfig) {
		c.workers = n
	}
}

// WithBackend selects the FFT implementation.
func WithBackend(backend fft.Backend) Option {
	return func(c *runConfig) {
		c.backend = backend
	}
}

func applyOptions(opts []Option) runConfig {
	cfg := runConfig{backend: fft.BackendRadix2}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
