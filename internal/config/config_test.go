package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/fft"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "spectra.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, OutputTable, cfg.Output)
	assert.Equal(t, fft.BackendRadix2, cfg.FFTBackend())
	assert.Zero(t, cfg.Workers)
	assert.False(t, cfg.Spectrogram)
	assert.Equal(t, analysis.DefaultSettings(), cfg.Analysis)
	assert.Len(t, cfg.AnalysisOptions(), 2)
}

func TestYAMLFile(t *testing.T) {
	path := writeTempConfig(t, `
output: json
backend: algofft
workers: 3
analysis:
  fft_size: 4096
  min_freq: 50
  harmonic_threshold: 0.25
`)

	v := New()
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, fft.BackendAlgoFFT, cfg.FFTBackend())
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 4096, cfg.Analysis.FFTSize)
	assert.Equal(t, 50.0, cfg.Analysis.MinFreq)
	assert.Equal(t, 0.25, cfg.Analysis.HarmonicThreshold)
	// untouched keys keep their defaults
	assert.Equal(t, 2048, cfg.Analysis.WindowSize)
	assert.Equal(t, 20000.0, cfg.Analysis.MaxFreq)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("SPECTRA_OUTPUT", "yaml")
	t.Setenv("SPECTRA_ANALYSIS_HOP_SIZE", "256")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, OutputYAML, cfg.Output)
	assert.Equal(t, 256, cfg.Analysis.HopSize)
}

func TestReadFileEmptyPath(t *testing.T) {
	assert.NoError(t, ReadFile(New(), ""))
}

func TestReadFileMissing(t *testing.T) {
	err := ReadFile(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"output", func(c *Config) { c.Output = "xml" }},
		{"backend", func(c *Config) { c.Backend = "fftw" }},
		{"workers", func(c *Config) { c.Workers = -1 }},
		{"fft size", func(c *Config) { c.Analysis.FFTSize = 1000 }},
		{"threshold", func(c *Config) { c.Analysis.HarmonicThreshold = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(New())
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidParameter))
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := writeTempConfig(t, "analysis:\n  hop_size: 0\n")

	v := New()
	require.NoError(t, ReadFile(v, path))

	_, err := Load(v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidParameter))
}
