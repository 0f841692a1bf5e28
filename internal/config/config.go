// Package config loads the spectra CLI configuration from defaults, an
// optional YAML file, SPECTRA_* environment variables and command flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/fft"
)

// EnvPrefix prefixes every environment override, e.g. SPECTRA_ANALYSIS_FFT_SIZE.
const EnvPrefix = "SPECTRA"

// Output formats accepted by the report renderer.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config is the resolved CLI configuration.
type Config struct {
	LogLevel    string            `mapstructure:"log_level"`
	Output      string            `mapstructure:"output"`
	Backend     string            `mapstructure:"backend"`
	Workers     int               `mapstructure:"workers"`
	Spectrogram bool              `mapstructure:"spectrogram"`
	Analysis    analysis.Settings `mapstructure:"analysis"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	return v
}

// SetDefaults registers the default value of every key so that environment
// overrides are visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	s := analysis.DefaultSettings()

	v.SetDefault("log_level", "info")
	v.SetDefault("output", OutputTable)
	v.SetDefault("backend", fft.BackendRadix2.String())
	v.SetDefault("workers", 0)
	v.SetDefault("spectrogram", false)

	v.SetDefault("analysis.fft_size", s.FFTSize)
	v.SetDefault("analysis.window_size", s.WindowSize)
	v.SetDefault("analysis.hop_size", s.HopSize)
	v.SetDefault("analysis.min_freq", s.MinFreq)
	v.SetDefault("analysis.max_freq", s.MaxFreq)
	v.SetDefault("analysis.harmonic_threshold", s.HarmonicThreshold)
	v.SetDefault("analysis.noise_floor", s.NoiseFloor)
}

// ReadFile merges the YAML file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks CLI-level settings and the analysis settings without a
// signal length.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("config: unknown output format %q: %w", c.Output, core.ErrInvalidParameter)
	}

	if _, err := fft.ParseBackend(c.Backend); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0: %d: %w", c.Workers, core.ErrInvalidParameter)
	}

	if err := c.Analysis.Validate(-1); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// FFTBackend returns the parsed backend. Call after Validate.
func (c *Config) FFTBackend() fft.Backend {
	b, _ := fft.ParseBackend(c.Backend)

	return b
}

// AnalysisOptions translates the execution settings into analysis options.
func (c *Config) AnalysisOptions() []analysis.Option {
	return []analysis.Option{
		analysis.WithWorkers(c.Workers),
		analysis.WithBackend(c.FFTBackend()),
	}
}
