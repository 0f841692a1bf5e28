package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/internal/config"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	log        *logrus.Logger
	configFile string
}

// analysisFlags maps command-line names of analysis settings to config keys.
var analysisFlags = map[string]string{
	"fft-size":           "analysis.fft_size",
	"window-size":        "analysis.window_size",
	"hop-size":           "analysis.hop_size",
	"min-freq":           "analysis.min_freq",
	"max-freq":           "analysis.max_freq",
	"harmonic-threshold": "analysis.harmonic_threshold",
	"noise-floor":        "analysis.noise_floor",
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "spectra",
		Short: "Spectral analysis of audio signals",
		Long: `spectra runs a windowed FFT analysis over an audio file and reports
spectral peaks, harmonic series, the fundamental frequency, level and
distortion figures, an amplitude envelope and a magnitude spectrogram.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	defaults := analysis.DefaultSettings()

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.StringP("output", "o", config.OutputTable, "output format (table, json, yaml)")
	pf.String("backend", "radix2", "FFT backend (radix2, algofft)")
	pf.Int("workers", 0, "spectrogram workers (0 = GOMAXPROCS)")
	pf.Bool("spectrogram", false, "include envelope and spectrogram in json/yaml output")

	pf.Int("fft-size", defaults.FFTSize, "FFT size of the center-frame analysis (power of two)")
	pf.Int("window-size", defaults.WindowSize, "spectrogram window size (power of two)")
	pf.Int("hop-size", defaults.HopSize, "spectrogram hop size in samples")
	pf.Float64("min-freq", defaults.MinFreq, "lowest reported peak frequency in Hz")
	pf.Float64("max-freq", defaults.MaxFreq, "highest reported peak frequency in Hz")
	pf.Float64("harmonic-threshold", defaults.HarmonicThreshold, "peak threshold relative to the spectrum maximum")
	pf.Float64("noise-floor", defaults.NoiseFloor, "noise floor in dB")

	root.AddCommand(
		a.newAnalyzeCommand(),
		a.newToneCommand(),
		a.newWindowCommand(),
	)

	return root
}

// initialize resolves flags, config file and environment into a.cfg and
// sets up the logger.
func (a *app) initialize(cmd *cobra.Command) error {
	if err := a.bindFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := config.ReadFile(a.v, a.configFile); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	a.cfg = cfg
	a.log = log

	if a.configFile != "" {
		log.WithField("file", a.configFile).Debug("config file loaded")
	}

	return nil
}

// bindFlags ties every known flag to its viper key so that explicitly set
// flags take precedence over file and environment values.
func (a *app) bindFlags(flags *pflag.FlagSet) error {
	var bindErr error

	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Name == "config" {
			return
		}

		key, ok := analysisFlags[f.Name]
		if !ok {
			if isLocalFlag(f.Name) {
				return
			}

			key = strings.ReplaceAll(f.Name, "-", "_")
		}

		bindErr = a.v.BindPFlag(key, f)
	})

	return bindErr
}

var globalFlags = map[string]bool{
	"log-level":   true,
	"output":      true,
	"backend":     true,
	"workers":     true,
	"spectrogram": true,
}

func isLocalFlag(name string) bool {
	return !globalFlags[name]
}
