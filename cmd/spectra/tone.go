package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectra/dsp/signal"
	"github.com/cwbudde/algo-spectra/internal/report"
	"github.com/cwbudde/algo-spectra/internal/wavio"
)

type toneOptions struct {
	freq       float64
	harmonics  int
	duration   float64
	sampleRate float64
	noise      float64
	seed       int64
	out        string
}

func (a *app) newToneCommand() *cobra.Command {
	opts := toneOptions{}

	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Synthesize a harmonic test tone and analyze it",
		Long: `Generate a tone with harmonics at 1/k amplitude, optionally mixed with
seeded white noise, peak-normalized to 0.9. The tone is analyzed like a
decoded file and can be saved as 16-bit WAV with --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTone(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.freq, "freq", 440, "fundamental frequency in Hz")
	f.IntVar(&opts.harmonics, "harmonics", 1, "number of partials including the fundamental")
	f.Float64Var(&opts.duration, "duration", 1, "length in seconds")
	f.Float64Var(&opts.sampleRate, "sample-rate", 44100, "sample rate in Hz")
	f.Float64Var(&opts.noise, "noise", 0, "white noise amplitude")
	f.Int64Var(&opts.seed, "seed", 1, "noise seed")
	f.StringVar(&opts.out, "out", "", "write the tone to this WAV file")

	return cmd
}

func (a *app) runTone(cmd *cobra.Command, opts toneOptions) error {
	samples, err := synthesize(opts)
	if err != nil {
		return err
	}

	channels := [][]float64{samples}

	if opts.out != "" {
		if err := writeWAV(opts.out, channels, int(opts.sampleRate)); err != nil {
			return err
		}

		a.log.WithField("file", opts.out).Info("tone written")
	}

	audio := &wavio.Audio{Channels: channels, SampleRate: opts.sampleRate, BitDepth: 64}

	res, err := a.analyze(audio, logrus.Fields{"tone": opts.freq, "partials": opts.harmonics})
	if err != nil {
		return err
	}

	return report.Render(cmd.OutOrStdout(), a.cfg.Output, res, a.cfg.Spectrogram)
}

func synthesize(opts toneOptions) ([]float64, error) {
	if opts.harmonics < 1 {
		return nil, fmt.Errorf("harmonics must be >= 1: %d", opts.harmonics)
	}

	gen, err := signal.NewGenerator(opts.sampleRate, signal.WithSeed(opts.seed))
	if err != nil {
		return nil, err
	}

	n := gen.Samples(opts.duration)

	tone, err := gen.Harmonic(opts.freq, signal.HarmonicSeries(opts.harmonics), n)
	if err != nil {
		return nil, err
	}

	if opts.noise > 0 {
		noise, err := gen.WhiteNoise(opts.noise, n)
		if err != nil {
			return nil, err
		}

		for i := range tone {
			tone[i] += noise[i]
		}
	}

	return signal.Normalize(tone, 0.9)
}

func writeWAV(path string, channels [][]float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := wavio.Encode(f, channels, sampleRate); err != nil {
		f.Close()

		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
