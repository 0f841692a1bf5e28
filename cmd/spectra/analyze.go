package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/internal/report"
	"github.com/cwbudde/algo-spectra/internal/wavio"
)

func (a *app) newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file.wav>",
		Short: "Analyze a PCM WAV file",
		Long: `Decode a PCM WAV file, downmix its first two channels to mono and run
the spectral analysis. Results are written to stdout, logs to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, args[0])
		},
	}
}

func (a *app) runAnalyze(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	audio, err := wavio.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	res, err := a.analyze(audio, logrus.Fields{"file": path})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return report.Render(cmd.OutOrStdout(), a.cfg.Output, res, a.cfg.Spectrogram)
}

// analyze runs the configured analysis and logs a summary.
func (a *app) analyze(audio *wavio.Audio, fields logrus.Fields) (*analysis.Result, error) {
	entry := a.log.WithFields(fields).WithFields(logrus.Fields{
		"sample_rate": audio.SampleRate,
		"channels":    len(audio.Channels),
		"duration":    audio.Duration(),
	})
	entry.Debug("starting analysis")

	start := time.Now()

	res, err := analysis.Analyze(audio.Channels, audio.SampleRate, a.cfg.Analysis, a.cfg.AnalysisOptions()...)
	if err != nil {
		entry.WithError(err).Error("analysis failed")

		return nil, err
	}

	entry = entry.WithFields(logrus.Fields{
		"peaks":   len(res.SpectralFeatures),
		"series":  len(res.Harmonics),
		"elapsed": time.Since(start).Round(time.Microsecond),
	})

	if res.FundamentalFreq != nil {
		entry = entry.WithField("fundamental", *res.FundamentalFreq)
	}

	entry.Info("analysis complete")

	return res, nil
}
