package analysis

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/fft"
	"github.com/cwbudde/algo-spectra/dsp/spectrogram"
	"github.com/cwbudde/algo-spectra/dsp/spectrum"
	"github.com/cwbudde/algo-spectra/dsp/window"
	"github.com/cwbudde/algo-spectra/measure/harmonics"
	"github.com/cwbudde/algo-spectra/measure/peaks"
	"github.com/cwbudde/algo-spectra/stats/frequency"
	timestats "github.com/cwbudde/algo-spectra/stats/time"
	"golang.org/x/sync/errgroup"
)

// Analyze downmixes channels and runs the full analysis. Only the first two
// channels contribute to the downmix; every channel must have the same
// length.
func Analyze(channels [][]float64, sampleRate float64, settings Settings, opts ...Option) (*Result, error) {
	mono, err := Downmix(channels)
	if err != nil {
		return nil, err
	}

	return AnalyzeMono(mono, sampleRate, settings, opts...)
}

// AnalyzeMono runs the full analysis on a mono signal. samples is not
// modified.
func AnalyzeMono(samples []float64, sampleRate float64, settings Settings, opts ...Option) (*Result, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("analysis: no samples: %w", core.ErrEmptyInput)
	}

	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("analysis: sample rate must be positive and finite: %v: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	if err := settings.Validate(len(samples)); err != nil {
		return nil, err
	}

	run := applyOptions(opts)

	builder, err := spectrogram.NewBuilder(settings.WindowSize, settings.HopSize,
		spectrogram.WithWorkers(run.workers), spectrogram.WithBackend(run.backend))
	if err != nil {
		return nil, err
	}

	levels := timestats.Calculate(samples)

	res := &Result{
		RMSLevel:   levels.RMS,
		PeakLevel:  levels.Peak,
		SampleRate: sampleRate,
		Duration:   float64(len(samples)) / sampleRate,
		Extras: Extras{
			Settings: settings,
			Time:     levels,
		},
	}

	var g errgroup.Group

	g.Go(func() error {
		env, err := timestats.Envelope(samples, sampleRate)
		res.Envelope = env

		return err
	})

	g.Go(func() error {
		rows, err := builder.Build(samples)
		res.Spectrogram = rows

		return err
	})

	g.Go(func() error {
		return analyzeCenterFrame(res, samples, sampleRate, settings, run.backend)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

// CenterFrameStart returns floor((n - fftSize) / 2).
func CenterFrameStart(n, fftSize int) int {
	return max((n-fftSize)/2, 0)
}

// analyzeCenterFrame fills the spectral fields of res. It writes only fields
// no other goroutine touches.
func analyzeCenterFrame(res *Result, samples []float64, sampleRate float64, s Settings, backend fft.Backend) error {
	start := CenterFrameStart(len(samples), s.FFTSize)

	coeffs, err := window.BlackmanHarris(s.FFTSize)
	if err != nil {
		return err
	}

	re := make([]float64, s.FFTSize)
	im := make([]float64, s.FFTSize)
	copy(re, samples[start:start+s.FFTSize])

	if err := window.ApplyCoefficientsInPlace(re, coeffs); err != nil {
		return err
	}

	tr, err := fft.New(backend, s.FFTSize)
	if err != nil {
		return err
	}

	if err := tr.Transform(re, im); err != nil {
		return err
	}

	spec, err := spectrum.Extract(re, im)
	if err != nil {
		return err
	}

	features, err := peaks.Detect(spec.Magnitude, peaks.Config{
		SampleRate:   sampleRate,
		Threshold:    s.HarmonicThreshold,
		MinFrequency: s.MinFreq,
		MaxFrequency: s.MaxFreq,
	})
	if err != nil {
		return err
	}

	series := harmonics.Group(features)
	shape := frequency.Calculate(spec.Magnitude, sampleRate)

	res.SpectralFeatures = features
	res.Harmonics = series
	res.FundamentalFreq = fundamental(features, series, s.MinFreq)
	res.SpectralCentroid = shape.Centroid
	res.SpectralRolloff = shape.Rolloff
	res.Extras.Frequency = shape
	res.Extras.FrameStart = start

	if res.FundamentalFreq != nil {
		d, err := harmonics.MeasureDistortion(spec.Magnitude, harmonics.DistortionConfig{
			SampleRate:     sampleRate,
			Fundamental:    *res.FundamentalFreq,
			LowerFrequency: s.MinFreq,
			UpperFrequency: s.MaxFreq,
		})
		if err != nil {
			return err
		}

		res.Extras.Distortion = &d
	}

	return nil
}

// fundamental picks the strongest series' fundamental, else the
// lowest-frequency peak at or above minFreq. The fallback compares
// frequencies, so it is not the last entry of the magnitude-sorted list.
func fundamental(features []peaks.Feature, series []harmonics.Series, minFreq float64) *float64 {
	if len(series) > 0 {
		f := series[0].Fundamental
		return &f
	}

	lowest := math.Inf(1)
	for _, p := range features {
		if p.Frequency >= minFreq && p.Frequency < lowest {
			lowest = p.Frequency
		}
	}

	if math.IsInf(lowest, 1) {
		return nil
	}

	return &lowest
}
