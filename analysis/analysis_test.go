package analysis

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/fft"
	"github.com/cwbudde/algo-spectra/internal/testutil"
	"github.com/cwbudde/algo-spectra/measure/harmonics"
	"github.com/cwbudde/algo-spectra/measure/peaks"
)

const sr = 44100.0

func analyzeMono(t *testing.T, samples []float64, s Settings, opts ...Option) *Result {
	t.Helper()

	res, err := AnalyzeMono(samples, sr, s, opts...)
	if err != nil {
		t.Fatalf("AnalyzeMono: %v", err)
	}

	return res
}

func TestAnalyzeSine440(t *testing.T) {
	res := analyzeMono(t, testutil.Sine(440, sr, 1, int(sr)), DefaultSettings())

	if res.FundamentalFreq == nil {
		t.Fatal("expected a fundamental")
	}

	testutil.RequireNear(t, "fundamental", *res.FundamentalFreq, 440, 5)
	testutil.RequireNear(t, "rms", res.RMSLevel, 0.707, 0.05)
	testutil.RequireNear(t, "peak", res.PeakLevel, 1, 0.05)
	testutil.RequireNear(t, "duration", res.Duration, 1, 1e-12)

	if len(res.SpectralFeatures) == 0 {
		t.Fatal("expected spectral features")
	}

	testutil.RequireNear(t, "strongest peak", res.SpectralFeatures[0].Frequency, 440, sr/8192)

	if res.SampleRate != sr {
		t.Fatalf("sample rate = %v", res.SampleRate)
	}

	if res.Extras.FrameStart != (44100-8192)/2 {
		t.Fatalf("frame start = %d", res.Extras.FrameStart)
	}
}

func TestAnalyzeHarmonicTone(t *testing.T) {
	res := analyzeMono(t, testutil.HarmonicTone(220, sr, 5, int(sr)), DefaultSettings())

	if len(res.Harmonics) != 1 {
		t.Fatalf("expected one harmonic series, got %d", len(res.Harmonics))
	}

	s := res.Harmonics[0]
	if len(s.Overtones) < 4 || s.Inharmonicity > 0.005 {
		t.Fatalf("unexpected series: %d members, inharmonicity %v", len(s.Overtones), s.Inharmonicity)
	}

	if s.Overtones[0].Frequency != s.Fundamental {
		t.Fatal("overtones[0] must be the fundamental's own peak")
	}

	if res.FundamentalFreq == nil || *res.FundamentalFreq != s.Fundamental {
		t.Fatalf("fundamental = %v, want series fundamental %v", res.FundamentalFreq, s.Fundamental)
	}

	if res.Extras.Distortion == nil || res.Extras.Distortion.THD <= 0.1 {
		t.Fatalf("expected substantial THD, got %+v", res.Extras.Distortion)
	}
}

func TestAnalyzeSilence(t *testing.T) {
	res := analyzeMono(t, make([]float64, 16384), DefaultSettings())

	if len(res.SpectralFeatures) != 0 || len(res.Harmonics) != 0 {
		t.Fatalf("expected no features, got %d peaks %d series", len(res.SpectralFeatures), len(res.Harmonics))
	}

	if res.FundamentalFreq != nil {
		t.Fatalf("expected nil fundamental, got %v", *res.FundamentalFreq)
	}

	if res.RMSLevel != 0 || res.PeakLevel != 0 || res.SpectralCentroid != 0 {
		t.Fatalf("expected zero levels: rms=%v peak=%v centroid=%v", res.RMSLevel, res.PeakLevel, res.SpectralCentroid)
	}

	if res.Extras.Distortion != nil {
		t.Fatal("expected no distortion without a fundamental")
	}
}

func TestAnalyzeShapeInvariants(t *testing.T) {
	s := DefaultSettings()
	sig := testutil.Noise(11, 0.8, 30000)
	res := analyzeMono(t, sig, s)

	if len(res.Envelope) != len(sig) {
		t.Fatalf("envelope length %d, want %d", len(res.Envelope), len(sig))
	}

	for i, v := range res.Envelope {
		if v < 0 {
			t.Fatalf("envelope[%d] = %v", i, v)
		}
	}

	wantFrames := (len(sig)-s.WindowSize)/s.HopSize + 1
	if len(res.Spectrogram) != wantFrames {
		t.Fatalf("spectrogram frames %d, want %d", len(res.Spectrogram), wantFrames)
	}

	for i, row := range res.Spectrogram {
		if len(row) != s.WindowSize/2 {
			t.Fatalf("row %d has %d bins", i, len(row))
		}
	}

	if res.SpectralCentroid < 0 || res.SpectralRolloff < 0 || res.SpectralRolloff > sr/2 {
		t.Fatalf("centroid=%v rolloff=%v out of range", res.SpectralCentroid, res.SpectralRolloff)
	}

	for i, p := range res.SpectralFeatures {
		if p.Frequency < s.MinFreq || p.Frequency > s.MaxFreq {
			t.Fatalf("peak %d at %v outside band", i, p.Frequency)
		}

		if i > 0 && p.Magnitude > res.SpectralFeatures[i-1].Magnitude {
			t.Fatalf("peaks not sorted at %d", i)
		}
	}

	for i := 1; i < len(res.Harmonics); i++ {
		if res.Harmonics[i].Strength > res.Harmonics[i-1].Strength {
			t.Fatalf("series not sorted at %d", i)
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	sig := testutil.HarmonicTone(180, sr, 6, 20000)
	s := DefaultSettings()

	a := analyzeMono(t, sig, s)
	b := analyzeMono(t, sig, s, WithWorkers(1))
	c := analyzeMono(t, sig, s, WithWorkers(5))

	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, c) {
		t.Fatal("repeated analysis differs")
	}
}

func TestAnalyzeDoesNotModifyInput(t *testing.T) {
	sig := testutil.Sine(1000, sr, 0.5, 10000)
	orig := append([]float64(nil), sig...)

	analyzeMono(t, sig, DefaultSettings())
	testutil.RequireSliceNearlyEqual(t, sig, orig, 0)
}

func TestAnalyzeBackends(t *testing.T) {
	sig := testutil.Sine(440, sr, 1, int(sr))

	a := analyzeMono(t, sig, DefaultSettings())
	b := analyzeMono(t, sig, DefaultSettings(), WithBackend(fft.BackendAlgoFFT))

	testutil.RequireNear(t, "fundamental", *b.FundamentalFreq, *a.FundamentalFreq, 1e-6)
	testutil.RequireNear(t, "centroid", b.SpectralCentroid, a.SpectralCentroid, 1e-6)
}

func TestAnalyzeStereoDownmix(t *testing.T) {
	left := testutil.Sine(440, sr, 1, 16384)
	right := testutil.Sine(440, sr, -1, 16384)

	res, err := Analyze([][]float64{left, right}, sr, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}

	if res.PeakLevel != 0 || res.FundamentalFreq != nil {
		t.Fatalf("opposite channels should cancel: peak=%v", res.PeakLevel)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	sig := make([]float64, 4096)
	small := DefaultSettings()
	small.FFTSize, small.WindowSize = 1024, 1024

	tests := []struct {
		name     string
		channels [][]float64
		rate     float64
		settings Settings
		want     error
	}{
		{"no channels", nil, sr, small, core.ErrEmptyInput},
		{"empty channel", [][]float64{{}}, sr, small, core.ErrEmptyInput},
		{"unequal channels", [][]float64{sig, sig[:100]}, sr, small, core.ErrInvalidParameter},
		{"fft larger than signal", [][]float64{sig}, sr, DefaultSettings(), core.ErrInvalidParameter},
		{"zero rate", [][]float64{sig}, 0, small, core.ErrInvalidParameter},
		{"nan rate", [][]float64{sig}, math.NaN(), small, core.ErrInvalidParameter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Analyze(tc.channels, tc.rate, tc.settings)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAnalyzeRejectsUnknownBackend(t *testing.T) {
	s := DefaultSettings()
	s.FFTSize, s.WindowSize = 1024, 1024

	_, err := AnalyzeMono(make([]float64, 4096), sr, s, WithBackend(fft.Backend(7)))
	if !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestCenterFrameStart(t *testing.T) {
	cases := []struct{ n, fft, want int }{
		{44100, 8192, 17954},
		{8192, 8192, 0},
		{8193, 8192, 0},
		{8194, 8192, 1},
	}

	for _, tc := range cases {
		if got := CenterFrameStart(tc.n, tc.fft); got != tc.want {
			t.Fatalf("CenterFrameStart(%d, %d) = %d, want %d", tc.n, tc.fft, got, tc.want)
		}
	}
}

func TestFundamentalFallbackIsLowestFrequency(t *testing.T) {
	// Sorted by magnitude; the weakest peak is not the lowest.
	found := []peaks.Feature{
		{Frequency: 300, Magnitude: 10},
		{Frequency: 100, Magnitude: 5},
		{Frequency: 500, Magnitude: 1},
	}

	tests := []struct {
		name    string
		minFreq float64
		want    float64
	}{
		{"all peaks", 20, 100},
		{"above min", 150, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fundamental(found, nil, tt.minFreq)
			if got == nil || *got != tt.want {
				t.Fatalf("fundamental = %v, want %v", got, tt.want)
			}
		})
	}

	if got := fundamental(found, nil, 1000); got != nil {
		t.Fatalf("expected nil above every peak, got %v", *got)
	}

	series := []harmonics.Series{{Fundamental: 250}}
	if got := fundamental(found, series, 20); got == nil || *got != 250 {
		t.Fatalf("series fundamental not preferred: %v", got)
	}
}
