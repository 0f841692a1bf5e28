package analysis

import (
	"github.com/cwbudde/algo-spectra/measure/harmonics"
	"github.com/cwbudde/algo-spectra/measure/peaks"
	"github.com/cwbudde/algo-spectra/stats/frequency"
	timestats "github.com/cwbudde/algo-spectra/stats/time"
)

// Result is the outcome of one analysis. It is owned by the caller and never
// modified by this package after Analyze returns.
type Result struct {
	// SpectralFeatures is sorted by descending magnitude.
	SpectralFeatures []peaks.Feature `json:"spectralFeatures" yaml:"spectralFeatures"`
	// Harmonics is sorted by descending strength.
	Harmonics []harmonics.Series `json:"harmonics" yaml:"harmonics"`
	// FundamentalFreq is nil when no peak was found.
	FundamentalFreq  *float64 `json:"fundamentalFreq" yaml:"fundamentalFreq"`
	SpectralCentroid float64  `json:"spectralCentroid" yaml:"spectralCentroid"`
	SpectralRolloff  float64  `json:"spectralRolloff" yaml:"spectralRolloff"`
	RMSLevel         float64  `json:"rmsLevel" yaml:"rmsLevel"`
	PeakLevel        float64  `json:"peakLevel" yaml:"peakLevel"`
	SampleRate       float64  `json:"sampleRate" yaml:"sampleRate"`
	// Duration is in seconds.
	Duration float64 `json:"duration" yaml:"duration"`
	// Envelope has one value per input sample.
	Envelope []float64 `json:"envelope" yaml:"envelope"`
	// Spectrogram is time-major; every row has WindowSize/2 bins in [0, inf).
	Spectrogram [][]float64 `json:"spectrogram" yaml:"spectrogram"`

	Extras Extras `json:"extras" yaml:"extras"`
}

// Extras holds descriptors beyond the core result.
type Extras struct {
	Settings Settings `json:"settings" yaml:"settings"`
	// Frequency describes the center-frame magnitude spectrum.
	Frequency frequency.Stats `json:"frequency" yaml:"frequency"`
	// Time describes the full downmixed signal.
	Time timestats.Stats `json:"time" yaml:"time"`
	// Distortion is measured around FundamentalFreq and is nil without one.
	Distortion *harmonics.Distortion `json:"distortion" yaml:"distortion"`
	// FrameStart is the first sample of the center frame.
	FrameStart int `json:"frameStart" yaml:"frameStart"`
}
