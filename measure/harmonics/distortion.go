package harmonics

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/window"
)

const (
	defaultLowerHz       = 20.0
	defaultUpperHz       = 20000.0
	defaultRubNBuzzStart = 10
	captureProbeSize     = 1024
	dbFloorRatio         = 1e-15
)

// DistortionConfig holds harmonic distortion parameters.
type DistortionConfig struct {
	SampleRate  float64
	Fundamental float64
	// LowerFrequency and UpperFrequency bound the measured band.
	LowerFrequency float64
	UpperFrequency float64
	// CaptureBins is the half-width summed around each harmonic bin. Zero
	// selects the first null of the Blackman-Harris window.
	CaptureBins   int
	MaxHarmonics  int
	RubNBuzzStart int
}

// Distortion holds harmonic distortion ratios relative to the fundamental
// level. Ratios are linear; the dB fields repeat THD and THD+N in decibels,
// floored at -300 dB.
type Distortion struct {
	Fundamental      float64   `json:"fundamental" yaml:"fundamental"`
	FundamentalLevel float64   `json:"fundamentalLevel" yaml:"fundamentalLevel"`
	THD              float64   `json:"thd" yaml:"thd"`
	THDN             float64   `json:"thdn" yaml:"thdn"`
	THDdB            float64   `json:"thdDb" yaml:"thdDb"`
	THDNdB           float64   `json:"thdnDb" yaml:"thdnDb"`
	OddHD            float64   `json:"oddHd" yaml:"oddHd"`
	EvenHD           float64   `json:"evenHd" yaml:"evenHd"`
	Noise            float64   `json:"noise" yaml:"noise"`
	RubNBuzz         float64   `json:"rubNBuzz" yaml:"rubNBuzz"`
	SINAD            float64   `json:"sinad" yaml:"sinad"`
	Harmonics        []float64 `json:"harmonics" yaml:"harmonics"`
}

// MeasureDistortion evaluates harmonic distortion of the half-spectrum mag
// around cfg.Fundamental. A zero fundamental level yields a zero result
// carrying only the fundamental frequency.
func MeasureDistortion(mag []float64, cfg DistortionConfig) (Distortion, error) {
	cfg, err := normalizeDistortion(cfg)
	if err != nil {
		return Distortion{}, err
	}

	if len(mag) < 2 {
		return Distortion{}, fmt.Errorf("harmonics: spectrum needs at least 2 bins: %w", core.ErrEmptyInput)
	}

	maxBin := len(mag) - 1
	binHz := cfg.SampleRate / float64(2*len(mag))

	lower := clampInt(int(math.Round(cfg.LowerFrequency/binHz)), 1, maxBin)
	upper := clampInt(int(math.Round(cfg.UpperFrequency/binHz)), lower, maxBin)
	fundBin := clampInt(int(math.Round(cfg.Fundamental/binHz)), lower, upper)

	capture := cfg.CaptureBins
	if capture == 0 {
		capture = defaultCaptureBins()
	}

	capture = min(capture, fundBin/2)

	res := Distortion{Fundamental: float64(fundBin) * binHz}

	res.FundamentalLevel = binLevel(mag, fundBin, capture)
	if res.FundamentalLevel <= 0 {
		return res, nil
	}

	var thd, odd, even, rub float64

	res.Harmonics = make([]float64, 0, 8)

	for k := 2; cfg.MaxHarmonics == 0 || len(res.Harmonics) < cfg.MaxHarmonics; k++ {
		bin := k * fundBin
		if bin > upper {
			break
		}

		v := binLevel(mag, bin, capture)

		thd += v
		if k%2 == 0 {
			even += v
		} else {
			odd += v
		}

		if k >= cfg.RubNBuzzStart {
			rub += v
		}

		res.Harmonics = append(res.Harmonics, v/res.FundamentalLevel)
	}

	total := 0.0
	for i := lower; i <= upper; i++ {
		total += mag[i]
	}

	thdn := math.Max(total-res.FundamentalLevel, 0)
	noise := math.Max(thdn-thd, 0)

	ref := res.FundamentalLevel
	res.THD = thd / ref
	res.THDN = thdn / ref
	res.OddHD = odd / ref
	res.EvenHD = even / ref
	res.Noise = noise / ref
	res.RubNBuzz = rub / ref
	res.THDdB = ratioToDB(res.THD)
	res.THDNdB = ratioToDB(res.THDN)

	res.SINAD = -res.THDNdB

	return res, nil
}

func normalizeDistortion(cfg DistortionConfig) (DistortionConfig, error) {
	if !(cfg.SampleRate > 0) || !core.IsFinite(cfg.SampleRate) {
		return cfg, fmt.Errorf("harmonics: sample rate must be positive and finite: %v: %w",
			cfg.SampleRate, core.ErrInvalidParameter)
	}

	if !(cfg.Fundamental > 0) || !core.IsFinite(cfg.Fundamental) {
		return cfg, fmt.Errorf("harmonics: fundamental must be positive: %v: %w",
			cfg.Fundamental, core.ErrInvalidParameter)
	}

	if cfg.LowerFrequency <= 0 {
		cfg.LowerFrequency = defaultLowerHz
	}

	if cfg.UpperFrequency <= 0 {
		cfg.UpperFrequency = defaultUpperHz
	}

	cfg.UpperFrequency = math.Max(cfg.UpperFrequency, cfg.LowerFrequency)

	if cfg.RubNBuzzStart < 2 {
		cfg.RubNBuzzStart = defaultRubNBuzzStart
	}

	cfg.CaptureBins = max(cfg.CaptureBins, 0)
	cfg.MaxHarmonics = max(cfg.MaxHarmonics, 0)

	return cfg, nil
}

var defaultCaptureBins = sync.OnceValue(func() int {
	a := window.Analyze(window.Generate(window.TypeBlackmanHarris4Term, captureProbeSize))
	if !(a.FirstMinimumBins > 0) {
		return 0
	}

	return int(math.Round(a.FirstMinimumBins))
})

// binLevel sums magnitudes over bin +/- capture.
func binLevel(mag []float64, bin, capture int) float64 {
	if bin < 0 || bin >= len(mag) {
		return 0
	}

	lo := max(bin-capture, 0)
	hi := min(bin+capture, len(mag)-1)

	sum := 0.0
	for _, v := range mag[lo : hi+1] {
		sum += v
	}

	return sum
}

// ratioToDB floors at -300 dB so results stay finite for serialization.
func ratioToDB(v float64) float64 {
	return core.FlooredDB(v, dbFloorRatio)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
