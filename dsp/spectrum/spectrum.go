package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// MagnitudeFloor is the smallest magnitude passed to the dB conversion.
	MagnitudeFloor = 1e-10
	// dbOffset and dbRange map [-100 dB, 0 dB] onto [0, 1].
	dbOffset = 100.0
	dbRange  = 100.0
)

// Spectrum is the non-negative half of a DFT: bins 0 .. N/2-1.
type Spectrum struct {
	Magnitude []float64
	Phase     []float64
}

// Len returns the bin count.
func (s Spectrum) Len() int { return len(s.Magnitude) }

// Extract returns magnitude and phase for the first len(re)/2 bins of a DFT.
// The Nyquist bin is not included.
func Extract(re, im []float64) (Spectrum, error) {
	if len(re) != len(im) {
		return Spectrum{}, fmt.Errorf("spectrum: re/im length mismatch: %d != %d: %w",
			len(re), len(im), core.ErrInvalidParameter)
	}

	half := len(re) / 2
	s := Spectrum{
		Magnitude: make([]float64, half),
		Phase:     make([]float64, half),
	}

	vecmath.Magnitude(s.Magnitude, re[:half], im[:half])

	for k := range half {
		s.Phase[k] = math.Atan2(im[k], re[k])
	}

	return s, nil
}

// MagnitudeInto writes |X[k]| for the first len(dst) bins into dst.
// re and im must hold at least len(dst) values.
func MagnitudeInto(dst, re, im []float64) error {
	n := len(dst)
	if len(re) < n || len(im) < n {
		return fmt.Errorf("spectrum: need %d bins, have re=%d im=%d: %w",
			n, len(re), len(im), core.ErrInvalidParameter)
	}

	vecmath.Magnitude(dst, re[:n], im[:n])

	return nil
}

// NormalizedDB maps a magnitude to max(0, (20*log10(max(mag, 1e-10)) + 100) / 100).
// 0 dB maps to 1 and anything at or below -100 dB maps to 0. Values above
// 0 dB are not clipped.
func NormalizedDB(mag float64) float64 {
	v := (core.FlooredDB(mag, MagnitudeFloor) + dbOffset) / dbRange

	return math.Max(0, v)
}

// NormalizeDBInPlace applies [NormalizedDB] to every element of mag.
func NormalizeDBInPlace(mag []float64) {
	for i, m := range mag {
		mag[i] = NormalizedDB(m)
	}
}
