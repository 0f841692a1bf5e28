package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/fft"
	"github.com/cwbudde/algo-spectra/internal/testutil"
)

func TestExtractHalfSpectrum(t *testing.T) {
	re := []float64{3, 0, -1, 5}
	im := []float64{4, 2, 0, 7}

	s, err := Extract(re, im)
	if err != nil {
		t.Fatal(err)
	}

	if s.Len() != 2 || len(s.Phase) != 2 {
		t.Fatalf("expected 2 bins, got mag=%d phase=%d", s.Len(), len(s.Phase))
	}

	testutil.RequireSliceNearlyEqual(t, s.Magnitude, []float64{5, 2}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, s.Phase, []float64{math.Atan2(4, 3), math.Pi / 2}, 1e-12)
}

func TestExtractMismatch(t *testing.T) {
	_, err := Extract(make([]float64, 4), make([]float64, 3))
	if !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestExtractEmpty(t *testing.T) {
	s, err := Extract(nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if s.Len() != 0 {
		t.Fatalf("expected no bins, got %d", s.Len())
	}
}

func TestExtractSinePeaksAtBin(t *testing.T) {
	const n = 256

	// 8 cycles per frame lands exactly on bin 8.
	re, im, err := fft.Forward(testutil.Sine(8, n, 1, n))
	if err != nil {
		t.Fatal(err)
	}

	s, err := Extract(re, im)
	if err != nil {
		t.Fatal(err)
	}

	best := 0
	for k, m := range s.Magnitude {
		if m > s.Magnitude[best] {
			best = k
		}
	}

	if best != 8 {
		t.Fatalf("peak at bin %d, want 8", best)
	}

	testutil.RequireNear(t, "mag[8]", s.Magnitude[8], n/2, 1e-9)
}

func TestMagnitudeInto(t *testing.T) {
	re := []float64{3, 1, 9}
	im := []float64{4, 0, 9}

	mag := make([]float64, 2)
	if err := MagnitudeInto(mag, re, im); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, mag, []float64{5, 1}, 1e-12)

	if err := MagnitudeInto(make([]float64, 4), re, im); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestNormalizedDB(t *testing.T) {
	tests := []struct {
		mag  float64
		want float64
	}{
		{1, 1},
		{0.1, 0.8},
		{1e-5, 0},
		{1e-6, 0},
		{0, 0},
		{10, 1.2},
	}

	for _, tc := range tests {
		testutil.RequireNear(t, "NormalizedDB", NormalizedDB(tc.mag), tc.want, 1e-12)
	}

	row := []float64{1, 0.01}
	NormalizeDBInPlace(row)
	testutil.RequireSliceNearlyEqual(t, row, []float64{1, 0.6}, 1e-12)
}
