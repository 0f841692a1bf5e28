package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
)

func TestCalculateSine(t *testing.T) {
	// 100 full cycles.
	s := Calculate(testutil.Sine(441, 44100, 1, 10000))

	testutil.RequireNear(t, "RMS", s.RMS, 1/math.Sqrt2, 1e-6)
	testutil.RequireNear(t, "peak", s.Peak, 1, 1e-6)
	testutil.RequireNear(t, "DC", s.DC, 0, 1e-9)
	testutil.RequireNear(t, "crest", s.CrestFactor, math.Sqrt2, 1e-5)
	testutil.RequireNear(t, "RMS dB", s.RMSdB, -3.0103, 1e-3)

	if s.ZeroCrossings < 199 || s.ZeroCrossings > 201 {
		t.Fatalf("zero crossings = %d, want ~200", s.ZeroCrossings)
	}
}

func TestCalculateAsymmetricPeak(t *testing.T) {
	s := Calculate([]float64{0.25, -0.75, 0.5})

	testutil.RequireNear(t, "peak", s.Peak, 0.75, 0)
	testutil.RequireNear(t, "energy", s.Energy, 0.875, 1e-15)
	testutil.RequireNear(t, "DC", s.DC, 0, 1e-15)

	if s.ZeroCrossings != 2 {
		t.Fatalf("zero crossings = %d, want 2", s.ZeroCrossings)
	}
}

func TestCalculateSilence(t *testing.T) {
	for _, sig := range [][]float64{nil, make([]float64, 32)} {
		s := Calculate(sig)
		if s.RMS != 0 || s.Peak != 0 || s.CrestFactor != 0 {
			t.Fatalf("expected zero levels, got %+v", s)
		}

		testutil.RequireNear(t, "RMS dB", s.RMSdB, -300, 1e-9)
		testutil.RequireNear(t, "peak dB", s.PeakdB, -300, 1e-9)
	}
}

func TestRMSAndPeak(t *testing.T) {
	sig := []float64{3, -4}

	testutil.RequireNear(t, "RMS", RMS(sig), math.Sqrt(12.5), 1e-12)
	testutil.RequireNear(t, "peak", Peak(sig), 4, 0)

	if RMS(nil) != 0 || Peak(nil) != 0 {
		t.Fatal("expected 0 for empty signal")
	}
}
