package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 1, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	RequireNear(t, "s[12]", s[12], 1, 1e-12)
}

func TestHarmonicTone(t *testing.T) {
	tone := HarmonicTone(100, 8000, 3, 80)
	want := make([]float64, 80)

	for k := 1; k <= 3; k++ {
		partial := Sine(100*float64(k), 8000, 1/float64(k), 80)
		for i := range want {
			want[i] += partial[i]
		}
	}

	RequireSliceNearlyEqual(t, tone, want, 1e-12)
}

func TestNoiseReproducible(t *testing.T) {
	a := Noise(42, 1, 64)
	b := Noise(42, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)

	c := Noise(43, 1, 64)
	if d, _ := MaxAbsDiff(a, c); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}

	for i, v := range a {
		if v < -1 || v >= 1 {
			t.Fatalf("a[%d] = %v out of range", i, v)
		}
	}
}

func TestImpulse(t *testing.T) {
	RequireSliceNearlyEqual(t, Impulse(4, 2), []float64{0, 0, 1, 0}, 0)
	RequireSliceNearlyEqual(t, Impulse(4, 10), []float64{0, 0, 0, 0}, 0)
}

func TestConstant(t *testing.T) {
	RequireSliceNearlyEqual(t, Constant(0.5, 3), []float64{0.5, 0.5, 0.5}, 0)
	RequireSliceNearlyEqual(t, Ones(2), []float64{1, 1}, 0)
}
