package core

import "testing"

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{-8, false},
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{1024, true},
		{1000, false},
		{8192, true},
	}

	for _, tt := range tests {
		if got := IsPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestLog2(t *testing.T) {
	if got := Log2(1024); got != 10 {
		t.Fatalf("Log2(1024) = %d, want 10", got)
	}

	if got := Log2(1000); got != -1 {
		t.Fatalf("Log2(1000) = %d, want -1", got)
	}
}
