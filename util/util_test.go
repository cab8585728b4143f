package util

import (
	"math"
	"testing"
)

func TestGenerateLut(t *testing.T) {
	lut := GenerateLut(10)
	if len(lut) != 10 {
		t.Fatalf("len = %d, want 10", len(lut))
	}
	if lut[0] != 0 || lut[9] != 0 {
		t.Errorf("ends = %v, %v, want 0", lut[0], lut[9])
	}
	for i := 0; i < 5; i++ {
		if lut[i] != lut[9-i] {
			t.Errorf("lut is not symmetric at %d: %v != %v", i, lut[i], lut[9-i])
		}
	}
	for i := 1; i < 5; i++ {
		if lut[i] <= lut[i-1] {
			t.Errorf("rising half is not increasing at %d", i)
		}
	}

	odd := GenerateLut(5)
	if odd[2] != 1 {
		t.Errorf("odd table peak = %v, want 1", odd[2])
	}
}

func TestGenerateLutMemoized(t *testing.T) {
	m := &Memoizer{}
	a := GenerateLutMemoized(12, m)
	b := GenerateLutMemoized(12, m)
	if &a[0] != &b[0] {
		t.Error("expected the cached table to be reused")
	}
}

func TestLutCurve(t *testing.T) {
	c := LutCurve([]float64{0, 1, 0})
	tests := []struct {
		t, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.5},
		{0.5, 1},
		{0.75, 0.5},
		{1, 0},
		{2, 0},
	}
	for _, tt := range tests {
		if got := c(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("c(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
