package anim

import (
	"math"
	"testing"

	"github.com/matt-g-everett/ledanim/curve"
)

func TestConstant(t *testing.T) {
	a := Constant("lit")
	for _, tt := range []float64{0, 0.5, 1, 2} {
		if got := a.Sample(tt); got != "lit" {
			t.Errorf("Sample(%v) = %q", tt, got)
		}
	}
}

func TestRamp(t *testing.T) {
	r := Ramp(10, 20)
	tests := []struct {
		t, want float64
	}{
		{0, 10},
		{0.25, 12.5},
		{0.5, 15},
		{1, 20},
		{1.5, 20},
		{-0.5, 5},
	}
	for _, tt := range tests {
		if got := r.Sample(tt.t); got != tt.want {
			t.Errorf("Sample(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestWithCurveDoesNotClamp(t *testing.T) {
	overshoot := func(t curve.Progress) curve.Progress { return t - 0.5 }
	a := WithCurve(Ramp(0, 10), overshoot)
	if got := a.Sample(0); got != -5 {
		t.Errorf("Sample(0) = %v, want -5", got)
	}
}

func TestParallelConstants(t *testing.T) {
	a := Zip(Constant(3), Constant("b"))
	for _, tt := range []float64{0, 0.3, 1, 7} {
		got := a.Sample(tt)
		if got.First != 3 || got.Second != "b" {
			t.Errorf("Sample(%v) = %+v", tt, got)
		}
	}
}

func TestParallelSamplesSameTime(t *testing.T) {
	a := Parallel(Ramp(0, 1), Ramp(0, 100), func(x, y float64) float64 { return x + y })
	if got := a.Sample(0.5); got != 50.5 {
		t.Errorf("Sample(0.5) = %v, want 50.5", got)
	}
}

func TestMap(t *testing.T) {
	a := Map(Ramp(0, 4), func(v float64) int { return int(v) })
	if got := a.Sample(0.5); got != 2 {
		t.Errorf("Sample(0.5) = %v, want 2", got)
	}
}

func TestMapWithTimeAndAddSpeed(t *testing.T) {
	a := AddSpeed(Constant(1.0), 10)
	if got := a.Sample(0.5); got != 6 {
		t.Errorf("Sample(0.5) = %v, want 6", got)
	}
	b := MapWithTime(Constant(2.0), func(t, v float64) float64 { return t * v })
	if got := b.Sample(0.25); got != 0.5 {
		t.Errorf("Sample(0.25) = %v, want 0.5", got)
	}
}

func TestSamplingIsDeterministic(t *testing.T) {
	a := ThenFunc(0.37,
		RampCurve(0, 36, curve.Preset(curve.EaseIn)),
		func(end float64) Animation[float64] {
			return RampCurve(end, 30, curve.Preset(curve.EaseOut))
		})
	a = Delay(0.2, 0, AddSpeed(a, 1.5))
	s := WithCurve(Ramp(0, 1), curve.DefaultSpring.Curve())
	for i := 0; i <= 100; i++ {
		tt := float64(i) / 100
		if x, y := a.Sample(tt), a.Sample(tt); math.Float64bits(x) != math.Float64bits(y) {
			t.Fatalf("Sample(%v) differs: %v != %v", tt, x, y)
		}
		if x, y := s.Sample(tt), s.Sample(tt); math.Float64bits(x) != math.Float64bits(y) {
			t.Fatalf("spring Sample(%v) differs: %v != %v", tt, x, y)
		}
	}
}

func TestRampWithColor(t *testing.T) {
	from := mustHex(t, "#000000")
	to := mustHex(t, "#ffffff")
	a := RampWith(from, to, LerpColor)
	if got := a.Sample(1); got != to {
		t.Errorf("Sample(1) = %v, want %v", got, to)
	}
	if got := a.Sample(0); !got.AlmostEqualRgb(from) {
		t.Errorf("Sample(0) = %v, want %v", got, from)
	}
}
