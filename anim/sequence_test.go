package anim

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func mustHex(t *testing.T, s string) colorful.Color {
	t.Helper()
	c, err := colorful.Hex(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSequential(t *testing.T) {
	a := Sequential(0.5, Constant("L"), Constant(7))
	tests := []struct {
		t      float64
		isLeft bool
	}{
		{0, true},
		{0.3, true},
		{0.5, true},
		{0.7, false},
		{1, false},
	}
	for _, tt := range tests {
		e := a.Sample(tt.t)
		if e.IsLeft() != tt.isLeft {
			t.Errorf("Sample(%v) = %v, want left=%v", tt.t, e, tt.isLeft)
			continue
		}
		if l, ok := e.Left(); ok && l != "L" {
			t.Errorf("Sample(%v) left = %q", tt.t, l)
		}
		if r, ok := e.Right(); ok && r != 7 {
			t.Errorf("Sample(%v) right = %v", tt.t, r)
		}
	}
}

func TestSequentialRenormalisesPhases(t *testing.T) {
	a := Then(0.25, Ramp(0, 1), Ramp(100, 200))
	tests := []struct {
		t, want float64
	}{
		{0.125, 0.5},
		{0.25, 1},
		{0.625, 150},
		{1, 200},
	}
	for _, tt := range tests {
		if got := a.Sample(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Sample(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestSequentialFuncStartsFromEnd(t *testing.T) {
	calls := 0
	a := ThenFunc(0.5, Ramp(0, 36), func(end float64) Animation[float64] {
		calls++
		return Ramp(end, 30)
	})
	if got := a.Sample(0.5); got != 36 {
		t.Errorf("Sample(0.5) = %v, want 36", got)
	}
	if got := a.Sample(0.75); got != 33 {
		t.Errorf("Sample(0.75) = %v, want 33", got)
	}
	if got := a.Sample(1); got != 30 {
		t.Errorf("Sample(1) = %v, want 30", got)
	}
	if calls == 0 {
		t.Error("continuation was never evaluated")
	}
}

func TestSequentialRejectsBadRatio(t *testing.T) {
	for _, ratio := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ratio %v: expected panic", ratio)
				}
			}()
			Sequential(ratio, Constant(1), Constant(2))
		}()
	}
}

func TestDelay(t *testing.T) {
	a := Delay(0.25, 0, Ramp(0, 10))
	if got := a.Sample(0.1); got != 0 {
		t.Errorf("Sample(0.1) = %v, want 0", got)
	}
	if got := a.Sample(0.25); got != 0 {
		t.Errorf("Sample(0.25) = %v, want 0", got)
	}
	if got := a.Sample(0.625); got != 5 {
		t.Errorf("Sample(0.625) = %v, want 5", got)
	}
	if got := a.Sample(1); got != 10 {
		t.Errorf("Sample(1) = %v, want 10", got)
	}
}

func TestDelayEdges(t *testing.T) {
	none := Delay(0, -1, Ramp(0, 10))
	if got := none.Sample(0); got != -1 {
		t.Errorf("zero delay Sample(0) = %v, want the initial value", got)
	}
	if got := none.Sample(0.5); got != 5 {
		t.Errorf("zero delay Sample(0.5) = %v, want 5", got)
	}
	all := Delay(1, -1, Ramp(0, 10))
	if got := all.Sample(1); got != -1 {
		t.Errorf("full delay Sample(1) = %v, want -1", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for delay above 1")
		}
	}()
	Delay(1.5, 0, Ramp(0, 1))
}

func TestEither(t *testing.T) {
	l := Left[int, string](4)
	r := Right[int]("four")
	if !l.IsLeft() || l.IsRight() || l.String() != "Left(4)" {
		t.Errorf("unexpected left: %v", l)
	}
	if r.IsLeft() || !r.IsRight() || r.String() != "Right(four)" {
		t.Errorf("unexpected right: %v", r)
	}
	if got := Value(Right[int](9)); got != 9 {
		t.Errorf("Value = %v, want 9", got)
	}
	n := Fold(r, func(i int) int { return i }, func(s string) int { return len(s) })
	if n != 4 {
		t.Errorf("Fold = %v, want 4", n)
	}
}
