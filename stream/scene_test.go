package stream

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestSceneRender(t *testing.T) {
	s := NewScene(colorful.Color{})
	red := colorful.Color{R: 1}
	s.AddDot(Dot{DotState: DotState{Position: 5, Colour: red, Brightness: 1}, Radius: 2})

	f := NewFrame(10)
	s.Render(f)

	if got := f.Pixel(5); got != red {
		t.Errorf("centre = %v, want %v", got, red)
	}
	if got := f.Pixel(4); got.R < 0.49 || got.R > 0.51 {
		t.Errorf("half way = %v, want half red", got)
	}
	for _, i := range []int{0, 3, 7, 9} {
		if got := f.Pixel(i); got != (colorful.Color{}) {
			t.Errorf("pixel %d = %v, want background", i, got)
		}
	}
}

func TestSceneRenderClipsToStrip(t *testing.T) {
	s := NewScene(colorful.Color{})
	s.AddDot(Dot{DotState: DotState{Position: -1, Colour: colorful.Color{G: 1}, Brightness: 1}, Radius: 3})
	s.AddDot(Dot{DotState: DotState{Position: 11, Colour: colorful.Color{G: 1}, Brightness: 1}, Radius: 3})
	f := NewFrame(10)
	s.Render(f)
	if f.Pixel(0).G == 0 || f.Pixel(9).G == 0 {
		t.Errorf("dots near the ends should spill onto the strip: %v", f.Hex())
	}
}

func TestSceneUpdateNotifies(t *testing.T) {
	s := NewScene(colorful.Color{})
	idx := s.AddDot(Dot{Radius: 1})
	calls := 0
	s.OnChange(func() { calls++ })

	s.Sink(idx)(DotState{Position: 3, Brightness: 0.5})
	if calls != 1 {
		t.Errorf("OnChange called %d times, want 1", calls)
	}
	snap := s.Snapshot()
	if snap.Dots[0].Position != 3 || snap.Dots[0].Radius != 1 {
		t.Errorf("snapshot = %+v", snap.Dots[0])
	}
}

func TestSceneRenderSkipsUnplaceableDots(t *testing.T) {
	s := NewScene(colorful.Color{})
	for _, p := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), 1e300, -1e300, -4, 13} {
		s.AddDot(Dot{DotState: DotState{Position: p, Colour: colorful.Color{B: 1}, Brightness: 1}, Radius: 3})
	}
	f := NewFrame(10)
	s.Render(f)
	for i := 0; i < f.Len(); i++ {
		if got := f.Pixel(i); got != (colorful.Color{}) {
			t.Errorf("pixel %d = %v, want background", i, got)
		}
	}
}
