package stream

import (
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// DotState is the animated part of a Dot.
type DotState struct {
	Position   float64
	Colour     colorful.Color
	Brightness float64
}

// Dot is a soft blob of light centred on a fractional pixel position.
type Dot struct {
	DotState
	Radius float64
}

// SceneState is a copy of everything that affects rendering.
type SceneState struct {
	Background colorful.Color
	Dots       []Dot
}

// Scene holds the dots that animation sinks write to and the renderer reads.
type Scene struct {
	sync.Mutex
	background colorful.Color
	dots       []Dot
	onChange   func()
}

// NewScene creates an empty Scene.
func NewScene(background colorful.Color) *Scene {
	s := new(Scene)
	s.background = background
	return s
}

// OnChange registers fn to run after every update.
func (s *Scene) OnChange(fn func()) {
	s.Lock()
	s.onChange = fn
	s.Unlock()
}

// AddDot adds a dot and returns its index.
func (s *Scene) AddDot(d Dot) int {
	s.Lock()
	s.dots = append(s.dots, d)
	idx := len(s.dots) - 1
	fn := s.onChange
	s.Unlock()

	if fn != nil {
		fn()
	}
	return idx
}

// Len returns the number of dots.
func (s *Scene) Len() int {
	s.Lock()
	defer s.Unlock()
	return len(s.dots)
}

// Update replaces the animated state of dot i.
func (s *Scene) Update(i int, state DotState) {
	s.Lock()
	s.dots[i].DotState = state
	fn := s.onChange
	s.Unlock()

	if fn != nil {
		fn()
	}
}

// Sink returns an animation sink that updates dot i.
func (s *Scene) Sink(i int) func(DotState) {
	return func(state DotState) {
		s.Update(i, state)
	}
}

// Snapshot copies the scene.
func (s *Scene) Snapshot() SceneState {
	s.Lock()
	defer s.Unlock()
	return SceneState{
		Background: s.background,
		Dots:       append([]Dot(nil), s.dots...),
	}
}

// Render draws the scene into f.
func (s *Scene) Render(f *Frame) {
	state := s.Snapshot()
	state.Render(f)
}

// Render draws the state into f. Each dot fades linearly to nothing at its
// radius and is blended over whatever is already lit.
func (state SceneState) Render(f *Frame) {
	f.Fill(state.Background)
	n := f.Len()
	for _, d := range state.Dots {
		if d.Brightness <= 0 || d.Radius <= 0 || math.IsNaN(d.Position) || math.IsInf(d.Position, 0) {
			continue
		}
		// Off the strip entirely; also keeps the int conversions below in range.
		if d.Position+d.Radius < 0 || d.Position-d.Radius > float64(n-1) {
			continue
		}
		lo := int(math.Max(0, math.Ceil(d.Position-d.Radius)))
		hi := int(math.Min(float64(n-1), math.Floor(d.Position+d.Radius)))
		for i := lo; i <= hi; i++ {
			w := (1 - math.Abs(float64(i)-d.Position)/d.Radius) * d.Brightness
			if w <= 0 {
				continue
			}
			f.pixels[i] = f.pixels[i].BlendRgb(d.Colour, math.Min(w, 1))
		}
	}
}
