package stream

import (
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/curve"
	"github.com/matt-g-everett/ledanim/util"
)

const (
	dotSaturation = 1.0
	dotLuminance  = 0.5
	restingGlow   = 0.35
)

type group int

const (
	leftGroup group = iota
	rightGroup
	springGroup
)

type placement struct {
	group group
	index int
	dot   int
	base  float64
}

// Choreography lays out three groups of dots on a Scene and builds the
// animations that move them:
//
//   - the left group overshoots and settles, each dot delayed a little more
//     than the last;
//   - the right group mirrors it, each dot slightly slower than the last;
//   - the spring group bounces outwards from the middle of the strip.
type Choreography struct {
	cfg     SceneConfig
	pixels  int
	scene   *Scene
	palette anim.Animation[colorful.Color]
	out     curve.Curve
	back    curve.Curve
	memo    util.Memoizer
	dots    []placement
}

// NewChoreography adds the dots described by cfg to scene.
func NewChoreography(cfg SceneConfig, pixels int, scene *Scene) (*Choreography, error) {
	out, errGo := curve.Named(cfg.OutCurve)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	back, errGo := curve.Named(cfg.BackCurve)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}

	c := &Choreography{
		cfg:     cfg,
		pixels:  pixels,
		scene:   scene,
		palette: DefaultGradient.Sweep(dotSaturation, dotLuminance),
		out:     out,
		back:    back,
	}

	last := float64(pixels - 1)
	margin := cfg.Radius
	middle := last / 2
	for i := 0; i < cfg.Dots; i++ {
		offset := float64(i) * cfg.Spacing
		c.place(leftGroup, i, margin+offset)
		c.place(rightGroup, i, last-margin-offset)
	}
	for i := 0; i < cfg.Dots; i++ {
		// Alternate either side of the middle.
		side := float64(i/2+1) * cfg.Spacing / 2
		if i%2 == 1 {
			side = -side
		}
		c.place(springGroup, i, middle+side)
	}
	return c, nil
}

func (c *Choreography) place(g group, index int, base float64) {
	d := Dot{Radius: c.cfg.Radius}
	d.Position = base
	d.Brightness = restingGlow
	d.Colour = c.colourAt(base)
	c.dots = append(c.dots, placement{group: g, index: index, dot: c.scene.AddDot(d), base: base})
}

func (c *Choreography) colourAt(position float64) colorful.Color {
	t := position / float64(c.pixels)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return c.palette.Sample(t)
}

// overshoot moves past to by the configured factor, then settles back onto it
// from wherever the first phase ended.
func (c *Choreography) overshoot(from, to float64) anim.Animation[float64] {
	target := from + (to-from)*c.cfg.Overshoot
	return anim.ThenFunc(c.cfg.Ratio, anim.RampCurve(from, target, c.out), func(end float64) anim.Animation[float64] {
		return anim.RampCurve(end, to, c.back)
	})
}

func (c *Choreography) pulse() anim.Animation[float64] {
	lut := util.GenerateLutMemoized(c.cfg.Pulse, &c.memo)
	return anim.RampCurve(restingGlow, 1, util.LutCurve(lut))
}

func (c *Choreography) state(position, brightness float64) DotState {
	return DotState{Position: position, Colour: c.colourAt(position), Brightness: brightness}
}

// Programme returns one interpreted animation per dot. It may be called again
// to replay the programme; each call starts from the resting layout.
func (c *Choreography) Programme() []*anim.Interpreted {
	out := make([]*anim.Interpreted, 0, len(c.dots))
	for _, p := range c.dots {
		sink := c.scene.Sink(p.dot)
		switch p.group {
		case leftGroup:
			delay := float64(p.index) * c.cfg.Stagger
			motion := anim.Delay(delay, p.base, c.overshoot(p.base, p.base+c.cfg.Distance))
			a := anim.Map(anim.Zip(motion, c.pulse()), func(v anim.Pair[float64, float64]) DotState {
				return c.state(v.First, v.Second)
			})
			out = append(out, anim.Interpret(a, c.cfg.Duration, sink))

		case rightGroup:
			motion := c.overshoot(p.base, p.base-c.cfg.Distance)
			a := anim.Parallel(motion, c.pulse(), c.state)
			factor := 1 - c.cfg.Stagger*float64(p.index)
			out = append(out, anim.Over(a, c.cfg.Duration).ChangeSpeed(factor).Interpret(sink))

		case springGroup:
			dir := 1.0
			if p.index%2 == 1 {
				dir = -1
			}
			motion := anim.RampCurve(p.base, p.base+dir*c.cfg.Distance/2, c.cfg.Spring.Curve())
			glow := anim.RampWith(c.colourAt(p.base), colorful.Color{R: 1, G: 1, B: 1}, anim.LerpColor)
			a := anim.Parallel(anim.Zip(motion, c.pulse()), glow, func(v anim.Pair[float64, float64], col colorful.Color) DotState {
				return DotState{Position: v.First, Colour: col, Brightness: v.Second}
			})
			// The settle phase returns the dot to rest so replays start clean.
			settle := anim.Over(anim.Constant(c.state(p.base, restingGlow)), c.cfg.Duration/4)
			seq := anim.SequenceTimed(anim.Over(a, c.cfg.Duration), settle)
			out = append(out, anim.Interpret(anim.Map(seq.Animation, anim.Value[DotState]), seq.Duration, sink))
		}
	}
	return out
}
