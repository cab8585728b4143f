// Package curve contains timing curves that remap animation progress.
package curve

import "math"

// Progress is normalised completion, conventionally in [0,1].
type Progress = float64

// A Curve remaps progress before an animation is sampled. Curves are not
// required to stay inside [0,1].
type Curve func(Progress) Progress

// Builtin identifies one of the standard cubic-bezier timing functions.
type Builtin int

const (
	// Linear maps progress onto itself.
	Linear Builtin = iota
	// EaseIn starts slowly and accelerates.
	EaseIn
	// EaseOut starts quickly and decelerates.
	EaseOut
	// EaseInEaseOut starts and ends slowly.
	EaseInEaseOut
	// Default is the platform default timing.
	Default
)

// ControlPoints returns the bezier control points (p1x, p1y, p2x, p2y).
func (b Builtin) ControlPoints() (float64, float64, float64, float64) {
	switch b {
	case Linear:
		return 0, 0, 1, 1
	case EaseIn:
		return 0.42, 0, 1, 1
	case EaseOut:
		return 0, 0, 0.58, 1
	case EaseInEaseOut:
		return 0.42, 0, 0.58, 1
	default:
		return 0.25, 0.1, 0.25, 1
	}
}

func (b Builtin) String() string {
	switch b {
	case Linear:
		return "linear"
	case EaseIn:
		return "easeIn"
	case EaseOut:
		return "easeOut"
	case EaseInEaseOut:
		return "easeInEaseOut"
	case Default:
		return "default"
	}
	return "unknown"
}

// TimingFunction evaluates a cubic bezier from (0,0) to (1,1). The polynomial
// coefficients are computed once so each axis is B(t) = ((a*t+b)*t+c)*t.
type TimingFunction struct {
	ax, bx, cx float64
	ay, by, cy float64
	epsilon    float64
}

// NewTimingFunction creates a TimingFunction from two control points.
func NewTimingFunction(p1x, p1y, p2x, p2y float64) TimingFunction {
	tf := TimingFunction{}
	tf.cx = 3.0 * p1x
	tf.bx = 3.0*(p2x-p1x) - tf.cx
	tf.ax = 1.0 - tf.cx - tf.bx

	tf.cy = 3.0 * p1y
	tf.by = 3.0*(p2y-p1y) - tf.cy
	tf.ay = 1.0 - tf.cy - tf.by

	return tf.WithPrecision(1)
}

// NewBuiltin creates the TimingFunction for a named preset.
func NewBuiltin(b Builtin) TimingFunction {
	return NewTimingFunction(b.ControlPoints())
}

// WithPrecision returns a copy whose solver tolerance suits an animation of
// the given duration in seconds. Longer animations need a tighter fit.
func (tf TimingFunction) WithPrecision(duration float64) TimingFunction {
	if duration <= 0 {
		panic("curve: timing function precision needs a positive duration")
	}
	tf.epsilon = 1 / (200 * duration)
	return tf
}

// Epsilon is the maximum horizontal error the solver accepts.
func (tf TimingFunction) Epsilon() float64 {
	return tf.epsilon
}

// Value returns the eased output for input progress x.
func (tf TimingFunction) Value(x Progress) Progress {
	return tf.sampleCurveY(tf.solve(x))
}

// Curve exposes the timing function as a Curve.
func (tf TimingFunction) Curve() Curve {
	return tf.Value
}

func (tf TimingFunction) sampleCurveX(t float64) float64 {
	return ((tf.ax*t+tf.bx)*t + tf.cx) * t
}

func (tf TimingFunction) sampleCurveY(t float64) float64 {
	return ((tf.ay*t+tf.by)*t + tf.cy) * t
}

func (tf TimingFunction) sampleCurveDerivativeX(t float64) float64 {
	return (3.0*tf.ax*t+2.0*tf.bx)*t + tf.cx
}

// maxBisections bounds the fallback loop once the interval has collapsed
// below float64 resolution.
const maxBisections = 64

// solve finds t such that sampleCurveX(t) is within epsilon of x.
func (tf TimingFunction) solve(x float64) float64 {
	// Newton-Raphson converges quickly for most inputs.
	t2 := x
	for range 8 {
		x2 := tf.sampleCurveX(t2) - x
		if math.Abs(x2) < tf.epsilon {
			return t2
		}
		d2 := tf.sampleCurveDerivativeX(t2)
		if math.Abs(d2) < 1e-6 {
			break
		}
		t2 -= x2 / d2
	}

	// Fallback to bisection over [0,1].
	t0, t1 := 0.0, 1.0
	t2 = x
	if t2 < t0 {
		return t0
	}
	if t2 > t1 {
		return t1
	}

	for i := 0; t0 < t1 && i < maxBisections; i++ {
		x2 := tf.sampleCurveX(t2)
		if math.Abs(x2-x) < tf.epsilon {
			return t2
		}
		if x > x2 {
			t0 = t2
		} else {
			t1 = t2
		}
		t2 = (t1-t0)*0.5 + t0
	}

	return t2
}

// Preset returns the Curve for a builtin timing function.
func Preset(b Builtin) Curve {
	return NewBuiltin(b).Curve()
}
