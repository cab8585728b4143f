package anim

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledanim/curve"
)

// Lerp interpolates between a and b at t, where t is usually in [0,1].
type Lerp[A any] func(a, b A, t float64) A

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpColor blends two colours in HCL space.
func LerpColor(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendHcl(b, t)
}

// Ramp moves linearly from from to to. Samples at or beyond 1 return to
// exactly; samples below 0 extrapolate.
func Ramp(from, to float64) Animation[float64] {
	return RampWith(from, to, LerpFloat64)
}

// RampCurve is Ramp with its time remapped by c.
func RampCurve(from, to float64, c curve.Curve) Animation[float64] {
	return WithCurve(Ramp(from, to), c)
}

// RampWith ramps composite values with a caller supplied interpolation.
func RampWith[A any](from, to A, lerp Lerp[A]) Animation[A] {
	return New(func(t float64) A {
		if t >= 1 {
			return to
		}
		return lerp(from, to, t)
	})
}

// AddSpeed drifts a by speed units per unit of normalised time.
func AddSpeed(a Animation[float64], speed float64) Animation[float64] {
	return MapWithTime(a, func(t, value float64) float64 {
		return value + t*speed
	})
}
