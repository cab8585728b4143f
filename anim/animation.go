// Package anim provides composable animations.
//
// An [Animation] is a pure function from progress in [0,1] to a value. Small
// animations are combined with [Parallel], [Sequential], [Delay], [Map] and
// [WithCurve] into larger ones without any mutable state, so the same value
// may be interpreted many times with different sinks and start times.
//
// Durations only appear at the edge: [Interpret] binds an animation to a
// duration in seconds and a sink, producing an [Interpreted] that a driver
// advances once per frame. [Timed] folds durations into composition for the
// cases where sub-animations are easier to describe in seconds.
package anim

import "github.com/matt-g-everett/ledanim/curve"

// Animation produces a value for every point in normalised time.
type Animation[A any] struct {
	sample func(float64) A
}

// New creates an Animation from a sampling function. The function must be
// deterministic and free of side effects.
func New[A any](sample func(t float64) A) Animation[A] {
	return Animation[A]{sample: sample}
}

// Constant holds a single value for the whole animation.
func Constant[A any](a A) Animation[A] {
	return New(func(float64) A { return a })
}

// Sample returns the value at normalised time t.
func (a Animation[A]) Sample(t float64) A {
	return a.sample(t)
}

// WithCurve reparameterises time through c. The curve output is not clamped.
func WithCurve[A any](a Animation[A], c curve.Curve) Animation[A] {
	return New(func(t float64) A {
		return a.sample(c(t))
	})
}

// Map transforms every sampled value with f.
func Map[A, B any](a Animation[A], f func(A) B) Animation[B] {
	return New(func(t float64) B {
		return f(a.sample(t))
	})
}

// MapWithTime transforms every sampled value with f, which also sees the
// normalised time.
func MapWithTime[A, B any](a Animation[A], f func(float64, A) B) Animation[B] {
	return New(func(t float64) B {
		return f(t, a.sample(t))
	})
}

// Parallel samples a and b at the same time and combines the results.
func Parallel[A, B, C any](a Animation[A], b Animation[B], combine func(A, B) C) Animation[C] {
	return New(func(t float64) C {
		return combine(a.sample(t), b.sample(t))
	})
}

// Pair is the result of zipping two animations.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip runs a and b in parallel and pairs their values.
func Zip[A, B any](a Animation[A], b Animation[B]) Animation[Pair[A, B]] {
	return Parallel(a, b, func(x A, y B) Pair[A, B] {
		return Pair[A, B]{First: x, Second: y}
	})
}
