package anim

import (
	"fmt"
	"math"
)

// Timed pairs an Animation with a duration in seconds, so that compositions
// can be described in absolute time and normalised when they are built.
type Timed[A any] struct {
	Animation Animation[A]
	Duration  float64
}

// Over gives a a duration in seconds.
func Over[A any](a Animation[A], duration float64) Timed[A] {
	if !(duration > 0) {
		panic(fmt.Sprintf("anim: timed duration %v must be positive", duration))
	}
	return Timed[A]{Animation: a, Duration: duration}
}

// ChangeSpeed plays the animation factor times faster.
func (t Timed[A]) ChangeSpeed(factor float64) Timed[A] {
	if !(factor > 0) {
		panic(fmt.Sprintf("anim: speed factor %v must be positive", factor))
	}
	return Over(t.Animation, t.Duration/factor)
}

// HalfSpeed takes twice as long.
func (t Timed[A]) HalfSpeed() Timed[A] {
	return t.ChangeSpeed(0.5)
}

// DoubleSpeed takes half as long.
func (t Timed[A]) DoubleSpeed() Timed[A] {
	return t.ChangeSpeed(2)
}

// Interpret binds the timed animation to a sink.
func (t Timed[A]) Interpret(sink func(A)) *Interpreted {
	return Interpret(t.Animation, t.Duration, sink)
}

// SequenceTimed plays a then b; the split point follows their durations.
func SequenceTimed[A, B any](a Timed[A], b Timed[B]) Timed[Either[A, B]] {
	total := a.Duration + b.Duration
	return Over(Sequential(a.Duration/total, a.Animation, b.Animation), total)
}

// ParallelTimed plays a and b together for the longer of the two durations.
// The shorter side holds its final sample until the other finishes.
func ParallelTimed[A, B, C any](a Timed[A], b Timed[B], combine func(A, B) C) Timed[C] {
	total := math.Max(a.Duration, b.Duration)
	sa, sb := total/a.Duration, total/b.Duration
	return Over(New(func(t float64) C {
		return combine(a.Animation.sample(math.Min(1, t*sa)), b.Animation.sample(math.Min(1, t*sb)))
	}), total)
}

// DelayTimed holds initial for by seconds before playing a.
func DelayTimed[A any](by float64, initial A, a Timed[A]) Timed[A] {
	if by < 0 {
		panic(fmt.Sprintf("anim: delay %v must not be negative", by))
	}
	if by == 0 {
		return a
	}
	total := by + a.Duration
	return Over(Delay(by/total, initial, a.Animation), total)
}
