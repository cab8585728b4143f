package anim

import "fmt"

// Sequential plays a over [0, ratio] and b over (ratio, 1]. The boundary
// itself belongs to a. Each phase sees its own normalised time.
//
// Sequential composition is not naively associative: nesting changes how the
// ratios split time unless they are renormalised by the caller.
func Sequential[A, B any](ratio float64, a Animation[A], b Animation[B]) Animation[Either[A, B]] {
	checkRatio(ratio)
	return sequential(ratio, a, func() Animation[B] { return b })
}

// SequentialFunc is like Sequential but derives the second phase from the
// value the first phase ends on.
func SequentialFunc[A, B any](ratio float64, a Animation[A], next func(A) Animation[B]) Animation[Either[A, B]] {
	checkRatio(ratio)
	end := a.sample(1)
	return sequential(ratio, a, func() Animation[B] { return next(end) })
}

func sequential[A, B any](ratio float64, a Animation[A], second func() Animation[B]) Animation[Either[A, B]] {
	return New(func(t float64) Either[A, B] {
		if t <= ratio {
			return Left[A, B](a.sample(t / ratio))
		}
		return Right[A](second().sample((t - ratio) / (1 - ratio)))
	})
}

// Then plays a and b back to back when both produce the same type.
func Then[A any](ratio float64, a, b Animation[A]) Animation[A] {
	return Map(Sequential(ratio, a, b), Value[A])
}

// ThenFunc plays a, then the animation next builds from a's final value.
func ThenFunc[A any](ratio float64, a Animation[A], next func(A) Animation[A]) Animation[A] {
	return Map(SequentialFunc(ratio, a, next), Value[A])
}

// Delay holds initial for the first by of normalised time, then plays a over
// the remainder.
func Delay[A any](by float64, initial A, a Animation[A]) Animation[A] {
	if by < 0 || by > 1 {
		panic(fmt.Sprintf("anim: delay %v outside [0,1]", by))
	}
	return Map(sequential(by, Constant(initial), func() Animation[A] { return a }), Value[A])
}

func checkRatio(ratio float64) {
	if !(ratio > 0 && ratio < 1) {
		panic(fmt.Sprintf("anim: sequential ratio %v outside (0,1)", ratio))
	}
}
