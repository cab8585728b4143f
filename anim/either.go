package anim

import "fmt"

// Either holds exactly one of a left or a right value. It is the result of
// sequential composition, where the two phases may produce different types.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left wraps a value produced by the first phase.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right wraps a value produced by the second phase.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: r, isRight: true}
}

// IsLeft reports whether the left variant is active.
func (e Either[L, R]) IsLeft() bool {
	return !e.isRight
}

// IsRight reports whether the right variant is active.
func (e Either[L, R]) IsRight() bool {
	return e.isRight
}

// Left returns the left value and whether it is the active variant.
func (e Either[L, R]) Left() (L, bool) {
	return e.left, !e.isRight
}

// Right returns the right value and whether it is the active variant.
func (e Either[L, R]) Right() (R, bool) {
	return e.right, e.isRight
}

func (e Either[L, R]) String() string {
	if e.isRight {
		return fmt.Sprintf("Right(%v)", e.right)
	}
	return fmt.Sprintf("Left(%v)", e.left)
}

// Value unwraps whichever side is active when both sides share a type.
func Value[A any](e Either[A, A]) A {
	if e.isRight {
		return e.right
	}
	return e.left
}

// Fold collapses an Either into a single type.
func Fold[L, R, C any](e Either[L, R], onLeft func(L) C, onRight func(R) C) C {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}
