// Package util builds look-up-table curves from easing functions.
package util

import (
	"math"
	"sync"

	"github.com/fogleman/ease"

	"github.com/matt-g-everett/ledanim/curve"
)

// GenerateLut builds a pulse of the given length that eases from 0 up to 1
// and back down again.
func GenerateLut(length int) []float64 {
	if length < 2 {
		return []float64{0, 0}
	}
	increment := 1.0 / float64(length/2)
	lut := make([]float64, length)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := float64(i) * increment
		lut[i] = ease.InOutQuad(value)
		lut[j] = ease.InOutQuad(value)
	}
	if length%2 == 1 {
		lut[length/2] = 1
	}
	return lut
}

// Memoizer caches generated tables by length.
type Memoizer struct {
	mu   sync.Mutex
	luts map[int][]float64
}

// GenerateLutMemoized returns a cached table, generating it on first use.
// The returned slice is shared and must not be modified.
func GenerateLutMemoized(length int, m *Memoizer) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lut, ok := m.luts[length]; ok {
		return lut
	}
	if m.luts == nil {
		m.luts = make(map[int][]float64)
	}
	lut := GenerateLut(length)
	m.luts[length] = lut
	return lut
}

// LutCurve turns a table into a curve by linear interpolation between
// entries spread evenly over [0,1]. Input outside [0,1] is clamped.
func LutCurve(lut []float64) curve.Curve {
	if len(lut) == 0 {
		panic("util: empty look-up table")
	}
	table := append([]float64(nil), lut...)
	last := len(table) - 1
	return func(t curve.Progress) curve.Progress {
		if last == 0 || t <= 0 {
			return table[0]
		}
		if t >= 1 {
			return table[last]
		}
		pos := t * float64(last)
		i := int(math.Floor(pos))
		frac := pos - float64(i)
		return table[i] + (table[i+1]-table[i])*frac
	}
}
