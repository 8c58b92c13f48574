// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is the immutable 3-element vector value used throughout physics.
// It is github.com/go-gl/mathgl/mgl64.Vec3 directly: a [3]float64 array
// value with Add/Sub/Mul/Dot/Len/Normalize already matching the algebra
// the simulation needs. There is nothing physics-specific to add to it.
type Vec3 = mgl64.Vec3

// zeroVec3 is the zero vector, spelled out for readability at call sites
// that zero a velocity or accumulator.
var zeroVec3 = Vec3{0, 0, 0}

// safeNormalize returns v normalized, or fallback if v is the zero vector.
// mgl64.Vec3.Normalize divides by
// zero length silently; physics call sites always have a defined fallback
// direction (see narrowphase.go) so the divide-by-zero is made explicit.
func safeNormalize(v, fallback Vec3) Vec3 {
	l := v.Len()
	if l <= 0 {
		return fallback
	}
	return v.Mul(1 / l)
}

// clampF clamps x into [lo, hi].
func clampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// minF and maxF avoid pulling in math.Min/Max (float64-only, but slightly
// slower due to NaN handling) on the solver's hot path.
func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
