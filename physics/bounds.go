// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// Bounds computes the world-space axis-aligned bounding box of a body's
// shape for broadphase insertion. Planes have no finite extent and report
// ok=false; the caller (World) augments broadphase output with explicit
// (other, plane) pairs instead.
func Bounds(position Vec3, shape Shape) (min, max Vec3, ok bool) {
	switch s := shape.(type) {
	case Sphere:
		r := Vec3{s.Radius, s.Radius, s.Radius}
		return position.Sub(r), position.Add(r), true
	case AABB:
		return position.Sub(s.HalfExtents), position.Add(s.HalfExtents), true
	case Plane:
		return Vec3{}, Vec3{}, false
	default:
		return Vec3{}, Vec3{}, false
	}
}
