// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// Manifold is the minimal contact produced by a narrowphase test: a single
// point described by an always-unit normal pointing from B toward A, and a
// strictly positive penetration depth.
type Manifold struct {
	A, B        *RigidBody
	Normal      Vec3
	Penetration float64
}

// snapSlop is the resting micro-penetration below which sphere-plane
// contacts are handled by the soft contact stabilizer instead of a
// manifold.
const snapSlop = 1e-3

// narrow runs the appropriate shape-pair test for (a, b) and returns a
// manifold if they interpenetrate. It tries the five shape-pair tests in
// the fixed priority order from step 7: sphere-sphere,
// sphere-plane, sphere-aabb, aabb-plane, aabb-aabb. Exactly one of the
// five structurally applies to any given pair of shape kinds; the order
// only matters as a dispatch priority, not as repeated attempts on the
// same pair.
func narrow(a, b *RigidBody) (Manifold, bool) {
	ak, bk := a.shape.Kind(), b.shape.Kind()

	switch {
	case ak == KindSphere && bk == KindSphere:
		return narrowSphereSphere(a, b)
	case ak == KindSphere && bk == KindPlane, ak == KindPlane && bk == KindSphere:
		return narrowSpherePlane(a, b)
	case ak == KindSphere && bk == KindAABB, ak == KindAABB && bk == KindSphere:
		return narrowSphereAABB(a, b)
	case ak == KindAABB && bk == KindPlane, ak == KindPlane && bk == KindAABB:
		return narrowAABBPlane(a, b)
	case ak == KindAABB && bk == KindAABB:
		return narrowAABBAABB(a, b)
	default:
		return Manifold{}, false
	}
}

// isSpherePlanePair reports whether a and b are a sphere and a plane,
// in either order, used by the solver to trigger post-stabilization
// and by World to trigger soft contact (§4.5).
func isSpherePlanePair(a, b *RigidBody) bool {
	ak, bk := a.shape.Kind(), b.shape.Kind()
	return (ak == KindSphere && bk == KindPlane) || (ak == KindPlane && bk == KindSphere)
}

// narrowSphereSphere implements "Sphere-Sphere".
func narrowSphereSphere(a, b *RigidBody) (Manifold, bool) {
	sa := a.shape.(Sphere)
	sb := b.shape.(Sphere)

	delta := a.position.Sub(b.position)
	d := delta.Len()
	r := sa.Radius + sb.Radius
	if d >= r {
		return Manifold{}, false
	}

	normal := safeNormalize(delta, Vec3{1, 0, 0})
	return Manifold{A: a, B: b, Normal: normal, Penetration: r - d}, true
}

// narrowSpherePlane implements "Sphere-Plane", order-agnostic:
// it accepts (sphere, plane) or (plane, sphere) and always returns a
// manifold whose A/B match the caller's order, flipping the normal as
// needed to keep the b-to-a convention.
func narrowSpherePlane(a, b *RigidBody) (Manifold, bool) {
	sphereFirst := a.shape.Kind() == KindSphere
	sphereBody, planeBody := a, b
	if !sphereFirst {
		sphereBody, planeBody = b, a
	}
	sphere := sphereBody.shape.(Sphere)
	plane := planeBody.shape.(Plane)

	dist := plane.Normal.Dot(sphereBody.position) - plane.D
	penetration := sphere.Radius - dist
	if penetration <= snapSlop {
		return Manifold{}, false
	}

	// Canonical normal points plane -> sphere (b->a when sphere is "a").
	normal := plane.Normal
	if !sphereFirst {
		// Caller's a is the plane, b is the sphere: b->a is sphere->plane.
		normal = normal.Mul(-1)
	}
	return Manifold{A: a, B: b, Normal: normal, Penetration: penetration}, true
}

// narrowSphereAABB implements "Sphere-AABB", order-agnostic.
func narrowSphereAABB(a, b *RigidBody) (Manifold, bool) {
	sphereFirst := a.shape.Kind() == KindSphere
	sphereBody, boxBody := a, b
	if !sphereFirst {
		sphereBody, boxBody = b, a
	}
	sphere := sphereBody.shape.(Sphere)
	box := boxBody.shape.(AABB)

	center := sphereBody.position.Sub(boxBody.position) // sphere center in box-local space
	he := box.HalfExtents
	q := Vec3{
		clampF(center.X(), -he.X(), he.X()),
		clampF(center.Y(), -he.Y(), he.Y()),
		clampF(center.Z(), -he.Z(), he.Z()),
	}
	v := center.Sub(q)
	dist := v.Len()

	var normalFromBoxToSphere Vec3
	var penetration float64

	switch {
	case dist == 0:
		// Center lies inside (or on the boundary of) the box: pick the
		// face with the smallest distance to the boundary. Tie-break
		// x, then y, then z (earlier axis wins), Open
		// Question 1.
		dx := he.X() - absF(center.X())
		dy := he.Y() - absF(center.Y())
		dz := he.Z() - absF(center.Z())

		axis, faceDist := 0, dx
		if dy < faceDist {
			axis, faceDist = 1, dy
		}
		if dz < faceDist {
			axis, faceDist = 2, dz
		}

		n := [3]float64{0, 0, 0}
		switch axis {
		case 0:
			n[0] = signOrPositive(center.X())
		case 1:
			n[1] = signOrPositive(center.Y())
		case 2:
			n[2] = signOrPositive(center.Z())
		}
		normalFromBoxToSphere = Vec3{n[0], n[1], n[2]}
		penetration = sphere.Radius + faceDist
	case dist >= sphere.Radius:
		return Manifold{}, false
	default:
		normalFromBoxToSphere = v.Mul(1 / dist)
		penetration = sphere.Radius - dist
	}

	normal := normalFromBoxToSphere
	if !sphereFirst {
		normal = normal.Mul(-1)
	}
	return Manifold{A: a, B: b, Normal: normal, Penetration: penetration}, true
}

// narrowAABBPlane implements "AABB-Plane", order-agnostic.
func narrowAABBPlane(a, b *RigidBody) (Manifold, bool) {
	boxFirst := a.shape.Kind() == KindAABB
	boxBody, planeBody := a, b
	if !boxFirst {
		boxBody, planeBody = b, a
	}
	box := boxBody.shape.(AABB)
	plane := planeBody.shape.(Plane)

	he := box.HalfExtents
	r := absF(he.X()*plane.Normal.X()) + absF(he.Y()*plane.Normal.Y()) + absF(he.Z()*plane.Normal.Z())
	dist := plane.Normal.Dot(boxBody.position) - plane.D
	penetration := r - dist
	if penetration <= 0 {
		return Manifold{}, false
	}

	normal := plane.Normal
	if !boxFirst {
		normal = normal.Mul(-1)
	}
	return Manifold{A: a, B: b, Normal: normal, Penetration: penetration}, true
}

// narrowAABBAABB implements "AABB-AABB".
func narrowAABBAABB(a, b *RigidBody) (Manifold, bool) {
	boxA := a.shape.(AABB)
	boxB := b.shape.(AABB)

	delta := b.position.Sub(a.position)
	ox := (boxA.HalfExtents.X() + boxB.HalfExtents.X()) - absF(delta.X())
	oy := (boxA.HalfExtents.Y() + boxB.HalfExtents.Y()) - absF(delta.Y())
	oz := (boxA.HalfExtents.Z() + boxB.HalfExtents.Z()) - absF(delta.Z())
	if ox <= 0 || oy <= 0 || oz <= 0 {
		return Manifold{}, false
	}

	axis, penetration, comp := 0, ox, delta.X()
	if oy < penetration {
		axis, penetration, comp = 1, oy, delta.Y()
	}
	if oz < penetration {
		axis, penetration, comp = 2, oz, delta.Z()
	}

	n := [3]float64{0, 0, 0}
	n[axis] = bToASign(comp) // opposite sign(center_b - center_a); zero ties to positive.
	return Manifold{A: a, B: b, Normal: Vec3{n[0], n[1], n[2]}, Penetration: penetration}, true
}

// bToASign returns the b->a normal sign along one axis given
// comp = center_b - center_a on that axis: the opposite of comp's sign,
// with an exact-zero comp tying to the positive direction.
func bToASign(comp float64) float64 {
	if comp > 0 {
		return -1
	}
	return 1
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// signOrPositive returns -1 for negative x, +1 for x >= 0. Used by the
// sphere-AABB interior case to pick which face of the box the normal
// should point through along the chosen axis.
func signOrPositive(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
