// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNarrowSphereSphere(t *testing.T) {
	sph, _ := NewSphere(1)
	a := NewRigidBody(sph, Vec3{0, 0, 0}, 1)
	b := NewRigidBody(sph, Vec3{1.5, 0, 0}, 1)

	m, ok := narrow(a, b)
	require.True(t, ok)
	assert.InDelta(t, 0.5, m.Penetration, 1e-9)
	assert.InDelta(t, 1, m.Normal.Len(), 1e-9)
	// Normal points from b toward a: a is at -x relative to b.
	assert.InDelta(t, -1, m.Normal.X(), 1e-9)

	c := NewRigidBody(sph, Vec3{10, 0, 0}, 1)
	_, ok = narrow(a, c)
	assert.False(t, ok)
}

func TestNarrowSphereSphereCoincidentCenters(t *testing.T) {
	sph, _ := NewSphere(1)
	a := NewRigidBody(sph, Vec3{2, 2, 2}, 1)
	b := NewRigidBody(sph, Vec3{2, 2, 2}, 1)

	m, ok := narrow(a, b)
	require.True(t, ok)
	assert.InDelta(t, 1, m.Normal.Len(), 1e-9)
	assert.InDelta(t, 2, m.Penetration, 1e-9)
}

func TestNarrowSpherePlaneOrderAgnostic(t *testing.T) {
	sph, _ := NewSphere(0.5)
	pl, _ := NewPlane(Vec3{0, 1, 0}, 0)
	sphere := NewRigidBody(sph, Vec3{0, 0.1, 0}, 1)
	plane := NewRigidBody(pl, Vec3{}, 0)

	m1, ok1 := narrow(sphere, plane)
	require.True(t, ok1)
	assert.InDelta(t, 0.4, m1.Penetration, 1e-9)
	assert.InDelta(t, 1, m1.Normal.Y(), 1e-9) // b->a: plane->sphere is +y.

	m2, ok2 := narrow(plane, sphere)
	require.True(t, ok2)
	assert.InDelta(t, 0.4, m2.Penetration, 1e-9)
	assert.InDelta(t, -1, m2.Normal.Y(), 1e-9) // b->a: sphere->plane is -y.
	assert.Same(t, plane, m2.A)
	assert.Same(t, sphere, m2.B)
}

func TestNarrowSpherePlaneSnapSlop(t *testing.T) {
	sph, _ := NewSphere(0.5)
	pl, _ := NewPlane(Vec3{0, 1, 0}, 0)
	// Penetration of 0.0005m is below SNAP_SLOP (1mm): no manifold.
	sphere := NewRigidBody(sph, Vec3{0, 0.4995, 0}, 1)
	plane := NewRigidBody(pl, Vec3{}, 0)

	_, ok := narrow(sphere, plane)
	assert.False(t, ok)
}

func TestNarrowSphereAABBFaceContact(t *testing.T) {
	sph, _ := NewSphere(0.5)
	box, _ := NewAABB(Vec3{1, 1, 1})
	sphere := NewRigidBody(sph, Vec3{1.2, 0, 0}, 1)
	b := NewRigidBody(box, Vec3{}, 1)

	m, ok := narrow(sphere, b)
	require.True(t, ok)
	assert.InDelta(t, 0.3, m.Penetration, 1e-9)
	assert.InDelta(t, 1, m.Normal.X(), 1e-9)
}

func TestNarrowSphereAABBInsideBoxTieBreak(t *testing.T) {
	box, _ := NewAABB(Vec3{1, 1, 1})
	sph, _ := NewSphere(0.1)
	// Center exactly at the box center: dx=dy=dz=1, x wins the tie.
	sphere := NewRigidBody(sph, Vec3{0, 0, 0}, 1)
	b := NewRigidBody(box, Vec3{}, 1)

	m, ok := narrow(sphere, b)
	require.True(t, ok)
	assert.InDelta(t, 1, m.Normal.X(), 1e-9)
	assert.InDelta(t, 0, m.Normal.Y(), 1e-9)
	assert.InDelta(t, 0, m.Normal.Z(), 1e-9)
}

func TestNarrowSphereAABBNoContact(t *testing.T) {
	sph, _ := NewSphere(0.5)
	box, _ := NewAABB(Vec3{1, 1, 1})
	sphere := NewRigidBody(sph, Vec3{5, 0, 0}, 1)
	b := NewRigidBody(box, Vec3{}, 1)

	_, ok := narrow(sphere, b)
	assert.False(t, ok)
}

func TestNarrowAABBPlane(t *testing.T) {
	box, _ := NewAABB(Vec3{0.3, 0.2, 0.25})
	pl, _ := NewPlane(Vec3{0, 1, 0}, 0)
	boxBody := NewRigidBody(box, Vec3{0, 0.1, 0}, 1)
	planeBody := NewRigidBody(pl, Vec3{}, 0)

	m, ok := narrow(boxBody, planeBody)
	require.True(t, ok)
	assert.InDelta(t, 0.1, m.Penetration, 1e-9)
	assert.InDelta(t, 1, m.Normal.Y(), 1e-9)
}

func TestNarrowAABBAABBAxisTieBreak(t *testing.T) {
	boxShape, _ := NewAABB(Vec3{1, 1, 1})
	a := NewRigidBody(boxShape, Vec3{0, 0, 0}, 1)
	b := NewRigidBody(boxShape, Vec3{0, 0, 0}, 1)

	m, ok := narrow(a, b)
	require.True(t, ok)
	// Coincident centers: all axis overlaps equal (2.0); x wins the tie,
	// and comp == 0 on every axis so the zero-tie "pick positive" rule applies.
	assert.InDelta(t, 1, m.Normal.X(), 1e-9)
	assert.InDelta(t, 0, m.Normal.Y(), 1e-9)
}

func TestNarrowAABBAABBSeparationAxis(t *testing.T) {
	boxShape, _ := NewAABB(Vec3{1, 1, 1})
	a := NewRigidBody(boxShape, Vec3{0, 0, 0}, 1)
	b := NewRigidBody(boxShape, Vec3{1.5, 0, 0}, 1)

	m, ok := narrow(a, b)
	require.True(t, ok)
	assert.InDelta(t, 0.5, m.Penetration, 1e-9)
	// b->a: a is at -x relative to b.
	assert.InDelta(t, -1, m.Normal.X(), 1e-9)
}

func TestNarrowAABBAABBNoOverlap(t *testing.T) {
	boxShape, _ := NewAABB(Vec3{1, 1, 1})
	a := NewRigidBody(boxShape, Vec3{0, 0, 0}, 1)
	b := NewRigidBody(boxShape, Vec3{10, 0, 0}, 1)

	_, ok := narrow(a, b)
	assert.False(t, ok)
}
