// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSphereRejectsNonPositiveRadius(t *testing.T) {
	_, err := NewSphere(0)
	require.Error(t, err)
	_, err = NewSphere(-1)
	require.Error(t, err)
}

func TestNewAABBRejectsNonPositiveExtents(t *testing.T) {
	_, err := NewAABB(Vec3{1, 1, 0})
	require.Error(t, err)
	_, err = NewAABB(Vec3{-1, 1, 1})
	require.Error(t, err)
}

func TestNewPlaneRejectsZeroNormal(t *testing.T) {
	_, err := NewPlane(Vec3{0, 0, 0}, 0)
	require.ErrorIs(t, err, ErrZeroPlaneNormal)
}

func TestNewPlaneNormalizes(t *testing.T) {
	inputs := []Vec3{{0, 5, 0}, {3, 4, 0}, {1, 1, 1}, {-2, 0, 0}}
	for _, in := range inputs {
		p, err := NewPlane(in, 1.5)
		require.NoError(t, err)
		assert.InDelta(t, 1, p.Normal.Len(), 1e-12)
	}
}

func TestBounds(t *testing.T) {
	sph, _ := NewSphere(2)
	min, max, ok := Bounds(Vec3{1, 2, 3}, sph)
	require.True(t, ok)
	assert.Equal(t, Vec3{-1, 0, 1}, min)
	assert.Equal(t, Vec3{3, 4, 5}, max)

	box, _ := NewAABB(Vec3{1, 2, 3})
	min, max, ok = Bounds(Vec3{0, 0, 0}, box)
	require.True(t, ok)
	assert.Equal(t, Vec3{-1, -2, -3}, min)
	assert.Equal(t, Vec3{1, 2, 3}, max)

	pl, _ := NewPlane(Vec3{0, 1, 0}, 0)
	_, _, ok = Bounds(Vec3{}, pl)
	assert.False(t, ok)
}
