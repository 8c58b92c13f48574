// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldBallBouncesOffFloor(t *testing.T) {
	w := NewWorld()
	_, err := w.StaticPlane(Vec3{0, 1, 0}, 0)
	require.NoError(t, err)
	ball, err := w.DynamicSphere(Vec3{0, 3, 0}, 0.5, 1)
	require.NoError(t, err)
	ball.SetMaterial(Material{Restitution: 0.6, FrictionStatic: 0.6, FrictionDynamic: 0.4, LinearDamping: 0})

	minY := ball.Position().Y()
	for i := 0; i < 600; i++ {
		w.Update(1.0 / 120)
		if ball.Position().Y() < minY {
			minY = ball.Position().Y()
		}
	}
	// The ball must never fall meaningfully through the floor plane.
	assert.GreaterOrEqual(t, minY, 0.5-0.05)
}

func TestWorldBoxRestsOnFloor(t *testing.T) {
	w := NewWorld()
	_, err := w.StaticPlane(Vec3{0, 1, 0}, 0)
	require.NoError(t, err)
	box, err := w.DynamicBox(Vec3{0, 2, 0}, Vec3{0.5, 0.5, 0.5}, 1)
	require.NoError(t, err)

	for i := 0; i < 600; i++ {
		w.Update(1.0 / 120)
	}
	assert.InDelta(t, 0.5, box.Position().Y(), 0.05)
}

func TestWorldBodyFallsAsleepAtRest(t *testing.T) {
	w := NewWorld()
	_, err := w.StaticPlane(Vec3{0, 1, 0}, 0)
	require.NoError(t, err)
	ball, err := w.DynamicSphere(Vec3{0, 0.5, 0}, 0.5, 1)
	require.NoError(t, err)
	ball.SetMaterial(Material{Restitution: 0, FrictionStatic: 0.9, FrictionDynamic: 0.8, LinearDamping: 0.1})

	for i := 0; i < 600; i++ {
		w.Update(1.0 / 120)
	}
	assert.True(t, ball.IsSleeping())

	ball.WakeUp()
	assert.False(t, ball.IsSleeping())
}

func TestWorldStepIgnoresTwoSleepingBodies(t *testing.T) {
	w := NewWorld()
	a, _ := w.DynamicSphere(Vec3{0, 0, 0}, 0.5, 1)
	b, _ := w.DynamicSphere(Vec3{0.9, 0, 0}, 0.5, 1)
	a.sleeping = true
	b.sleeping = true
	a.velAvgAwake = true
	b.velAvgAwake = true

	w.Step(1.0 / 120)

	// A pair of mutually sleeping, overlapping bodies is skipped entirely
	// by the active-pair filter: neither receives an impulse or
	// positional correction from the other this step.
	assert.False(t, a.hadContactThisStep)
	assert.False(t, b.hadContactThisStep)
	assert.Equal(t, Vec3{0, 0, 0}, a.Position())
	assert.Equal(t, Vec3{0.9, 0, 0}, b.Position())
}

func TestWorldUpdateCapsFixedSteps(t *testing.T) {
	w := NewWorld()
	w.SetFixedTimeStep(1.0 / 120)
	w.Update(10) // a huge stall: deltaTime is clamped to 0.25s before accumulating.
	assert.Equal(t, 0.0, w.accumulator)
}

func TestWorldBroadphaseReducesCandidatePairs(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 5; i++ {
		_, _ = w.DynamicSphere(Vec3{float64(i) * 50, 0, 0}, 0.5, 1)
	}
	bruteForce := len(w.candidatePairs())
	assert.Equal(t, 10, bruteForce) // n(n-1)/2 for n=5.

	w.SetBroadphase(NewBroadphase(1))
	assert.Less(t, len(w.candidatePairs()), bruteForce)
}

func TestWorldBodyLookupByID(t *testing.T) {
	w := NewWorld()
	b, err := w.DynamicSphere(Vec3{}, 1, 1)
	require.NoError(t, err)

	found, ok := w.Body(b.ID())
	require.True(t, ok)
	assert.Same(t, b, found)

	_, ok = w.Body(b.ID())
	assert.True(t, ok)
}

func TestWorldRejectsInvalidShapeParameters(t *testing.T) {
	w := NewWorld()
	_, err := w.DynamicSphere(Vec3{}, 0, 1)
	assert.Error(t, err)
	_, err = w.DynamicBox(Vec3{}, Vec3{1, 0, 1}, 1)
	assert.Error(t, err)
	_, err = w.StaticPlane(Vec3{0, 0, 0}, 0)
	assert.ErrorIs(t, err, ErrZeroPlaneNormal)
}
