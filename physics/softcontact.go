// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "math"

// softContactGap is the maximum |radius - dist| gap the soft contact
// stabilizer will act on.
const softContactGap = 5e-3

// softContact implements a non-manifold resting stabilizer
// for sphere-plane pairs, run once per substep before the solver
// iterations. sphereBody must carry the Sphere shape and planeBody the
// Plane shape; the caller (World.Step) sorts the pair before calling.
func softContact(sphereBody, planeBody *RigidBody, cfg *SolverConfig, wake func(*RigidBody)) {
	sphere := sphereBody.shape.(Sphere)
	plane := planeBody.shape.(Plane)

	dist := plane.Normal.Dot(sphereBody.position) - plane.D
	gap := math.Abs(sphere.Radius - dist)
	if gap > softContactGap {
		return
	}

	sphereBody.markContact()
	planeBody.markContact()

	// Snap along the normal to remove the residual gap.
	errDist := sphere.Radius - dist
	sphereBody.position = sphereBody.position.Add(plane.Normal.Mul(errDist))
	sphereBody.accumulateCorrection(math.Abs(errDist))
	planeBody.accumulateCorrection(math.Abs(errDist))

	// Always zero the normal velocity component ("eliminates breathing").
	vN := sphereBody.velocity.Dot(plane.Normal)
	sphereBody.velocity = sphereBody.velocity.Sub(plane.Normal.Mul(vN))

	// Coulomb friction using the support impulse only: no normal impulse
	// was applied here, so jN_eff is exactly jSupport.
	rv := sphereBody.velocity.Sub(planeBody.velocity)
	rvT := rv.Sub(plane.Normal.Mul(rv.Dot(plane.Normal)))
	tLen := rvT.Len()
	if tLen <= 1e-9 {
		return
	}
	t := rvT.Mul(1 / tLen)

	sumInvM := sphereBody.invMass + planeBody.invMass
	if sumInvM == 0 {
		return
	}

	muS := (sphereBody.material.FrictionStatic + planeBody.material.FrictionStatic) / 2
	muK := (sphereBody.material.FrictionDynamic + planeBody.material.FrictionDynamic) / 2

	ms := massOf(sphereBody)
	mp := massOf(planeBody)
	jSupport := (ms + mp) * math.Abs(cfg.Gravity.Dot(plane.Normal)) * cfg.CurrentDt

	jtIdeal := -rv.Dot(t) / sumInvM
	maxStatic := muS * jSupport

	if math.Abs(jtIdeal) <= maxStatic {
		applyImpulse(sphereBody, planeBody, t, jtIdeal)
		return
	}

	jtKinetic := -muK * jSupport
	applyImpulse(sphereBody, planeBody, t, jtKinetic)

	mag := math.Abs(jtKinetic)
	sphereBody.accumulateImpulse(mag)
	planeBody.accumulateImpulse(mag)
	if mag > cfg.WakeImpulseThreshold {
		wake(sphereBody)
		wake(planeBody)
	}
}
