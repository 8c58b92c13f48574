// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "math"

// SolverConfig holds the contact solver's process-wide tuning constants.
// "Global tunables" explicitly prefers folding these into the
// world (rather than true globals) so tests can run without cross-talk;
// World owns exactly one SolverConfig and threads it through resolve.
type SolverConfig struct {
	NormalImpulseVSlop     float64 // deadband on closing velocity, default 2e-3 m/s.
	WakeImpulseThreshold   float64 // default 1e-3.
	WakeCorrectionThreshold float64 // default 1e-3.
	CorrectionPercent      float64 // Baumgarte percent, clamped [0,1], default 0.95.
	CorrectionSlop         float64 // clamped >=0, default 5e-4 m.

	// Gravity and CurrentDt are consulted only for the friction support
	// term (stage 2, §4.5); CurrentDt is published once per
	// substep by World.Step before the solver runs.
	Gravity   Vec3
	CurrentDt float64
}

// DefaultSolverConfig returns the package's default solver constants.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		NormalImpulseVSlop:      2e-3,
		WakeImpulseThreshold:    1e-3,
		WakeCorrectionThreshold: 1e-3,
		CorrectionPercent:       0.95,
		CorrectionSlop:          5e-4,
		Gravity:                 Vec3{0, -9.81, 0},
		CurrentDt:               1.0 / 120.0,
	}
}

// setPositionCorrection clamps and stores percent/slop (§6: "clamped into
// [0,1] and >=0 respectively").
func (c *SolverConfig) setPositionCorrection(percent, slop float64) {
	c.CorrectionPercent = clampF(percent, 0, 1)
	c.CorrectionSlop = maxF(slop, 0)
}

// resolve applies the impulse-based contact solver to one manifold,
// implementing stages 1-4. wake is called to wake a body
// (kept as a function parameter rather than a method on RigidBody so the
// solver never has to know about sleep-controller internals).
func resolve(m Manifold, cfg *SolverConfig, wake func(*RigidBody)) {
	a, b := m.A, m.B
	n := m.Normal

	sumInvM := a.invMass + b.invMass
	if sumInvM == 0 {
		return
	}

	a.markContact()
	b.markContact()

	// Stage 1: normal impulse with velocity slop.
	rv := a.velocity.Sub(b.velocity)
	vN := rv.Dot(n)
	var j float64
	if vN < -cfg.NormalImpulseVSlop {
		e := minF(a.material.Restitution, b.material.Restitution)
		j = -(1 + e) * vN / sumInvM
		applyImpulse(a, b, n, j)

		mag := absF(j)
		a.accumulateImpulse(mag)
		b.accumulateImpulse(mag)
		if mag > cfg.WakeImpulseThreshold {
			wake(a)
			wake(b)
		}
	}

	// Stage 2: Coulomb friction (tangential).
	rv = a.velocity.Sub(b.velocity)
	rvT := rv.Sub(n.Mul(rv.Dot(n)))
	tLen := rvT.Len()
	if tLen > 1e-9 {
		t := rvT.Mul(1 / tLen)

		muS := (a.material.FrictionStatic + b.material.FrictionStatic) / 2
		muK := (a.material.FrictionDynamic + b.material.FrictionDynamic) / 2

		jtIdeal := -rv.Dot(t) / sumInvM

		ma := massOf(a)
		mb := massOf(b)
		jSupport := (ma + mb) * absF(cfg.Gravity.Dot(n)) * cfg.CurrentDt
		jNEff := absF(j) + jSupport
		maxStatic := muS * jNEff

		if absF(jtIdeal) <= maxStatic {
			applyImpulse(a, b, t, jtIdeal)
		} else {
			jtKinetic := -muK * jNEff
			applyImpulse(a, b, t, jtKinetic)

			mag := absF(jtKinetic)
			a.accumulateImpulse(mag)
			b.accumulateImpulse(mag)
			if mag > cfg.WakeImpulseThreshold {
				wake(a)
				wake(b)
			}
		}
	}

	// Stage 3: positional correction, always applied.
	corrMag := maxF(m.Penetration-cfg.CorrectionSlop, 0) / sumInvM * cfg.CorrectionPercent
	a.accumulateCorrection(corrMag)
	b.accumulateCorrection(corrMag)
	if corrMag > cfg.WakeCorrectionThreshold {
		wake(a)
		wake(b)
	}
	a.position = a.position.Add(n.Mul(corrMag * a.invMass))
	b.position = b.position.Sub(n.Mul(corrMag * b.invMass))

	// Stage 4: sphere-plane post-stabilization.
	if isSpherePlanePair(a, b) {
		stabilizeSpherePlane(a, b)
	}
}

// applyImpulse applies impulse magnitude j along direction n to a and b,
// skipping static bodies (invMass == 0 leaves the body unaffected).
func applyImpulse(a, b *RigidBody, n Vec3, j float64) {
	a.velocity = a.velocity.Add(n.Mul(j * a.invMass))
	b.velocity = b.velocity.Sub(n.Mul(j * b.invMass))
}

// massOf returns the body's mass for dynamic bodies, 0 for static bodies,
// matching stage 2: "ma = 1/invMa if dynamic else 0".
func massOf(b *RigidBody) float64 {
	if b.invMass == 0 {
		return 0
	}
	return 1 / b.invMass
}

// stabilizeSpherePlane implements stage 4: once a normal
// impulse/friction pass has run on a sphere-plane manifold, snap out any
// residual error and zero a near-zero normal velocity. a, b may be given
// in either (sphere,plane) order.
func stabilizeSpherePlane(a, b *RigidBody) {
	sphereBody, planeBody := a, b
	if a.shape.Kind() != KindSphere {
		sphereBody, planeBody = b, a
	}
	sphere := sphereBody.shape.(Sphere)
	plane := planeBody.shape.(Plane)

	dist := plane.Normal.Dot(sphereBody.position) - plane.D
	err := sphere.Radius - dist
	if math.Abs(err) < 1e-3 {
		sphereBody.position = sphereBody.position.Add(plane.Normal.Mul(err))
		sphereBody.accumulateCorrection(absF(err))
	}
	vN := sphereBody.velocity.Dot(plane.Normal)
	if math.Abs(vN) < 2e-3 {
		sphereBody.velocity = sphereBody.velocity.Sub(plane.Normal.Mul(vN))
	}
}
