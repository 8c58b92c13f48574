// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"log"
	"math"

	"github.com/google/uuid"
)

// Material holds the per-body physical properties consulted by the
// contact solver and soft contact stabilizer.
type Material struct {
	Restitution     float64 // [0,1], default 0.4.
	FrictionStatic  float64 // >=0, default 0.6.
	FrictionDynamic float64 // >=0, default 0.4.
	LinearDamping   float64 // >=0 s^-1, default 0.05.
}

// DefaultMaterial returns the package's default material values.
func DefaultMaterial() Material {
	return Material{
		Restitution:     0.4,
		FrictionStatic:  0.6,
		FrictionDynamic: 0.4,
		LinearDamping:   0.05,
	}
}

// clamp brings every field of m into its valid range, matching the
// clamping behavior the external setters (§6) require.
func (m Material) clamp() Material {
	m.Restitution = clampF(m.Restitution, 0, 1)
	m.FrictionStatic = maxF(m.FrictionStatic, 0)
	m.FrictionDynamic = maxF(m.FrictionDynamic, 0)
	m.LinearDamping = maxF(m.LinearDamping, 0)
	return m
}

// bid is the process-local, insertion-order body identifier used to key
// broadphase cells and contact-pair dedup sets. Kept distinct from the
// externally visible uuid.UUID identity (RigidBody.ID):
// "use a stable per-body integer id assigned at insertion", not memory
// addresses or hash iteration order.
type bid uint32

// pairID combines two bid values into an order-independent uint64 key,
// used purely for set membership (broadphase pair dedup), never for
// emitted iteration order. Mirrors gazed-vu's body.pairID.
func pairID(a, b bid) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// RigidBody is a single simulated body: a shape, a kinematic state, a
// material, and the bookkeeping the sleep controller and contact solver
// need. A body is created with a shape and added to a World exactly once.
type RigidBody struct {
	id  uuid.UUID
	bid bid

	shape Shape

	position   Vec3
	velocity   Vec3
	forceAccum Vec3

	mass    float64
	invMass float64

	material Material

	canSleep    bool
	sleeping    bool
	sleepTimer  float64
	velAvg      float64
	velAvgAwake bool // whether velAvg holds a sample; cleared while sleep is disabled

	hadContactThisStep    bool
	maxImpulseThisStep    float64
	maxCorrectionThisStep float64
}

// NewRigidBody constructs a body with the given shape, position and mass.
// mass <= 0 produces a static body (invMass == 0).
// The body is not yet part of any simulation; pass it to World.AddBody
// (or use one of World's factory helpers) to start stepping it.
func NewRigidBody(shape Shape, position Vec3, mass float64) *RigidBody {
	b := &RigidBody{
		id:       uuid.New(),
		shape:    shape,
		position: position,
		mass:     mass,
		material: DefaultMaterial(),
		canSleep: true,
	}
	if mass > 0 {
		b.invMass = 1 / mass
	}
	return b
}

// ID returns the body's process-unique external identifier. Stable for
// the lifetime of the body; used by debug output and World.Body lookups.
func (b *RigidBody) ID() uuid.UUID { return b.id }

// Shape returns the body's immutable collision shape.
func (b *RigidBody) Shape() Shape { return b.shape }

// Position returns the body's current world-space position.
func (b *RigidBody) Position() Vec3 { return b.position }

// SetPosition directly sets the body's position. Valid to call between
// steps; undefined if called concurrently with World.Update.
func (b *RigidBody) SetPosition(p Vec3) { b.position = p }

// Velocity returns the body's current linear velocity.
func (b *RigidBody) Velocity() Vec3 { return b.velocity }

// SetVelocity directly sets the body's linear velocity.
func (b *RigidBody) SetVelocity(v Vec3) { b.velocity = v }

// AddForce accumulates a force to be applied on the next integration.
// No-op on static bodies.
func (b *RigidBody) AddForce(f Vec3) {
	if b.invMass == 0 {
		return
	}
	b.forceAccum = b.forceAccum.Add(f)
}

// ClearForces zeroes the accumulated force. Called automatically at the
// end of every integration step.
func (b *RigidBody) ClearForces() { b.forceAccum = zeroVec3 }

// Mass returns the mass the body was constructed with; a static body was
// given a mass <= 0, which is returned as given.
func (b *RigidBody) Mass() float64 { return b.mass }

// InvMass returns the body's inverse mass (0 for static bodies).
func (b *RigidBody) InvMass() float64 { return b.invMass }

// IsStatic reports whether the body is immovable (invMass == 0).
func (b *RigidBody) IsStatic() bool { return b.invMass == 0 }

// Material returns the body's current material properties.
func (b *RigidBody) Material() Material { return b.material }

// SetMaterial replaces the body's material, clamping every field into
// its valid range (§6: "restitution clamped to [0,1], frictions clamped
// to >=0, damping clamped to >=0").
func (b *RigidBody) SetMaterial(m Material) { b.material = m.clamp() }

// IsSleeping reports whether the body is currently asleep.
func (b *RigidBody) IsSleeping() bool { return b.sleeping }

// CanSleep reports whether the sleep controller is enabled for this body.
func (b *RigidBody) CanSleep() bool { return b.canSleep }

// SetCanSleep enables or disables the sleep controller for this body.
// Disabling while asleep wakes the body immediately.
func (b *RigidBody) SetCanSleep(enabled bool) {
	b.canSleep = enabled
	if !enabled {
		b.WakeUp()
	}
}

// WakeUp immediately and idempotently clears sleeping state.
func (b *RigidBody) WakeUp() {
	b.sleeping = false
	b.sleepTimer = 0
}

// HadContactThisStep reports whether the body touched any manifold or
// soft contact during the most recent substep. Exposed mainly for tests
// and debug tooling
func (b *RigidBody) HadContactThisStep() bool { return b.hadContactThisStep }

// MaxImpulseThisStep returns the largest normal or kinetic-friction
// impulse magnitude applied to the body during the most recent substep.
// Static-friction impulses are not counted.
func (b *RigidBody) MaxImpulseThisStep() float64 { return b.maxImpulseThisStep }

// MaxCorrectionThisStep returns the largest positional correction
// magnitude applied to the body during the most recent substep.
func (b *RigidBody) MaxCorrectionThisStep() float64 { return b.maxCorrectionThisStep }

// resetActivity clears per-step bookkeeping. Called by World at the top
// of every substep, before integration.
func (b *RigidBody) resetActivity() {
	b.hadContactThisStep = false
	b.maxImpulseThisStep = 0
	b.maxCorrectionThisStep = 0
}

// markContact flags the body as having participated in a contact this
// step (manifold or soft contact); consulted by the sleep controller.
func (b *RigidBody) markContact() { b.hadContactThisStep = true }

// accumulateImpulse folds mag into the step's peak impulse magnitude.
func (b *RigidBody) accumulateImpulse(mag float64) {
	if mag > b.maxImpulseThisStep {
		b.maxImpulseThisStep = mag
	}
}

// accumulateCorrection folds mag into the step's peak correction magnitude.
func (b *RigidBody) accumulateCorrection(mag float64) {
	if mag > b.maxCorrectionThisStep {
		b.maxCorrectionThisStep = mag
	}
}

// integrate advances the body one substep of duration dt using
// semi-implicit Euler plus exponential damping. Static
// and sleeping bodies only clear their force accumulator.
func (b *RigidBody) integrate(dt float64, gravity Vec3) {
	if b.invMass == 0 || b.sleeping {
		b.ClearForces()
		return
	}
	acc := b.forceAccum.Mul(b.invMass).Add(gravity)
	b.velocity = b.velocity.Add(acc.Mul(dt))
	b.velocity = b.velocity.Mul(math.Exp(-b.material.LinearDamping * dt))
	b.position = b.position.Add(b.velocity.Mul(dt))
	b.ClearForces()
}

// updateSleep runs the sleep controller for this body for one substep
// of duration dt, using the world's configured thresholds.
func (b *RigidBody) updateSleep(dt float64, cfg SleepConfig) {
	if !b.canSleep || b.invMass == 0 {
		b.sleepTimer = 0
		b.sleeping = false
		b.velAvg = 0
		b.velAvgAwake = false
		return
	}

	speed := b.velocity.Len()
	if !b.velAvgAwake {
		b.velAvg = speed
		b.velAvgAwake = true
	} else {
		const alpha = 0.2
		b.velAvg = alpha*speed + (1-alpha)*b.velAvg
	}

	quietVelocity := b.velAvg < cfg.VelThreshold
	quietContacts := b.maxImpulseThisStep <= cfg.ImpulseQuiet && b.maxCorrectionThisStep <= cfg.CorrectionQuiet

	if b.hadContactThisStep && quietVelocity && quietContacts {
		b.sleepTimer += dt
		if b.sleepTimer >= cfg.TimeToSleep {
			if !b.sleeping {
				log.Printf("physics: body %s asleep after %.3fs quiet", b.id, b.sleepTimer)
			}
			b.sleeping = true
			b.velocity = zeroVec3
		}
	} else {
		b.sleepTimer = 0
		b.sleeping = false
	}
}
