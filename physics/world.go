// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package physics is a real-time simulation of rigid-body physics for
// spheres, axis-aligned boxes, and infinite planes. It is driven by
// fixed-step substepped integration, a pairwise narrowphase, an
// impulse-based contact solver, a soft-contact stabilizer for resting
// sphere-plane contacts, a sleeping controller, and an optional
// uniform-grid broadphase.
//
// phys3d's package layout follows gazed-vu's physics package (body,
// broadphase, narrowphase, contact solver, sleep), rewritten as a
// standalone impulse solver over sphere/AABB/plane shapes only: no
// angular dynamics, no general convex shapes, no constraints.
package physics

import (
	"math"

	"github.com/google/uuid"
)

// maxFixedStepsPerUpdate caps the number of fixed steps a single Update
// call will advance, preventing a spiral of death after a long stall
//.
const maxFixedStepsPerUpdate = 8

// World owns the body list and the globals the simulation pipeline
// consults: gravity, fixed timestep, substep count, solver iterations,
// the optional broadphase, the accumulator, and the sleep/solver tuning.
type World struct {
	bodies []*RigidBody
	index  map[uuid.UUID]*RigidBody
	nextID bid

	gravity          Vec3
	fixedTimeStep    float64
	substeps         int
	solverIterations int
	broadphase       *Broadphase

	accumulator float64

	sleepCfg  SleepConfig
	solverCfg SolverConfig
}

// NewWorld creates a World with the defaults from gravity
// (0,-9.81,0), fixedTimeStep 1/120, 1 substep, 4 solver iterations, no
// broadphase (brute-force O(n^2) pairing), and default sleep/solver
// tuning.
func NewWorld() *World {
	return &World{
		index:            make(map[uuid.UUID]*RigidBody),
		gravity:          Vec3{0, -9.81, 0},
		fixedTimeStep:    1.0 / 120.0,
		substeps:         1,
		solverIterations: 4,
		sleepCfg:         DefaultSleepConfig(),
		solverCfg:        DefaultSolverConfig(),
	}
}

// SetGravity sets the world's gravity vector, which is also what the
// contact solver consults for the friction support term.
func (w *World) SetGravity(g Vec3) {
	w.gravity = g
	w.solverCfg.Gravity = g
}

// Gravity returns the world's current gravity vector.
func (w *World) Gravity() Vec3 { return w.gravity }

// SetFixedTimeStep sets the fixed simulation step, clamped to >= 1e-6
// ("Timestep <= 0").
func (w *World) SetFixedTimeStep(s float64) { w.fixedTimeStep = maxF(s, 1e-6) }

// FixedTimeStep returns the world's current fixed timestep.
func (w *World) FixedTimeStep() float64 { return w.fixedTimeStep }

// SetSubsteps sets how many substeps each fixed step is divided into,
// clamped to >= 1.
func (w *World) SetSubsteps(n int) {
	if n < 1 {
		n = 1
	}
	w.substeps = n
}

// SetSolverIterations sets how many Gauss-Seidel passes the solver makes
// over the candidate pairs each substep, clamped to >= 1.
func (w *World) SetSolverIterations(n int) {
	if n < 1 {
		n = 1
	}
	w.solverIterations = n
}

// SetBroadphase installs (or, with nil, removes) a uniform-grid
// broadphase. Without one, World falls back to enumerating every
// n(n-1)/2 body pair directly.
func (w *World) SetBroadphase(bp *Broadphase) { w.broadphase = bp }

// SetSleepVelThreshold sets the EMA speed below which a body counts as
// quiet for sleep purposes.
func (w *World) SetSleepVelThreshold(v float64) { w.sleepCfg.VelThreshold = maxF(v, 0) }

// SetSleepTime sets how long a body must stay quiet before sleeping.
func (w *World) SetSleepTime(s float64) { w.sleepCfg.TimeToSleep = maxF(s, 0) }

// SetPositionCorrection sets the Baumgarte percent (clamped [0,1]) and
// slop (clamped >=0) the solver uses for positional correction.
func (w *World) SetPositionCorrection(percent, slop float64) {
	w.solverCfg.setPositionCorrection(percent, slop)
}

// SetNormalImpulseVSlop sets the deadband on normal closing velocity
// below which no normal impulse is applied.
func (w *World) SetNormalImpulseVSlop(v float64) { w.solverCfg.NormalImpulseVSlop = maxF(v, 0) }

// SetWakeThresholds sets the impulse and correction magnitudes above
// which a sleeping body involved in a contact is woken.
func (w *World) SetWakeThresholds(impulse, correction float64) {
	w.solverCfg.WakeImpulseThreshold = maxF(impulse, 0)
	w.solverCfg.WakeCorrectionThreshold = maxF(correction, 0)
}

// SetCurrentDt directly overrides the solver's published substep size,
// clamped to >= 1e-8. World.Step calls this itself every
// substep; exposed for tests and tools driving the solver without a
// full World.
func (w *World) SetCurrentDt(dt float64) { w.solverCfg.CurrentDt = maxF(dt, 1e-8) }

// AddBody registers a RigidBody with the world, assigning it the
// insertion-ordered integer id the broadphase and pair dedup keys need
//. Returns b for convenient chaining.
func (w *World) AddBody(b *RigidBody) *RigidBody {
	b.bid = w.nextID
	w.nextID++
	w.bodies = append(w.bodies, b)
	w.index[b.id] = b
	return b
}

// Bodies returns the world's bodies in insertion order. The returned
// slice must not be mutated by the caller.
func (w *World) Bodies() []*RigidBody { return w.bodies }

// Body looks up a body by its external id.
func (w *World) Body(id uuid.UUID) (*RigidBody, bool) {
	b, ok := w.index[id]
	return b, ok
}

// DynamicSphere creates, adds, and returns a dynamic sphere body.
func (w *World) DynamicSphere(position Vec3, radius, mass float64) (*RigidBody, error) {
	s, err := NewSphere(radius)
	if err != nil {
		return nil, err
	}
	return w.AddBody(NewRigidBody(s, position, mass)), nil
}

// StaticPlane creates, adds, and returns a static (zero-mass) plane body.
func (w *World) StaticPlane(normal Vec3, d float64) (*RigidBody, error) {
	p, err := NewPlane(normal, d)
	if err != nil {
		return nil, err
	}
	return w.AddBody(NewRigidBody(p, Vec3{}, 0)), nil
}

// DynamicBox creates, adds, and returns a dynamic AABB body.
func (w *World) DynamicBox(position, halfExtents Vec3, mass float64) (*RigidBody, error) {
	box, err := NewAABB(halfExtents)
	if err != nil {
		return nil, err
	}
	return w.AddBody(NewRigidBody(box, position, mass)), nil
}

// Update advances the simulation by deltaTime of wall-clock time, as
// many fixed steps as the accumulator allows (capped at
// maxFixedStepsPerUpdate to avoid a spiral of death),
func (w *World) Update(deltaTime float64) {
	deltaTime = math.Min(deltaTime, 0.25)
	w.accumulator += deltaTime

	steps := 0
	for w.accumulator >= w.fixedTimeStep && steps < maxFixedStepsPerUpdate {
		subDt := w.fixedTimeStep / float64(w.substeps)
		for i := 0; i < w.substeps; i++ {
			w.Step(subDt)
		}
		w.accumulator -= w.fixedTimeStep
		steps++
	}
	if steps == maxFixedStepsPerUpdate {
		w.accumulator = 0
	}
}

// Step advances the simulation by exactly one substep of duration dt,
// implementing the pipeline from "step(dt)".
func (w *World) Step(dt float64) {
	w.SetCurrentDt(dt)

	for _, b := range w.bodies {
		b.resetActivity()
	}
	for _, b := range w.bodies {
		b.integrate(dt, w.gravity)
	}

	pairs := w.candidatePairs()

	active := pairs[:0:0]
	for _, p := range pairs {
		if p.A.sleeping && p.B.sleeping {
			continue
		}
		active = append(active, p)
	}

	for _, p := range active {
		if isSpherePlanePair(p.A, p.B) {
			sphereBody, planeBody := p.A, p.B
			if p.A.shape.Kind() != KindSphere {
				sphereBody, planeBody = p.B, p.A
			}
			softContact(sphereBody, planeBody, &w.solverCfg, w.wake)
		}
	}

	for iter := 0; iter < w.solverIterations; iter++ {
		for _, p := range active {
			if p.A.sleeping && p.B.sleeping {
				continue
			}
			if m, ok := narrow(p.A, p.B); ok {
				resolve(m, &w.solverCfg, w.wake)
			}
		}
	}

	for _, b := range w.bodies {
		b.updateSleep(dt, w.sleepCfg)
	}
}

// candidatePairs builds the pair list for one substep: broadphase output
// over bounded bodies plus (other, plane) augmentation, or every
// n(n-1)/2 pair if no broadphase is installed.
func (w *World) candidatePairs() []Pair {
	if w.broadphase == nil {
		pairs := make([]Pair, 0, len(w.bodies)*len(w.bodies)/2)
		for i := 0; i < len(w.bodies); i++ {
			for j := i + 1; j < len(w.bodies); j++ {
				pairs = append(pairs, Pair{A: w.bodies[i], B: w.bodies[j]})
			}
		}
		return pairs
	}

	w.broadphase.Clear()
	var planes []*RigidBody
	for _, b := range w.bodies {
		if b.shape.Kind() == KindPlane {
			planes = append(planes, b)
			continue
		}
		if min, max, ok := Bounds(b.position, b.shape); ok {
			w.broadphase.Insert(b, min, max)
		}
	}

	pairs := w.broadphase.ComputePairs()
	for _, p := range planes {
		for _, b := range w.bodies {
			if b == p || b.shape.Kind() == KindPlane {
				continue
			}
			pairs = append(pairs, Pair{A: b, B: p})
		}
	}
	return pairs
}

// wake wakes b. Kept as a bound method value passed into the solver and
// soft contact so neither has to import anything about World.
func (w *World) wake(b *RigidBody) { b.WakeUp() }

// ResetAccumulator zeroes the fixed-step accumulator, discarding any
// partial step of wall-clock time that had not yet been simulated.
func (w *World) ResetAccumulator() { w.accumulator = 0 }

// GetInterpolationAlpha returns how far into the next fixed step the
// accumulator sits, clamped to [0,1], for render-side interpolation
// between the previous and current simulated state.
func (w *World) GetInterpolationAlpha() float64 {
	return clampF(w.accumulator/w.fixedTimeStep, 0, 1)
}
