// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command phys3d-sim runs one of phys3d's seed scenarios headlessly and
// prints each body's trajectory as a stream of JSON lines, one per fixed
// step. It has no rendering surface: it exists so a scenario can be
// driven and inspected outside of `go test`, the way gazed-vu/eg launches
// a named example instead of a full windowed application.
//
//	phys3d-sim -scenario ball-bounce -seconds 5
//
// Invoking phys3d-sim without -scenario lists the available scenarios.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/enzokpl/phys3d/physics"
)

type scenario struct {
	name        string
	description string
	build       func() *physics.World
}

type frame struct {
	Step   int       `json:"step"`
	Time   float64   `json:"time"`
	Bodies []bodyRow `json:"bodies"`
}

type bodyRow struct {
	ID       string  `json:"id"`
	Shape    string  `json:"shape"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Sleeping bool    `json:"sleeping"`
}

func main() {
	name := flag.String("scenario", "", "scenario to run (see -list)")
	seconds := flag.Float64("seconds", 5, "wall-clock seconds to simulate")
	list := flag.Bool("list", false, "list available scenarios and exit")
	flag.Parse()

	scenarios := seedScenarios()

	if *list || *name == "" {
		fmt.Fprintln(os.Stderr, "available scenarios:")
		for _, s := range scenarios {
			fmt.Fprintf(os.Stderr, "  %-16s %s\n", s.name, s.description)
		}
		if *name == "" {
			os.Exit(1)
		}
		return
	}

	var chosen *scenario
	for i := range scenarios {
		if scenarios[i].name == *name {
			chosen = &scenarios[i]
			break
		}
	}
	if chosen == nil {
		log.Fatalf("phys3d-sim: unknown scenario %q (use -list)", *name)
	}

	w := chosen.build()
	dt := w.FixedTimeStep()
	enc := json.NewEncoder(os.Stdout)

	steps := int(*seconds / dt)
	for i := 0; i < steps; i++ {
		w.Update(dt)
		f := frame{Step: i, Time: float64(i+1) * dt}
		for _, b := range w.Bodies() {
			p, v := b.Position(), b.Velocity()
			f.Bodies = append(f.Bodies, bodyRow{
				ID:       b.ID().String(),
				Shape:    b.Shape().Kind().String(),
				Position: [3]float64{p.X(), p.Y(), p.Z()},
				Velocity: [3]float64{v.X(), v.Y(), v.Z()},
				Sleeping: b.IsSleeping(),
			})
		}
		if err := enc.Encode(f); err != nil {
			log.Fatalf("phys3d-sim: writing trajectory: %v", err)
		}
	}
}

// seedScenarios builds the scenario table: every entry here is
// reproducible headlessly, with no scenario depending on wall-clock
// jitter or user input.
func seedScenarios() []scenario {
	return []scenario{
		{
			name:        "ball-bounce",
			description: "a damped sphere bouncing on a ground plane",
			build: func() *physics.World {
				w := physics.NewWorld()
				must1(w.StaticPlane(physics.Vec3{0, 1, 0}, 0))
				ball := must1(w.DynamicSphere(physics.Vec3{0, 2, 0}, 0.25, 1))
				ball.SetMaterial(physics.Material{Restitution: 0.5, FrictionStatic: 0.6, FrictionDynamic: 0.4, LinearDamping: 0.05})
				return w
			},
		},
		{
			name:        "box-rests",
			description: "a box settling to rest on a ground plane",
			build: func() *physics.World {
				w := physics.NewWorld()
				w.SetSubsteps(4)
				must1(w.StaticPlane(physics.Vec3{0, 1, 0}, 0))
				box := must1(w.DynamicBox(physics.Vec3{0, 2, 0}, physics.Vec3{0.3, 0.2, 0.25}, 2))
				box.SetMaterial(physics.Material{Restitution: 0.3, FrictionStatic: 0.6, FrictionDynamic: 0.4, LinearDamping: 0.05})
				return w
			},
		},
		{
			name:        "box-stack",
			description: "two stacked boxes settling onto a ground plane",
			build: func() *physics.World {
				w := physics.NewWorld()
				w.SetSubsteps(6)
				w.SetSolverIterations(8)
				must1(w.StaticPlane(physics.Vec3{0, 1, 0}, 0))
				must1(w.DynamicBox(physics.Vec3{0, 1.5, 0}, physics.Vec3{0.3, 0.2, 0.25}, 2))
				must1(w.DynamicBox(physics.Vec3{0.02, 2.2, 0}, physics.Vec3{0.25, 0.15, 0.25}, 1.5))
				return w
			},
		},
		{
			name:        "sleep-then-wake",
			description: "a sphere dropped onto a ground plane until it falls asleep (no wake-up phase is run)",
			build: func() *physics.World {
				w := physics.NewWorld()
				w.SetSleepVelThreshold(0.03)
				w.SetSleepTime(0.4)
				must1(w.StaticPlane(physics.Vec3{0, 1, 0}, 0))
				ball := must1(w.DynamicSphere(physics.Vec3{0, 1.5, 0}, 0.25, 1))
				ball.SetMaterial(physics.Material{Restitution: 0.2, FrictionStatic: 0.6, FrictionDynamic: 0.6, LinearDamping: 0.02})
				return w
			},
		},
		{
			name:        "friction-braking",
			description: "a sliding box braking to a stop under high friction",
			build: func() *physics.World {
				w := physics.NewWorld()
				w.SetSubsteps(4)
				w.SetSolverIterations(6)
				must1(w.StaticPlane(physics.Vec3{0, 1, 0}, 0))
				box := must1(w.DynamicBox(physics.Vec3{0, 0.2, 0}, physics.Vec3{0.3, 0.2, 0.3}, 2))
				box.SetMaterial(physics.Material{Restitution: 0, FrictionStatic: 0.8, FrictionDynamic: 0.6, LinearDamping: 0.01})
				box.SetVelocity(physics.Vec3{3, 0, 0})
				return w
			},
		},
		{
			name:        "broadphase-reduction",
			description: "a ground plane and a 100-box field, to show grid pair reduction",
			build: func() *physics.World {
				w := physics.NewWorld()
				w.SetBroadphase(physics.NewBroadphase(2.0))
				must1(w.StaticPlane(physics.Vec3{0, 1, 0}, 0))
				for i := 0; i < 100; i++ {
					x := float64(3*i%30)
					z := float64(3 * (i / 10))
					must1(w.DynamicBox(physics.Vec3{x, 2, z}, physics.Vec3{0.25, 0.25, 0.25}, 1))
				}
				return w
			},
		},
	}
}

// must1 exits via log.Fatalf on error, used only for scenario construction where every
// shape parameter is a literal known to be valid.
func must1(b *physics.RigidBody, err error) *physics.RigidBody {
	if err != nil {
		log.Fatalf("phys3d-sim: building scenario: %v", err)
	}
	return b
}
