// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "math"

// Pair is an unordered candidate pair of bodies emitted by a Broadphase.
type Pair struct {
	A, B *RigidBody
}

// cellCoord is an integer 3D grid cell index.
type cellCoord struct{ x, y, z int }

// Broadphase is a uniform spatial grid that reduces the O(n^2) candidate
// pair count down to O(n+k) for spatially distributed bodies. Cell size
// is fixed at construction; cells are keyed by integer coordinate and
// hold the bodies whose AABB touches them.
type Broadphase struct {
	cellSize float64
	cells    map[cellCoord][]*RigidBody
	touched  []cellCoord
}

// NewBroadphase creates a uniform grid broadphase with the given cell
// size, recommended to be roughly the average object diameter.
func NewBroadphase(cellSize float64) *Broadphase {
	return &Broadphase{
		cellSize: cellSize,
		cells:    make(map[cellCoord][]*RigidBody),
	}
}

// Clear empties every cell and the touched-cell list, ready for the next
// substep's inserts.
func (g *Broadphase) Clear() {
	for _, c := range g.touched {
		delete(g.cells, c)
	}
	g.touched = g.touched[:0]
}

// Insert registers body in every grid cell its [min,max] AABB overlaps.
func (g *Broadphase) Insert(body *RigidBody, min, max Vec3) {
	minX, minY, minZ := g.cellIndex(min.X()), g.cellIndex(min.Y()), g.cellIndex(min.Z())
	maxX, maxY, maxZ := g.cellIndex(max.X()), g.cellIndex(max.Y()), g.cellIndex(max.Z())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				c := cellCoord{x, y, z}
				if _, ok := g.cells[c]; !ok {
					g.touched = append(g.touched, c)
				}
				g.cells[c] = append(g.cells[c], body)
			}
		}
	}
}

func (g *Broadphase) cellIndex(v float64) int {
	return int(math.Floor(v / g.cellSize))
}

// ComputePairs scans every touched cell and emits each unordered pair of
// bodies sharing a cell, deduplicated across cells. Iteration walks
// g.touched in insertion order (not map/hash order) so that, given a
// stable insertion order, the emitted pair order is stable too.
func (g *Broadphase) ComputePairs() []Pair {
	pairs := make([]Pair, 0)
	seen := make(map[uint64]bool)

	for _, c := range g.touched {
		bodies := g.cells[c]
		if len(bodies) < 2 {
			continue
		}
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]
				if a == b {
					continue
				}
				key := pairID(a.bid, b.bid)
				if seen[key] {
					continue
				}
				seen[key] = true
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
	}
	return pairs
}
