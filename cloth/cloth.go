// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cloth

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/physcore/arena"
	"github.com/cpmech/physcore/block"
	"github.com/cpmech/physcore/errs"
	"github.com/cpmech/physcore/geo"
)

// Def configures a Cloth (spec.md 6's Create(def) contract). Mesh supplies
// vertex positions and triangle indices; springs are derived from it by
// DeriveSprings. GravityScale, mirroring gofem's per-element Gfcn hook,
// ramps gravity in over simulated time; leave it nil for constant gravity.
type Def struct {
	Mesh         MeshDef
	Density      float64 // mass per unit area, distributed to incident nodes
	Ks, Kd       float64
	Radius       float64 // rest radius used for self/contact probing by an external collaborator
	Gravity      geo.Vec3
	GravityScale fun.Func

	Solver  SolverParams
	Verbose bool
}

// DefaultDef fills in a Def's solver defaults; callers still must set Mesh,
// Density and the stiffness/damping coefficients.
func DefaultDef() Def {
	return Def{Solver: DefaultSolverParams(), GravityScale: &fun.Cte{C: 1}}
}

// Cloth is the implicit spring-mass solver instance spec.md 6 specifies:
// per-node state, a derived spring list, and the time-stepping machinery
// (components F, G, H) that advances it. trip and scratch are long-lived
// scratch buffers sized once at construction (spec.md §4.B/§5's scoped
// allocator): assembly reuses trip across steps via Triplet33.Start, and
// solvePCG's per-iteration vectors are drawn from scratch and reclaimed in
// one rewind per Step rather than reallocated from the heap.
type Cloth struct {
	nodes   []Node
	springs []Spring
	def     Def
	time    float64
	lastIts int
	trip    *block.Triplet33
	scratch *arena.Pool[float64]
}

// NewCloth derives per-node mass from the mesh's triangle areas (the
// standard lumped-mass scheme: a third of each incident triangle's area,
// times density, the way a finite-element solver lumps a consistent mass
// matrix to its diagonal) and builds the spring list via DeriveSprings.
func NewCloth(def Def) (*Cloth, error) {
	if def.Density <= 0 || !isFiniteScalar(def.Density) {
		return nil, fmt.Errorf("cloth: NewCloth: non-finite or non-positive density %g: %w", def.Density, errs.ErrDegenerateInput)
	}
	if def.GravityScale == nil {
		def.GravityScale = &fun.Cte{C: 1}
	}
	if def.Solver == (SolverParams{}) {
		def.Solver = DefaultSolverParams()
	}

	n := len(def.Mesh.Positions)
	area := make([]float64, n)
	for _, t := range def.Mesh.Triangles {
		a, b, c := def.Mesh.Positions[t[0]], def.Mesh.Positions[t[1]], def.Mesh.Positions[t[2]]
		triArea := 0.5 * geo.Len(geo.Cross(geo.Sub(b, a), geo.Sub(c, a)))
		share := triArea / 3
		area[t[0]] += share
		area[t[1]] += share
		area[t[2]] += share
	}

	nodes := make([]Node, n)
	for i, p := range def.Mesh.Positions {
		mass := area[i] * def.Density
		nodes[i] = Node{Position: p, Mass: mass}
		nodes[i].setDynamic(mass)
	}

	springs := DeriveSprings(def.Mesh, def.Ks, def.Kd)
	for _, s := range springs {
		if s.I == s.J || s.I < 0 || s.I >= n || s.J < 0 || s.J >= n {
			return nil, fmt.Errorf("cloth: NewCloth: spring (%d,%d) invalid for %d nodes: %w", s.I, s.J, n, errs.ErrDegenerateInput)
		}
		if s.RestLength <= 0 {
			return nil, fmt.Errorf("cloth: NewCloth: spring (%d,%d) has non-positive rest length: %w", s.I, s.J, errs.ErrDegenerateInput)
		}
	}

	maxEntries := n + 8*len(springs)
	return &Cloth{
		nodes:   nodes,
		springs: springs,
		def:     def,
		trip:    block.NewTriplet33(n, n, maxEntries),
		scratch: arena.NewPool[float64](pcgScratchBuffers * 3 * n),
	}, nil
}

func isFiniteScalar(x float64) bool { return geo.Finite(geo.V3(x, 0, 0)) }

// NumNodes returns the node count.
func (c *Cloth) NumNodes() int { return len(c.nodes) }

// SetType pins or unpins node i.
func (c *Cloth) SetType(i int, typ NodeType) {
	if typ == Static {
		c.nodes[i].setStatic()
	} else {
		c.nodes[i].setDynamic(c.nodes[i].Mass)
	}
}

// SetPosition overrides node i's position, e.g. for initial placement.
func (c *Cloth) SetPosition(i int, p geo.Vec3) { c.nodes[i].Position = p }

// SetVelocity overrides node i's velocity.
func (c *Cloth) SetVelocity(i int, v geo.Vec3) { c.nodes[i].Velocity = v }

// Position returns node i's current position.
func (c *Cloth) Position(i int) geo.Vec3 { return c.nodes[i].Position }

// Velocity returns node i's current velocity.
func (c *Cloth) Velocity(i int) geo.Vec3 { return c.nodes[i].Velocity }

// GetTension writes the per-node sum of incident spring-force magnitudes
// into out, which must have length >= NumNodes (spec.md 6).
func (c *Cloth) GetTension(out []float64) {
	copy(out, springTensions(c.nodes, c.springs))
}

// GetIterations returns the PCG iteration count from the most recent Step.
func (c *Cloth) GetIterations() int { return c.lastIts }

// probeContacts tests every node against shapes and updates each node's
// Contact record and TargetVelocity (spec.md 4.F's "Contact maintenance").
func (c *Cloth) probeContacts(h float64, shapes []Shape) {
	for i := range c.nodes {
		node := &c.nodes[i]
		if node.Type == Static {
			node.Contact = Contact{}
			continue
		}
		node.Contact = Contact{}
		for _, shape := range shapes {
			penetrating, depth, normal := shape.TestSphere(node.Position, c.def.Radius)
			if !penetrating {
				continue
			}
			node.Contact = Contact{Normal: normal, Active: true}
			node.TargetVelocity = geo.Scale(normal, depth/h)
			break
		}
		if !node.Contact.Active {
			node.TargetVelocity = geo.Vec3{}
		}
	}
}

// Step advances the cloth by h seconds (spec.md 4.F–H): probes contacts,
// assembles A and b, solves the filtered system for Δv, then integrates
// v ← v+Δv, x ← x+h·v; static masses retain x and v exactly.
func (c *Cloth) Step(h float64, shapes []Shape) error {
	if h <= 0 {
		return fmt.Errorf("cloth: Step: non-positive timestep %g: %w", h, errs.ErrDegenerateInput)
	}

	// solvePCG's Δv is read out below before this Step call returns, so
	// rewinding scratch's watermark on return (not before) is safe: the
	// reclaimed region is never touched by anything else in between.
	mark := c.scratch.Mark()
	defer c.scratch.ResetTo(mark)

	c.probeContacts(h, shapes)

	scale := c.def.GravityScale.F(c.time, nil)
	gravity := geo.Scale(c.def.Gravity, scale)

	a, b, err := assembleSystem(c.nodes, c.springs, gravity, h, c.trip)
	if err != nil {
		return err
	}

	dv, iterations, err := solvePCG(a, b, c.nodes, c.def.Solver, c.scratch)
	c.lastIts = iterations
	if err != nil && !errors.Is(err, errs.ErrNonConvergent) {
		return err
	}
	nonConvergent := err != nil

	for i := range c.nodes {
		node := &c.nodes[i]
		if node.Type == Static {
			continue
		}
		node.Velocity = geo.Add(node.Velocity, dv.Get(i))
		node.Position = geo.Add(node.Position, geo.Scale(node.Velocity, h))
	}
	c.time += h

	if c.def.Verbose || c.def.Solver.Verbose {
		io.Pf("cloth: step done, %d PCG iterations\n", iterations)
	}
	if nonConvergent {
		return err
	}
	return nil
}
