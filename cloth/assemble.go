// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cloth

import (
	"github.com/cpmech/physcore/block"
	"github.com/cpmech/physcore/geo"
)

// springEpsilon is the minimum spring length below which the direction û is
// considered undefined; spec.md 4.F: "When L < ε, skip that spring's
// Jacobian contribution but still apply its forces as zero."
const springEpsilon = 1e-9

// springGeometry returns the spring's current direction and length, and
// whether it is long enough to carry force (L >= springEpsilon).
func springGeometry(ni, nj *Node, s Spring) (u geo.Vec3, length float64, ok bool) {
	d := geo.Sub(nj.Position, ni.Position)
	length = geo.Len(d)
	if length < springEpsilon {
		return geo.Vec3{}, length, false
	}
	return geo.Scale(d, 1/length), length, true
}

// springForceOnI returns the combined stretch+damping force the spring
// exerts on node i (spec.md 4.F); the force on j is its negation.
func springForceOnI(ni, nj *Node, s Spring, u geo.Vec3, length float64) geo.Vec3 {
	stretch := s.Ks * (length - s.RestLength)
	relVel := geo.Dot(geo.Sub(nj.Velocity, ni.Velocity), u)
	damp := s.Kd * relVel
	return geo.Scale(u, stretch+damp)
}

// springJacobianBlocks returns the position Jacobian K = ∂f_i/∂x_i and the
// velocity Jacobian D = ∂f_i/∂v_i (spec.md 4.F); off-diagonal blocks are
// their negations, and node j's diagonal blocks equal node i's (the
// potential depends only on x_j - x_i).
func springJacobianBlocks(s Spring, u geo.Vec3, length float64) (k, d geo.Mat33) {
	uut := geo.Outer(u, u)
	ratio := s.RestLength / length
	k = geo.AddM(geo.ScaleM(geo.Identity33(), s.Ks*(1-ratio)), geo.ScaleM(uut, s.Ks*ratio))
	d = geo.ScaleM(uut, s.Kd)
	return k, d
}

// assembleSystem builds A = M - h*Jv - h^2*Jx and b = h*(f + h*Jx*v) per
// spec.md 4.F, where f includes spring, damping and gravity forces. gravity
// is the already-scaled (by the time-varying ramp) acceleration vector.
// trip is reset in place via Start rather than allocated fresh, so a caller
// stepping the same cloth repeatedly (Cloth.Step) reuses one triplet buffer
// across its whole lifetime instead of reallocating it every step.
func assembleSystem(nodes []Node, springs []Spring, gravity geo.Vec3, h float64, trip *block.Triplet33) (*block.SparseMat33, block.DenseVec3, error) {
	n := len(nodes)
	f := block.NewDenseVec3(n)
	jxv := block.NewDenseVec3(n) // Jx*v, accumulated directly per spring

	for i := range nodes {
		node := &nodes[i]
		total := geo.Add(node.AccelOffset, gravity)
		f.AddTo(i, geo.Scale(total, node.Mass))
	}

	maxEntries := n + 8*len(springs)
	trip.Start(n, n, maxEntries)
	for i := range nodes {
		if err := trip.Put(i, i, geo.Diag33(nodes[i].Mass, nodes[i].Mass, nodes[i].Mass)); err != nil {
			return nil, block.DenseVec3{}, err
		}
	}

	for _, s := range springs {
		ni, nj := &nodes[s.I], &nodes[s.J]
		u, length, ok := springGeometry(ni, nj, s)
		if !ok {
			continue
		}
		fi := springForceOnI(ni, nj, s, u, length)
		f.AddTo(s.I, fi)
		f.AddTo(s.J, geo.Neg(fi))

		k, d := springJacobianBlocks(s, u, length)

		jxv.AddTo(s.I, geo.MulVec(k, geo.Sub(ni.Velocity, nj.Velocity)))
		jxv.AddTo(s.J, geo.MulVec(k, geo.Sub(nj.Velocity, ni.Velocity)))

		diagContrib := geo.AddM(geo.ScaleM(k, -h*h), geo.ScaleM(d, -h))
		offContrib := geo.AddM(geo.ScaleM(k, h*h), geo.ScaleM(d, h))
		if err := trip.Put(s.I, s.I, diagContrib); err != nil {
			return nil, block.DenseVec3{}, err
		}
		if err := trip.Put(s.J, s.J, diagContrib); err != nil {
			return nil, block.DenseVec3{}, err
		}
		if err := trip.Put(s.I, s.J, offContrib); err != nil {
			return nil, block.DenseVec3{}, err
		}
		if err := trip.Put(s.J, s.I, offContrib); err != nil {
			return nil, block.DenseVec3{}, err
		}
	}

	b := block.NewDenseVec3(n)
	for i := 0; i < n; i++ {
		b.Set(i, geo.Scale(geo.Add(f.Get(i), geo.Scale(jxv.Get(i), h)), h))
	}

	return trip.ToCSR(), b, nil
}

// springTensions returns, per node, the sum of incident spring-force
// magnitudes (spec.md 6's tension query), evaluated directly from current
// state — a pure read, not a byproduct of assembly.
func springTensions(nodes []Node, springs []Spring) []float64 {
	out := make([]float64, len(nodes))
	for _, s := range springs {
		ni, nj := &nodes[s.I], &nodes[s.J]
		u, length, ok := springGeometry(ni, nj, s)
		if !ok {
			continue
		}
		fi := springForceOnI(ni, nj, s, u, length)
		mag := geo.Len(fi)
		out[s.I] += mag
		out[s.J] += mag
	}
	return out
}
