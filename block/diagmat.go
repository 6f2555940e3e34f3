// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import "github.com/cpmech/physcore/geo"

// DiagMat33 is a block-diagonal matrix: one 3x3 block per node.
type DiagMat33 struct {
	Blocks []geo.Mat33
}

// NewDiagMat33 allocates a block-diagonal with n zero blocks.
func NewDiagMat33(n int) DiagMat33 {
	return DiagMat33{Blocks: make([]geo.Mat33, n)}
}

// N returns the number of blocks.
func (d DiagMat33) N() int { return len(d.Blocks) }

// MulVecInto writes out = D*v without allocating; out must already carry
// D.N() blocks, typically from a pooled scratch buffer the caller reuses
// across PCG iterations rather than reallocating each time.
func (d DiagMat33) MulVecInto(v, out DenseVec3) {
	for i, b := range d.Blocks {
		out.Set(i, geo.MulVec(b, v.Get(i)))
	}
}

// MulVec returns the block-diagonal product D*v, allocating a fresh
// result; see MulVecInto for the allocation-free variant.
func (d DiagMat33) MulVec(v DenseVec3) DenseVec3 {
	out := NewDenseVec3(v.N())
	d.MulVecInto(v, out)
	return out
}

// Inverse returns a block-diagonal holding the inverse of every block, with
// singular blocks (per the given tolerance) replaced by the zero block —
// the same convention the spec's constraint filter uses for fully pinned
// nodes, so an all-pinned node's preconditioner contribution is simply
// inert rather than an error.
func (d DiagMat33) Inverse(tol float64) DiagMat33 {
	out := NewDiagMat33(d.N())
	for i, b := range d.Blocks {
		if inv, ok := geo.Inverse(b, tol); ok {
			out.Blocks[i] = inv
		}
	}
	return out
}
