// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cloth

import (
	"fmt"

	"github.com/cpmech/physcore/arena"
	"github.com/cpmech/physcore/block"
	"github.com/cpmech/physcore/errs"
	"github.com/cpmech/physcore/geo"
)

// SolverParams collects the modified-PCG tunables, mirroring gofem's
// LinSolData option-struct-with-defaults idiom.
type SolverParams struct {
	Tol     float64 `json:"tol"`
	MaxIter int     `json:"max_iter"`
	Verbose bool    `json:"-"`
}

// DefaultSolverParams returns the modified PCG's default tolerance and
// iteration cap.
func DefaultSolverParams() SolverParams {
	return SolverParams{Tol: 1e-4, MaxIter: 100}
}

// filterVecInto applies each node's constraint-filter block S_i into out
// without allocating.
func filterVecInto(v block.DenseVec3, nodes []Node, out block.DenseVec3) {
	for i := range nodes {
		s := nodes[i].filterBlock()
		out.Set(i, geo.MulVec(s, v.Get(i)))
	}
}

// filterVec applies each node's constraint-filter block S_i, the projection
// spec.md 4's modified PCG threads through every inner product.
func filterVec(v block.DenseVec3, nodes []Node) block.DenseVec3 {
	out := block.NewDenseVec3(v.N())
	filterVecInto(v, nodes, out)
	return out
}

// pcgScratchBuffers is the fixed number of n-block DenseVec3 scratch
// buffers one solvePCG call needs (dv, av, residual, r, pr, c, aq, q, s,
// sum); Cloth sizes its scratch pool from this count so every Step reuses
// the same backing storage instead of growing it.
const pcgScratchBuffers = 10

// solvePCG solves A*Δv = b subject to the per-node filter S and offset z
// (spec.md 4's Modified PCG), implementing its 6 steps verbatim: Δv starts
// at z, the preconditioner is the inverse block-diagonal of A restricted to
// the free subspace, and every inner product is taken after filtering so
// symmetry is preserved on the free subspace despite constraints being
// enforced in-loop rather than by matrix surgery.
//
// Every n-block temporary is drawn from scratch (an arena.Pool[float64]
// owned by the caller) via the allocation-free *Into primitives, so a
// solve that iterates up to MaxIter times allocates nothing on the heap
// per iteration; the caller is responsible for resetting scratch's
// watermark once it is done reading the returned Δv.
func solvePCG(a *block.SparseMat33, b block.DenseVec3, nodes []Node, params SolverParams, scratch *arena.Pool[float64]) (block.DenseVec3, int, error) {
	n := b.N()

	dv := block.NewDenseVec3FromPool(scratch, n)
	for i := range nodes {
		dv.Set(i, nodes[i].TargetVelocity)
	}

	diag, err := a.AssembleDiagonal()
	if err != nil {
		return block.DenseVec3{}, 0, fmt.Errorf("cloth: solvePCG: %w", err)
	}
	precond := diag.Inverse(1e-300)
	// Zero the preconditioner on fully constrained DOFs (spec.md 4 step 2):
	// a static node's filter block is zero, so its contribution to the free
	// subspace must be inert, not whatever the raw diagonal inverse gives.
	for i := range nodes {
		if nodes[i].Type == Static {
			precond.Blocks[i] = geo.Mat33{}
		}
	}

	av := block.NewDenseVec3FromPool(scratch, n)
	if err := a.MultiplyInto(dv, av); err != nil {
		return block.DenseVec3{}, 0, fmt.Errorf("cloth: solvePCG: %w", err)
	}
	residual := block.NewDenseVec3FromPool(scratch, n)
	residual.Add2(1, b, -1, av)
	r := block.NewDenseVec3FromPool(scratch, n)
	filterVecInto(residual, nodes, r)

	pr := block.NewDenseVec3FromPool(scratch, n)
	precond.MulVecInto(r, pr)
	c := block.NewDenseVec3FromPool(scratch, n)
	filterVecInto(pr, nodes, c)
	rhoNew := block.Dot(r, c)

	bNorm2 := block.Dot(b, b)
	target := params.Tol * params.Tol * bNorm2

	aq := block.NewDenseVec3FromPool(scratch, n)
	q := block.NewDenseVec3FromPool(scratch, n)
	s := block.NewDenseVec3FromPool(scratch, n)
	sum := block.NewDenseVec3FromPool(scratch, n)

	iterations := 0
	for rhoNew > target && iterations < params.MaxIter {
		if err := a.MultiplyInto(c, aq); err != nil {
			return block.DenseVec3{}, iterations, fmt.Errorf("cloth: solvePCG: %w", err)
		}
		filterVecInto(aq, nodes, q)

		denom := block.Dot(c, q)
		if denom == 0 {
			break
		}
		alpha := rhoNew / denom

		dv.Add2(1, dv, alpha, c)
		r.Add2(1, r, -alpha, q)

		precond.MulVecInto(r, s)

		rhoOld := rhoNew
		rhoNew = block.Dot(r, s)
		beta := rhoNew / rhoOld

		sum.Add2(1, s, beta, c)
		filterVecInto(sum, nodes, c)

		iterations++
	}

	if iterations >= params.MaxIter && rhoNew > target {
		return dv, iterations, fmt.Errorf("cloth: PCG exceeded %d iterations: %w", params.MaxIter, errs.ErrNonConvergent)
	}
	return dv, iterations, nil
}
