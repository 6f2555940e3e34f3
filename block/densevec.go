// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package block implements the sparse block-matrix kit shared by the cloth
// solver: a dense vector of 3-vectors, a dense block-diagonal of 3x3
// matrices, and a CSR matrix of 3x3 blocks (spec.md component C). The flat
// per-node vector arithmetic is delegated to gosl/la, which already
// expresses exactly this "array of float64, operated on as one quantity"
// idiom throughout gofem's element assembly code; only the block-structured
// operations (row assembly, diagonal extraction, block multiply, block
// sum) are bespoke, since no example in the corpus works with a 3x3-block
// CSR format.
package block

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/physcore/arena"
	"github.com/cpmech/physcore/geo"
)

// DenseVec3 is an array of n Vec3, stored as a flat []float64 of length 3n
// so the per-node arithmetic needed by assembly and PCG (add, scale, norm)
// can be delegated to gosl/la's flat vector routines.
type DenseVec3 struct {
	data []float64
}

// NewDenseVec3 allocates a zeroed vector of n blocks.
func NewDenseVec3(n int) DenseVec3 {
	return DenseVec3{data: make([]float64, 3*n)}
}

// NewDenseVec3FromPool allocates a zeroed vector of n blocks from pool
// instead of the heap, so a caller that solves the same system shape
// repeatedly (the PCG hot loop) can reuse one backing region by resetting
// the pool's watermark between calls rather than reallocating every time
// (spec.md §4.B/§5's scoped-allocator contract).
func NewDenseVec3FromPool(pool *arena.Pool[float64], n int) DenseVec3 {
	return DenseVec3{data: pool.Alloc(3 * n)}
}

// N returns the number of Vec3 blocks.
func (v DenseVec3) N() int { return len(v.data) / 3 }

// Flat returns the underlying flat storage, for use with gosl/la routines
// or for handing to an external linear solver.
func (v DenseVec3) Flat() []float64 { return v.data }

// Get returns block i.
func (v DenseVec3) Get(i int) geo.Vec3 {
	o := 3 * i
	return geo.Vec3{X: v.data[o], Y: v.data[o+1], Z: v.data[o+2]}
}

// Set writes block i.
func (v DenseVec3) Set(i int, p geo.Vec3) {
	o := 3 * i
	v.data[o], v.data[o+1], v.data[o+2] = p.X, p.Y, p.Z
}

// AddTo accumulates p into block i.
func (v DenseVec3) AddTo(i int, p geo.Vec3) {
	o := 3 * i
	v.data[o] += p.X
	v.data[o+1] += p.Y
	v.data[o+2] += p.Z
}

// Fill sets every block to the given value, delegating to la.VecFill.
func (v DenseVec3) Fill(x float64) { la.VecFill(v.data, x) }

// Clone returns an independent copy.
func (v DenseVec3) Clone() DenseVec3 {
	c := NewDenseVec3(v.N())
	la.VecCopy(c.data, 1, v.data)
	return c
}

// CopyFrom overwrites v's contents with src (same length required).
func (v DenseVec3) CopyFrom(src DenseVec3) { la.VecCopy(v.data, 1, src.data) }

// Add2 sets v = a1*x + a2*y, delegating to la.VecAdd2.
func (v DenseVec3) Add2(a1 float64, x DenseVec3, a2 float64, y DenseVec3) {
	la.VecAdd2(v.data, a1, x.data, a2, y.data)
}

// Norm returns the Euclidean norm of the flattened vector, via la.VecNorm.
func (v DenseVec3) Norm() float64 { return la.VecNorm(v.data) }

// Dot returns the Euclidean inner product of v and w. This one reduction is
// simple enough (and absent from the la vocabulary exercised elsewhere in
// the corpus) that hand-rolling it is clearer than reaching for a library
// call whose existence in gosl/la is not attested anywhere in the examples.
func Dot(v, w DenseVec3) float64 {
	var s float64
	for i := range v.data {
		s += v.data[i] * w.data[i]
	}
	return s
}
