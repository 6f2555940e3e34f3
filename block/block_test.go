// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/physcore/errs"
	"github.com/cpmech/physcore/geo"
)

func buildSample(tst *testing.T) *SparseMat33 {
	// 3x3 block matrix, symmetric, with a zero (2,0) block (sparsity gap).
	tr := NewTriplet33(3, 3, 8)
	must := func(err error) {
		if err != nil {
			tst.Fatal(err)
		}
	}
	must(tr.Put(0, 0, geo.Diag33(2, 2, 2)))
	must(tr.Put(0, 1, geo.Diag33(1, 1, 1)))
	must(tr.Put(1, 0, geo.Diag33(1, 1, 1)))
	must(tr.Put(1, 1, geo.Diag33(3, 3, 3)))
	must(tr.Put(1, 2, geo.Diag33(1, 1, 1)))
	must(tr.Put(2, 1, geo.Diag33(1, 1, 1)))
	must(tr.Put(2, 2, geo.Diag33(2, 2, 2)))
	return tr.ToCSR()
}

func TestAssembleRowAndMatrix(tst *testing.T) {
	chk.PrintTitle("AssembleRowAndMatrix")

	a := buildSample(tst)
	dense := make([]geo.Mat33, a.M*a.N)
	if err := a.AssembleMatrix(dense); err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "(2,0)==0", 0, dense[2*a.N+0].M00, 0)
	chk.Scalar(tst, "(0,1)==1", 0, dense[0*a.N+1].M00, 1)
	chk.Scalar(tst, "(1,1)==3", 0, dense[1*a.N+1].M00, 3)

	if _, err := (&SparseMat33{M: a.M, N: a.N, RowPtrs: a.RowPtrs}).AssembleRow(a.M, make([]geo.Mat33, a.N)); err == nil {
		tst.Fatal("expected AssembleRow(row==M) to fail (tightened precondition)")
	} else if !errors.Is(err, errs.ErrInternalInconsistency) {
		tst.Fatal("wrong error kind")
	}
}

func TestAssembleDiagonal(tst *testing.T) {
	chk.PrintTitle("AssembleDiagonal")

	a := buildSample(tst)
	d, err := a.AssembleDiagonal()
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "d0", 0, d.Blocks[0].M00, 2)
	chk.Scalar(tst, "d1", 0, d.Blocks[1].M00, 3)
	chk.Scalar(tst, "d2", 0, d.Blocks[2].M00, 2)
}

func TestMultiplyMatchesDenseReference(tst *testing.T) {
	chk.PrintTitle("MultiplyMatchesDenseReference")

	a := buildSample(tst)
	v := NewDenseVec3(3)
	v.Set(0, geo.V3(1, 0, 0))
	v.Set(1, geo.V3(0, 1, 0))
	v.Set(2, geo.V3(0, 0, 1))

	out, err := a.Multiply(v)
	if err != nil {
		tst.Fatal(err)
	}

	dense := make([]geo.Mat33, a.M*a.N)
	if err := a.AssembleMatrix(dense); err != nil {
		tst.Fatal(err)
	}
	for row := 0; row < a.M; row++ {
		var want geo.Vec3
		for col := 0; col < a.N; col++ {
			want = geo.Add(want, geo.MulVec(dense[row*a.N+col], v.Get(col)))
		}
		got := out.Get(row)
		chk.Scalar(tst, "row.x", 1e-13, got.X, want.X)
		chk.Scalar(tst, "row.y", 1e-13, got.Y, want.Y)
		chk.Scalar(tst, "row.z", 1e-13, got.Z, want.Z)
	}
}

func TestAddCanonicalMerge(tst *testing.T) {
	chk.PrintTitle("AddCanonicalMerge")

	a := buildSample(tst)

	trB := NewTriplet33(3, 3, 4)
	if err := trB.Put(0, 0, geo.Diag33(10, 10, 10)); err != nil {
		tst.Fatal(err)
	}
	if err := trB.Put(0, 2, geo.Diag33(5, 5, 5)); err != nil {
		tst.Fatal(err)
	}
	b := trB.ToCSR()

	sum, err := Add(a, b)
	if err != nil {
		tst.Fatal(err)
	}

	dense := make([]geo.Mat33, sum.M*sum.N)
	if err := sum.AssembleMatrix(dense); err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "(0,0) summed", 0, dense[0].M00, 12) // 2 + 10
	chk.Scalar(tst, "(0,1) untouched", 0, dense[1].M00, 1)
	chk.Scalar(tst, "(0,2) new", 0, dense[2].M00, 5)

	// columns must remain sorted ascending within every row
	for row := 0; row < sum.M; row++ {
		prev := -1
		for k := sum.RowPtrs[row]; k < sum.RowPtrs[row+1]; k++ {
			if sum.Cols[k] <= prev {
				tst.Fatalf("row %d: columns not strictly ascending", row)
			}
			prev = sum.Cols[k]
		}
	}
}

func TestDenseVec3Ops(tst *testing.T) {
	chk.PrintTitle("DenseVec3Ops")

	a := NewDenseVec3(2)
	a.Set(0, geo.V3(1, 2, 3))
	a.Set(1, geo.V3(4, 5, 6))

	b := NewDenseVec3(2)
	b.Set(0, geo.V3(1, 1, 1))
	b.Set(1, geo.V3(1, 1, 1))

	out := NewDenseVec3(2)
	out.Add2(1, a, -1, b)
	chk.Vector(tst, "out0", 1e-15, []float64{out.Get(0).X, out.Get(0).Y, out.Get(0).Z}, []float64{0, 1, 2})

	chk.Scalar(tst, "dot", 1e-12, Dot(a, a), 1+4+9+16+25+36)
}
