// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestVecBasics(tst *testing.T) {
	chk.PrintTitle("VecBasics")

	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	chk.Scalar(tst, "dot", 1e-15, Dot(a, b), 1*4+2*-5+3*6)

	c := Cross(a, b)
	chk.Vector(tst, "cross", 1e-15, []float64{c.X, c.Y, c.Z}, []float64{
		2*6 - 3*-5,
		3*4 - 1*6,
		1*-5 - 2*4,
	})

	u := Unit(V3(3, 0, 4))
	chk.Scalar(tst, "unit.len", 1e-15, Len(u), 1)
}

func TestPlane(tst *testing.T) {
	chk.PrintTitle("Plane")

	p := PlaneFromPoints(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0))
	chk.Scalar(tst, "dist(0,0,1)", 1e-15, p.SignedDistance(V3(0, 0, 1)), 1)
	chk.Scalar(tst, "dist(0,0,0)", 1e-15, p.SignedDistance(V3(0, 0, 0)), 0)
}

func TestMatInverse(tst *testing.T) {
	chk.PrintTitle("MatInverse")

	m := Mat33{2, 0, 0, 0, 3, 0, 0, 0, 4}
	inv, ok := Inverse(m, 1e-12)
	if !ok {
		tst.Fatal("expected invertible matrix")
	}
	id := MulM(m, inv)
	chk.Scalar(tst, "id.00", 1e-13, id.M00, 1)
	chk.Scalar(tst, "id.11", 1e-13, id.M11, 1)
	chk.Scalar(tst, "id.22", 1e-13, id.M22, 1)

	_, ok = Inverse(Mat33{}, 1e-12)
	if ok {
		tst.Fatal("expected zero matrix to be singular")
	}
}

func TestQuatRotate(tst *testing.T) {
	chk.PrintTitle("QuatRotate")

	q := FromAxisAngle(V3(0, 0, 1), math.Pi/2)
	r := Rotate(q, V3(1, 0, 0))
	chk.Vector(tst, "rotated", 1e-10, []float64{r.X, r.Y, r.Z}, []float64{0, 1, 0})
}

func TestMat44FromTransform(tst *testing.T) {
	chk.PrintTitle("Mat44FromTransform")

	t := Transform{Rotation: FromAxisAngle(V3(0, 0, 1), math.Pi/2), Translation: V3(1, 2, 3)}
	m := FromTransform(t)

	want := t.Apply(V3(5, 0, 0))
	got := m.MulPoint(V3(5, 0, 0))
	chk.Vector(tst, "Mat44 matches Transform.Apply", 1e-10, []float64{got.X, got.Y, got.Z}, []float64{want.X, want.Y, want.Z})

	id := MulM4(Identity44(), m)
	p := id.MulPoint(V3(5, 0, 0))
	chk.Vector(tst, "identity*m == m", 1e-10, []float64{p.X, p.Y, p.Z}, []float64{want.X, want.Y, want.Z})
}

func TestTransform(tst *testing.T) {
	chk.PrintTitle("Transform")

	t := Transform{Rotation: FromAxisAngle(V3(0, 0, 1), math.Pi/2), Translation: V3(1, 0, 0)}
	p := t.Apply(V3(1, 0, 0))
	chk.Vector(tst, "p", 1e-10, []float64{p.X, p.Y, p.Z}, []float64{1, 1, 0})

	inv := t.Inverse()
	back := inv.Apply(p)
	chk.Vector(tst, "back", 1e-10, []float64{back.X, back.Y, back.Z}, []float64{1, 0, 0})
}
