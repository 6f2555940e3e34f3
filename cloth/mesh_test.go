// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cloth

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/physcore/geo"
)

// TestDeriveSpringsIsDeterministic checks spec.md 6's requirement that
// spring enumeration order is deterministic across calls on the same mesh.
func TestDeriveSpringsIsDeterministic(tst *testing.T) {
	chk.PrintTitle("DeriveSpringsIsDeterministic")

	mesh := NewGridMesh(4, 4, 1, geo.Vec3{})
	a := DeriveSprings(mesh, 100, 1)
	b := DeriveSprings(mesh, 100, 1)

	chk.IntAssert(len(a), len(b))
	for i := range a {
		if a[i] != b[i] {
			tst.Fatalf("spring %d differs between calls: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// TestDeriveSpringsClassifiesGridTypes checks that a grid mesh produces all
// three spring kinds spec.md 3 names: stretch (mesh edges), shear (quad
// diagonals), and bend (opposite vertices of triangles in neighboring quads).
func TestDeriveSpringsClassifiesGridTypes(tst *testing.T) {
	chk.PrintTitle("DeriveSpringsClassifiesGridTypes")

	mesh := NewGridMesh(3, 3, 1, geo.Vec3{})
	springs := DeriveSprings(mesh, 100, 1)

	var stretch, shear, bend int
	for _, s := range springs {
		switch s.Type {
		case TypeStretch:
			stretch++
		case TypeShear:
			shear++
		case TypeBend:
			bend++
		}
	}
	if stretch == 0 {
		tst.Fatal("expected stretch springs on mesh edges")
	}
	if shear == 0 {
		tst.Fatal("expected shear springs on quad diagonals")
	}
	if bend == 0 {
		tst.Fatal("expected bend springs across neighboring quads")
	}
}

// TestDeriveSpringsRejectsDegenerateIndices checks spec.md 3's invariant
// (i != j, indices in range, L0 > 0) is caught by NewCloth's validation
// when a caller hands in a malformed mesh.
func TestDeriveSpringsRejectsDegenerateIndices(tst *testing.T) {
	chk.PrintTitle("DeriveSpringsRejectsDegenerateIndices")

	mesh := MeshDef{
		Positions: []geo.Vec3{geo.V3(0, 0, 0), geo.V3(1, 0, 0)},
		Triangles: [][3]int{{0, 0, 1}}, // degenerate triangle, repeats vertex 0
	}
	def := DefaultDef()
	def.Mesh = mesh
	def.Density = 1
	def.Ks, def.Kd = 10, 1
	if _, err := NewCloth(def); err == nil {
		tst.Fatal("expected NewCloth to reject a degenerate triangle's self-spring")
	}
}
