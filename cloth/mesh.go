// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cloth implements the implicit spring-mass cloth solver: force and
// Jacobian assembly (spec.md component F), a modified filtered preconditioned
// conjugate gradient solver (component G), and the stepper that composes
// them with contact maintenance (component H).
package cloth

import (
	"sort"

	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/physcore/geo"
)

// MeshDef supplies the vertex positions and triangle indices a cloth is
// built from (spec.md 6: "mesh supplies vertex positions and triangle
// indices"). Rows/Cols are set only by NewGridMesh; a mesh assembled by hand
// from an arbitrary triangle soup leaves them zero, and DeriveSprings falls
// back to tagging every cross-triangle spring as bend since no quad
// structure is known.
type MeshDef struct {
	Positions  []geo.Vec3
	Triangles  [][3]int
	Rows, Cols int
}

// NewGridMesh builds a rows x cols grid of masses spaced apart by spacing,
// lying in the XZ plane at the given origin's height, triangulated by
// splitting every quad cell along its (r,c)-(r+1,c+1) diagonal — the layout
// bounce's testbed b3GridMesh<W,H> produces and pinned_cloth.h consumes.
func NewGridMesh(rows, cols int, spacing float64, origin geo.Vec3) MeshDef {
	pos := make([]geo.Vec3, rows*cols)
	idx := func(r, c int) int { return r*cols + c }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pos[idx(r, c)] = geo.Add(origin, geo.V3(float64(c)*spacing, 0, float64(r)*spacing))
		}
	}
	var tris [][3]int
	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			a, b, c2, d := idx(r, c), idx(r, c+1), idx(r+1, c), idx(r+1, c+1)
			tris = append(tris, [3]int{a, b, d})
			tris = append(tris, [3]int{a, d, c2})
		}
	}
	return MeshDef{Positions: pos, Triangles: tris, Rows: rows, Cols: cols}
}

// edgeKey packs an unordered pair of vertex indices into a single sortable
// int, the way the teacher packs (tag,vert) pairs before deduplicating them
// with utl.IntUnique.
func edgeKey(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*edgeKeyStride + j
}

func edgeKeyUnpack(k int) (i, j int) { return k / edgeKeyStride, k % edgeKeyStride }

const edgeKeyStride = 1 << 20

// DeriveSprings enumerates stretch springs from mesh edges and cross springs
// (bend/shear) from triangle pairs sharing an edge, per spec.md 6's
// deterministic-enumeration requirement: triangles are walked in index
// order and ties are broken by first occurrence, so two calls on the same
// mesh always produce the same spring list in the same order.
func DeriveSprings(mesh MeshDef, ks, kd float64) []Spring {
	type edgeOwner struct {
		apex       int // the first-seen triangle's vertex opposite this edge
		trianglesN int
	}
	owners := make(map[int]*edgeOwner)
	var edgeKeys []int

	for _, t := range mesh.Triangles {
		for _, e := range [3][3]int{{t[0], t[1], t[2]}, {t[1], t[2], t[0]}, {t[2], t[0], t[1]}} {
			a, b, apex := e[0], e[1], e[2]
			k := edgeKey(a, b)
			if o, ok := owners[k]; ok {
				o.trianglesN++
				continue
			}
			owners[k] = &edgeOwner{apex: apex, trianglesN: 1}
			edgeKeys = append(edgeKeys, k)
		}
	}
	// utl.IntUnique also sorts, giving an enumeration order independent of
	// triangle-list or map-iteration order — required for the deterministic
	// spring lists spec.md 6 demands.
	sortedKeys := utl.IntUnique(utl.IntsClone(edgeKeys))
	sort.Ints(sortedKeys)

	var springs []Spring
	pos := mesh.Positions
	addSpring := func(i, j int, typ SpringType) {
		l0 := geo.Dist(pos[i], pos[j])
		springs = append(springs, Spring{I: i, J: j, Type: typ, RestLength: l0, Ks: ks, Kd: kd})
	}

	for _, k := range sortedKeys {
		i, j := edgeKeyUnpack(k)
		addSpring(i, j, TypeStretch)
	}

	// Second pass, in triangle order again (not map order), to emit the
	// cross springs deterministically: revisit each edge's second owner.
	seen := make(map[int]bool)
	for _, t := range mesh.Triangles {
		edges := [3][3]int{{t[0], t[1], t[2]}, {t[1], t[2], t[0]}, {t[2], t[0], t[1]}}
		for _, e := range edges {
			a, b, apex := e[0], e[1], e[2]
			k := edgeKey(a, b)
			if seen[k] {
				continue
			}
			o := owners[k]
			if o.trianglesN != 2 {
				continue
			}
			if o.apex == apex {
				continue // this is the first-seen triangle, wait for the second
			}
			seen[k] = true
			typ := TypeBend
			if mesh.Rows > 0 && mesh.Cols > 0 && isDiagonalPair(mesh, o.apex, apex) {
				typ = TypeShear
			}
			addSpring(o.apex, apex, typ)
		}
	}

	return springs
}

// isDiagonalPair reports whether two grid vertex indices differ by one row
// and one column — the signature of a quad's diagonal, as opposed to a
// bend pair across neighboring quads, which differs by two in one
// direction.
func isDiagonalPair(mesh MeshDef, a, b int) bool {
	ra, ca := a/mesh.Cols, a%mesh.Cols
	rb, cb := b/mesh.Cols, b%mesh.Cols
	dr, dc := ra-rb, ca-cb
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr == 1 && dc == 1
}
