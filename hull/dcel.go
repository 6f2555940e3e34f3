// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hull implements the incremental (QuickHull-style) convex hull
// builder: a half-edge DCEL with intrusive freelists (spec.md component D)
// and the expanding-polytope algorithm built on top of it (component E).
//
// Per spec.md's design note 9, the DCEL's native pointer-rich form is
// reimplemented here with dense integer (int) indices into fixed-capacity
// arrays: Twin/Next/Prev/Face fields are indices, not references, and
// freelist links reuse the same storage as the live fields they replace
// while a slot is free.
package hull

import (
	"github.com/cpmech/physcore/arena"
	"github.com/cpmech/physcore/geo"
)

const none = -1

// edgeState and faceState mirror spec.md's DCEL state enums.
type edgeState uint8

const (
	edgeActive edgeState = iota
	edgeDeleted
)

type faceState uint8

const (
	faceInvisible faceState = iota // ordinary live face, not currently classified
	faceVisible                    // classified as seeing the current eye vertex
	faceDeleted                    // freed, slot available for reuse
)

// Vertex is a DCEL vertex. While a vertex is on a face's conflict list,
// ConflictFace names that face and ConflictNext chains to the next vertex
// on the same list (none terminates the chain). A vertex already sewn into
// the hull, or already discarded as non-extreme, has ConflictFace == none.
type Vertex struct {
	Position     geo.Vec3
	ConflictFace int
	ConflictNext int
}

// HalfEdge is one directed half of an undirected edge. Tail is the vertex
// this half-edge starts at; Twin is the opposite half-edge of the same
// undirected edge, which by convention starts at this edge's head
// (Twin.Tail == Next.Tail). While an edge is free, its Twin field is
// repurposed as the next-free-slot link.
type HalfEdge struct {
	Tail, Twin, Prev, Next, Face int
	State                        edgeState
}

// Face is a planar polygon bounded by a cycle of half-edges. Edge names one
// representative boundary half-edge. While a face is free, its Edge field
// is repurposed as the next-free-slot link.
type Face struct {
	Edge         int
	Plane        geo.Plane
	Center       geo.Vec3
	State        faceState
	ConflictHead int
	conflictLen  int
}

// Mesh is the pool-backed DCEL: one fixed array per entity kind plus
// intrusive freelists for edges and faces. Vertices are not freelisted —
// spec.md's qhVertex models every input point for the lifetime of a single
// Construct call (whether it ends up a hull vertex, a pending conflict
// entry, or a discarded interior point), so the vertex array is indexed
// 1:1 with the input point slice and never recycled mid-call.
type Mesh struct {
	Verts []Vertex
	Edges []HalfEdge
	Faces []Face

	freeEdge int
	freeFace int
}

// newMesh allocates a mesh with vertex capacity == len(points) and edge/face
// capacity sized by the caller (Euler bounds, doubled, per spec.md 3). The
// three backing arrays are arena.Pool-allocated, not plain make: each pool
// is sized to exactly the capacity the mesh ever needs and handed out in
// one Alloc call, so the DCEL's own intrusive freelists (below) layer fixed
// O(1) slot reuse on top of an arena-backed region rather than the heap.
func newMesh(points []geo.Vec3, edgeCap, faceCap int) *Mesh {
	vertPool := arena.NewPool[Vertex](len(points))
	edgePool := arena.NewPool[HalfEdge](edgeCap)
	facePool := arena.NewPool[Face](faceCap)

	m := &Mesh{
		Verts: vertPool.Alloc(len(points)),
		Edges: edgePool.Alloc(edgeCap),
		Faces: facePool.Alloc(faceCap),
	}
	for i, p := range points {
		m.Verts[i] = Vertex{Position: p, ConflictFace: none, ConflictNext: none}
	}
	m.freeEdge = none
	for i := edgeCap - 1; i >= 0; i-- {
		m.Edges[i] = HalfEdge{Twin: m.freeEdge, State: edgeDeleted}
		m.freeEdge = i
	}
	m.freeFace = none
	for i := faceCap - 1; i >= 0; i-- {
		m.Faces[i] = Face{Edge: m.freeFace, State: faceDeleted, ConflictHead: none}
		m.freeFace = i
	}
	return m
}

// allocEdge pops a free edge slot off the freelist.
func (m *Mesh) allocEdge() (int, bool) {
	if m.freeEdge == none {
		return 0, false
	}
	i := m.freeEdge
	m.freeEdge = m.Edges[i].Twin
	m.Edges[i] = HalfEdge{Tail: none, Twin: none, Prev: none, Next: none, Face: none, State: edgeActive}
	return i, true
}

// freeEdgeSlot returns an edge slot to the freelist.
func (m *Mesh) freeEdgeSlot(i int) {
	m.Edges[i].State = edgeDeleted
	m.Edges[i].Twin = m.freeEdge
	m.freeEdge = i
}

// allocFace pops a free face slot off the freelist.
func (m *Mesh) allocFace() (int, bool) {
	if m.freeFace == none {
		return 0, false
	}
	i := m.freeFace
	m.freeFace = m.Faces[i].Edge
	m.Faces[i] = Face{Edge: none, State: faceInvisible, ConflictHead: none}
	return i, true
}

// freeFaceSlot returns a face slot to the freelist.
func (m *Mesh) freeFaceSlot(i int) {
	m.Faces[i].State = faceDeleted
	m.Faces[i].Edge = m.freeFace
	m.freeFace = i
}

// liveFaces returns the indices of every face not in the deleted state.
func (m *Mesh) liveFaces() []int {
	out := make([]int, 0, len(m.Faces))
	for i := range m.Faces {
		if m.Faces[i].State != faceDeleted {
			out = append(out, i)
		}
	}
	return out
}

// edgesOfFace returns the boundary half-edge indices of face f, walking the
// Next cycle starting at f's representative edge.
func (m *Mesh) edgesOfFace(f int) []int {
	start := m.Faces[f].Edge
	out := []int{start}
	for e := m.Edges[start].Next; e != start; e = m.Edges[e].Next {
		out = append(out, e)
		if len(out) > len(m.Edges) {
			// a malformed cycle would otherwise loop forever; the caller's
			// invariant checks are expected to catch this first.
			break
		}
	}
	return out
}

// pushConflict adds vertex v to face f's conflict list.
func (m *Mesh) pushConflict(f, v int) {
	m.Verts[v].ConflictFace = f
	m.Verts[v].ConflictNext = m.Faces[f].ConflictHead
	m.Faces[f].ConflictHead = v
	m.Faces[f].conflictLen++
}

// conflictVertices returns the vertex indices on face f's conflict list.
func (m *Mesh) conflictVertices(f int) []int {
	out := make([]int, 0, m.Faces[f].conflictLen)
	for v := m.Faces[f].ConflictHead; v != none; v = m.Verts[v].ConflictNext {
		out = append(out, v)
	}
	return out
}

// clearConflicts empties face f's conflict list without reassigning its
// members (used right before those members are reassigned elsewhere).
func (m *Mesh) clearConflicts(f int) {
	m.Faces[f].ConflictHead = none
	m.Faces[f].conflictLen = 0
}

// findHalfEdge returns the index of the half-edge with the given tail and
// head among candidates, or none if absent. Candidate sets are small
// (bounded by the horizon or the initial simplex) so a linear scan is the
// simplest faithful rendition of spec.md's FindHalfEdge lookup.
func (m *Mesh) findHalfEdge(candidates []int, tail, head int) int {
	for _, e := range candidates {
		if m.Edges[e].Tail == tail && m.Edges[m.Edges[e].Next].Tail == head {
			return e
		}
	}
	return none
}
