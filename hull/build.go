// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hull

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/physcore/arena"
	"github.com/cpmech/physcore/errs"
	"github.com/cpmech/physcore/geo"
)

// Options tunes the builder. ToleranceScale multiplies the AABB-derived
// epsilon (spec.md 4: eps = 3*(|max.x|+|max.y|+|max.z|)*machineEpsilon);
// the default of 3 reproduces the source formula exactly. DebugChecks
// enables the O(F) invariant walk (spec.md 8) after every merge pass — off
// by default since it is pure overhead once a caller trusts the builder.
type Options struct {
	ToleranceScale float64 `json:"tolerance_scale"`
	Verbose        bool    `json:"-"`
	DebugChecks    bool    `json:"debug_checks"`
	Log            func(format string, args ...any) `json:"-"`
}

// DefaultOptions returns the spec-mandated tolerance scale with tracing and
// debug checks off. Log defaults to a gosl/io.Pf-backed adapter, mirroring
// cloth.SolverParams.Verbose's io.Pf trace, so a caller only needs to flip
// Verbose on to get output; supplying a custom Log overrides it.
func DefaultOptions() Options {
	return Options{ToleranceScale: 3, Log: logViaIO}
}

// logViaIO is the default Options.Log: it routes every trace line through
// gosl/io.Pf, the same package cloth's Verbose tracing uses.
func logViaIO(format string, args ...any) {
	io.Pf(format+"\n", args...)
}

func (o Options) logf(format string, args ...any) {
	if o.Verbose && o.Log != nil {
		o.Log(format, args...)
	}
}

// Polytope is the read-only, post-construction view of a completed hull:
// the accessor surface an external renderer or collision collaborator
// needs (spec.md 6 and SPEC_FULL's supplemented traversal API).
type Polytope struct {
	mesh *Mesh
	eps  float64
}

// Epsilon returns the tolerance the construction used.
func (p *Polytope) Epsilon() float64 { return p.eps }

// FaceHandle names one live face.
type FaceHandle struct {
	mesh *Mesh
	idx  int
}

// Faces returns a handle for every live face, in pool order.
func (p *Polytope) Faces() []FaceHandle {
	live := p.mesh.liveFaces()
	out := make([]FaceHandle, len(live))
	for i, f := range live {
		out[i] = FaceHandle{mesh: p.mesh, idx: f}
	}
	return out
}

// Plane returns the face's supporting plane.
func (h FaceHandle) Plane() geo.Plane { return h.mesh.Faces[h.idx].Plane }

// Center returns the face's centroid.
func (h FaceHandle) Center() geo.Vec3 { return h.mesh.Faces[h.idx].Center }

// EdgeHandle names one half-edge.
type EdgeHandle struct {
	mesh *Mesh
	idx  int
}

// Edges returns the boundary half-edges of the face, in cycle order.
func (h FaceHandle) Edges() []EdgeHandle {
	es := h.mesh.edgesOfFace(h.idx)
	out := make([]EdgeHandle, len(es))
	for i, e := range es {
		out[i] = EdgeHandle{mesh: h.mesh, idx: e}
	}
	return out
}

// Tail returns the position of the half-edge's tail vertex.
func (e EdgeHandle) Tail() geo.Vec3 { return e.mesh.Verts[e.mesh.Edges[e.idx].Tail].Position }

// Twin returns the opposite half-edge of the same undirected edge.
func (e EdgeHandle) Twin() EdgeHandle { return EdgeHandle{mesh: e.mesh, idx: e.mesh.Edges[e.idx].Twin} }

// Next returns the next half-edge around the face boundary.
func (e EdgeHandle) Next() EdgeHandle { return EdgeHandle{mesh: e.mesh, idx: e.mesh.Edges[e.idx].Next} }

// Prev returns the previous half-edge around the face boundary.
func (e EdgeHandle) Prev() EdgeHandle { return EdgeHandle{mesh: e.mesh, idx: e.mesh.Edges[e.idx].Prev} }

// Vertices returns the positions of every vertex referenced by a live edge
// — the hull's final, extreme-point vertex set (spec.md 8, extremeness).
func (p *Polytope) Vertices() []geo.Vec3 {
	seen := make(map[int]bool)
	var out []geo.Vec3
	for _, f := range p.Faces() {
		for _, e := range f.Edges() {
			t := e.mesh.Edges[e.idx].Tail
			if !seen[t] {
				seen[t] = true
				out = append(out, e.mesh.Verts[t].Position)
			}
		}
	}
	return out
}

// Construct grows the convex hull of points, QuickHull-style, per spec.md
// 4.D-E. It requires at least 4 finite points that are not all coincident,
// colinear or coplanar; violating that is reported as ErrDegenerateInput.
// A pool exhaustion or a broken topology invariant during construction is
// reported as ErrInternalInconsistency. No partial polytope is returned in
// either case.
func Construct(points []geo.Vec3, opts Options) (*Polytope, error) {
	if opts.ToleranceScale == 0 {
		opts.ToleranceScale = DefaultOptions().ToleranceScale
	}
	if opts.Log == nil {
		opts.Log = logViaIO
	}
	if len(points) < 4 {
		return nil, fmt.Errorf("hull: need at least 4 points, got %d: %w", len(points), errs.ErrDegenerateInput)
	}
	for _, p := range points {
		if !geo.Finite(p) {
			return nil, fmt.Errorf("hull: non-finite input point: %w", errs.ErrDegenerateInput)
		}
	}

	eps := tolerance(points, opts.ToleranceScale)

	// Euler bounds for a convex polytope of V vertices, doubled to tolerate
	// transient structures during merges (spec.md 3).
	v := len(points)
	e := 3*v - 6
	he := 2 * e * 2
	f := (2*v - 4) * 2
	if he < 12 {
		he = 12
	}
	if f < 8 {
		f = 8
	}

	m := newMesh(points, he, f)
	// One addVertex phase needs at most: horizon (<=he), newFaces
	// (<=len(horizon)<=he), sideEdges (<=2*len(horizon)<=2*he); 4*he plus a
	// fixed margin covers all three with room to spare (spec.md 4.B/5's
	// scoped-allocator contract).
	scratch := arena.NewPool[int](4*he + 64)
	b := &builder{m: m, eps: eps, opts: opts, scratch: scratch}

	i1, i2, i3, i4, err := b.buildInitialHull()
	if err != nil {
		return nil, err
	}
	b.logf("initial simplex: %d %d %d %d, eps=%g", i1, i2, i3, i4, eps)

	for {
		eye, face := b.findEyeVertex()
		if eye == none {
			break
		}
		if err := b.addVertex(eye, face); err != nil {
			return nil, err
		}
		if opts.DebugChecks {
			if err := validateAll(m); err != nil {
				return nil, err
			}
		}
	}

	if opts.DebugChecks {
		if err := validateAll(m); err != nil {
			return nil, err
		}
	}

	return &Polytope{mesh: m, eps: eps}, nil
}

// tolerance implements spec.md's eps formula exactly, including the source
// quirk of using the AABB's max-corner magnitudes rather than max-min
// extent (preserved per SPEC_FULL's CLARIFIED OPEN QUESTIONS).
func tolerance(points []geo.Vec3, scale float64) float64 {
	max := geo.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, p := range points {
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return scale * (math.Abs(max.X) + math.Abs(max.Y) + math.Abs(max.Z)) * machineEpsilon
}

// machineEpsilon matches spec.md's "machine_epsilon": the smallest float64
// increment such that 1+eps != 1.
const machineEpsilon = 2.220446049250313e-16

type builder struct {
	m       *Mesh
	eps     float64
	opts    Options
	scratch *arena.Pool[int]
}

func (b *builder) logf(format string, args ...any) { b.opts.logf(format, args...) }

// buildInitialHull implements spec.md's "Initial tetrahedron" steps 1-5.
func (b *builder) buildInitialHull() (i1, i2, i3, i4 int, err error) {
	pts := func(i int) geo.Vec3 { return b.m.Verts[i].Position }
	n := len(b.m.Verts)

	// 1. axis extremes, choose the pair maximizing squared distance.
	var axisMin, axisMax [3]int
	minV, maxV := pts(0), pts(0)
	for i := 1; i < n; i++ {
		p := pts(i)
		if p.X < minV.X {
			minV.X = p.X
			axisMin[0] = i
		}
		if p.Y < minV.Y {
			minV.Y = p.Y
			axisMin[1] = i
		}
		if p.Z < minV.Z {
			minV.Z = p.Z
			axisMin[2] = i
		}
		if p.X > maxV.X {
			maxV.X = p.X
			axisMax[0] = i
		}
		if p.Y > maxV.Y {
			maxV.Y = p.Y
			axisMax[1] = i
		}
		if p.Z > maxV.Z {
			maxV.Z = p.Z
			axisMax[2] = i
		}
	}
	bestD := -1.0
	for axis := 0; axis < 3; axis++ {
		d := geo.DistSq(pts(axisMin[axis]), pts(axisMax[axis]))
		if d > bestD {
			bestD = d
			i1, i2 = axisMin[axis], axisMax[axis]
		}
	}
	if bestD <= b.eps*b.eps {
		return 0, 0, 0, 0, fmt.Errorf("hull: all points coincident: %w", errs.ErrDegenerateInput)
	}

	// 2. maximize triangle area with (i1,i2).
	A, B := pts(i1), pts(i2)
	bestArea := -1.0
	i3 = none
	for i := 0; i < n; i++ {
		if i == i1 || i == i2 {
			continue
		}
		c := geo.Cross(geo.Sub(B, A), geo.Sub(pts(i), A))
		area := geo.LenSq(c)
		if area > bestArea {
			bestArea = area
			i3 = i
		}
	}
	if i3 == none || bestArea <= (2*b.eps)*(2*b.eps) {
		return 0, 0, 0, 0, fmt.Errorf("hull: points are colinear: %w", errs.ErrDegenerateInput)
	}

	// 3. plane through (i1,i2,i3), maximize |signed distance|.
	plane := geo.PlaneFromPoints(A, B, pts(i3))
	bestDist := -1.0
	i4 = none
	for i := 0; i < n; i++ {
		if i == i1 || i == i2 || i == i3 {
			continue
		}
		d := math.Abs(plane.SignedDistance(pts(i)))
		if d > bestDist {
			bestDist = d
			i4 = i
		}
	}
	if i4 == none || bestDist <= b.eps {
		return 0, 0, 0, 0, fmt.Errorf("hull: points are coplanar: %w", errs.ErrDegenerateInput)
	}

	// 4. emit four faces, outward-oriented.
	signedD := plane.SignedDistance(pts(i4))
	var faces [4]int
	if signedD < 0 {
		faces[0], err = b.addFace(i1, i2, i3)
	} else {
		faces[0], err = b.addFace(i1, i3, i2)
	}
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if signedD < 0 {
		faces[1], err = b.addFace(i4, i2, i1)
		if err == nil {
			faces[2], err = b.addFace(i4, i3, i2)
		}
		if err == nil {
			faces[3], err = b.addFace(i4, i1, i3)
		}
	} else {
		faces[1], err = b.addFace(i4, i1, i2)
		if err == nil {
			faces[2], err = b.addFace(i4, i2, i3)
		}
		if err == nil {
			faces[3], err = b.addFace(i4, i3, i1)
		}
	}
	if err != nil {
		return 0, 0, 0, 0, err
	}

	// 5. assign remaining points to their best-fit face, else discard.
	for i := 0; i < n; i++ {
		if i == i1 || i == i2 || i == i3 || i == i4 {
			continue
		}
		best := b.eps
		bestFace := none
		for _, f := range faces {
			d := b.m.Faces[f].Plane.SignedDistance(pts(i))
			if d > best {
				best = d
				bestFace = f
			}
		}
		if bestFace != none {
			b.m.pushConflict(bestFace, i)
		}
	}

	return i1, i2, i3, i4, nil
}

// addFace allocates a triangular face (v1,v2,v3) and pairs any of its
// boundary edges with pre-existing twins found via a global edge scan,
// mirroring the source's AddFace used only for the initial simplex (where
// every face's neighbors are the other three initial faces).
func (b *builder) addFace(v1, v2, v3 int) (int, error) {
	f, ok := b.m.allocFace()
	if !ok {
		return 0, fmt.Errorf("hull: face pool exhausted: %w", errs.ErrInternalInconsistency)
	}
	verts := [3]int{v1, v2, v3}
	var edges [3]int
	for i := 0; i < 3; i++ {
		e, ok := b.m.allocEdge()
		if !ok {
			return 0, fmt.Errorf("hull: edge pool exhausted: %w", errs.ErrInternalInconsistency)
		}
		b.m.Edges[e].Face = f
		edges[i] = e
	}
	for i := 0; i < 3; i++ {
		e := edges[i]
		b.m.Edges[e].Tail = verts[i]
		b.m.Edges[e].Prev = edges[(i+2)%3]
		b.m.Edges[e].Next = edges[(i+1)%3]
		if twin := b.m.findHalfEdge(b.allActiveEdges(), verts[(i+1)%3], verts[i]); twin != none && twin != e {
			b.m.Edges[e].Twin = twin
			b.m.Edges[twin].Twin = e
		}
	}
	b.m.Faces[f].Edge = edges[0]
	b.m.Faces[f].Center = geo.Scale(geo.Add(geo.Add(b.m.Verts[v1].Position, b.m.Verts[v2].Position), b.m.Verts[v3].Position), 1.0/3.0)
	b.m.Faces[f].Plane = geo.PlaneFromPoints(b.m.Verts[v1].Position, b.m.Verts[v2].Position, b.m.Verts[v3].Position)
	b.m.Faces[f].State = faceInvisible
	return f, nil
}

// allActiveEdges lists every currently-allocated edge, the candidate set
// FindHalfEdge searches (the source scans the whole live mesh too).
func (b *builder) allActiveEdges() []int {
	out := make([]int, 0, len(b.m.Edges))
	for i := range b.m.Edges {
		if b.m.Edges[i].State == edgeActive {
			out = append(out, i)
		}
	}
	return out
}

// findEyeVertex scans every live face's conflict list for the vertex of
// maximum signed distance to its face's plane (spec.md FindEye).
func (b *builder) findEyeVertex() (vertex, face int) {
	best := b.eps
	vertex, face = none, none
	for _, f := range b.m.liveFaces() {
		for _, v := range b.m.conflictVertices(f) {
			d := b.m.Faces[f].Plane.SignedDistance(b.m.Verts[v].Position)
			if d > best {
				best = d
				vertex, face = v, f
			}
		}
	}
	return vertex, face
}

// addVertex composes FindHorizon, AddNewFaces and MergeFaces for one eye
// vertex (spec.md AddVertex / the Main loop body).
func (b *builder) addVertex(eye, eyeFace int) error {
	// horizon/newFaces/sideEdges below are all scratch.Alloc'd: one mark per
	// eye-vertex insertion, reclaimed in a single rewind on return.
	mark := b.scratch.Mark()
	defer b.scratch.ResetTo(mark)

	horizon, err := b.findHorizon(eye)
	if err != nil {
		return err
	}
	newFaces, err := b.addNewFaces(eye, horizon)
	if err != nil {
		return err
	}
	for _, f := range newFaces {
		if b.m.Faces[f].State == faceDeleted {
			continue
		}
		for {
			merged, err := b.mergeFace(f)
			if err != nil {
				return err
			}
			if !merged {
				break
			}
		}
	}
	return nil
}

// findHorizon classifies every live face visible/invisible from eye, then
// collects and orders the horizon loop (spec.md FindHorizon).
func (b *builder) findHorizon(eye int) ([]int, error) {
	eyePos := b.m.Verts[eye].Position
	live := b.m.liveFaces()
	for _, f := range live {
		if b.m.Faces[f].Plane.SignedDistance(eyePos) > b.eps {
			b.m.Faces[f].State = faceVisible
		} else {
			b.m.Faces[f].State = faceInvisible
		}
	}

	buf := b.scratch.Alloc(len(b.m.Edges))
	n := 0
	for _, f := range live {
		if b.m.Faces[f].State != faceVisible {
			continue
		}
		for _, e := range b.m.edgesOfFace(f) {
			twin := b.m.Edges[e].Twin
			if b.m.Faces[b.m.Edges[twin].Face].State == faceInvisible {
				buf[n] = e
				n++
			}
		}
	}
	horizon := buf[:n]
	if len(horizon) == 0 {
		return nil, fmt.Errorf("hull: empty horizon for eye vertex: %w", errs.ErrInternalInconsistency)
	}

	// Reorder into a CCW loop: horizon[i+1] must share horizon[i].twin.tail.
	for i := 0; i < len(horizon)-1; i++ {
		want := b.m.Edges[b.m.Edges[horizon[i]].Twin].Tail
		found := false
		for j := i + 1; j < len(horizon); j++ {
			if b.m.Edges[horizon[j]].Tail == want {
				horizon[i+1], horizon[j] = horizon[j], horizon[i+1]
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("hull: horizon is not a single closed loop (disconnected visible region): %w", errs.ErrInternalInconsistency)
		}
	}
	// Terminal check: the loop must close back on itself cyclically.
	last := b.m.Edges[b.m.Edges[horizon[len(horizon)-1]].Twin].Tail
	if last != b.m.Edges[horizon[0]].Tail {
		return nil, fmt.Errorf("hull: horizon loop does not close: %w", errs.ErrInternalInconsistency)
	}
	return horizon, nil
}

// addNewFaces implements spec.md AddNewFaces: emits one new triangular face
// per horizon edge, reassigns orphaned conflict vertices, frees the old
// visible faces, and sews the new faces' edges together.
func (b *builder) addNewFaces(eye int, horizon []int) ([]int, error) {
	newFacesBuf := b.scratch.Alloc(len(horizon))
	sideEdgesBuf := b.scratch.Alloc(2 * len(horizon))
	nf, ns := 0, 0
	for _, e := range horizon {
		v2 := b.m.Edges[e].Tail
		twin := b.m.Edges[e].Twin
		v3 := b.m.Edges[twin].Tail
		f, edges, err := b.addNewFaceUnsewn(eye, v2, v3)
		if err != nil {
			return nil, err
		}
		newFacesBuf[nf] = f
		nf++

		// The base edge (v2->v3) replaces the doomed horizon edge e exactly:
		// its twin is e's own twin, which belongs to the surviving invisible
		// face and is otherwise untouched by this pass.
		base := edges[1]
		b.m.Edges[base].Twin = twin
		b.m.Edges[twin].Twin = base

		sideEdgesBuf[ns] = edges[0]
		sideEdgesBuf[ns+1] = edges[2]
		ns += 2
	}
	newFaces := newFacesBuf[:nf]
	sideEdges := sideEdgesBuf[:ns]

	for _, f := range b.m.liveFaces() {
		if b.m.Faces[f].State != faceVisible {
			continue
		}
		for _, v := range b.m.conflictVertices(f) {
			p := b.m.Verts[v].Position
			best := b.eps
			bestFace := none
			for _, nf := range newFaces {
				d := b.m.Faces[nf].Plane.SignedDistance(p)
				if d > best {
					best = d
					bestFace = nf
				}
			}
			b.m.Verts[v].ConflictFace = none
			b.m.Verts[v].ConflictNext = none
			if bestFace != none {
				b.m.pushConflict(bestFace, v)
			}
		}
		b.m.clearConflicts(f)
		for _, e := range b.m.edgesOfFace(f) {
			b.m.freeEdgeSlot(e)
		}
		b.m.freeFaceSlot(f)
	}

	// The side edges (eye->v2 of one fan triangle, v3->eye of its
	// neighbor) pair off with each other around the eye vertex; the base
	// edges were already wired above.
	for _, e := range sideEdges {
		if b.m.Edges[e].Twin != none {
			continue
		}
		tail := b.m.Edges[e].Tail
		head := b.m.Edges[b.m.Edges[e].Next].Tail
		if twin := b.m.findHalfEdge(sideEdges, head, tail); twin != none && twin != e {
			b.m.Edges[e].Twin = twin
			b.m.Edges[twin].Twin = e
		}
	}

	return newFaces, nil
}

// addNewFaceUnsewn allocates face (v1,v2,v3) with fresh, untwinned boundary
// edges (spec.md AddNewFace: "boundary edges initially unpaired") and
// returns them in cycle order (edges[0]=v1->v2, edges[1]=v2->v3,
// edges[2]=v3->v1) so the caller can wire the known pairings itself.
func (b *builder) addNewFaceUnsewn(v1, v2, v3 int) (int, [3]int, error) {
	f, ok := b.m.allocFace()
	if !ok {
		return 0, [3]int{}, fmt.Errorf("hull: face pool exhausted: %w", errs.ErrInternalInconsistency)
	}
	verts := [3]int{v1, v2, v3}
	var edges [3]int
	for i := 0; i < 3; i++ {
		e, ok := b.m.allocEdge()
		if !ok {
			return 0, [3]int{}, fmt.Errorf("hull: edge pool exhausted: %w", errs.ErrInternalInconsistency)
		}
		b.m.Edges[e].Face = f
		b.m.Edges[e].Tail = verts[i]
		edges[i] = e
	}
	for i := 0; i < 3; i++ {
		b.m.Edges[edges[i]].Prev = edges[(i+2)%3]
		b.m.Edges[edges[i]].Next = edges[(i+1)%3]
	}
	b.m.Faces[f].Edge = edges[0]
	b.m.Faces[f].Center = geo.Scale(geo.Add(geo.Add(b.m.Verts[v1].Position, b.m.Verts[v2].Position), b.m.Verts[v3].Position), 1.0/3.0)
	b.m.Faces[f].Plane = geo.PlaneFromPoints(b.m.Verts[v1].Position, b.m.Verts[v2].Position, b.m.Verts[v3].Position)
	b.m.Faces[f].State = faceInvisible
	return f, edges, nil
}

// mergeFace implements spec.md MergeFace(F): absorbs at most one concave or
// coplanar neighbor into f and reports whether it did.
func (b *builder) mergeFace(f int) (bool, error) {
	for _, e := range b.m.edgesOfFace(f) {
		g := b.m.Edges[b.m.Edges[e].Twin].Face
		if g == f {
			continue
		}
		d1 := b.m.Faces[f].Plane.SignedDistance(b.m.Faces[g].Center)
		d2 := b.m.Faces[g].Plane.SignedDistance(b.m.Faces[f].Center)
		if d1 < -b.eps && d2 < -b.eps {
			continue // convex ridge, keep
		}

		// concave or coplanar: absorb g into f.
		for _, v := range b.m.conflictVertices(g) {
			b.m.Verts[v].ConflictFace = none
			b.m.Verts[v].ConflictNext = none
			b.m.pushConflict(f, v)
		}
		b.m.clearConflicts(g)

		twin := b.m.Edges[e].Twin
		b.m.Faces[f].Edge = b.m.Edges[e].Prev
		for _, ge := range b.m.edgesOfFace(g) {
			b.m.Edges[ge].Face = f
		}

		ePrev, eNext := b.m.Edges[e].Prev, b.m.Edges[e].Next
		tPrev, tNext := b.m.Edges[twin].Prev, b.m.Edges[twin].Next
		b.m.Edges[ePrev].Next = tNext
		b.m.Edges[eNext].Prev = tPrev
		b.m.Edges[tPrev].Next = eNext
		b.m.Edges[tNext].Prev = ePrev

		b.m.freeEdgeSlot(e)
		b.m.freeEdgeSlot(twin)
		b.m.freeFaceSlot(g)

		if err := b.recomputeFace(f); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// recomputeFace recenters and replans a face after a merge, using the
// first three boundary vertices for the plane (spec.md: "plane through the
// first three and tie-break to preserve outward orientation") and the
// centroid of every boundary tail for the center.
func (b *builder) recomputeFace(f int) error {
	edges := b.m.edgesOfFace(f)
	if len(edges) < 3 {
		return fmt.Errorf("hull: merged face has fewer than 3 edges: %w", errs.ErrInternalInconsistency)
	}
	pts := make([]geo.Vec3, len(edges))
	for i, e := range edges {
		pts[i] = b.m.Verts[b.m.Edges[e].Tail].Position
	}
	b.m.Faces[f].Center = geo.Centroid(pts)

	oldNormal := b.m.Faces[f].Plane.Normal
	newPlane := geo.PlaneFromPoints(pts[0], pts[1], pts[2])
	if geo.Dot(newPlane.Normal, oldNormal) < 0 {
		newPlane = newPlane.Flip()
	}
	b.m.Faces[f].Plane = newPlane
	return nil
}
