// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hull

import (
	"fmt"

	"github.com/cpmech/physcore/errs"
)

// validateAll walks every live face and checks the DCEL invariants spec.md
// 8 lists as TestableProperties: twin symmetry, cycle closure, the
// twin-tail/next-tail identity, the plane passing through its own boundary
// vertices, and conflict-list membership being exclusive to one face at a
// time. It is the Options.DebugChecks gate's payload — O(edges), meant for
// test and development builds, not the hot path.
func validateAll(m *Mesh) error {
	for _, f := range m.liveFaces() {
		edges := m.edgesOfFace(f)
		if len(edges) < 3 {
			return fmt.Errorf("hull: face %d has only %d boundary edges: %w", f, len(edges), errs.ErrInternalInconsistency)
		}
		for _, e := range edges {
			he := m.Edges[e]
			if he.State != edgeActive {
				return fmt.Errorf("hull: face %d references non-active edge %d: %w", f, e, errs.ErrInternalInconsistency)
			}
			if he.Face != f {
				return fmt.Errorf("hull: edge %d.Face=%d, expected %d: %w", e, he.Face, f, errs.ErrInternalInconsistency)
			}
			if m.Edges[he.Next].Prev != e {
				return fmt.Errorf("hull: edge %d.Next.Prev != %d: %w", e, e, errs.ErrInternalInconsistency)
			}
			if m.Edges[he.Prev].Next != e {
				return fmt.Errorf("hull: edge %d.Prev.Next != %d: %w", e, e, errs.ErrInternalInconsistency)
			}
			twin := m.Edges[he.Twin]
			if twin.Twin != e {
				return fmt.Errorf("hull: edge %d.Twin.Twin != %d (twin symmetry violated): %w", e, e, errs.ErrInternalInconsistency)
			}
			// twin-tail/next-tail identity: an edge's twin starts where the
			// edge itself ends.
			head := m.Edges[he.Next].Tail
			if twin.Tail != head {
				return fmt.Errorf("hull: edge %d.Twin.Tail=%d, expected head %d: %w", e, twin.Tail, head, errs.ErrInternalInconsistency)
			}
			if m.Faces[twin.Face].State == faceDeleted {
				return fmt.Errorf("hull: edge %d.Twin belongs to deleted face %d: %w", e, twin.Face, errs.ErrInternalInconsistency)
			}
		}

		// plane-through-vertices: every boundary vertex must lie on the
		// face's own plane to within a fixed absolute bound of 1e-6.
		plane := m.Faces[f].Plane
		for _, e := range edges {
			p := m.Verts[m.Edges[e].Tail].Position
			if d := plane.SignedDistance(p); d > 1e-6 || d < -1e-6 {
				return fmt.Errorf("hull: face %d vertex %d lies %g off its own plane: %w", f, m.Edges[e].Tail, d, errs.ErrInternalInconsistency)
			}
		}
	}

	// conflict-list membership exclusivity: a vertex names at most one face
	// as its conflict owner, and that face's list must actually contain it.
	owner := make(map[int]int, len(m.Verts))
	for _, f := range m.liveFaces() {
		for _, v := range m.conflictVertices(f) {
			if prev, ok := owner[v]; ok {
				return fmt.Errorf("hull: vertex %d is on conflict lists of both face %d and %d: %w", v, prev, f, errs.ErrInternalInconsistency)
			}
			owner[v] = f
			if m.Verts[v].ConflictFace != f {
				return fmt.Errorf("hull: vertex %d.ConflictFace=%d, expected %d: %w", v, m.Verts[v].ConflictFace, f, errs.ErrInternalInconsistency)
			}
		}
	}

	return nil
}
