// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"fmt"
	"sort"

	"github.com/cpmech/physcore/errs"
	"github.com/cpmech/physcore/geo"
)

// Triplet33 accumulates (row,col,block) entries in arbitrary order,
// duplicates allowed, mirroring gosl/la.Triplet's Init/Put assembly idiom
// (used throughout gofem's AddToKb element routines) generalized from
// scalar to 3x3-block entries. ToCSR compresses it into a SparseMat33 with
// the sorted-unique-columns invariant the rest of the package relies on.
type Triplet33 struct {
	m, n  int
	rows  []int
	cols  []int
	vals  []geo.Mat33
	limit int
}

// NewTriplet33 allocates a builder for an MxN matrix expecting at most
// maxEntries Put calls, mirroring la.Triplet.Init(m, n, maxNNZ).
func NewTriplet33(m, n, maxEntries int) *Triplet33 {
	return &Triplet33{
		m: m, n: n, limit: maxEntries,
		rows: make([]int, 0, maxEntries),
		cols: make([]int, 0, maxEntries),
		vals: make([]geo.Mat33, 0, maxEntries),
	}
}

// Start resets the builder in place for reuse across calls, avoiding a
// fresh allocation per simulation step the way gofem reuses o.Kb across
// time-stepping iterations rather than reallocating the Jacobian triplet.
func (t *Triplet33) Start(m, n, maxEntries int) {
	t.m, t.n, t.limit = m, n, maxEntries
	t.rows = t.rows[:0]
	t.cols = t.cols[:0]
	t.vals = t.vals[:0]
}

// Put appends a block entry at (row,col). Entries at the same (row,col)
// accumulate (summed) at ToCSR time, matching the additive semantics
// finite-element assembly (and spring-Jacobian assembly) requires when two
// contributions land on the same equation.
func (t *Triplet33) Put(row, col int, v geo.Mat33) error {
	if row < 0 || row >= t.m || col < 0 || col >= t.n {
		return fmt.Errorf("block: Triplet33.Put: (%d,%d) out of range for %dx%d matrix: %w", row, col, t.m, t.n, errs.ErrInternalInconsistency)
	}
	if len(t.rows) >= t.limit {
		return fmt.Errorf("block: Triplet33.Put: exceeded capacity %d: %w", t.limit, errs.ErrInternalInconsistency)
	}
	t.rows = append(t.rows, row)
	t.cols = append(t.cols, col)
	t.vals = append(t.vals, v)
	return nil
}

// ToCSR compresses the accumulated entries into sorted-unique-column CSR
// form, summing duplicate (row,col) contributions.
func (t *Triplet33) ToCSR() *SparseMat33 {
	order := make([]int, len(t.rows))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		oi, oj := order[i], order[j]
		if t.rows[oi] != t.rows[oj] {
			return t.rows[oi] < t.rows[oj]
		}
		return t.cols[oi] < t.cols[oj]
	})

	out := &SparseMat33{
		M: t.m, N: t.n,
		Values:  make([]geo.Mat33, 0, len(t.rows)),
		Cols:    make([]int, 0, len(t.rows)),
		RowPtrs: make([]int, t.m+1),
	}
	row := 0
	i := 0
	for i < len(order) {
		idx := order[i]
		for row < t.rows[idx] {
			row++
			out.RowPtrs[row] = len(out.Values)
		}
		col := t.cols[idx]
		sum := t.vals[idx]
		j := i + 1
		for j < len(order) && t.rows[order[j]] == row && t.cols[order[j]] == col {
			sum = geo.AddM(sum, t.vals[order[j]])
			j++
		}
		out.Values = append(out.Values, sum)
		out.Cols = append(out.Cols, col)
		i = j
	}
	for row < t.m {
		row++
		out.RowPtrs[row] = len(out.Values)
	}
	return out
}
