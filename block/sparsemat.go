// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"fmt"

	"github.com/cpmech/physcore/errs"
	"github.com/cpmech/physcore/geo"
)

// SparseMat33 is an MxN matrix of 3x3 blocks stored in Compressed Sparse
// Row (CSR) form. Column indices within a row are sorted ascending and
// unique — an invariant the solver and AssembleDiagonal rely on to early
// exit, so every constructor here (Triplet33.ToCSR, Add) must restore it
// before returning, even though the source representation (a plain
// duplicate-tolerant triplet list) does not.
type SparseMat33 struct {
	M, N    int
	Values  []geo.Mat33
	Cols    []int
	RowPtrs []int // length M+1, RowPtrs[M] == len(Values)
}

// AssembleRow writes the dense expansion of the given row into out, which
// must have length >= M.N. Unlike the C++ source this method's precondition
// is row < M, not row < M+1: the off-by-one in the original bound allowed
// reading one row past the end and is tightened here per spec.md 9.
func (a *SparseMat33) AssembleRow(row int, out []geo.Mat33) error {
	if row < 0 || row >= a.M {
		return fmt.Errorf("block: AssembleRow: row %d out of range [0,%d): %w", row, a.M, errs.ErrInternalInconsistency)
	}
	for i := 0; i < a.N; i++ {
		out[i] = geo.Mat33{}
	}
	for k := a.RowPtrs[row]; k < a.RowPtrs[row+1]; k++ {
		out[a.Cols[k]] = a.Values[k]
	}
	return nil
}

// AssembleMatrix decompresses the whole matrix into row-major dense form.
// out must have length >= M*N.
func (a *SparseMat33) AssembleMatrix(out []geo.Mat33) error {
	for row := 0; row < a.M; row++ {
		if err := a.AssembleRow(row, out[row*a.N:(row+1)*a.N]); err != nil {
			return err
		}
	}
	return nil
}

// AssembleDiagonal requires a square matrix and writes its block-diagonal
// part. Because columns within a row are sorted, the scan can stop as soon
// as it passes the diagonal column.
func (a *SparseMat33) AssembleDiagonal() (DiagMat33, error) {
	if a.M != a.N {
		return DiagMat33{}, fmt.Errorf("block: AssembleDiagonal: matrix is %dx%d, not square: %w", a.M, a.N, errs.ErrInternalInconsistency)
	}
	out := NewDiagMat33(a.M)
	for row := 0; row < a.M; row++ {
		for k := a.RowPtrs[row]; k < a.RowPtrs[row+1]; k++ {
			col := a.Cols[k]
			if col > row {
				break
			}
			if col == row {
				out.Blocks[row] = a.Values[k]
				break
			}
		}
	}
	return out, nil
}

// MultiplyInto writes out = A*v without allocating: out must already carry
// A.M blocks, typically from a pooled scratch buffer the caller resets
// between calls rather than reallocating each time (spec.md §4.B/§5) — the
// form the PCG hot loop uses every iteration.
func (a *SparseMat33) MultiplyInto(v, out DenseVec3) error {
	if v.N() != a.N {
		return fmt.Errorf("block: MultiplyInto: v has %d blocks, matrix has %d columns: %w", v.N(), a.N, errs.ErrInternalInconsistency)
	}
	if out.N() != a.M {
		return fmt.Errorf("block: MultiplyInto: out has %d blocks, matrix has %d rows: %w", out.N(), a.M, errs.ErrInternalInconsistency)
	}
	for row := 0; row < a.M; row++ {
		var acc geo.Vec3
		for k := a.RowPtrs[row]; k < a.RowPtrs[row+1]; k++ {
			acc = geo.Add(acc, geo.MulVec(a.Values[k], v.Get(a.Cols[k])))
		}
		out.Set(row, acc)
	}
	return nil
}

// Multiply returns out = A*v, allocating a fresh result; see MultiplyInto
// for the allocation-free variant used where the caller already owns
// pooled scratch.
func (a *SparseMat33) Multiply(v DenseVec3) (DenseVec3, error) {
	out := NewDenseVec3(a.M)
	if err := a.MultiplyInto(v, out); err != nil {
		return DenseVec3{}, err
	}
	return out, nil
}

// Add returns the block-sum a+b using a canonical sorted-row merge: for
// each row, walk a's and b's column lists in lockstep, summing blocks that
// share a column and appending the rest, producing a result whose columns
// remain sorted and unique. This intentionally does not port the source's
// fused b3Add: that routine conflates column *values* with value-array
// *indices* (col_A is read back as an index into out.values) and assumes
// the post-add valueCount never exceeds N, which only holds for
// diagonal-only operands — see spec.md 9. The output buffer here is sized
// to nnz(a)+nnz(b), the correct worst case.
func Add(a, b *SparseMat33) (*SparseMat33, error) {
	if a.M != b.M || a.N != b.N {
		return nil, fmt.Errorf("block: Add: dimension mismatch (%dx%d) vs (%dx%d): %w", a.M, a.N, b.M, b.N, errs.ErrInternalInconsistency)
	}
	maxNNZ := len(a.Values) + len(b.Values)
	out := &SparseMat33{
		M:       a.M,
		N:       a.N,
		Values:  make([]geo.Mat33, 0, maxNNZ),
		Cols:    make([]int, 0, maxNNZ),
		RowPtrs: make([]int, a.M+1),
	}
	for row := 0; row < a.M; row++ {
		ka, kaEnd := a.RowPtrs[row], a.RowPtrs[row+1]
		kb, kbEnd := b.RowPtrs[row], b.RowPtrs[row+1]
		for ka < kaEnd || kb < kbEnd {
			switch {
			case kb >= kbEnd || (ka < kaEnd && a.Cols[ka] < b.Cols[kb]):
				out.Values = append(out.Values, a.Values[ka])
				out.Cols = append(out.Cols, a.Cols[ka])
				ka++
			case ka >= kaEnd || (kb < kbEnd && b.Cols[kb] < a.Cols[ka]):
				out.Values = append(out.Values, b.Values[kb])
				out.Cols = append(out.Cols, b.Cols[kb])
				kb++
			default: // a.Cols[ka] == b.Cols[kb]
				out.Values = append(out.Values, geo.AddM(a.Values[ka], b.Values[kb]))
				out.Cols = append(out.Cols, a.Cols[ka])
				ka++
				kb++
			}
		}
		out.RowPtrs[row+1] = len(out.Values)
	}
	return out, nil
}
