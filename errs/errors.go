// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs defines the sentinel error kinds shared by every core
// package, in the severity order of spec.md section 7. Callers branch on
// kind with errors.Is, the way gofem callers inspect the error returned by
// chk.Err rather than parsing its text.
package errs

import "errors"

var (
	// ErrDegenerateInput is returned when construction preconditions fail:
	// CHB with fewer than 4 linearly independent points, or SMC with a
	// zero-length spring or a non-finite mass. The call leaves no
	// persistent state mutated.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrNonConvergent is returned by the PCG solver when it exhausts
	// MaxIter without reaching the target residual. Not fatal: Delta-v is
	// the best iterate found and Iterations equals MaxIter; the caller may
	// accept it or re-step with a smaller h.
	ErrNonConvergent = errors.New("solver did not converge")

	// ErrInternalInconsistency marks a violated invariant — a DCEL
	// topology check, a CSR sorted-column check, or a dimension mismatch.
	// Per spec.md 7.3 this is surfaced as an error rather than left to
	// undefined behavior; hull's Options.DebugChecks additionally runs the
	// invariant walk after every eye-vertex insertion and returns this
	// error at the first failure, without panicking.
	ErrInternalInconsistency = errors.New("internal inconsistency")
)
