// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cloth

// SpringType classifies a spring by the geometric role it plays in
// resisting cloth deformation (spec.md 3).
type SpringType uint8

const (
	TypeStretch SpringType = iota // direct mesh edge
	TypeShear                     // quad diagonal
	TypeBend                      // triangle-pair opposite vertices
)

// Spring connects masses I and J. Invariant: I != J, both indices valid,
// RestLength > 0 (spec.md 3).
type Spring struct {
	I, J       int
	Type       SpringType
	RestLength float64
	Ks, Kd     float64
}
