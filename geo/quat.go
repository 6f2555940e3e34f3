// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import "math"

// Quat is a unit quaternion (X,Y,Z,W) representing a rotation.
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQ returns the identity rotation.
func IdentityQ() Quat { return Quat{0, 0, 0, 1} }

// FromAxisAngle builds a quaternion rotating by angle radians around axis
// (which must be non-zero; it is normalized internally).
func FromAxisAngle(axis Vec3, angle float64) Quat {
	u := Unit(axis)
	s, c := math.Sincos(angle * 0.5)
	return Quat{u.X * s, u.Y * s, u.Z * s, c}
}

// MulQ returns the composition a then b (b*a applied to a vector).
func MulQ(a, b Quat) Quat {
	return Quat{
		b.W*a.X + b.X*a.W + b.Y*a.Z - b.Z*a.Y,
		b.W*a.Y - b.X*a.Z + b.Y*a.W + b.Z*a.X,
		b.W*a.Z + b.X*a.Y - b.Y*a.X + b.Z*a.W,
		b.W*a.W - b.X*a.X - b.Y*a.Y - b.Z*a.Z,
	}
}

// Conj returns the conjugate of q (its inverse, for unit quaternions).
func Conj(q Quat) Quat { return Quat{-q.X, -q.Y, -q.Z, q.W} }

// NormalizeQ returns q scaled to unit length.
func NormalizeQ(q Quat) Quat {
	l := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Rotate applies q to vector v.
func Rotate(q Quat, v Vec3) Vec3 {
	return MulVec(FromQuat(q), v)
}
