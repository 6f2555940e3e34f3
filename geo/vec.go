// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geo implements the floating-point geometry primitives shared by
// the convex hull builder and the cloth solver: vectors, 3x3/4x4 matrices,
// quaternions, planes and rigid transforms.
package geo

import "math"

// Vec3 is a point or free vector in R3.
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a Vec3 from components.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Add returns a+b.
func Add(a, b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func Sub(a, b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a*s.
func Scale(a Vec3, s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Neg returns -a.
func Neg(a Vec3) Vec3 { return Vec3{-a.X, -a.Y, -a.Z} }

// Dot returns a.b.
func Dot(a, b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns a x b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// LenSq returns the squared length of a.
func LenSq(a Vec3) float64 { return Dot(a, a) }

// Len returns the length of a.
func Len(a Vec3) float64 { return math.Sqrt(LenSq(a)) }

// DistSq returns the squared distance between a and b.
func DistSq(a, b Vec3) float64 { return LenSq(Sub(a, b)) }

// Dist returns the distance between a and b.
func Dist(a, b Vec3) float64 { return math.Sqrt(DistSq(a, b)) }

// Unit returns a normalized to unit length. Callers must ensure a is
// non-degenerate; Unit of a near-zero vector is undefined (division by a
// value close to zero).
func Unit(a Vec3) Vec3 {
	l := Len(a)
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

// Lerp linearly interpolates between a and b at fraction t.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Add(a, Scale(Sub(b, a), t))
}

// Finite reports whether every component is a finite float (no NaN, no Inf).
// Callers are responsible for sanitizing inputs before they reach the cores
// (spec invariant: no NaN values enter the cores); this helper exists so
// boundary-facing constructors can check that invariant cheaply.
func Finite(a Vec3) bool {
	return isFinite(a.X) && isFinite(a.Y) && isFinite(a.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Centroid returns the average of pts. pts must be non-empty.
func Centroid(pts []Vec3) Vec3 {
	var c Vec3
	for _, p := range pts {
		c = Add(c, p)
	}
	return Scale(c, 1/float64(len(pts)))
}

// Outer returns the outer product a*bT as a Mat33.
func Outer(a, b Vec3) Mat33 {
	return Mat33{
		a.X * b.X, a.X * b.Y, a.X * b.Z,
		a.Y * b.X, a.Y * b.Y, a.Y * b.Z,
		a.Z * b.X, a.Z * b.Y, a.Z * b.Z,
	}
}
