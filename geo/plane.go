// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

// Plane is the set of points p satisfying dot(Normal,p) == Offset.
// Normal is expected to be unit length; constructors below guarantee it.
type Plane struct {
	Normal Vec3
	Offset float64
}

// PlaneFromPoints builds a plane through a, b, c. The normal is the
// normalized cross product of (b-a, c-a); winding (and thus which way the
// normal points) is the caller's responsibility, per spec.md 4.A.
func PlaneFromPoints(a, b, c Vec3) Plane {
	n := Unit(Cross(Sub(b, a), Sub(c, a)))
	return Plane{Normal: n, Offset: Dot(n, a)}
}

// SignedDistance returns dot(n_hat,p) - d, positive on the side the normal
// points toward.
func (pl Plane) SignedDistance(p Vec3) float64 {
	return Dot(pl.Normal, p) - pl.Offset
}

// Flip returns the plane with reversed orientation (same point set).
func (pl Plane) Flip() Plane {
	return Plane{Normal: Neg(pl.Normal), Offset: -pl.Offset}
}
