// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cloth

import "github.com/cpmech/physcore/geo"

// Shape is the external collaborator spec.md 6 requires for contact
// probing: it tests a sphere of the given position and radius against
// itself, reporting penetration depth and the outward surface normal. Its
// internals (sphere/capsule/hull/mesh collision, SAT, closest-point math)
// are out of scope (spec.md 1): a core-side stepper only ever calls
// TestSphere.
type Shape interface {
	// TestSphere reports whether a sphere of radius r centered at p
	// penetrates the shape, the penetration depth (distance the sphere
	// must move along normal to just touch the surface), and the outward
	// surface normal at the contact point.
	TestSphere(p geo.Vec3, r float64) (penetrating bool, depth float64, normal geo.Vec3)
}

// Plane is a Shape implementation for an infinite half-space boundary,
// grounded on bounce's tension_mapping.h/pinned_cloth.h testbed scenarios
// which drop cloth onto a y=0 ground plane. It is a minimal stand-in for
// the closed Shape hierarchy spec.md 9 describes as out of core scope.
type Plane struct {
	Normal geo.Vec3 // unit outward normal
	Offset float64  // plane passes through Normal*Offset
}

// TestSphere implements Shape.
func (pl Plane) TestSphere(p geo.Vec3, r float64) (bool, float64, geo.Vec3) {
	d := geo.Dot(pl.Normal, p) - pl.Offset
	if d >= r {
		return false, 0, geo.Vec3{}
	}
	return true, r - d, pl.Normal
}
