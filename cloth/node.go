// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cloth

import "github.com/cpmech/physcore/geo"

// NodeType distinguishes masses the integrator moves from masses held fixed
// by an external constraint (a pin).
type NodeType uint8

const (
	Dynamic NodeType = iota
	Static
)

// Contact records a mass's current collision state against an external
// collider shape (spec.md 3's "contact record"). Active is false between
// contacts; Normal and the derived velocity target are only meaningful while
// Active.
type Contact struct {
	Normal geo.Vec3
	Active bool
}

// Node holds one mass's state (spec.md 3). Invariant: a Static node always
// has InvMass == 0; AccelOffset (y_i) and TargetVelocity (z_i) are the
// per-node forcing and constraint-offset terms the assembly and filter
// stages read every Step.
type Node struct {
	Position geo.Vec3
	Velocity geo.Vec3
	Mass     float64
	InvMass  float64
	Type     NodeType

	AccelOffset    geo.Vec3 // y_i: extra per-node acceleration, e.g. wind
	TargetVelocity geo.Vec3 // z_i: prescribed (I-S)*Δv when constrained

	Contact Contact
}

// setStatic pins the node: zeroes InvMass and clears any pending velocity
// target, matching the data-model invariant that static nodes carry
// InvMass == 0.
func (n *Node) setStatic() {
	n.Type = Static
	n.InvMass = 0
	n.TargetVelocity = geo.Vec3{}
}

// setDynamic restores a mass-derived InvMass to a previously static node.
func (n *Node) setDynamic(mass float64) {
	n.Type = Dynamic
	n.Mass = mass
	if mass > 0 {
		n.InvMass = 1 / mass
	}
}

// filterBlock returns this node's constraint-filter block S_i (spec.md 4's
// Constraint filter): zero when static (all DOFs pinned), I minus the
// normal outer product while a contact is active (the normal component
// removed), identity otherwise.
func (n *Node) filterBlock() geo.Mat33 {
	switch {
	case n.Type == Static:
		return geo.Mat33{}
	case n.Contact.Active:
		return geo.SubM(geo.Identity33(), geo.Outer(n.Contact.Normal, n.Contact.Normal))
	default:
		return geo.Identity33()
	}
}
