// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hull

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/physcore/errs"
	"github.com/cpmech/physcore/geo"
)

func TestTetrahedronHasFourFaces(tst *testing.T) {
	chk.PrintTitle("TetrahedronHasFourFaces")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0),
		geo.V3(1, 0, 0),
		geo.V3(0, 1, 0),
		geo.V3(0, 0, 1),
	}
	opts := DefaultOptions()
	opts.DebugChecks = true
	poly, err := Construct(pts, opts)
	if err != nil {
		tst.Fatal(err)
	}
	chk.IntAssert(len(poly.Faces()), 4)
	chk.IntAssert(len(poly.Vertices()), 4)
}

func TestCubeMergesToSixFaces(tst *testing.T) {
	chk.PrintTitle("CubeMergesToSixFaces")

	var pts []geo.Vec3
	for _, x := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				pts = append(pts, geo.V3(x, y, z))
			}
		}
	}
	opts := DefaultOptions()
	opts.DebugChecks = true
	poly, err := Construct(pts, opts)
	if err != nil {
		tst.Fatal(err)
	}
	// Every cube face is a coplanar quad the initial triangulation splits
	// in two; MergeFace's coplanar case must fold each pair back together.
	chk.IntAssert(len(poly.Faces()), 6)
	chk.IntAssert(len(poly.Vertices()), 8)
}

func TestInteriorPointsAreRejected(tst *testing.T) {
	chk.PrintTitle("InteriorPointsAreRejected")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0),
		geo.V3(4, 0, 0),
		geo.V3(0, 4, 0),
		geo.V3(0, 0, 4),
		geo.V3(1, 1, 1), // strictly interior to the tetrahedron above
	}
	poly, err := Construct(pts, DefaultOptions())
	if err != nil {
		tst.Fatal(err)
	}
	chk.IntAssert(len(poly.Faces()), 4)
	chk.IntAssert(len(poly.Vertices()), 4)
}

func TestCoincidentPointsAreDegenerate(tst *testing.T) {
	chk.PrintTitle("CoincidentPointsAreDegenerate")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0),
		geo.V3(0, 0, 0),
		geo.V3(0, 0, 0),
		geo.V3(0, 0, 0),
	}
	_, err := Construct(pts, DefaultOptions())
	if !errors.Is(err, errs.ErrDegenerateInput) {
		tst.Fatalf("expected ErrDegenerateInput, got %v", err)
	}
}

func TestColinearPointsAreDegenerate(tst *testing.T) {
	chk.PrintTitle("ColinearPointsAreDegenerate")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0),
		geo.V3(1, 0, 0),
		geo.V3(2, 0, 0),
		geo.V3(3, 0, 0),
	}
	_, err := Construct(pts, DefaultOptions())
	if !errors.Is(err, errs.ErrDegenerateInput) {
		tst.Fatalf("expected ErrDegenerateInput, got %v", err)
	}
}

func TestCoplanarPointsAreDegenerate(tst *testing.T) {
	chk.PrintTitle("CoplanarPointsAreDegenerate")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0),
		geo.V3(1, 0, 0),
		geo.V3(0, 1, 0),
		geo.V3(1, 1, 0),
	}
	_, err := Construct(pts, DefaultOptions())
	if !errors.Is(err, errs.ErrDegenerateInput) {
		tst.Fatalf("expected ErrDegenerateInput, got %v", err)
	}
}

func TestTooFewPointsIsDegenerate(tst *testing.T) {
	chk.PrintTitle("TooFewPointsIsDegenerate")

	_, err := Construct([]geo.Vec3{geo.V3(0, 0, 0), geo.V3(1, 0, 0)}, DefaultOptions())
	if !errors.Is(err, errs.ErrDegenerateInput) {
		tst.Fatalf("expected ErrDegenerateInput, got %v", err)
	}
}

// TestRigidTransformEquivariance checks spec.md's equivariance property:
// constructing the hull of a rotated-and-translated point set must give the
// same combinatorial structure (face/vertex counts) as constructing it
// first and transforming the result.
func TestRigidTransformEquivariance(tst *testing.T) {
	chk.PrintTitle("RigidTransformEquivariance")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0), geo.V3(2, 0, 0), geo.V3(0, 2, 0), geo.V3(0, 0, 2),
		geo.V3(1, 1, 1) /* discarded interior */, geo.V3(2, 2, 2),
	}
	base, err := Construct(pts, DefaultOptions())
	if err != nil {
		tst.Fatal(err)
	}

	xf := geo.Transform{
		Rotation:    geo.FromAxisAngle(geo.V3(1, 1, 0), math.Pi/3),
		Translation: geo.V3(10, -4, 2.5),
	}
	moved := make([]geo.Vec3, len(pts))
	for i, p := range pts {
		moved[i] = xf.Apply(p)
	}
	after, err := Construct(moved, DefaultOptions())
	if err != nil {
		tst.Fatal(err)
	}

	chk.IntAssert(len(after.Faces()), len(base.Faces()))
	chk.IntAssert(len(after.Vertices()), len(base.Vertices()))
}

// TestConstructIsDeterministic checks spec.md 5's bit-for-bit
// reproducibility requirement: two Construct calls on the same input in the
// same process must produce identical face planes in the same order.
func TestConstructIsDeterministic(tst *testing.T) {
	chk.PrintTitle("ConstructIsDeterministic")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0), geo.V3(3, 0, 0), geo.V3(0, 3, 0), geo.V3(0, 0, 3),
		geo.V3(1, 1, 0), geo.V3(0, 1, 1), geo.V3(1, 0, 1),
	}
	a, err := Construct(pts, DefaultOptions())
	if err != nil {
		tst.Fatal(err)
	}
	b, err := Construct(pts, DefaultOptions())
	if err != nil {
		tst.Fatal(err)
	}
	chk.IntAssert(len(a.Faces()), len(b.Faces()))
	for i, fa := range a.Faces() {
		fb := b.Faces()[i]
		chk.Vector(tst, "normal", 1e-15, []float64{fa.Plane().Normal.X, fa.Plane().Normal.Y, fa.Plane().Normal.Z},
			[]float64{fb.Plane().Normal.X, fb.Plane().Normal.Y, fb.Plane().Normal.Z})
		chk.Scalar(tst, "offset", 1e-15, fa.Plane().Offset, fb.Plane().Offset)
	}
}

// TestEveryVertexIsExtreme checks spec.md 8's extremeness invariant: the
// interior input point is not a hull vertex, and no hull vertex lies
// outside any face plane (signed distance zero or negative, within
// tolerance).
func TestEveryVertexIsExtreme(tst *testing.T) {
	chk.PrintTitle("EveryVertexIsExtreme")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0), geo.V3(5, 0, 0), geo.V3(0, 5, 0), geo.V3(0, 0, 5),
		geo.V3(1, 1, 1),
	}
	poly, err := Construct(pts, DefaultOptions())
	if err != nil {
		tst.Fatal(err)
	}
	for _, v := range poly.Vertices() {
		if geo.DistSq(v, pts[4]) < 1e-18 {
			tst.Fatalf("interior point %v is referenced as a hull vertex", v)
		}
		for _, f := range poly.Faces() {
			d := f.Plane().SignedDistance(v)
			if d > poly.Epsilon()*10 {
				tst.Fatalf("vertex %v lies %g outside face plane %v", v, d, f.Plane())
			}
		}
	}
}

// TestPairwiseFaceConvexity checks spec.md 8's convexity invariant directly
// on face pairs: every face's center must lie on or behind every other
// face's plane, i.e. no face may see another face's center as an eye vertex.
func TestPairwiseFaceConvexity(tst *testing.T) {
	chk.PrintTitle("PairwiseFaceConvexity")

	var pts []geo.Vec3
	for _, x := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				pts = append(pts, geo.V3(x, y, z))
			}
		}
	}
	poly, err := Construct(pts, DefaultOptions())
	if err != nil {
		tst.Fatal(err)
	}
	faces := poly.Faces()
	for i, f := range faces {
		for j, g := range faces {
			if i == j {
				continue
			}
			d := f.Plane().SignedDistance(g.Center())
			if d > poly.Epsilon()*10 {
				tst.Fatalf("face %d sees face %d's center at distance %g (not convex)", i, j, d)
			}
		}
	}
}

// TestConstructIsIdempotentOnItsOwnVertices checks spec.md 8's idempotence
// property: re-running Construct on exactly the vertex set a first
// construction produced must reproduce the same combinatorial hull, with
// every original vertex surviving into the second construction's vertex set.
func TestConstructIsIdempotentOnItsOwnVertices(tst *testing.T) {
	chk.PrintTitle("ConstructIsIdempotentOnItsOwnVertices")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0), geo.V3(4, 0, 0), geo.V3(0, 4, 0), geo.V3(0, 0, 4),
		geo.V3(1, 1, 1) /* discarded interior */, geo.V3(2, 2, 0),
	}
	first, err := Construct(pts, DefaultOptions())
	if err != nil {
		tst.Fatal(err)
	}

	again, err := Construct(first.Vertices(), DefaultOptions())
	if err != nil {
		tst.Fatal(err)
	}

	chk.IntAssert(len(again.Faces()), len(first.Faces()))
	chk.IntAssert(len(again.Vertices()), len(first.Vertices()))

	for _, v := range first.Vertices() {
		found := false
		for _, w := range again.Vertices() {
			if geo.DistSq(v, w) < 1e-18 {
				found = true
				break
			}
		}
		if !found {
			tst.Fatalf("vertex %v from first construction missing from second", v)
		}
	}
}

// TestVerboseLoggingInvokesHook checks that a caller-supplied Options.Log is
// actually called when Verbose is set, and that Construct still succeeds
// with Verbose set and the gosl/io-backed default Log in place.
func TestVerboseLoggingInvokesHook(tst *testing.T) {
	chk.PrintTitle("VerboseLoggingInvokesHook")

	pts := []geo.Vec3{
		geo.V3(0, 0, 0), geo.V3(3, 0, 0), geo.V3(0, 3, 0), geo.V3(0, 0, 3),
	}

	calls := 0
	opts := DefaultOptions()
	opts.Verbose = true
	opts.Log = func(format string, args ...any) { calls++ }
	if _, err := Construct(pts, opts); err != nil {
		tst.Fatal(err)
	}
	if calls == 0 {
		tst.Fatal("expected Options.Log to be invoked at least once with Verbose=true")
	}

	// The default Log (gosl/io.Pf-backed) must also run without panicking
	// when nothing overrides it.
	defOpts := Options{ToleranceScale: 3, Verbose: true}
	if _, err := Construct(pts, defOpts); err != nil {
		tst.Fatal(err)
	}
}
