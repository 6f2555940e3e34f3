// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

// Mat44 is a row-major 4x4 homogeneous matrix, completing spec.md §3's data
// model alongside Mat33/Quat/Plane. Neither core multiplies through it in
// its hot loops — Transform's Quat+Vec3 pair stays the native rigid-motion
// representation throughout §4's algorithms — but an external renderer or
// scene-graph consumer typically wants the conventional column-of-basis-
// vectors-plus-translation form, which FromTransform produces.
type Mat44 struct {
	M00, M01, M02, M03 float64
	M10, M11, M12, M13 float64
	M20, M21, M22, M23 float64
	M30, M31, M32, M33 float64
}

// Identity44 returns the 4x4 identity matrix.
func Identity44() Mat44 {
	return Mat44{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromTransform builds the homogeneous matrix equivalent to t: the
// upper-left 3x3 block is t.Rotation's matrix, the last column t.Translation.
func FromTransform(t Transform) Mat44 {
	r := FromQuat(t.Rotation)
	return Mat44{
		r.M00, r.M01, r.M02, t.Translation.X,
		r.M10, r.M11, r.M12, t.Translation.Y,
		r.M20, r.M21, r.M22, t.Translation.Z,
		0, 0, 0, 1,
	}
}

// MulPoint applies m to p as a homogeneous point (w=1), dividing through by
// the resulting w for the general (non-rigid) case.
func (m Mat44) MulPoint(p Vec3) Vec3 {
	w := m.M30*p.X + m.M31*p.Y + m.M32*p.Z + m.M33
	x := m.M00*p.X + m.M01*p.Y + m.M02*p.Z + m.M03
	y := m.M10*p.X + m.M11*p.Y + m.M12*p.Z + m.M13
	z := m.M20*p.X + m.M21*p.Y + m.M22*p.Z + m.M23
	if w == 1 {
		return Vec3{x, y, z}
	}
	return Vec3{x / w, y / w, z / w}
}

// MulM4 returns a*b.
func MulM4(a, b Mat44) Mat44 {
	ra := [4][4]float64{
		{a.M00, a.M01, a.M02, a.M03},
		{a.M10, a.M11, a.M12, a.M13},
		{a.M20, a.M21, a.M22, a.M23},
		{a.M30, a.M31, a.M32, a.M33},
	}
	rb := [4][4]float64{
		{b.M00, b.M01, b.M02, b.M03},
		{b.M10, b.M11, b.M12, b.M13},
		{b.M20, b.M21, b.M22, b.M23},
		{b.M30, b.M31, b.M32, b.M33},
	}
	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += ra[i][k] * rb[k][j]
			}
			out[i][j] = s
		}
	}
	return Mat44{
		out[0][0], out[0][1], out[0][2], out[0][3],
		out[1][0], out[1][1], out[1][2], out[1][3],
		out[2][0], out[2][1], out[2][2], out[2][3],
		out[3][0], out[3][1], out[3][2], out[3][3],
	}
}
