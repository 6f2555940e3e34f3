// Copyright 2026 The Physcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

// Mat33 is a row-major 3x3 matrix. Field names follow (row)(col).
type Mat33 struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
	M20, M21, M22 float64
}

// Identity33 returns the 3x3 identity matrix.
func Identity33() Mat33 {
	return Mat33{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Diag33 returns a diagonal matrix with the given entries.
func Diag33(x, y, z float64) Mat33 {
	return Mat33{
		x, 0, 0,
		0, y, 0,
		0, 0, z,
	}
}

// AddM returns a+b.
func AddM(a, b Mat33) Mat33 {
	return Mat33{
		a.M00 + b.M00, a.M01 + b.M01, a.M02 + b.M02,
		a.M10 + b.M10, a.M11 + b.M11, a.M12 + b.M12,
		a.M20 + b.M20, a.M21 + b.M21, a.M22 + b.M22,
	}
}

// SubM returns a-b.
func SubM(a, b Mat33) Mat33 {
	return Mat33{
		a.M00 - b.M00, a.M01 - b.M01, a.M02 - b.M02,
		a.M10 - b.M10, a.M11 - b.M11, a.M12 - b.M12,
		a.M20 - b.M20, a.M21 - b.M21, a.M22 - b.M22,
	}
}

// ScaleM returns a*s.
func ScaleM(a Mat33, s float64) Mat33 {
	return Mat33{
		a.M00 * s, a.M01 * s, a.M02 * s,
		a.M10 * s, a.M11 * s, a.M12 * s,
		a.M20 * s, a.M21 * s, a.M22 * s,
	}
}

// MulM returns a*b.
func MulM(a, b Mat33) Mat33 {
	return Mat33{
		a.M00*b.M00 + a.M01*b.M10 + a.M02*b.M20,
		a.M00*b.M01 + a.M01*b.M11 + a.M02*b.M21,
		a.M00*b.M02 + a.M01*b.M12 + a.M02*b.M22,

		a.M10*b.M00 + a.M11*b.M10 + a.M12*b.M20,
		a.M10*b.M01 + a.M11*b.M11 + a.M12*b.M21,
		a.M10*b.M02 + a.M11*b.M12 + a.M12*b.M22,

		a.M20*b.M00 + a.M21*b.M10 + a.M22*b.M20,
		a.M20*b.M01 + a.M21*b.M11 + a.M22*b.M21,
		a.M20*b.M02 + a.M21*b.M12 + a.M22*b.M22,
	}
}

// MulVec returns m*v.
func MulVec(m Mat33, v Vec3) Vec3 {
	return Vec3{
		m.M00*v.X + m.M01*v.Y + m.M02*v.Z,
		m.M10*v.X + m.M11*v.Y + m.M12*v.Z,
		m.M20*v.X + m.M21*v.Y + m.M22*v.Z,
	}
}

// Transpose returns the transpose of a.
func Transpose(a Mat33) Mat33 {
	return Mat33{
		a.M00, a.M10, a.M20,
		a.M01, a.M11, a.M21,
		a.M02, a.M12, a.M22,
	}
}

// Det returns the determinant of a.
func Det(a Mat33) float64 {
	return a.M00*(a.M11*a.M22-a.M12*a.M21) -
		a.M01*(a.M10*a.M22-a.M12*a.M20) +
		a.M02*(a.M10*a.M21-a.M11*a.M20)
}

// Inverse returns the inverse of a and true, or the zero matrix and false
// if a is singular to within the given tolerance. The small-matrix inverse
// here mirrors gosl/la.MatInv's contract (explicit cofactor inverse rather
// than a general LU-based solver, appropriate only at the fixed 3x3 size the
// per-node preconditioner blocks use).
func Inverse(a Mat33, tol float64) (Mat33, bool) {
	det := Det(a)
	if det > -tol && det < tol {
		return Mat33{}, false
	}
	invDet := 1 / det
	return Mat33{
		(a.M11*a.M22 - a.M12*a.M21) * invDet,
		(a.M02*a.M21 - a.M01*a.M22) * invDet,
		(a.M01*a.M12 - a.M02*a.M11) * invDet,

		(a.M12*a.M20 - a.M10*a.M22) * invDet,
		(a.M00*a.M22 - a.M02*a.M20) * invDet,
		(a.M02*a.M10 - a.M00*a.M12) * invDet,

		(a.M10*a.M21 - a.M11*a.M20) * invDet,
		(a.M01*a.M20 - a.M00*a.M21) * invDet,
		(a.M00*a.M11 - a.M01*a.M10) * invDet,
	}, true
}

// FromQuat builds a rotation matrix from a unit quaternion.
func FromQuat(q Quat) Mat33 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, yy, zz := q.X*x2, q.Y*y2, q.Z*z2
	xy, xz, yz := q.X*y2, q.X*z2, q.Y*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2
	return Mat33{
		1 - (yy + zz), xy - wz, xz + wy,
		xy + wz, 1 - (xx + zz), yz - wx,
		xz - wy, yz + wx, 1 - (xx + yy),
	}
}
