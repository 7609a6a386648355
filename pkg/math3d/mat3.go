package math3d

import "math"

// Mat3 is a 3x3 matrix stored in column-major order, like Mat4.
//
// Memory layout (indices):
// | 0  3  6 |
// | 1  4  7 |
// | 2  5  8 |
//
// A camera rotation keeps the camera's right, down and forward axes
// (expressed in world space) in columns 0, 1 and 2.
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromCols builds a matrix from three column vectors.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}
}

// RotateX3 creates a rotation around the X axis.
// Positive angles tilt the forward axis toward -Y (up, since +Y is down).
func RotateX3(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3FromCols(
		V3(1, 0, 0),
		V3(0, c, s),
		V3(0, -s, c),
	)
}

// RotateY3 creates a rotation around the Y axis.
// Positive angles turn the forward axis toward +X.
func RotateY3(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3FromCols(
		V3(c, 0, -s),
		V3(0, 1, 0),
		V3(s, 0, c),
	)
}

// Col returns column i.
func (m Mat3) Col(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// Get returns the element at (row, col).
func (m Mat3) Get(row, col int) float64 {
	return m[row+col*3]
}

// MulVec3 returns m * v (v as a column vector).
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row+k*3] * b[k+col*3]
			}
			m[row+col*3] = sum
		}
	}
	return m
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m.Col(0).Dot(m.Col(1).Cross(m.Col(2)))
}

// Inverse returns the inverse of the matrix.
// ok is false when the matrix is singular or the result is not finite.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	c0, c1, c2 := m.Col(0), m.Col(1), m.Col(2)

	// Rows of the inverse are the cross products of column pairs over det.
	r0 := c1.Cross(c2)
	r1 := c2.Cross(c0)
	r2 := c0.Cross(c1)

	det := c0.Dot(r0)
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Mat3{}, false
	}

	invDet := 1.0 / det
	r0 = r0.Scale(invDet)
	r1 = r1.Scale(invDet)
	r2 = r2.Scale(invDet)
	if !r0.IsFinite() || !r1.IsFinite() || !r2.IsFinite() {
		return Mat3{}, false
	}

	return Mat3{
		r0.X, r1.X, r2.X,
		r0.Y, r1.Y, r2.Y,
		r0.Z, r1.Z, r2.Z,
	}, true
}
