package cell

import "math"

// Vec is a 3-component Cartesian vector. It is used both for positions and for
// direction vectors; directions must be normalized before use.
type Vec [3]float64

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns s*v.
func (v Vec) Scale(s float64) Vec {
	return Vec{s * v[0], s * v[1], s * v[2]}
}

// Dot returns the scalar product of a and b.
func (a Vec) Dot(b Vec) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the vector product of a and b.
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Norm returns the Euclidean norm of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns v scaled to unit norm. The zero vector is returned
// unchanged.
func (v Vec) Normalize() Vec {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vec{v[0] / n, v[1] / n, v[2] / n}
}

// Mat3 is a 3x3 matrix. When it holds a cell basis, the rows are the lattice
// vectors.
type Mat3 [3][3]float64

// Row returns the i-th row as a Vec.
func (m Mat3) Row(i int) Vec {
	return Vec{m[i][0], m[i][1], m[i][2]}
}

// Det returns the determinant of m.
func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inv returns the inverse of m. The second return value is false when m is
// singular.
func (m Mat3) Inv() (Mat3, bool) {
	det := m.Det()
	if det == 0 {
		return Mat3{}, false
	}
	var inv Mat3
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) / det
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) / det
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) / det
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det
	return inv, true
}

// MulVecRow returns the row-vector product s*m, i.e. out[j] = sum_k s[k]*m[k][j].
func (m Mat3) MulVecRow(s Vec) Vec {
	return Vec{
		s[0]*m[0][0] + s[1]*m[1][0] + s[2]*m[2][0],
		s[0]*m[0][1] + s[1]*m[1][1] + s[2]*m[2][1],
		s[0]*m[0][2] + s[1]*m[1][2] + s[2]*m[2][2],
	}
}
