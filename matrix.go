package easel

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// The canvas/SVG order [a b c d e f] used by serialized scenes maps to
// {A: a, B: c, C: e, D: b, E: d, F: f}; see Array and MatrixFromArray.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// singularEpsilon is the determinant magnitude below which Invert gives up.
const singularEpsilon = 1e-12

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// SkewX creates a horizontal skew matrix (angle in degrees).
func SkewX(degrees float64) Matrix {
	return Matrix{A: 1, B: math.Tan(DegreesToRadians(degrees)), E: 1}
}

// SkewY creates a vertical skew matrix (angle in degrees).
func SkewY(degrees float64) Matrix {
	return Matrix{A: 1, D: math.Tan(DegreesToRadians(degrees)), E: 1}
}

// MatrixFromArray builds a Matrix from the canvas order [a b c d e f].
func MatrixFromArray(v [6]float64) Matrix {
	return Matrix{A: v[0], B: v[2], C: v[4], D: v[1], E: v[3], F: v[5]}
}

// Array returns the matrix in canvas order [a b c d e f].
func (m Matrix) Array() [6]float64 {
	return [6]float64{m.A, m.D, m.B, m.E, m.C, m.F}
}

// Multiply multiplies two matrices (m * other): other is applied first.
// Composition of a parent and a local transform is parent.Multiply(local).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if math.Abs(det) < singularEpsilon {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// Linear returns the matrix without its translation.
func (m Matrix) Linear() Matrix {
	m.C, m.F = 0, 0
	return m
}

// Translation returns the translation component.
func (m Matrix) Translation() Point {
	return Point{X: m.C, Y: m.F}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// Approx reports whether every coefficient differs by at most epsilon.
func (m Matrix) Approx(o Matrix, epsilon float64) bool {
	return math.Abs(m.A-o.A) <= epsilon && math.Abs(m.B-o.B) <= epsilon &&
		math.Abs(m.C-o.C) <= epsilon && math.Abs(m.D-o.D) <= epsilon &&
		math.Abs(m.E-o.E) <= epsilon && math.Abs(m.F-o.F) <= epsilon
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
