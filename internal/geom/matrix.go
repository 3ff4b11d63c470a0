package geom

import "math"

// Matrix2D represents a 2D affine transformation matrix.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
//
// This is the same layout as the CSS matrix() function and DOMMatrix, so a
// Matrix2D can be handed to the frontend unchanged.
type Matrix2D [6]float64

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, tx, ty}
}

// Scale returns a uniform scale matrix.
func Scale(s float64) Matrix2D {
	return Matrix2D{s, 0, 0, s, 0, 0}
}

// RotateDegrees returns a clockwise (screen space, y down) rotation matrix.
func RotateDegrees(degrees float64) Matrix2D {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix2D{cos, sin, -sin, cos, 0, 0}
}

// Multiply returns m * other, which applies other first and then m.
func (m Matrix2D) Multiply(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Apply transforms a point.
func (m Matrix2D) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformRect transforms a rectangle and returns its axis-aligned bounding box.
func (m Matrix2D) TransformRect(r Rect) Rect {
	corners := [4]Point{
		m.Apply(Point{X: r.X, Y: r.Y}),
		m.Apply(Point{X: r.X + r.Width, Y: r.Y}),
		m.Apply(Point{X: r.X + r.Width, Y: r.Y + r.Height}),
		m.Apply(Point{X: r.X, Y: r.Y + r.Height}),
	}

	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X)
		maxY = max(maxY, c.Y)
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Determinant returns the determinant of the linear part.
func (m Matrix2D) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of the matrix, or Identity if not invertible.
func (m Matrix2D) Invert() Matrix2D {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix2D{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}
}

// CSSTransform builds the matrix for the CSS declaration
//
//	transform: scale(s) translate(tx px, ty px) rotate(r deg)
//
// evaluated around origin (the element center for the default
// transform-origin). CSS applies the listed functions right to left, so the
// result is T(origin) * S(s) * T(tx,ty) * R(r) * T(-origin).
func CSSTransform(origin Point, s, tx, ty, rDegrees float64) Matrix2D {
	return Translate(origin.X, origin.Y).
		Multiply(Scale(s)).
		Multiply(Translate(tx, ty)).
		Multiply(RotateDegrees(rDegrees)).
		Multiply(Translate(-origin.X, -origin.Y))
}
