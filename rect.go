package easel

import "math"

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// RectFromPoints returns the rectangle spanned by two corners.
func RectFromPoints(a, b Point) Rect {
	return BoundingBox(a, b)
}

// BoundingBox returns the smallest Rect containing all points.
// It returns the zero Rect for no points.
func BoundingBox(points ...Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return Rect{Left: lo.X, Top: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point { return Pt(r.Left, r.Top) }

// BottomRight returns the bottom-right corner.
func (r Rect) BottomRight() Point { return Pt(r.Right(), r.Bottom()) }

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return Pt(r.Left+r.Width/2, r.Top+r.Height/2)
}

// Corners returns the corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		Pt(r.Left, r.Top),
		Pt(r.Right(), r.Top),
		Pt(r.Right(), r.Bottom()),
		Pt(r.Left, r.Bottom()),
	}
}

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return BoundingBox(r.TopLeft(), r.BottomRight(), s.TopLeft(), s.BottomRight())
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Intersects reports whether r and s overlap, touching edges included.
func (r Rect) Intersects(s Rect) bool {
	return r.Left <= s.Right() && s.Left <= r.Right() &&
		r.Top <= s.Bottom() && s.Top <= r.Bottom()
}

// Transform returns the bounding box of r's corners mapped through m.
func (r Rect) Transform(m Matrix) Rect {
	c := r.Corners()
	return BoundingBox(
		m.TransformPoint(c[0]), m.TransformPoint(c[1]),
		m.TransformPoint(c[2]), m.TransformPoint(c[3]),
	)
}

// Inset returns r grown by d on every side (shrunk for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Round returns r expanded outward to integer coordinates.
func (r Rect) Round() Rect {
	l, t := math.Floor(r.Left), math.Floor(r.Top)
	return Rect{Left: l, Top: t, Width: math.Ceil(r.Right()) - l, Height: math.Ceil(r.Bottom()) - t}
}
