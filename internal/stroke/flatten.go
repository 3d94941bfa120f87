package stroke

import (
	"math"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
)

// maxDepth bounds curve subdivision.
const maxDepth = 16

// flattenQuad flattens a quadratic Bezier curve to points, p0 included.
func flattenQuad(p0, p1, p2 easel.Point, tolerance float64) []easel.Point {
	points := []easel.Point{p0}
	flattenQuadRec(p0, p1, p2, tolerance, 0, &points)
	return points
}

func flattenQuadRec(p0, p1, p2 easel.Point, tolerance float64, depth int, points *[]easel.Point) {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	flattenQuadRec(p0, q0, q2, tolerance, depth+1, points)
	flattenQuadRec(q2, q1, p2, tolerance, depth+1, points)
}

// flattenCubic flattens a cubic Bezier curve to points, p0 included.
func flattenCubic(p0, p1, p2, p3 easel.Point, tolerance float64) []easel.Point {
	points := []easel.Point{p0}
	flattenCubicRec(p0, p1, p2, p3, tolerance, 0, &points)
	return points
}

func flattenCubicRec(p0, p1, p2, p3 easel.Point, tolerance float64, depth int, points *[]easel.Point) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || dist < tolerance {
		*points = append(*points, p3)
		return
	}

	// Subdivide using de Casteljau's algorithm
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine calculates the distance from p to the segment (a, b).
func distanceToLine(p, a, b easel.Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-10 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / (abLen * abLen)
	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

// Polyline is a flattened subpath.
type Polyline struct {
	Points []easel.Point
	Closed bool
}

// Flatten converts cmds into polylines, one per subpath.
func Flatten(cmds []path.Command, tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var (
		out   []Polyline
		cur   *Polyline
		last  easel.Point
		start easel.Point
	)
	begin := func(p easel.Point) {
		out = append(out, Polyline{Points: []easel.Point{p}})
		cur = &out[len(out)-1]
	}
	for _, c := range cmds {
		switch c := c.(type) {
		case path.MoveTo:
			begin(c.Point)
			last, start = c.Point, c.Point
			continue
		case path.Close:
			if cur != nil {
				cur.Closed = true
			}
			cur = nil
			last = start
			continue
		}
		if cur == nil {
			begin(last)
		}
		switch c := c.(type) {
		case path.LineTo:
			cur.Points = append(cur.Points, c.Point)
			last = c.Point
		case path.QuadTo:
			cur.Points = append(cur.Points, flattenQuad(last, c.Control, c.Point, tolerance)[1:]...)
			last = c.Point
		case path.CubicTo:
			cur.Points = append(cur.Points, flattenCubic(last, c.Control1, c.Control2, c.Point, tolerance)[1:]...)
			last = c.Point
		}
	}
	return out
}
