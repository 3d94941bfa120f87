package path

import (
	"strconv"
	"strings"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/cache"
)

// BoundsCache memoizes BoundsOfCurve results keyed by the joined argument
// list. It is bounded; a nil *BoundsCache disables memoization.
type BoundsCache struct {
	lru *cache.LRU[string, [2]easel.Point]
}

// NewBoundsCache returns a memo holding at most size curves.
func NewBoundsCache(size int) *BoundsCache {
	return &BoundsCache{lru: cache.New[string, [2]easel.Point](size)}
}

// Stats returns the memo counters.
func (c *BoundsCache) Stats() cache.Stats {
	return c.lru.Stats()
}

func curveKey(p0, p1, p2, p3 easel.Point) string {
	var b strings.Builder
	for i, v := range [8]float64{p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y} {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}

// BoundsOfCurve returns the min and max corners of the cubic Bezier p0..p3.
// Interior extrema come from the roots of the derivative on each axis.
func BoundsOfCurve(p0, p1, p2, p3 easel.Point, memo *BoundsCache) [2]easel.Point {
	if memo == nil {
		return boundsOfCurve(p0, p1, p2, p3)
	}
	return memo.lru.GetOrCreate(curveKey(p0, p1, p2, p3), func() [2]easel.Point {
		return boundsOfCurve(p0, p1, p2, p3)
	})
}

func boundsOfCurve(p0, p1, p2, p3 easel.Point) [2]easel.Point {
	ts := make([]float64, 0, 4)
	for axis := range 2 {
		v0, v1, v2, v3 := p0.X, p1.X, p2.X, p3.X
		if axis == 1 {
			v0, v1, v2, v3 = p0.Y, p1.Y, p2.Y, p3.Y
		}
		// Derivative / 3 written as a*t^2 + b*t + c.
		b := 6*v0 - 12*v1 + 6*v2
		a := -3*v0 + 9*v1 - 9*v2 + 3*v3
		c := 3*v1 - 3*v0
		ts = append(ts, rootsInOpenUnit(a, b, c)...)
	}

	lo, hi := p0.Min(p3), p0.Max(p3)
	for _, t := range ts {
		p := CubicPoint(p0, p1, p2, p3, t)
		lo, hi = lo.Min(p), hi.Max(p)
	}
	return [2]easel.Point{lo, hi}
}

// CubicPoint evaluates a cubic Bezier at t.
func CubicPoint(p0, p1, p2, p3 easel.Point, t float64) easel.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return easel.Pt(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

// QuadPoint evaluates a quadratic Bezier at t.
func QuadPoint(p0, p1, p2 easel.Point, t float64) easel.Point {
	mt := 1 - t
	return easel.Pt(
		mt*mt*p0.X+2*mt*t*p1.X+t*t*p2.X,
		mt*mt*p0.Y+2*mt*t*p1.Y+t*t*p2.Y,
	)
}

// ElevateQuad returns the cubic control points equivalent to the quadratic
// p0, c, p2.
func ElevateQuad(p0, c, p2 easel.Point) (easel.Point, easel.Point) {
	return p0.Lerp(c, 2.0/3.0), p2.Lerp(c, 2.0/3.0)
}

// Bounds returns the bounding box of cmds. Every move point counts, even
// one that starts no segment, and a close counts as a line back to the
// subpath start.
func Bounds(cmds []Command, memo *BoundsCache) easel.Rect {
	var (
		pts        []easel.Point
		cur, start easel.Point
	)
	for _, c := range cmds {
		switch c := c.(type) {
		case MoveTo:
			pts = append(pts, c.Point)
			cur, start = c.Point, c.Point
		case LineTo:
			pts = append(pts, cur, c.Point)
			cur = c.Point
		case QuadTo:
			c1, c2 := ElevateQuad(cur, c.Control, c.Point)
			b := BoundsOfCurve(cur, c1, c2, c.Point, memo)
			pts = append(pts, b[0], b[1])
			cur = c.Point
		case CubicTo:
			b := BoundsOfCurve(cur, c.Control1, c.Control2, c.Point, memo)
			pts = append(pts, b[0], b[1])
			cur = c.Point
		case Close:
			pts = append(pts, cur, start)
			cur = start
		}
	}
	return easel.BoundingBox(pts...)
}
