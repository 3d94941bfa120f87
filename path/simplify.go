package path

import "github.com/gogpu/easel"

// Simplify converts raw segments to absolute commands. It tracks the current
// point and the subpath start (reset by close), expands H/V to lines,
// reflects smooth-curve controls when the previous command was the matching
// curve type and converts arcs to cubic Beziers.
//
// Simplify is idempotent: Simplify(Segments(Simplify(s))) equals Simplify(s).
func Simplify(segs []Segment) []Command {
	var (
		out      = make([]Command, 0, len(segs))
		x, y     float64 // current point
		x1, y1   float64 // subpath start
		ctrlX    float64
		ctrlY    float64
		previous byte
	)
	for _, s := range segs {
		a := s.Args
		if len(a) < argCount(s.Op) {
			continue
		}
		var converted byte
		switch s.Op {
		case 'l':
			x, y = x+a[0], y+a[1]
			out = append(out, LineTo{Point: easel.Pt(x, y)})
			converted = 'L'
		case 'L':
			x, y = a[0], a[1]
			out = append(out, LineTo{Point: easel.Pt(x, y)})
			converted = 'L'
		case 'h':
			x += a[0]
			out = append(out, LineTo{Point: easel.Pt(x, y)})
			converted = 'L'
		case 'H':
			x = a[0]
			out = append(out, LineTo{Point: easel.Pt(x, y)})
			converted = 'L'
		case 'v':
			y += a[0]
			out = append(out, LineTo{Point: easel.Pt(x, y)})
			converted = 'L'
		case 'V':
			y = a[0]
			out = append(out, LineTo{Point: easel.Pt(x, y)})
			converted = 'L'
		case 'm', 'M':
			if s.Op == 'm' {
				x, y = x+a[0], y+a[1]
			} else {
				x, y = a[0], a[1]
			}
			x1, y1 = x, y
			out = append(out, MoveTo{Point: easel.Pt(x, y)})
			converted = 'M'
		case 'c', 'C':
			c1x, c1y, c2x, c2y, ex, ey := a[0], a[1], a[2], a[3], a[4], a[5]
			if s.Op == 'c' {
				c1x, c1y, c2x, c2y, ex, ey = c1x+x, c1y+y, c2x+x, c2y+y, ex+x, ey+y
			}
			ctrlX, ctrlY = c2x, c2y
			x, y = ex, ey
			out = append(out, CubicTo{Control1: easel.Pt(c1x, c1y), Control2: easel.Pt(c2x, c2y), Point: easel.Pt(x, y)})
			converted = 'C'
		case 's', 'S':
			c2x, c2y, ex, ey := a[0], a[1], a[2], a[3]
			if s.Op == 's' {
				c2x, c2y, ex, ey = c2x+x, c2y+y, ex+x, ey+y
			}
			var c1x, c1y float64
			if previous == 'C' {
				c1x, c1y = 2*x-ctrlX, 2*y-ctrlY
			} else {
				c1x, c1y = x, y
			}
			ctrlX, ctrlY = c2x, c2y
			x, y = ex, ey
			out = append(out, CubicTo{Control1: easel.Pt(c1x, c1y), Control2: easel.Pt(c2x, c2y), Point: easel.Pt(x, y)})
			converted = 'C'
		case 'q', 'Q':
			cx, cy, ex, ey := a[0], a[1], a[2], a[3]
			if s.Op == 'q' {
				cx, cy, ex, ey = cx+x, cy+y, ex+x, ey+y
			}
			ctrlX, ctrlY = cx, cy
			x, y = ex, ey
			out = append(out, QuadTo{Control: easel.Pt(cx, cy), Point: easel.Pt(x, y)})
			converted = 'Q'
		case 't', 'T':
			ex, ey := a[0], a[1]
			if s.Op == 't' {
				ex, ey = ex+x, ey+y
			}
			if previous == 'Q' {
				ctrlX, ctrlY = 2*x-ctrlX, 2*y-ctrlY
			} else {
				ctrlX, ctrlY = x, y
			}
			x, y = ex, ey
			out = append(out, QuadTo{Control: easel.Pt(ctrlX, ctrlY), Point: easel.Pt(x, y)})
			converted = 'Q'
		case 'a', 'A':
			ex, ey := a[5], a[6]
			if s.Op == 'a' {
				ex, ey = ex+x, ey+y
			}
			out = append(out, ArcToCubics(easel.Pt(x, y), a[0], a[1], a[2], a[3] != 0, a[4] != 0, easel.Pt(ex, ey))...)
			x, y = ex, ey
		case 'z', 'Z':
			x, y = x1, y1
			out = append(out, Close{})
			converted = 'Z'
		}
		previous = converted
	}
	return out
}
