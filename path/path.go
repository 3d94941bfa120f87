package path

import (
	"math"

	"github.com/gogpu/easel"
)

// kappa is the cubic control distance approximating a quarter circle.
const kappa = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)

// Path builds a sequence of normalized commands.
type Path struct {
	cmds    []Command
	start   easel.Point // Starting point of current subpath
	current easel.Point // Current point
}

// New creates a new empty path.
func New() *Path {
	return &Path{cmds: make([]Command, 0, 16)}
}

// FromCommands creates a path holding a copy of cmds.
func FromCommands(cmds []Command) *Path {
	p := New()
	for _, c := range cmds {
		p.Append(c)
	}
	return p
}

// Append adds a command, keeping the current point in sync.
func (p *Path) Append(c Command) {
	switch c := c.(type) {
	case MoveTo:
		p.start = c.Point
		p.current = c.Point
	case Close:
		p.current = p.start
	default:
		p.current, _ = EndPoint(c)
	}
	p.cmds = append(p.cmds, c)
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	p.Append(MoveTo{Point: easel.Pt(x, y)})
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	p.Append(LineTo{Point: easel.Pt(x, y)})
}

// QuadTo draws a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Append(QuadTo{Control: easel.Pt(cx, cy), Point: easel.Pt(x, y)})
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.Append(CubicTo{Control1: easel.Pt(c1x, c1y), Control2: easel.Pt(c2x, c2y), Point: easel.Pt(x, y)})
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.Append(Close{})
}

// Clear removes all commands from the path.
func (p *Path) Clear() {
	p.cmds = p.cmds[:0]
	p.start = easel.Point{}
	p.current = easel.Point{}
}

// Commands returns the path commands. The slice must not be modified.
func (p *Path) Commands() []Command {
	return p.cmds
}

// Len returns the number of commands.
func (p *Path) Len() int {
	return len(p.cmds)
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() easel.Point {
	return p.current
}

// HasCurrentPoint returns true if the path has a current point.
func (p *Path) HasCurrentPoint() bool {
	return len(p.cmds) > 0
}

// Transform returns a new path with every point mapped through m.
func (p *Path) Transform(m easel.Matrix) *Path {
	return FromCommands(Transform(p.cmds, m))
}

// Translate returns a new path moved by (dx, dy).
func (p *Path) Translate(dx, dy float64) *Path {
	return p.Transform(easel.Translate(dx, dy))
}

// Bounds returns the exact bounding box of the path.
func (p *Path) Bounds() easel.Rect {
	return Bounds(p.cmds, nil)
}

// String returns the path data at full precision.
func (p *Path) String() string {
	return Join(p.cmds, -1)
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	return &Path{
		cmds:    append([]Command(nil), p.cmds...),
		start:   p.start,
		current: p.current,
	}
}

// Rect adds a closed rectangle to the path.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// RoundRect adds a rectangle whose corners are elliptical with radii rx, ry.
// Radii are clamped to half the matching side.
func (p *Path) RoundRect(x, y, w, h, rx, ry float64) {
	rx = math.Min(math.Max(rx, 0), w/2)
	ry = math.Min(math.Max(ry, 0), h/2)
	if rx == 0 || ry == 0 {
		p.Rect(x, y, w, h)
		return
	}
	k := 1 - kappa
	p.MoveTo(x+rx, y)
	p.LineTo(x+w-rx, y)
	p.CubicTo(x+w-k*rx, y, x+w, y+k*ry, x+w, y+ry)
	p.LineTo(x+w, y+h-ry)
	p.CubicTo(x+w, y+h-k*ry, x+w-k*rx, y+h, x+w-rx, y+h)
	p.LineTo(x+rx, y+h)
	p.CubicTo(x+k*rx, y+h, x, y+h-k*ry, x, y+h-ry)
	p.LineTo(x, y+ry)
	p.CubicTo(x, y+k*ry, x+k*rx, y, x+rx, y)
	p.Close()
}

// Ellipse adds a closed ellipse to the path.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	ox := rx * kappa
	oy := ry * kappa

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Circle adds a closed circle to the path.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Arc adds a circular arc around (cx, cy) from angle1 to angle2 in radians,
// clockwise on screen unless ccw is set. Like a canvas arc, it starts with a
// line from the current point or a move on an empty path.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64, ccw bool) {
	const twoPi = 2 * math.Pi
	sweep := angle2 - angle1
	switch {
	case !ccw && sweep >= twoPi, ccw && -sweep >= twoPi:
		if ccw {
			sweep = -twoPi
		} else {
			sweep = twoPi
		}
	case !ccw:
		sweep = math.Mod(sweep, twoPi)
		if sweep < 0 {
			sweep += twoPi
		}
	default:
		sweep = math.Mod(sweep, twoPi)
		if sweep > 0 {
			sweep -= twoPi
		}
	}

	start := easel.Pt(cx+r*math.Cos(angle1), cy+r*math.Sin(angle1))
	if p.HasCurrentPoint() {
		p.LineTo(start.X, start.Y)
	} else {
		p.MoveTo(start.X, start.Y)
	}
	if sweep == 0 {
		return
	}

	// Maximum 90 degrees per segment
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	for i := range n {
		a1 := angle1 + float64(i)*step
		p.arcSegment(cx, cy, r, a1, a1+step)
	}
}

// arcSegment adds a single arc segment of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	alpha := 4.0 / 3.0 * math.Tan((a2-a1)/4)

	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2

	p.CubicTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2,
	)
}
