package stroke

import (
	"math"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
)

// DefaultTolerance is the default curve flattening tolerance.
const DefaultTolerance = 0.25

// Expander converts stroked paths to filled outlines.
// This follows the kurbo stroke expansion algorithm.
type Expander struct {
	style Style

	// Tolerance for curve flattening and join skipping.
	tolerance float64

	forward  []path.Command
	backward []path.Command
	output   *path.Path

	startPt   easel.Point
	startNorm easel.Point
	startTan  easel.Point
	lastPt    easel.Point
	lastTan   easel.Point
	lastNorm  easel.Point // normal at lastPt scaled by the half width

	// drawn is set when the subpath had a drawing command, even one of
	// zero length.
	drawn bool

	joinThresh float64
}

// NewExpander creates an expander for style.
func NewExpander(style Style) *Expander {
	if style.MiterLimit <= 0 {
		style.MiterLimit = 4
	}
	return &Expander{style: style, tolerance: DefaultTolerance}
}

// SetTolerance sets the curve flattening tolerance.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Outline strokes cmds with style, applying its dash pattern first.
func Outline(cmds []path.Command, style Style, tolerance float64) []path.Command {
	if style.Width <= 0 {
		return nil
	}
	if style.Dash.IsDashed() {
		cmds = style.Dash.Apply(cmds, tolerance)
	}
	e := NewExpander(style)
	e.SetTolerance(tolerance)
	return e.Expand(cmds)
}

// Expand converts a stroked path to a fill path.
func (e *Expander) Expand(cmds []path.Command) []path.Command {
	e.reset()

	for _, c := range cmds {
		switch c := c.(type) {
		case path.MoveTo:
			e.finish()
			e.startPt = c.Point
			e.lastPt = c.Point
		case path.LineTo:
			e.drawn = true
			if c.Point != e.lastPt {
				e.segment(c.Point)
			}
		case path.QuadTo:
			e.drawn = true
			e.polyline(flattenQuad(e.lastPt, c.Control, c.Point, e.tolerance))
		case path.CubicTo:
			e.drawn = true
			e.polyline(flattenCubic(e.lastPt, c.Control1, c.Control2, c.Point, e.tolerance))
		case path.Close:
			e.drawn = true
			if e.lastPt != e.startPt {
				e.segment(e.startPt)
			}
			e.finishClosed()
		}
	}

	e.finish()
	return e.output.Commands()
}

func (e *Expander) reset() {
	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
	e.output = path.New()
	e.startPt = easel.Point{}
	e.startNorm = easel.Point{}
	e.startTan = easel.Point{}
	e.lastPt = easel.Point{}
	e.lastTan = easel.Point{}
	e.lastNorm = easel.Point{}
	e.drawn = false
	e.joinThresh = 2.0 * e.tolerance / e.style.Width
}

func (e *Expander) segment(to easel.Point) {
	tangent := to.Sub(e.lastPt)
	e.doJoin(tangent)
	e.lastTan = tangent
	e.doLine(tangent, to)
}

func (e *Expander) polyline(points []easel.Point) {
	for i := 1; i < len(points); i++ {
		if points[i].Sub(points[i-1]).LengthSquared() > 1e-10 {
			e.segment(points[i])
		}
	}
}

// perp rotates v 90 degrees counter-clockwise.
func perp(v easel.Point) easel.Point {
	return easel.Pt(-v.Y, v.X)
}

// normal returns the normal of tangent scaled to half the stroke width.
func (e *Expander) normal(tangent easel.Point) easel.Point {
	return perp(tangent).Mul(0.5 * e.style.Width / tangent.Length())
}

// doJoin handles joining the current segment to the previous one.
func (e *Expander) doJoin(tan0 easel.Point) {
	norm := e.normal(tan0)
	p0 := e.lastPt

	if len(e.forward) == 0 {
		e.forward = append(e.forward, path.MoveTo{Point: p0.Sub(norm)})
		e.backward = append(e.backward, path.MoveTo{Point: p0.Add(norm)})
		e.startTan = tan0
		e.startNorm = norm
		return
	}
	e.joinWithPrevious(p0, norm, tan0)
}

func (e *Expander) lineForward(p easel.Point) {
	e.forward = append(e.forward, path.LineTo{Point: p})
}

func (e *Expander) lineBackward(p easel.Point) {
	e.backward = append(e.backward, path.LineTo{Point: p})
}

func (e *Expander) joinWithPrevious(p0, norm, tan0 easel.Point) {
	ab := e.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly straight continuation: connect without a join shape.
	if dot > 0.0 && math.Abs(cross) < hypot*e.joinThresh {
		e.lineForward(p0.Sub(norm))
		e.lineBackward(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case JoinBevel:
		e.lineForward(p0.Sub(norm))
		e.lineBackward(p0.Add(norm))
	case JoinMiter:
		limitSq := e.style.MiterLimit * e.style.MiterLimit
		if 2.0*hypot < (hypot+dot)*limitSq {
			e.miter(p0, norm, ab, cd, cross)
		}
		e.lineForward(p0.Sub(norm))
		e.lineBackward(p0.Add(norm))
	case JoinRound:
		lastNorm := e.normal(ab)
		angle := math.Atan2(cross, dot)
		if angle > 0.0 {
			e.lineBackward(p0.Add(norm))
			e.forward = appendArc(e.forward, p0, lastNorm.Mul(-1), angle)
		} else {
			e.lineForward(p0.Sub(norm))
			e.backward = appendArc(e.backward, p0, lastNorm, angle)
		}
	}
}

// miter adds the miter tip on the outer side and pivots the inner side
// through the join point.
func (e *Expander) miter(p0, norm, ab, cd easel.Point, cross float64) {
	lastNorm := e.normal(ab)
	if cross > 0.0 {
		fpLast := p0.Sub(lastNorm)
		fpThis := p0.Sub(norm)
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		e.lineForward(fpThis.Sub(cd.Mul(h)))
		e.lineBackward(p0)
	} else if cross < 0.0 {
		fpLast := p0.Add(lastNorm)
		fpThis := p0.Add(norm)
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		e.lineBackward(fpThis.Sub(cd.Mul(h)))
		e.lineForward(p0)
	}
}

// doLine extends both paths with a line segment.
func (e *Expander) doLine(tangent, p1 easel.Point) {
	norm := e.normal(tangent)
	e.lineForward(p1.Sub(norm))
	e.lineBackward(p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish completes an open subpath with caps.
func (e *Expander) finish() {
	if len(e.forward) == 0 {
		if e.drawn {
			e.dot(e.lastPt)
		}
		e.drawn = false
		return
	}

	e.appendAll(e.forward)
	e.applyCap(e.lastPt, e.lastNorm.Mul(-1), false)
	e.appendReversed(e.backward)
	e.applyCap(e.startPt, e.startNorm, true)

	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
	e.drawn = false
}

// dot draws the caps of a zero-length subpath, facing along +x.
func (e *Expander) dot(center easel.Point) {
	r := e.style.Width / 2
	switch e.style.Cap {
	case CapRound:
		e.output.Circle(center.X, center.Y, r)
	case CapSquare:
		e.output.Rect(center.X-r, center.Y-r, 2*r, 2*r)
	}
}

// finishClosed completes a closed subpath as two rings.
func (e *Expander) finishClosed() {
	if len(e.forward) == 0 {
		e.drawn = false
		return
	}

	e.doJoin(e.startTan)

	e.appendAll(e.forward)
	e.output.Close()

	if n := len(e.backward); n > 0 {
		end, _ := path.EndPoint(e.backward[n-1])
		e.output.MoveTo(end.X, end.Y)
	}
	e.appendReversed(e.backward)
	e.output.Close()

	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
	e.drawn = false
}

// applyCap adds a cap at center. norm points from center to the side the
// outline currently is on.
func (e *Expander) applyCap(center, norm easel.Point, closePath bool) {
	switch e.style.Cap {
	case CapButt:
		if !closePath {
			back := center.Sub(norm)
			e.output.LineTo(back.X, back.Y)
		}
	case CapRound:
		cmds := appendArc(nil, center, norm, math.Pi)
		for _, c := range cmds {
			e.output.Append(c)
		}
	case CapSquare:
		p1 := capPoint(center, norm, 1, 1)
		p2 := capPoint(center, norm, -1, 1)
		e.output.LineTo(p1.X, p1.Y)
		e.output.LineTo(p2.X, p2.Y)
		if !closePath {
			p3 := capPoint(center, norm, -1, 0)
			e.output.LineTo(p3.X, p3.Y)
		}
	}
	if closePath {
		e.output.Close()
	}
}

// capPoint maps (x, y) through [norm.x, norm.y, -norm.y, norm.x, center].
func capPoint(center, norm easel.Point, x, y float64) easel.Point {
	return easel.Pt(
		norm.X*x-norm.Y*y+center.X,
		norm.Y*x+norm.X*y+center.Y,
	)
}

func (e *Expander) appendAll(cmds []path.Command) {
	for _, c := range cmds {
		e.output.Append(c)
	}
}

// appendReversed appends cmds walked backwards, skipping the leading move.
func (e *Expander) appendReversed(cmds []path.Command) {
	for i := len(cmds) - 1; i >= 1; i-- {
		end, _ := path.EndPoint(cmds[i-1])
		switch c := cmds[i].(type) {
		case path.LineTo:
			e.output.LineTo(end.X, end.Y)
		case path.CubicTo:
			e.output.CubicTo(c.Control2.X, c.Control2.Y, c.Control1.X, c.Control1.Y, end.X, end.Y)
		}
	}
}

// appendArc appends cubic segments of a circular arc around center that
// starts at center+norm and turns by angle radians.
func appendArc(dst []path.Command, center, norm easel.Point, angle float64) []path.Command {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	a := norm.Angle()
	r := norm.Length()
	k := 4.0 / 3.0 * math.Tan(step/4)
	for range n {
		sin0, cos0 := math.Sincos(a)
		sin1, cos1 := math.Sincos(a + step)
		p1 := easel.Pt(center.X+r*cos0, center.Y+r*sin0)
		p2 := easel.Pt(center.X+r*cos1, center.Y+r*sin1)
		dst = append(dst, path.CubicTo{
			Control1: easel.Pt(p1.X-k*r*sin0, p1.Y+k*r*cos0),
			Control2: easel.Pt(p2.X+k*r*sin1, p2.Y-k*r*cos1),
			Point:    p2,
		})
		a += step
	}
	return dst
}
