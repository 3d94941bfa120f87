package brush

import (
	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
	"github.com/gogpu/easel/scene"
)

// Pencil draws a smoothed freehand line and commits it as a scene.Path.
type Pencil struct {
	Base

	// Decimate drops samples closer than this many screen pixels to the
	// previous kept sample on commit. Zero keeps every sample.
	Decimate float64

	// StraightLineKey, while held, replaces the last sample instead of
	// appending, so the stroke ends with a straight segment.
	StraightLineKey Modifiers

	points           []easel.Point
	drawStraightLine bool
	hasStraightLine  bool
	oldEnd           easel.Point
	hasOldEnd        bool
}

// NewPencil creates a pencil bound to h.
func NewPencil(h Host) *Pencil {
	return &Pencil{
		Base:            newBase(h),
		Decimate:        0.4,
		StraightLineKey: ModShift,
	}
}

// Points returns the samples of the stroke in progress.
func (p *Pencil) Points() []easel.Point { return p.points }

// NeedsFullRender implements Brush. A straight segment forces a full
// redraw for the rest of the stroke.
func (p *Pencil) NeedsFullRender() bool {
	return p.Base.NeedsFullRender() || p.hasStraightLine
}

// OnPointerDown implements Brush.
func (p *Pencil) OnPointerDown(pt easel.Point, mods Modifiers) {
	p.drawStraightLine = mods.Has(p.StraightLineKey)
	p.reset()
	// The first sample is taken twice so a click without movement still
	// shows a dot.
	p.addPoint(pt)
	p.addPoint(pt)
	p.Render()
}

// OnPointerMove implements Brush.
func (p *Pencil) OnPointerMove(pt easel.Point, mods Modifiers) {
	if p.LimitedToCanvasSize && p.isOutsideCanvas(pt) {
		return
	}
	p.drawStraightLine = mods.Has(p.StraightLineKey)
	if !p.addPoint(pt) || len(p.points) < 2 {
		return
	}
	if p.NeedsFullRender() {
		p.host.ClearTopContext()
		p.Render()
		return
	}
	n := len(p.points)
	p1, p2 := p.points[n-2], p.points[n-1]
	start := p1
	if p.hasOldEnd {
		start = p.oldEnd
	}
	mid := p1.MidPoint(p2)
	p.withTop(func(d raster.Drawer) {
		d.Stroke([]path.Command{
			path.MoveTo{Point: start},
			path.QuadTo{Control: p1, Point: mid},
		}, p.paint(), p.strokeStyle())
	})
	p.oldEnd, p.hasOldEnd = mid, true
}

// OnPointerUp implements Brush.
func (p *Pencil) OnPointerUp(Modifiers) bool {
	p.drawStraightLine = false
	p.hasOldEnd = false
	p.finalize()
	return false
}

// Render implements Brush.
func (p *Pencil) Render() {
	if len(p.points) == 0 {
		return
	}
	cmds := livePath(p.points, p.Width/1000)
	p.withTop(func(d raster.Drawer) {
		d.Stroke(cmds, p.paint(), p.strokeStyle())
	})
}

func (p *Pencil) reset() {
	p.points = p.points[:0]
	p.hasStraightLine = false
	p.hasOldEnd = false
}

// addPoint appends a sample and reports whether it was taken. A repeat of
// the last sample is dropped once the stroke has started.
func (p *Pencil) addPoint(pt easel.Point) bool {
	n := len(p.points)
	if n > 1 && pt == p.points[n-1] {
		return false
	}
	if p.drawStraightLine && n > 1 {
		p.hasStraightLine = true
		p.points = p.points[:n-1]
	}
	p.points = append(p.points, pt)
	return true
}

func (p *Pencil) finalize() {
	pts := p.points
	if p.Decimate > 0 {
		pts = DecimatePoints(pts, p.Decimate, p.host.Zoom())
	}
	cmds := SmoothPath(pts, p.Width/1000)
	p.points = nil
	if path.IsEmpty(cmds) {
		p.host.RequestRenderAll()
		return
	}
	p.commit(p.createPath(cmds))
}

func (p *Pencil) createPath(cmds []path.Command) *scene.Path {
	rec := scene.Record{
		"fill":             nil,
		"stroke":           p.Color,
		"strokeWidth":      p.Width,
		"strokeLineCap":    p.StrokeLineCap,
		"strokeLineJoin":   p.StrokeLineJoin,
		"strokeMiterLimit": p.StrokeMiterLimit,
		"strokeDashArray":  p.StrokeDashArray,
	}
	if sh := p.shadowCopy(); sh != nil {
		sh.AffectStroke = true
		rec["shadow"] = sh
	}
	return scene.NewPath(cmds, rec)
}

// livePath builds the stroke drawn during capture: quadratic curves through
// the midpoints of consecutive samples. Two equal samples are pulled apart
// by correction so the dot is visible.
func livePath(points []easel.Point, correction float64) []path.Command {
	p1 := points[0]
	p2 := p1
	if len(points) > 1 {
		p2 = points[1]
	}
	if len(points) == 2 && p1 == p2 {
		p1.X -= correction
		p2.X += correction
	}
	cmds := []path.Command{path.MoveTo{Point: p1}}
	for i := 1; i < len(points); i++ {
		cmds = append(cmds, path.QuadTo{Control: p1, Point: p1.MidPoint(p2)})
		p1 = points[i]
		if i+1 < len(points) {
			p2 = points[i+1]
		}
	}
	return append(cmds, path.LineTo{Point: p1})
}

// DecimatePoints drops samples closer than distance screen pixels to the
// last kept sample. The threshold shrinks as zoom grows. The first and last
// samples are always kept.
func DecimatePoints(points []easel.Point, distance, zoom float64) []easel.Point {
	if len(points) <= 2 {
		return append([]easel.Point(nil), points...)
	}
	if zoom <= 0 {
		zoom = 1
	}
	limit := (distance / zoom) * (distance / zoom)
	last := points[0]
	out := []easel.Point{last}
	for _, pt := range points[1 : len(points)-1] {
		if last.DistanceSquared(pt) > limit {
			last = pt
			out = append(out, pt)
		}
	}
	return append(out, points[len(points)-1])
}

// SmoothPath converts samples into quadratic curves through their
// midpoints. The path starts slightly before the first sample and ends
// slightly after the last, along the stroke direction, by correction.
//
// Without two distinct samples the result is the empty stroke sentinel,
// for which path.IsEmpty reports true.
func SmoothPath(points []easel.Point, correction float64) []path.Command {
	if !hasDistinct(points) {
		return emptyStroke()
	}
	p1, p2 := points[0], points[1]
	signX, signY := 1.0, 0.0
	many := len(points) > 2
	if many {
		signX = direction(points[2].X, p2.X)
		signY = direction(points[2].Y, p2.Y)
	}
	cmds := []path.Command{path.MoveTo{Point: easel.Pt(p1.X-signX*correction, p1.Y-signY*correction)}}
	i := 1
	for ; i < len(points); i++ {
		if p1 != p2 {
			cmds = append(cmds, path.QuadTo{Control: p1, Point: p1.MidPoint(p2)})
		}
		p1 = points[i]
		if i+1 < len(points) {
			p2 = points[i+1]
		}
	}
	if many {
		signX = direction(p1.X, points[i-2].X)
		signY = direction(p1.Y, points[i-2].Y)
	}
	return append(cmds, path.LineTo{Point: easel.Pt(p1.X+signX*correction, p1.Y+signY*correction)})
}

// direction returns the sign of a-b.
func direction(a, b float64) float64 {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

func hasDistinct(points []easel.Point) bool {
	for _, pt := range points[min(1, len(points)):] {
		if pt != points[0] {
			return true
		}
	}
	return false
}

func emptyStroke() []path.Command {
	return []path.Command{
		path.MoveTo{},
		path.QuadTo{},
		path.LineTo{},
	}
}
