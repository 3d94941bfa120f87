package scene

import (
	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
)

// Polyline is an open sequence of straight segments. A Polygon is the same
// node with the shape closed.
type Polyline struct {
	Object
	points     []easel.Point
	pathOffset easel.Point
	closed     bool
}

// NewPolyline creates an open polyline through points.
func NewPolyline(points []easel.Point, opts Record) *Polyline {
	return newPoly(points, opts, false)
}

// NewPolygon creates a closed polygon through points.
func NewPolygon(points []easel.Point, opts Record) *Polyline {
	return newPoly(points, opts, true)
}

func newPoly(points []easel.Point, opts Record, closed bool) *Polyline {
	p := &Polyline{closed: closed}
	p.init(p, opts)
	if points != nil {
		p.setPoints(points)
	}
	_, hasLeft := opts["left"]
	_, hasTop := opts["top"]
	if !hasLeft && !hasTop {
		p.SetPositionByOrigin(p.pathOffset, OriginCenter, OriginCenter)
	}
	return p
}

// Type implements Node.
func (p *Polyline) Type() string {
	if p.closed {
		return "Polygon"
	}
	return "Polyline"
}

func (p *Polyline) defaults() Record {
	d := objectDefaults()
	d["points"] = nil
	return d
}

func (p *Polyline) extraCacheProperties() []string { return []string{"points"} }

func (p *Polyline) setProperty(key string, v any) (bool, error) {
	if key != "points" {
		return false, nil
	}
	pts, ok := pointsFromValue(v)
	if !ok {
		return true, errInvalid(key, v)
	}
	p.setPoints(pts)
	return true, nil
}

func (p *Polyline) getProperty(key string) (any, bool) {
	if key == "points" {
		return p.points, true
	}
	return nil, false
}

func (p *Polyline) setPoints(pts []easel.Point) {
	p.points = pts
	if len(pts) == 0 {
		p.width, p.height = 0, 0
		p.pathOffset = easel.Point{}
		return
	}
	b := easel.BoundingBox(pts...)
	p.width, p.height = b.Width, b.Height
	p.pathOffset = b.Center()
}

// Points returns the vertices in absolute coordinates.
func (p *Polyline) Points() []easel.Point { return p.points }

// Outline implements Outliner.
func (p *Polyline) Outline() []path.Command {
	b := path.New()
	for i, pt := range p.points {
		x, y := pt.X-p.pathOffset.X, pt.Y-p.pathOffset.Y
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	if p.closed && len(p.points) > 0 {
		b.Close()
	}
	return b.Commands()
}

// DrawGeometry implements Node.
func (p *Polyline) DrawGeometry(d raster.Drawer) {
	p.renderPaintInOrder(d, p.Outline())
}

func (p *Polyline) extendRecord(rec Record, digits int) {
	pts := make([]any, len(p.points))
	for i, pt := range p.points {
		pts[i] = Record{"x": round(pt.X, digits), "y": round(pt.Y, digits)}
	}
	rec["points"] = pts
}

func pointsFromValue(v any) ([]easel.Point, bool) {
	switch pts := v.(type) {
	case nil:
		return nil, true
	case []easel.Point:
		return append([]easel.Point(nil), pts...), true
	case []any:
		out := make([]easel.Point, 0, len(pts))
		for _, e := range pts {
			r, ok := toRecord(e)
			if !ok {
				return nil, false
			}
			x, okX := toFloat(r["x"])
			y, okY := toFloat(r["y"])
			if !okX || !okY {
				return nil, false
			}
			out = append(out, easel.Pt(x, y))
		}
		return out, true
	}
	return nil, false
}
