package scene

import (
	"math"
	"strconv"

	"github.com/gogpu/easel"
)

// Origin names.
const (
	OriginLeft   = "left"
	OriginTop    = "top"
	OriginCenter = "center"
	OriginRight  = "right"
	OriginBottom = "bottom"
)

// resolveOrigin maps an origin name to its offset from the center as a
// fraction of the size: left/top -0.5, center 0, right/bottom 0.5. Numeric
// origins are fractions measured from the left or top edge.
func resolveOrigin(origin string) float64 {
	switch origin {
	case OriginLeft, OriginTop:
		return -0.5
	case OriginCenter, "":
		return 0
	case OriginRight, OriginBottom:
		return 0.5
	}
	if f, err := strconv.ParseFloat(origin, 64); err == nil {
		return f - 0.5
	}
	return 0
}

// dimensionOptions are the inputs of transformedDimensions.
type dimensionOptions struct {
	scaleX, scaleY float64
	skewX, skewY   float64
	width, height  float64
	strokeWidth    float64
}

func (o *Object) dimensionOptions() dimensionOptions {
	return dimensionOptions{
		scaleX: o.scaleX, scaleY: o.scaleY,
		skewX: o.skewX, skewY: o.skewY,
		width: o.width, height: o.height,
		strokeWidth: o.strokeWidth,
	}
}

// NonTransformedDimensions returns the size including the stroke, before
// scaling and skewing.
func (o *Object) NonTransformedDimensions() easel.Point {
	return easel.Pt(o.width+o.strokeWidth, o.height+o.strokeWidth)
}

// TransformedDimensions returns the size after scaling and skewing. A
// uniform stroke is added after scaling.
func (o *Object) TransformedDimensions() easel.Point {
	return o.transformedDimensions(o.dimensionOptions())
}

func (o *Object) transformedDimensions(d dimensionOptions) easel.Point {
	pre, post := d.strokeWidth, 0.0
	if o.strokeUniform {
		pre, post = 0, d.strokeWidth
	}
	dimX, dimY := d.width+pre, d.height+pre
	var out easel.Point
	if d.skewX == 0 && d.skewY == 0 {
		out = easel.Pt(dimX*d.scaleX, dimY*d.scaleY)
	} else {
		out = easel.SizeAfterTransform(dimX, dimY, easel.DimensionsMatrix(easel.TransformOptions{
			ScaleX: d.scaleX, ScaleY: d.scaleY, SkewX: d.skewX, SkewY: d.skewY,
		}))
	}
	return easel.Pt(out.X+post, out.Y+post)
}

// TranslateToGivenOrigin moves point from one origin anchor to another,
// ignoring rotation.
func (o *Object) TranslateToGivenOrigin(p easel.Point, fromX, fromY, toX, toY string) easel.Point {
	offX := resolveOrigin(toX) - resolveOrigin(fromX)
	offY := resolveOrigin(toY) - resolveOrigin(fromY)
	if offX != 0 || offY != 0 {
		dim := o.TransformedDimensions()
		p = easel.Pt(p.X+offX*dim.X, p.Y+offY*dim.Y)
	}
	return p
}

// TranslateToCenterPoint returns the center of the node when point is its
// (originX, originY) anchor.
func (o *Object) TranslateToCenterPoint(p easel.Point, originX, originY string) easel.Point {
	c := o.TranslateToGivenOrigin(p, originX, originY, OriginCenter, OriginCenter)
	if o.angle != 0 {
		return c.RotateAround(p, easel.DegreesToRadians(o.angle))
	}
	return c
}

// TranslateToOriginPoint returns the (originX, originY) anchor of the node
// when its center is at center.
func (o *Object) TranslateToOriginPoint(center easel.Point, originX, originY string) easel.Point {
	p := o.TranslateToGivenOrigin(center, OriginCenter, OriginCenter, originX, originY)
	if o.angle != 0 {
		return p.RotateAround(center, easel.DegreesToRadians(o.angle))
	}
	return p
}

// RelativeCenterPoint returns the center in the parent plane.
func (o *Object) RelativeCenterPoint() easel.Point {
	return o.TranslateToCenterPoint(easel.Pt(o.left, o.top), o.originX, o.originY)
}

// CenterPoint returns the center in the scene plane.
func (o *Object) CenterPoint() easel.Point {
	c := o.RelativeCenterPoint()
	if o.group != nil {
		return o.group.CalcTransformMatrix(false).TransformPoint(c)
	}
	return c
}

// PointByOrigin returns the given anchor of the node in the parent plane.
func (o *Object) PointByOrigin(originX, originY string) easel.Point {
	return o.TranslateToOriginPoint(o.RelativeCenterPoint(), originX, originY)
}

// SetPositionByOrigin moves the node so its (originX, originY) anchor lies
// at pos in the parent plane.
func (o *Object) SetPositionByOrigin(pos easel.Point, originX, originY string) {
	center := o.TranslateToCenterPoint(pos, originX, originY)
	p := o.TranslateToOriginPoint(center, o.originX, o.originY)
	o.Set("left", p.X)
	o.Set("top", p.Y)
}

// CalcOwnMatrix returns the transform from the node plane to the parent
// plane.
func (o *Object) CalcOwnMatrix() easel.Matrix {
	c := o.RelativeCenterPoint()
	return easel.ComposeMatrix(easel.TransformOptions{
		Angle:      o.angle,
		TranslateX: c.X,
		TranslateY: c.Y,
		ScaleX:     o.scaleX,
		ScaleY:     o.scaleY,
		SkewX:      o.skewX,
		SkewY:      o.skewY,
		FlipX:      o.flipX,
		FlipY:      o.flipY,
	})
}

// CalcTransformMatrix returns the transform from the node plane to the
// scene plane, or to the parent plane when skipGroup is set.
func (o *Object) CalcTransformMatrix(skipGroup bool) easel.Matrix {
	m := o.CalcOwnMatrix()
	if skipGroup || o.group == nil {
		return m
	}
	return o.group.CalcTransformMatrix(false).Multiply(m)
}

// ViewportTransform returns the host's viewport transform, or identity.
func (o *Object) ViewportTransform() easel.Matrix {
	if h := o.Host(); h != nil {
		return h.ViewportTransform()
	}
	return easel.Identity()
}

// relativeCoords returns the four corners tl, tr, br, bl in the parent plane.
func (o *Object) relativeCoords() [4]easel.Point {
	c := o.RelativeCenterPoint()
	m := easel.Translate(c.X, c.Y)
	if o.angle != 0 {
		m = m.Multiply(easel.Rotate(easel.DegreesToRadians(o.angle)))
	}
	dim := o.TransformedDimensions()
	w, h := dim.X/2, dim.Y/2
	return [4]easel.Point{
		m.TransformPoint(easel.Pt(-w, -h)),
		m.TransformPoint(easel.Pt(w, -h)),
		m.TransformPoint(easel.Pt(w, h)),
		m.TransformPoint(easel.Pt(-w, h)),
	}
}

// Coords returns the corners tl, tr, br, bl in the scene plane.
func (o *Object) Coords() [4]easel.Point {
	pts := o.relativeCoords()
	if o.group != nil {
		t := o.group.CalcTransformMatrix(false)
		for i := range pts {
			pts[i] = t.TransformPoint(pts[i])
		}
	}
	return pts
}

// BoundingRect returns the axis-aligned bounding box in the scene plane.
func (o *Object) BoundingRect() easel.Rect {
	pts := o.Coords()
	return easel.BoundingBox(pts[:]...)
}

// ContainsPoint reports whether p, in the scene plane, lies inside the
// node's transformed bounding box.
func (o *Object) ContainsPoint(p easel.Point) bool {
	pts := o.Coords()
	return pointInPolygon(p, pts[:])
}

// IntersectsWithRect reports whether any edge of the node's box crosses an
// edge of r.
func (o *Object) IntersectsWithRect(r easel.Rect) bool {
	pts := o.Coords()
	rc := r.Corners()
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		for j := range rc {
			if segmentsIntersect(a, b, rc[j], rc[(j+1)%len(rc)]) {
				return true
			}
		}
	}
	return false
}

// IsOnScreen reports whether any part of the node is inside the host's
// visible region. Nodes without a host are never on screen.
func (o *Object) IsOnScreen() bool {
	h := o.Host()
	if h == nil {
		return false
	}
	vp := h.ViewportBounds()
	pts := o.Coords()
	for _, p := range pts {
		if p.X >= vp.Left && p.X <= vp.Right() && p.Y >= vp.Top && p.Y <= vp.Bottom() {
			return true
		}
	}
	if o.IntersectsWithRect(vp) {
		return true
	}
	return o.ContainsPoint(vp.Center())
}

// ObjectScaling returns the absolute scale from the node plane to the scene
// plane.
func (o *Object) ObjectScaling() easel.Point {
	if o.group == nil {
		return easel.Pt(math.Abs(o.scaleX), math.Abs(o.scaleY))
	}
	d := easel.QRDecompose(o.CalcTransformMatrix(false))
	return easel.Pt(math.Abs(d.ScaleX), math.Abs(d.ScaleY))
}

// TotalObjectScaling returns ObjectScaling multiplied by the host's zoom and
// retina scaling.
func (o *Object) TotalObjectScaling() easel.Point {
	s := o.ObjectScaling()
	if h := o.Host(); h != nil {
		f := h.Zoom() * h.RetinaScaling()
		return s.Mul(f)
	}
	return s
}

// ObjectOpacity returns the opacity multiplied through the parent chain.
func (o *Object) ObjectOpacity() float64 {
	op := o.opacity
	if o.group != nil {
		op *= o.group.ObjectOpacity()
	}
	return op
}

func (o *Object) retinaScaling() float64 {
	if h := o.Host(); h != nil {
		return h.RetinaScaling()
	}
	return 1
}

// applyTransform sets the node's transform properties so that its own
// matrix equals m. SkewY and flips are folded into the other components.
func (o *Object) applyTransform(m easel.Matrix) {
	d := easel.QRDecompose(m)
	o.Set("flipX", false)
	o.Set("flipY", false)
	o.Set("angle", d.Angle)
	o.Set("skewX", d.SkewX)
	o.Set("skewY", 0.0)
	o.Set("scaleX", d.ScaleX)
	o.Set("scaleY", d.ScaleY)
	o.SetPositionByOrigin(easel.Pt(d.TranslateX, d.TranslateY), OriginCenter, OriginCenter)
}

// pointInPolygon uses the even-odd ray casting rule.
func pointInPolygon(p easel.Point, poly []easel.Point) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func segmentsIntersect(a1, a2, b1, b2 easel.Point) bool {
	d := (b2.Y-b1.Y)*(a2.X-a1.X) - (b2.X-b1.X)*(a2.Y-a1.Y)
	if d == 0 {
		return false
	}
	ua := ((b2.X-b1.X)*(a1.Y-b1.Y) - (b2.Y-b1.Y)*(a1.X-b1.X)) / d
	ub := ((a2.X-a1.X)*(a1.Y-b1.Y) - (a2.Y-a1.Y)*(a1.X-b1.X)) / d
	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}
