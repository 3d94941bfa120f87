package scene

import (
	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
)

// clippingFill is the paint of a node drawn as a clip silhouette.
const clippingFill = Color("rgb(0,0,0)")

// Render draws the node into d. The transform of d maps the parent plane to
// device pixels, or the scene plane for top-level nodes. Nodes that are
// invisible, or top-level and off screen when the host skips those, draw
// nothing. The drawer state is restored before Render returns.
func (o *Object) Render(d raster.Drawer) {
	if o.IsNotVisible() {
		return
	}
	if h := o.Host(); h != nil && h.SkipOffscreen() && o.group == nil && !o.IsOnScreen() {
		return
	}
	d.Save()
	defer d.Restore()

	o.setupCompositeOperation(d)
	o.transform(d)
	o.setOpacity(d)
	o.setShadow(d)
	if o.ShouldCache() {
		o.RenderCache(false)
		o.drawCacheOnCanvas(d)
	} else {
		o.removeCache()
		o.drawObject(d, false)
		o.dirty = false
	}
}

func (o *Object) setupCompositeOperation(d raster.Drawer) {
	if op, ok := raster.ParseCompositeOp(o.globalCompositeOperation); ok && op != raster.SourceOver {
		d.SetCompositeOp(op)
	}
}

// transform applies the node matrix. Inside a group render only the own
// matrix is needed; otherwise, and on the host's top layer, the full chain
// is applied.
func (o *Object) transform(d raster.Drawer) {
	full := o.group != nil && !o.group.transformDone
	if o.group != nil && !full {
		if h := o.Host(); h != nil {
			if top := h.TopContext(); top != nil && top == d {
				full = true
			}
		}
	}
	d.Transform(o.CalcTransformMatrix(!full))
}

func (o *Object) setOpacity(d raster.Drawer) {
	if o.group != nil && !o.group.transformDone {
		d.SetGlobalAlpha(o.ObjectOpacity())
		return
	}
	d.SetGlobalAlpha(d.GlobalAlpha() * o.opacity)
}

// setShadow converts the node shadow to device pixels: offsets follow the
// viewport and retina scaling and, unless NonScaling, the object scaling.
func (o *Object) setShadow(d raster.Drawer) {
	sh := o.shadow
	if sh == nil {
		return
	}
	c, ok := o.resolveColor(sh.Color)
	if !ok {
		return
	}
	vpt := o.ViewportTransform()
	retina := o.retinaScaling()
	multX, multY := vpt.A*retina, vpt.E*retina
	scaling := easel.Pt(1, 1)
	if !sh.NonScaling {
		scaling = o.ObjectScaling()
	}
	blur := sh.Blur * o.config().BrowserShadowBlurConstant * (multX + multY) * (scaling.X + scaling.Y) / 4
	d.SetShadow(raster.Shadow{
		Color:   c,
		Blur:    blur,
		OffsetX: sh.OffsetX * multX * scaling.X,
		OffsetY: sh.OffsetY * multY * scaling.Y,
	})
}

func removeShadow(d raster.Drawer) {
	d.SetShadow(raster.Shadow{})
}

// drawObject draws the node in its own plane: background, geometry and clip
// path. With forClipping the node is an opaque black silhouette.
func (o *Object) drawObject(d raster.Drawer, forClipping bool) {
	fill, stroke := o.fill, o.stroke
	if forClipping {
		o.fill, o.stroke = clippingFill, nil
		d.SetGlobalAlpha(1)
	} else {
		o.renderBackground(d)
	}
	o.self.DrawGeometry(d)
	o.drawClipPath(d)
	o.fill, o.stroke = fill, stroke
}

func (o *Object) renderBackground(d raster.Drawer) {
	if o.backgroundColor == "" {
		return
	}
	c, ok := o.resolveColor(o.backgroundColor)
	if !ok {
		return
	}
	dim := o.NonTransformedDimensions()
	p := path.New()
	p.Rect(-dim.X/2, -dim.Y/2, dim.X, dim.Y)
	d.Fill(p.Commands(), raster.Solid{Color: c}, raster.NonZero)
	removeShadow(d)
}

// renderPaintInOrder fills and strokes cmds in the node's paint order.
func (o *Object) renderPaintInOrder(d raster.Drawer, cmds []path.Command) {
	if o.paintFirst == PaintStroke {
		o.renderStroke(d, cmds)
		o.renderFill(d, cmds)
		return
	}
	o.renderFill(d, cmds)
	o.renderStroke(d, cmds)
}

func (o *Object) renderFill(d raster.Drawer, cmds []path.Command) {
	if o.fill == nil {
		return
	}
	p := o.fill.rasterPaint(o)
	if p == nil {
		return
	}
	d.Fill(cmds, p, raster.ParseFillRule(o.fillRule))
}

func (o *Object) renderStroke(d raster.Drawer, cmds []path.Command) {
	if o.stroke == nil || o.strokeWidth == 0 {
		return
	}
	p := o.stroke.rasterPaint(o)
	if p == nil {
		return
	}
	d.Save()
	defer d.Restore()
	if o.shadow != nil && !o.shadow.AffectStroke {
		removeShadow(d)
	}
	if o.strokeUniform {
		s := o.ObjectScaling()
		if s.X != 0 && s.Y != 0 {
			cmds = path.Transform(cmds, easel.Scale(s.X, s.Y))
			d.Transform(easel.Scale(1/s.X, 1/s.Y))
		}
	}
	d.Stroke(cmds, p, o.strokeStyle())
}

// strokeStyle converts the stroke properties to a raster style.
func (o *Object) strokeStyle() raster.StrokeStyle {
	st := raster.DefaultStrokeStyle()
	st.Width = o.strokeWidth
	st.Cap = raster.ParseCap(o.strokeLineCap)
	st.Join = raster.ParseJoin(o.strokeLineJoin)
	st.MiterLimit = o.strokeMiterLimit
	if len(o.strokeDashArray) > 0 {
		if dash := raster.NewDash(o.strokeDashArray...); dash != nil {
			st.Dash = dash.WithOffset(o.strokeDashOffset)
		}
	}
	return st
}

// drawClipPath renders the clip path into its own cache and composites it
// over d with destination-in, or destination-out when inverted.
func (o *Object) drawClipPath(d raster.Drawer) {
	if o.clipPath == nil {
		return
	}
	clip := o.clipPath.Base()
	clip.clipOwner = o
	clip.ShouldCache()
	clip.transformDone = true
	clip.RenderCache(true)
	clip.transformDone = false

	d.Save()
	defer d.Restore()
	if clip.inverted {
		d.SetCompositeOp(raster.DestinationOut)
	} else {
		d.SetCompositeOp(raster.DestinationIn)
	}
	if clip.absolutePositioned {
		d.Transform(o.CalcTransformMatrix(false).Invert())
	}
	clip.transform(d)
	clip.drawCacheOnCanvas(d)
}

// RenderCanvasClip masks everything drawn in d so far with clip, a node
// placed in the scene plane of h. The transform of d maps the scene plane to
// device pixels.
func RenderCanvasClip(d raster.Drawer, clip Node, h Host) {
	c := clip.Base()
	c.host = h
	c.ShouldCache()
	c.transformDone = true
	c.RenderCache(true)
	c.transformDone = false

	d.Save()
	defer d.Restore()
	if c.inverted {
		d.SetCompositeOp(raster.DestinationOut)
	} else {
		d.SetCompositeOp(raster.DestinationIn)
	}
	c.transform(d)
	c.drawCacheOnCanvas(d)
}
