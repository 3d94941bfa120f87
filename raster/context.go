package raster

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/internal/stroke"
	"github.com/gogpu/easel/path"
)

// state is the part of a Context saved by Save.
type state struct {
	transform easel.Matrix
	alpha     float64
	op        CompositeOp
	shadow    Shadow
	smoothing bool
}

func defaultState() state {
	return state{transform: easel.Identity(), alpha: 1, smoothing: true}
}

// Context is the software Drawer of a Buffer.
//
// Context is not safe for concurrent use.
type Context struct {
	dst   *image.RGBA
	st    state
	stack []state
	ras   vector.Rasterizer
}

// NewContext creates a context drawing into dst.
func NewContext(dst *image.RGBA) *Context {
	return &Context{dst: dst, st: defaultState()}
}

// reset drops all saved state.
func (c *Context) reset(dst *image.RGBA) {
	c.dst = dst
	c.st = defaultState()
	c.stack = c.stack[:0]
}

// Save implements Drawer.
func (c *Context) Save() {
	c.stack = append(c.stack, c.st)
}

// Restore implements Drawer. An unbalanced Restore is ignored.
func (c *Context) Restore() {
	if n := len(c.stack); n > 0 {
		c.st = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// Depth returns the number of unrestored Save calls.
func (c *Context) Depth() int { return len(c.stack) }

// Transform implements Drawer.
func (c *Context) Transform(m easel.Matrix) { c.st.transform = c.st.transform.Multiply(m) }

// SetTransform implements Drawer.
func (c *Context) SetTransform(m easel.Matrix) { c.st.transform = m }

// CurrentTransform implements Drawer.
func (c *Context) CurrentTransform() easel.Matrix { return c.st.transform }

// SetGlobalAlpha implements Drawer. Values outside [0, 1] are ignored.
func (c *Context) SetGlobalAlpha(a float64) {
	if a >= 0 && a <= 1 {
		c.st.alpha = a
	}
}

// GlobalAlpha implements Drawer.
func (c *Context) GlobalAlpha() float64 { return c.st.alpha }

// SetCompositeOp implements Drawer.
func (c *Context) SetCompositeOp(op CompositeOp) { c.st.op = op }

// SetShadow implements Drawer.
func (c *Context) SetShadow(s Shadow) { c.st.shadow = s }

// SetImageSmoothing implements Drawer.
func (c *Context) SetImageSmoothing(enabled bool) { c.st.smoothing = enabled }

// Size implements Drawer.
func (c *Context) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Drawer.
func (c *Context) Clear() {
	clear(c.dst.Pix)
}

// ClearRect implements Drawer.
func (c *Context) ClearRect(r easel.Rect) {
	p := path.New()
	p.Rect(r.Left, r.Top, r.Width, r.Height)
	mask := c.coverage(path.Transform(p.Commands(), c.st.transform))
	if mask == nil {
		return
	}
	b := mask.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cov := mask.AlphaAt(x, y).A
			if cov == 0 {
				continue
			}
			i := c.dst.PixOffset(x, y)
			keep := 255 - cov
			px := c.dst.Pix[i : i+4 : i+4]
			px[0] = mulDiv255(px[0], keep)
			px[1] = mulDiv255(px[1], keep)
			px[2] = mulDiv255(px[2], keep)
			px[3] = mulDiv255(px[3], keep)
		}
	}
}

// Fill implements Drawer. EvenOdd is rasterized as NonZero.
func (c *Context) Fill(cmds []path.Command, paint Paint, rule FillRule) {
	if paint == nil || len(cmds) == 0 {
		return
	}
	mask := c.coverage(path.Transform(cmds, c.st.transform))
	if mask == nil {
		if c.st.op.Unbounded() {
			c.composite(nil)
		}
		return
	}
	c.composite(c.paintLayer(mask, paint))
}

// Stroke implements Drawer. The outline is built in user space so that
// non-uniform transforms distort the stroke the way a canvas does.
func (c *Context) Stroke(cmds []path.Command, paint Paint, style StrokeStyle) {
	if paint == nil || len(cmds) == 0 || style.Width <= 0 {
		return
	}
	scale := math.Sqrt(math.Abs(c.st.transform.Determinant()))
	tol := stroke.DefaultTolerance
	if scale > 0 {
		tol /= scale
	}
	outline := stroke.Outline(cmds, style, tol)
	if len(outline) == 0 {
		return
	}
	c.Fill(outline, paint, NonZero)
}

// DrawImage implements Drawer.
func (c *Context) DrawImage(img image.Image, src image.Rectangle, dst easel.Rect) {
	if img == nil {
		return
	}
	src = src.Intersect(img.Bounds())
	if src.Empty() || dst.Width <= 0 || dst.Height <= 0 {
		return
	}

	m := c.st.transform.
		Multiply(easel.Translate(dst.Left, dst.Top)).
		Multiply(easel.Scale(dst.Width/float64(src.Dx()), dst.Height/float64(src.Dy()))).
		Multiply(easel.Translate(-float64(src.Min.X), -float64(src.Min.Y)))

	area := easel.Rect{
		Left: float64(src.Min.X), Top: float64(src.Min.Y),
		Width: float64(src.Dx()), Height: float64(src.Dy()),
	}.Transform(m)
	bounds := deviceRect(area).Intersect(c.dst.Rect)
	if bounds.Empty() {
		if c.st.op.Unbounded() {
			c.composite(nil)
		}
		return
	}

	layer := image.NewRGBA(bounds)
	var interp xdraw.Transformer = xdraw.ApproxBiLinear
	if !c.st.smoothing {
		interp = xdraw.NearestNeighbor
	}
	aff := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	interp.Transform(layer, aff, img, src, xdraw.Over, nil)

	if c.st.alpha < 1 {
		a := byte(math.Round(c.st.alpha * 255))
		for i := range layer.Pix {
			layer.Pix[i] = mulDiv255(layer.Pix[i], a)
		}
	}
	c.composite(layer)
}

// deviceRect returns the pixel rectangle covering r.
func deviceRect(r easel.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

// coverage rasterizes device space cmds. The returned mask is positioned in
// device coordinates and clipped to the surface; nil means nothing is
// covered.
func (c *Context) coverage(cmds []path.Command) *image.Alpha {
	r := deviceRect(path.Bounds(cmds, nil)).Inset(-1).Intersect(c.dst.Rect)
	if r.Empty() {
		return nil
	}
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	pt := func(p easel.Point) (float32, float32) {
		return float32(p.X - ox), float32(p.Y - oy)
	}

	c.ras.Reset(r.Dx(), r.Dy())
	c.ras.DrawOp = draw.Src
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case path.MoveTo:
			c.ras.MoveTo(pt(cmd.Point))
		case path.LineTo:
			c.ras.LineTo(pt(cmd.Point))
		case path.QuadTo:
			cx, cy := pt(cmd.Control)
			x, y := pt(cmd.Point)
			c.ras.QuadTo(cx, cy, x, y)
		case path.CubicTo:
			c1x, c1y := pt(cmd.Control1)
			c2x, c2y := pt(cmd.Control2)
			x, y := pt(cmd.Point)
			c.ras.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case path.Close:
			c.ras.ClosePath()
		}
	}
	c.ras.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	c.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mask.Rect = r
	return mask
}

// paintLayer evaluates paint under mask into a premultiplied layer, with the
// global alpha applied.
func (c *Context) paintLayer(mask *image.Alpha, paint Paint) *image.RGBA {
	b := mask.Rect
	layer := image.NewRGBA(b)
	inv := c.st.transform.Invert()
	solid, isSolid := paint.(Solid)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cov := mask.AlphaAt(x, y).A
			if cov == 0 {
				continue
			}
			var col easel.RGBA
			if isSolid {
				col = solid.Color
			} else {
				p := inv.TransformPoint(easel.Pt(float64(x)+0.5, float64(y)+0.5))
				col = paint.ColorAt(p.X, p.Y)
			}
			a := col.A * c.st.alpha * float64(cov) / 255
			if a <= 0 {
				continue
			}
			i := layer.PixOffset(x, y)
			layer.Pix[i+0] = unit8(col.R * a)
			layer.Pix[i+1] = unit8(col.G * a)
			layer.Pix[i+2] = unit8(col.B * a)
			layer.Pix[i+3] = unit8(a)
		}
	}
	return layer
}

func unit8(v float64) byte {
	v = v*255 + 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

// composite draws the shadow of layer, then layer, with the current
// composite operation. A nil layer is fully transparent.
func (c *Context) composite(layer *image.RGBA) {
	if layer != nil && c.st.shadow.Visible() {
		if sh := c.shadowLayer(layer); sh != nil {
			c.blend(sh)
		}
	}
	c.blend(layer)
}

// blend composites layer onto the surface. Bounded operations only touch
// the layer rectangle.
func (c *Context) blend(layer *image.RGBA) {
	fn := c.st.op.fn()
	area := c.dst.Rect
	if !c.st.op.Unbounded() {
		if layer == nil {
			return
		}
		area = layer.Rect.Intersect(c.dst.Rect)
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			var sr, sg, sb, sa byte
			if layer != nil && (image.Point{X: x, Y: y}).In(layer.Rect) {
				j := layer.PixOffset(x, y)
				sr, sg, sb, sa = layer.Pix[j], layer.Pix[j+1], layer.Pix[j+2], layer.Pix[j+3]
			}
			if sa == 0 && c.st.op == SourceOver {
				continue
			}
			i := c.dst.PixOffset(x, y)
			px := c.dst.Pix[i : i+4 : i+4]
			px[0], px[1], px[2], px[3] = fn(sr, sg, sb, sa, px[0], px[1], px[2], px[3])
		}
	}
}

// shadowLayer builds the colored, blurred and offset silhouette of layer.
func (c *Context) shadowLayer(layer *image.RGBA) *image.RGBA {
	sh := c.st.shadow
	sigma := sh.Blur / 2
	pad := int(math.Ceil(sigma * 3))
	dx := int(math.Round(sh.OffsetX))
	dy := int(math.Round(sh.OffsetY))

	b := layer.Rect.Inset(-pad)
	w, h := b.Dx(), b.Dy()
	plane := make([]float32, w*h)
	for y := layer.Rect.Min.Y; y < layer.Rect.Max.Y; y++ {
		for x := layer.Rect.Min.X; x < layer.Rect.Max.X; x++ {
			a := layer.Pix[layer.PixOffset(x, y)+3]
			plane[(y-b.Min.Y)*w+(x-b.Min.X)] = float32(a) / 255
		}
	}
	blurAlpha(plane, w, h, sigma)

	out := image.NewRGBA(b.Add(image.Pt(dx, dy)))
	if out.Rect.Intersect(c.dst.Rect).Empty() {
		return nil
	}
	col := sh.Color
	for i, a := range plane {
		sa := float64(a) * col.A
		if sa <= 0 {
			continue
		}
		j := i * 4
		out.Pix[j+0] = unit8(col.R * sa)
		out.Pix[j+1] = unit8(col.G * sa)
		out.Pix[j+2] = unit8(col.B * sa)
		out.Pix[j+3] = unit8(sa)
	}
	return out
}
