// Package brush implements free drawing: brushes capture pointer samples
// into a stroke, draw it live on the driver's top layer and commit a scene
// node when the pointer is released.
//
// A brush is bound to a Host, usually a canvas.Canvas in drawing mode:
//
//	p := brush.NewPencil(c)
//	p.Color = "red"
//	p.Width = 4
//	c.SetDrawingMode(p)
//
// Pointer positions are given in the scene plane. Brushes are not safe for
// concurrent use.
package brush

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/raster"
	"github.com/gogpu/easel/scene"
)

// Event names fired on the host around a commit.
const (
	EventBeforePathCreated = "before:path:created"
	EventPathCreated       = "path:created"
)

// Modifiers is the set of modifier keys held during a pointer event.
type Modifiers uint8

// Modifier keys.
const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// Has reports whether all keys in m are held.
func (mods Modifiers) Has(m Modifiers) bool {
	return m != 0 && mods&m == m
}

// Host is the driver a brush draws on.
type Host interface {
	Env() *scene.Env

	// TopContext is the transient layer drawn over the scene, or nil.
	TopContext() raster.Drawer
	ClearTopContext()

	ViewportTransform() easel.Matrix
	Zoom() float64
	RetinaScaling() float64
	Width() float64
	Height() float64

	Add(nodes ...scene.Node)
	Fire(event string, e *scene.Event)
	RequestRenderAll()
}

// Brush is a free drawing tool. The pointer sequence is down, zero or more
// moves, then up.
type Brush interface {
	OnPointerDown(p easel.Point, mods Modifiers)
	OnPointerMove(p easel.Point, mods Modifiers)
	// OnPointerUp commits the stroke and reports whether the brush still
	// captures the pointer.
	OnPointerUp(mods Modifiers) bool
	// Render redraws the stroke in progress on the top layer.
	Render()
	NeedsFullRender() bool
}

// Base holds the style shared by all brushes.
type Base struct {
	host Host

	Color            string
	Width            float64
	Shadow           *scene.Shadow
	StrokeLineCap    string
	StrokeLineJoin   string
	StrokeMiterLimit float64
	StrokeDashArray  []float64

	// LimitedToCanvasSize ignores moves outside the canvas area.
	LimitedToCanvasSize bool

	// Rand is the random source for dot brushes; nil uses the global one.
	Rand *rand.Rand
}

func newBase(h Host) Base {
	return Base{
		host:             h,
		Color:            "rgb(0,0,0)",
		Width:            1,
		StrokeLineCap:    "round",
		StrokeLineJoin:   "round",
		StrokeMiterLimit: 10,
	}
}

// Host returns the driver the brush draws on.
func (b *Base) Host() Host { return b.host }

// NeedsFullRender reports whether the stroke must be redrawn from scratch
// on every move: translucent colors and shadows do not compose
// incrementally.
func (b *Base) NeedsFullRender() bool {
	c, ok := b.resolveColor(b.Color)
	return !ok || c.A < 1 || b.Shadow != nil
}

func (b *Base) resolveColor(s string) (easel.RGBA, bool) {
	if env := b.host.Env(); env != nil && env.Colors != nil {
		return env.Colors.Resolve(s)
	}
	return easel.ParseColor(s)
}

func (b *Base) paint() raster.Paint {
	c, ok := b.resolveColor(b.Color)
	if !ok {
		c = easel.RGB(0, 0, 0)
	}
	return raster.Solid{Color: c}
}

func (b *Base) strokeStyle() raster.StrokeStyle {
	st := raster.DefaultStrokeStyle()
	st.Width = b.Width
	st.Cap = raster.ParseCap(b.StrokeLineCap)
	st.Join = raster.ParseJoin(b.StrokeLineJoin)
	st.MiterLimit = b.StrokeMiterLimit
	if len(b.StrokeDashArray) > 0 {
		st.Dash = raster.NewDash(b.StrokeDashArray...)
	}
	return st
}

// setShadow applies the brush shadow in device pixels.
func (b *Base) setShadow(d raster.Drawer) {
	if b.Shadow == nil {
		return
	}
	c, ok := b.resolveColor(b.Shadow.Color)
	if !ok {
		return
	}
	zoom := b.host.Zoom() * b.host.RetinaScaling()
	d.SetShadow(raster.Shadow{
		Color:   c,
		Blur:    b.Shadow.Blur * zoom,
		OffsetX: b.Shadow.OffsetX * zoom,
		OffsetY: b.Shadow.OffsetY * zoom,
	})
}

// withTop runs draw on the top layer under the viewport transform.
func (b *Base) withTop(draw func(d raster.Drawer)) {
	d := b.host.TopContext()
	if d == nil {
		return
	}
	d.Save()
	d.Transform(b.host.ViewportTransform())
	b.setShadow(d)
	draw(d)
	d.Restore()
}

// shadowCopy returns a copy of the brush shadow for a committed node.
func (b *Base) shadowCopy() *scene.Shadow {
	if b.Shadow == nil {
		return nil
	}
	sh := *b.Shadow
	return &sh
}

func (b *Base) isOutsideCanvas(p easel.Point) bool {
	return p.X < 0 || p.X > b.host.Width() || p.Y < 0 || p.Y > b.host.Height()
}

func (b *Base) random() float64 {
	if b.Rand != nil {
		return b.Rand.Float64()
	}
	return rand.Float64()
}

// randomInt returns a value in [lo, hi] stepping by one from lo.
func (b *Base) randomInt(lo, hi float64) float64 {
	return math.Floor(b.random()*(hi-lo+1)) + lo
}

// commit inserts n into the host between the creation events.
func (b *Base) commit(n scene.Node) {
	b.host.Fire(EventBeforePathCreated, &scene.Event{Target: n})
	b.host.Add(n)
	b.host.ClearTopContext()
	b.host.RequestRenderAll()
	b.host.Fire(EventPathCreated, &scene.Event{Target: n})
}
