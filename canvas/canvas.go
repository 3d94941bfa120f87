package canvas

import (
	"image"
	"slices"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/brush"
	"github.com/gogpu/easel/raster"
	"github.com/gogpu/easel/scene"
)

// Pointer events fired by an interactive canvas. The event pointer is in
// the scene plane.
const (
	EventMouseDown = "mouse:down"
	EventMouseMove = "mouse:move"
	EventMouseUp   = "mouse:up"
)

// Canvas is a StaticCanvas with a transparent top layer for transient
// drawing, free drawing through a brush, an active object and hit testing.
type Canvas struct {
	*StaticCanvas

	brush       brush.Brush
	drawingMode bool
	drawing     bool
	topDirty    bool
	active      []scene.Node
}

// New creates an interactive width x height canvas, in CSS pixels.
func New(width, height int, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	sc, err := newStatic(o, float64(width), float64(height))
	if err != nil {
		return nil, err
	}
	sc.layers.addTop()
	c := &Canvas{StaticCanvas: sc}
	sc.self = c
	return c, nil
}

// TopContext implements scene.Host and brush.Host.
func (c *Canvas) TopContext() raster.Drawer {
	if c.layers.top == nil {
		return nil
	}
	return c.layers.top.Context()
}

// ClearTopContext makes the top layer transparent.
func (c *Canvas) ClearTopContext() {
	c.layers.clearTop()
}

// TopImage returns the pixels of the top layer, or nil after Dispose.
func (c *Canvas) TopImage() *image.RGBA {
	if c.layers.top == nil {
		return nil
	}
	return c.layers.top.Image()
}

// Composite returns the scene with the top layer blended over it, as a
// viewer would see it.
func (c *Canvas) Composite() *image.RGBA { return c.layers.composite() }

// SetDrawingMode makes pointer events feed b. A nil brush leaves drawing
// mode.
func (c *Canvas) SetDrawingMode(b brush.Brush) {
	c.brush = b
	c.drawingMode = b != nil
	c.drawing = false
}

// DrawingMode returns the active brush, or nil.
func (c *Canvas) DrawingMode() brush.Brush {
	if !c.drawingMode {
		return nil
	}
	return c.brush
}

// Drawing reports whether a stroke is in progress.
func (c *Canvas) Drawing() bool { return c.drawing }

// ScenePoint maps a point in viewport coordinates to the scene plane.
func (c *Canvas) ScenePoint(p easel.Point) easel.Point {
	return c.vpt.Invert().TransformPoint(p)
}

// OnPointerDown handles a press at p, in viewport coordinates.
func (c *Canvas) OnPointerDown(p easel.Point, mods brush.Modifiers) {
	sp := c.ScenePoint(p)
	if c.drawingMode {
		c.DiscardActiveObject()
		c.drawing = true
		c.brush.OnPointerDown(sp, mods)
		c.topDirty = true
	}
	c.Fire(EventMouseDown, &scene.Event{Pointer: sp, Target: c.findTargetIfIdle(sp), Data: mods})
}

// OnPointerMove handles a move to p, in viewport coordinates.
func (c *Canvas) OnPointerMove(p easel.Point, mods brush.Modifiers) {
	sp := c.ScenePoint(p)
	if c.drawingMode && c.drawing {
		c.brush.OnPointerMove(sp, mods)
	}
	c.Fire(EventMouseMove, &scene.Event{Pointer: sp, Target: c.findTargetIfIdle(sp), Data: mods})
}

// OnPointerUp handles a release at p, in viewport coordinates. A brush
// commits its stroke here.
func (c *Canvas) OnPointerUp(p easel.Point, mods brush.Modifiers) {
	sp := c.ScenePoint(p)
	if c.drawingMode && c.drawing {
		c.drawing = c.brush.OnPointerUp(mods)
	}
	c.Fire(EventMouseUp, &scene.Event{Pointer: sp, Target: c.findTargetIfIdle(sp), Data: mods})
}

// PointerCancel ends a stroke in progress as if the pointer were released.
func (c *Canvas) PointerCancel() {
	if c.drawingMode && c.drawing {
		c.drawing = c.brush.OnPointerUp(0)
	}
}

func (c *Canvas) findTargetIfIdle(p easel.Point) scene.Node {
	if c.drawingMode {
		return nil
	}
	return c.FindTarget(p)
}

// RenderAll renders the scene, clearing a stale top layer first unless a
// brush is using it.
func (c *Canvas) RenderAll() {
	c.cancelRequestedRender()
	if c.destroyed {
		return
	}
	if c.topDirty && !c.drawingMode {
		c.ClearTopContext()
		c.topDirty = false
	}
	c.renderCanvas(c.layers.lower.Context(), c.objectsToRender())
}

// RenderTop redraws the top layer only.
func (c *Canvas) RenderTop() {
	if c.destroyed {
		return
	}
	c.ClearTopContext()
	top := c.TopContext()
	c.renderTopLayer(top)
	c.Fire(EventAfterRender, &scene.Event{Data: top})
}

func (c *Canvas) renderTopLayer(d raster.Drawer) {
	d.Save()
	defer d.Restore()
	if c.drawingMode && c.drawing {
		c.brush.Render()
		c.topDirty = true
	}
}

// objectsToRender returns the paint order: the active objects go last,
// in stacking order, unless object stacking is preserved.
func (c *Canvas) objectsToRender() []scene.Node {
	if len(c.active) == 0 || c.preserveOrder {
		return c.objects
	}
	out := make([]scene.Node, 0, len(c.objects))
	var selected []scene.Node
	for _, n := range c.objects {
		if slices.Contains(c.active, n) {
			selected = append(selected, n)
		} else {
			out = append(out, n)
		}
	}
	return append(out, selected...)
}

// SetActiveObject makes n the only active object. It reports false if n is
// not on the canvas.
func (c *Canvas) SetActiveObject(n scene.Node) bool {
	return c.SetActiveObjects(n)
}

// SetActiveObjects selects nodes. Nodes already selected stay selected
// without events; the rest of the previous selection fires "deselected"
// and new members fire "selected". It reports false, leaving the selection
// unchanged, if nodes is empty or any node is not on the canvas.
func (c *Canvas) SetActiveObjects(nodes ...scene.Node) bool {
	if len(nodes) == 0 {
		return false
	}
	next := make([]scene.Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || !slices.Contains(c.objects, n) {
			return false
		}
		if !slices.Contains(next, n) {
			next = append(next, n)
		}
	}
	prev := c.active
	c.active = next
	for _, n := range prev {
		if !slices.Contains(next, n) {
			n.Base().Fire("deselected", &scene.Event{})
		}
	}
	for _, n := range next {
		if !slices.Contains(prev, n) {
			n.Base().Fire("selected", &scene.Event{})
		}
	}
	return true
}

// ActiveObject returns the active object, or nil. With several active
// objects it returns the first one selected.
func (c *Canvas) ActiveObject() scene.Node {
	if len(c.active) == 0 {
		return nil
	}
	return c.active[0]
}

// ActiveObjects returns the active objects in selection order.
func (c *Canvas) ActiveObjects() []scene.Node { return slices.Clone(c.active) }

// DiscardActiveObject clears the selection.
func (c *Canvas) DiscardActiveObject() {
	prev := c.active
	c.active = nil
	for _, n := range prev {
		n.Base().Fire("deselected", &scene.Event{})
	}
}

func (c *Canvas) objectRemoved(n scene.Node) {
	i := slices.Index(c.active, n)
	if i < 0 {
		return
	}
	c.active = slices.Delete(c.active, i, i+1)
	n.Base().Fire("deselected", &scene.Event{})
}

// FindTarget returns the topmost visible, evented node containing p, in
// the scene plane. Active objects are tested first, topmost first.
func (c *Canvas) FindTarget(p easel.Point) scene.Node {
	for _, n := range slices.Backward(c.objectsToRender()) {
		if slices.Contains(c.active, n) && hit(n, p) {
			return n
		}
	}
	for _, n := range slices.Backward(c.objects) {
		if hit(n, p) {
			return n
		}
	}
	return nil
}

func hit(n scene.Node, p easel.Point) bool {
	b := n.Base()
	return b.Visible() && b.Evented() && b.ContainsPoint(p)
}
