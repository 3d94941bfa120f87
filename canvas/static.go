package canvas

import (
	"errors"
	"image"
	"slices"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
	"github.com/gogpu/easel/scene"
)

// Event names fired by canvases.
const (
	EventBeforeRender  = "before:render"
	EventAfterRender   = "after:render"
	EventObjectAdded   = "object:added"
	EventObjectRemoved = "object:removed"
	EventCanvasCleared = "canvas:cleared"
)

// ErrDestroyed is reported by Dispose on a canvas that is already gone.
var ErrDestroyed = errors.New("canvas: already destroyed")

// driver is the outermost canvas type. StaticCanvas dispatches through it so
// an interactive Canvas takes part in rendering and node hosting.
type driver interface {
	scene.Host
	RenderAll()
	objectRemoved(n scene.Node)
}

type cleanupTask struct {
	done chan error
}

// StaticCanvas renders a list of top-level nodes through a viewport
// transform into a software surface.
//
// StaticCanvas is not safe for concurrent use; see FrameLoop for driving it
// from a render loop.
type StaticCanvas struct {
	scene.Emitter

	self     driver
	env      *scene.Env
	sched    Scheduler
	registry *scene.Registry
	layers   *layers

	width, height float64
	retina        float64

	objects        []scene.Node
	vpt            easel.Matrix
	viewport       easel.Rect
	skipOffscreen  bool
	preserveOrder  bool
	pendingRender  bool
	cancelRender   func()
	disposed       bool
	destroyed      bool
	pendingCleanup *cleanupTask

	// BackgroundColor fills the canvas before the nodes are drawn.
	BackgroundColor string
	// BackgroundImage is drawn over the background color.
	BackgroundImage scene.Node
	// OverlayColor fills the canvas after the nodes are drawn.
	OverlayColor string
	// OverlayImage is drawn over the overlay color.
	OverlayImage scene.Node
	// BackgroundVpt and OverlayVpt apply the viewport transform to the
	// background and overlay.
	BackgroundVpt bool
	OverlayVpt    bool
	// ClipPath masks the whole rendering. It is placed in the scene plane.
	ClipPath scene.Node
	// RenderOnAddRemove requests a render after every insertion or removal.
	RenderOnAddRemove bool
	// ImageSmoothing selects bilinear image filtering.
	ImageSmoothing bool
	// SVGViewportTransformation exports the viewport transform to SVG.
	SVGViewportTransformation bool
	// IncludeDefaultValues lets nodes keep their own default elision
	// setting in ToObject; when false, defaults are always elided.
	IncludeDefaultValues bool
}

// NewStatic creates a width x height canvas, in CSS pixels.
func NewStatic(width, height int, opts ...Option) (*StaticCanvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c, err := newStatic(o, float64(width), float64(height))
	if err != nil {
		return nil, err
	}
	c.self = c
	return c, nil
}

func newStatic(o options, width, height float64) (*StaticCanvas, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	retina := 1.0
	if o.retina && o.cfg.DevicePixelRatio > 1 {
		retina = o.cfg.DevicePixelRatio
	}
	l, err := newLayers(o, width, height, retina)
	if err != nil {
		return nil, err
	}
	env := scene.NewEnv(o.cfg)
	env.Provider = o.provider
	if o.colors != nil {
		env.Colors = o.colors
	}
	if o.images != nil {
		env.Images = o.images
	}
	sched := o.scheduler
	if sched == nil {
		sched = NewManualScheduler()
	}
	c := &StaticCanvas{
		env:                       env,
		sched:                     sched,
		registry:                  o.registry,
		layers:                    l,
		width:                     width,
		height:                    height,
		retina:                    retina,
		vpt:                       easel.Identity(),
		skipOffscreen:             true,
		BackgroundVpt:             true,
		OverlayVpt:                true,
		RenderOnAddRemove:         true,
		ImageSmoothing:            true,
		SVGViewportTransformation: true,
		IncludeDefaultValues:      true,
	}
	c.calcViewportBoundaries()
	return c, nil
}

// Env implements scene.Host.
func (c *StaticCanvas) Env() *scene.Env { return c.env }

// Scheduler returns the scheduler running render requests.
func (c *StaticCanvas) Scheduler() Scheduler { return c.sched }

// Width returns the canvas width in CSS pixels.
func (c *StaticCanvas) Width() float64 { return c.width }

// Height returns the canvas height in CSS pixels.
func (c *StaticCanvas) Height() float64 { return c.height }

// SetDimensions resizes the canvas. Surface contents are lost and a render
// is requested.
func (c *StaticCanvas) SetDimensions(width, height float64) {
	c.width, c.height = width, height
	c.layers.resize(width, height)
	c.calcViewportBoundaries()
	c.RequestRenderAll()
}

// RetinaScaling implements scene.Host.
func (c *StaticCanvas) RetinaScaling() float64 { return c.retina }

// SkipOffscreen implements scene.Host.
func (c *StaticCanvas) SkipOffscreen() bool { return c.skipOffscreen }

// SetSkipOffscreen controls whether top-level nodes outside the viewport
// are skipped while rendering. It is enabled by default.
func (c *StaticCanvas) SetSkipOffscreen(skip bool) { c.skipOffscreen = skip }

// PreserveObjectStacking implements scene.Host.
func (c *StaticCanvas) PreserveObjectStacking() bool { return c.preserveOrder }

// SetPreserveObjectStacking keeps the active node at its stacking position
// instead of drawing it last.
func (c *StaticCanvas) SetPreserveObjectStacking(preserve bool) { c.preserveOrder = preserve }

// TopContext implements scene.Host. A static canvas has no top layer.
func (c *StaticCanvas) TopContext() raster.Drawer { return nil }

// Surface returns the surface the scene is rendered into.
func (c *StaticCanvas) Surface() raster.Surface { return c.layers.lower }

// Image returns the rendered pixels.
func (c *StaticCanvas) Image() *image.RGBA { return c.layers.lower.Image() }

// Fire delivers an event to the canvas listeners.
func (c *StaticCanvas) Fire(event string, e *scene.Event) {
	c.Emit(event, e)
}

// Objects returns a copy of the top-level nodes in paint order.
func (c *StaticCanvas) Objects() []scene.Node { return slices.Clone(c.objects) }

// Len returns the number of top-level nodes.
func (c *StaticCanvas) Len() int { return len(c.objects) }

// Item returns the node at i.
func (c *StaticCanvas) Item(i int) scene.Node { return c.objects[i] }

// Contains reports whether n is a top-level node of the canvas, or, with
// deep, a descendant of one.
func (c *StaticCanvas) Contains(n scene.Node, deep bool) bool {
	for _, o := range c.objects {
		if o == n {
			return true
		}
		if g, ok := o.(*scene.Group); ok && deep && g.Contains(n, true) {
			return true
		}
	}
	return false
}

// Add appends nodes on top of the stack.
func (c *StaticCanvas) Add(nodes ...scene.Node) {
	c.Insert(len(c.objects), nodes...)
}

// Insert places nodes at index, clamped to the node list. Nil nodes and
// nodes already on the canvas are skipped with a warning. A node owned by
// another canvas or a group is moved here.
func (c *StaticCanvas) Insert(index int, nodes ...scene.Node) {
	accepted := make([]scene.Node, 0, len(nodes))
	for _, n := range nodes {
		switch {
		case n == nil:
			easel.Logger().Warn("canvas: ignoring nil node")
			continue
		case slices.Contains(c.objects, n) || slices.Contains(accepted, n):
			easel.Logger().Warn("canvas: node already added", "node", n.Base().ID())
			continue
		}
		accepted = append(accepted, n)
	}
	if len(accepted) == 0 {
		return
	}
	index = min(max(index, 0), len(c.objects))
	for _, n := range accepted {
		c.detach(n)
	}
	c.objects = slices.Insert(c.objects, index, accepted...)
	for _, n := range accepted {
		c.objectAdded(n)
	}
	if c.RenderOnAddRemove {
		c.RequestRenderAll()
	}
}

// detach takes n away from a previous parent.
func (c *StaticCanvas) detach(n scene.Node) {
	b := n.Base()
	if g := b.Group(); g != nil {
		g.Remove(n)
	}
	h := b.Host()
	if h == nil || h == scene.Host(c.self) {
		return
	}
	easel.Logger().Warn("canvas: node belongs to another canvas; moving it", "node", b.ID())
	if other, ok := h.(interface{ Remove(...scene.Node) []scene.Node }); ok {
		other.Remove(n)
	}
}

func (c *StaticCanvas) objectAdded(n scene.Node) {
	b := n.Base()
	b.SetHost(c.self)
	c.Fire(EventObjectAdded, &scene.Event{Target: n})
	b.Fire("added", &scene.Event{Data: c.self})
}

// Remove takes nodes off the canvas and returns those that were on it.
func (c *StaticCanvas) Remove(nodes ...scene.Node) []scene.Node {
	var removed []scene.Node
	for _, n := range nodes {
		i := slices.Index(c.objects, n)
		if i < 0 {
			continue
		}
		c.objects = slices.Delete(c.objects, i, i+1)
		removed = append(removed, n)
		c.objectRemovedFromList(n)
	}
	if len(removed) > 0 && c.RenderOnAddRemove {
		c.RequestRenderAll()
	}
	return removed
}

func (c *StaticCanvas) objectRemovedFromList(n scene.Node) {
	c.self.objectRemoved(n)
	b := n.Base()
	c.Fire(EventObjectRemoved, &scene.Event{Target: n})
	b.Fire("removed", &scene.Event{Data: c.self})
	b.SetHost(nil)
}

func (c *StaticCanvas) objectRemoved(scene.Node) {}

// Clear removes every node and the background and overlay settings.
func (c *StaticCanvas) Clear() {
	objects := c.objects
	c.objects = nil
	for _, n := range objects {
		c.objectRemovedFromList(n)
	}
	c.BackgroundColor, c.OverlayColor = "", ""
	c.BackgroundImage, c.OverlayImage = nil, nil
	c.ClipPath = nil
	c.layers.lower.Context().Clear()
	c.Fire(EventCanvasCleared, &scene.Event{})
	if c.RenderOnAddRemove {
		c.RequestRenderAll()
	}
}

// MoveTo moves n to index in the stack. It reports whether n is on the
// canvas.
func (c *StaticCanvas) MoveTo(n scene.Node, index int) bool {
	i := slices.Index(c.objects, n)
	if i < 0 {
		return false
	}
	c.objects = slices.Delete(c.objects, i, i+1)
	index = min(max(index, 0), len(c.objects))
	c.objects = slices.Insert(c.objects, index, n)
	if c.RenderOnAddRemove {
		c.RequestRenderAll()
	}
	return true
}

// BringToFront moves n to the top of the stack.
func (c *StaticCanvas) BringToFront(n scene.Node) bool {
	return c.MoveTo(n, len(c.objects))
}

// SendToBack moves n to the bottom of the stack.
func (c *StaticCanvas) SendToBack(n scene.Node) bool {
	return c.MoveTo(n, 0)
}

// ViewportTransform implements scene.Host.
func (c *StaticCanvas) ViewportTransform() easel.Matrix { return c.vpt }

// Zoom implements scene.Host. It is the horizontal scale of the viewport
// transform.
func (c *StaticCanvas) Zoom() float64 { return c.vpt.A }

// ViewportBounds implements scene.Host.
func (c *StaticCanvas) ViewportBounds() easel.Rect { return c.viewport }

// SetViewportTransform replaces the viewport transform, refreshes the
// visible region and requests a render.
func (c *StaticCanvas) SetViewportTransform(m easel.Matrix) {
	c.vpt = m
	c.calcViewportBoundaries()
	if c.RenderOnAddRemove {
		c.RequestRenderAll()
	}
}

// SetZoom zooms about the canvas origin.
func (c *StaticCanvas) SetZoom(zoom float64) {
	c.ZoomToPoint(easel.Point{}, zoom)
}

// ZoomToPoint sets the zoom level keeping p, in viewport coordinates, fixed
// on screen.
func (c *StaticCanvas) ZoomToPoint(p easel.Point, zoom float64) {
	before := c.vpt.Invert().TransformPoint(p)
	m := c.vpt
	m.A, m.E = zoom, zoom
	after := m.TransformPoint(before)
	m.C += p.X - after.X
	m.F += p.Y - after.Y
	c.SetViewportTransform(m)
}

// AbsolutePan moves the viewport so that p, in the scene plane scaled by
// the zoom, is at the top-left corner.
func (c *StaticCanvas) AbsolutePan(p easel.Point) {
	m := c.vpt
	m.C, m.F = -p.X, -p.Y
	c.SetViewportTransform(m)
}

// RelativePan shifts the viewport by d in viewport coordinates.
func (c *StaticCanvas) RelativePan(d easel.Point) {
	c.AbsolutePan(easel.Pt(-c.vpt.C-d.X, -c.vpt.F-d.Y))
}

// calcViewportBoundaries maps the canvas corners back to the scene plane.
func (c *StaticCanvas) calcViewportBoundaries() {
	inv := c.vpt.Invert()
	c.viewport = easel.RectFromPoints(
		inv.TransformPoint(easel.Pt(0, 0)),
		inv.TransformPoint(easel.Pt(c.width, c.height)),
	)
}

// RequestRenderAll schedules a render on the next frame. Requests made
// before that frame are coalesced into one render.
func (c *StaticCanvas) RequestRenderAll() {
	if c.pendingRender || c.disposed || c.destroyed {
		return
	}
	c.pendingRender = true
	c.cancelRender = c.sched.Schedule(c.renderAndReset)
}

// RenderPending reports whether a render is scheduled.
func (c *StaticCanvas) RenderPending() bool { return c.pendingRender }

func (c *StaticCanvas) renderAndReset() {
	c.pendingRender = false
	c.cancelRender = nil
	c.self.RenderAll()
}

func (c *StaticCanvas) cancelRequestedRender() {
	if !c.pendingRender {
		return
	}
	if c.cancelRender != nil {
		c.cancelRender()
	}
	c.pendingRender = false
	c.cancelRender = nil
}

// RenderAll renders the canvas now, replacing any scheduled render.
func (c *StaticCanvas) RenderAll() {
	c.cancelRequestedRender()
	if c.destroyed {
		return
	}
	c.renderCanvas(c.layers.lower.Context(), c.objects)
}

// renderCanvas draws background, nodes, clip path and overlay into d and
// runs a pending disposal afterwards.
func (c *StaticCanvas) renderCanvas(d raster.Drawer, objects []scene.Node) {
	if c.destroyed {
		return
	}
	c.calcViewportBoundaries()
	d.Clear()
	d.SetTransform(easel.Scale(c.retina, c.retina))
	d.SetImageSmoothing(c.ImageSmoothing)
	c.Fire(EventBeforeRender, &scene.Event{Data: d})

	c.renderLayer(d, c.BackgroundColor, c.BackgroundImage, c.BackgroundVpt)
	d.Save()
	d.Transform(c.vpt)
	for _, n := range objects {
		n.Render(d)
	}
	d.Restore()
	if c.ClipPath != nil {
		d.Save()
		d.Transform(c.vpt)
		scene.RenderCanvasClip(d, c.ClipPath, c.self)
		d.Restore()
	}
	c.renderLayer(d, c.OverlayColor, c.OverlayImage, c.OverlayVpt)

	c.Fire(EventAfterRender, &scene.Event{Data: d})
	if t := c.pendingCleanup; t != nil {
		c.pendingCleanup = nil
		c.destroy()
		t.done <- nil
	}
}

// renderLayer paints a background or overlay: a color over the whole
// canvas, then a node.
func (c *StaticCanvas) renderLayer(d raster.Drawer, color string, img scene.Node, withVpt bool) {
	if color != "" {
		if rgba, ok := c.resolveColor(color); ok {
			p := path.New()
			p.Rect(0, 0, c.width, c.height)
			d.Fill(p.Commands(), raster.Solid{Color: rgba}, raster.NonZero)
		}
	}
	if img == nil {
		return
	}
	img.Base().SetHost(c.self)
	skip := c.skipOffscreen
	c.skipOffscreen = withVpt
	d.Save()
	if withVpt {
		d.Transform(c.vpt)
	}
	img.Render(d)
	d.Restore()
	c.skipOffscreen = skip
}

func (c *StaticCanvas) resolveColor(s string) (easel.RGBA, bool) {
	if c.env.Colors != nil {
		return c.env.Colors.Resolve(s)
	}
	return easel.ParseColor(s)
}

// Dispose releases the canvas. If a render is scheduled, the release runs
// right after that render instead of interrupting it. The channel receives
// nil once the canvas is released, easel.ErrAborted when a later Dispose
// call supersedes this one, or ErrDestroyed if the canvas was already
// released.
func (c *StaticCanvas) Dispose() <-chan error {
	done := make(chan error, 1)
	c.disposed = true
	if t := c.pendingCleanup; t != nil {
		c.pendingCleanup = nil
		t.done <- easel.ErrAborted
	}
	switch {
	case c.destroyed:
		done <- ErrDestroyed
	case c.pendingRender:
		c.pendingCleanup = &cleanupTask{done: done}
	default:
		c.destroy()
		done <- nil
	}
	return done
}

// Disposed reports whether Dispose has been called.
func (c *StaticCanvas) Disposed() bool { return c.disposed }

func (c *StaticCanvas) destroy() {
	c.destroyed = true
	c.cancelRequestedRender()
	for _, n := range c.objects {
		n.Base().SetHost(nil)
		n.Base().Dispose()
	}
	c.objects = nil
	for _, n := range []scene.Node{c.BackgroundImage, c.OverlayImage, c.ClipPath} {
		if n != nil {
			n.Base().Dispose()
		}
	}
	c.BackgroundImage, c.OverlayImage, c.ClipPath = nil, nil, nil
	c.layers.release()
	c.Off("")
	easel.Logger().Debug("canvas: destroyed")
}
