package canvas

import (
	"math"
	"slices"
	"testing"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/brush"
	"github.com/gogpu/easel/scene"
)

func newTestCanvas(t *testing.T, opts ...Option) (*Canvas, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	c, err := New(100, 100, append([]Option{WithScheduler(sched)}, opts...)...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return c, sched
}

func TestCanvasDrawingMode(t *testing.T) {
	c, sched := newTestCanvas(t)
	c.SetZoom(2)
	sched.Flush()

	p := brush.NewPencil(c)
	p.Color = "red"
	p.Width = 2
	c.SetDrawingMode(p)
	if c.DrawingMode() != brush.Brush(p) {
		t.Fatal("DrawingMode() is not the pencil")
	}

	var events []string
	for _, e := range []string{brush.EventBeforePathCreated, brush.EventPathCreated, EventObjectAdded} {
		c.On(e, func(*scene.Event) { events = append(events, e) })
	}

	c.OnPointerDown(easel.Pt(20, 20), 0)
	if !c.Drawing() {
		t.Fatal("Drawing() = false after pointer down")
	}
	c.OnPointerMove(easel.Pt(40, 20), 0)
	c.OnPointerMove(easel.Pt(60, 20), 0)
	if top := c.TopImage(); top.RGBAAt(40, 20).A == 0 {
		t.Error("live stroke not drawn on the top layer")
	}
	c.OnPointerUp(easel.Pt(60, 20), 0)

	if c.Drawing() {
		t.Error("Drawing() = true after pointer up")
	}
	want := []string{brush.EventBeforePathCreated, EventObjectAdded, brush.EventPathCreated}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if c.Len() != 1 || c.Item(0).Type() != "Path" {
		t.Fatalf("committed %d nodes", c.Len())
	}
	center := c.Item(0).Base().BoundingRect().Center()
	if math.Abs(center.X-20) > 0.5 || math.Abs(center.Y-10) > 0.5 {
		t.Errorf("path center = %v, want about (20, 10)", center)
	}
	if got := sched.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}
	sched.Flush()
	if px := c.Image().RGBAAt(40, 20); px.R == 0 || px.A == 0 {
		t.Errorf("committed path not rendered: %v", px)
	}
	if top := c.TopImage(); top.RGBAAt(40, 20).A != 0 {
		t.Error("top layer not cleared after commit")
	}
}

func TestCanvasPointerCancel(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.SetDrawingMode(brush.NewPencil(c))
	c.OnPointerDown(easel.Pt(10, 10), 0)
	c.OnPointerMove(easel.Pt(30, 10), 0)
	c.PointerCancel()
	if c.Drawing() || c.Len() != 1 {
		t.Errorf("Drawing() = %v, Len() = %d", c.Drawing(), c.Len())
	}
}

func TestCanvasMouseEvents(t *testing.T) {
	c, _ := newTestCanvas(t)
	r := redRect(10, 10, 20)
	c.Add(r)
	c.SetViewportTransform(easel.Scale(2, 2))

	var got *scene.Event
	c.On(EventMouseDown, func(e *scene.Event) { got = e })
	c.OnPointerDown(easel.Pt(40, 40), brush.ModShift)
	if got == nil {
		t.Fatal("mouse:down not fired")
	}
	if got.Pointer != easel.Pt(20, 20) {
		t.Errorf("pointer = %v, want scene point (20, 20)", got.Pointer)
	}
	if got.Target != scene.Node(r) {
		t.Errorf("target = %v, want the rect", got.Target)
	}
}

func TestFindTarget(t *testing.T) {
	c, _ := newTestCanvas(t)
	a, b := redRect(0, 0, 20), redRect(10, 10, 20)
	hidden := redRect(0, 0, 50)
	_ = hidden.Set("evented", false)
	c.Add(a, b, hidden)

	p := easel.Pt(15, 15)
	if got := c.FindTarget(p); got != scene.Node(b) {
		t.Errorf("FindTarget() = %v, want topmost evented node", got)
	}
	if !c.SetActiveObject(a) {
		t.Fatal("SetActiveObject() = false")
	}
	if got := c.FindTarget(p); got != scene.Node(a) {
		t.Errorf("FindTarget() = %v, want active node", got)
	}
	if got := c.FindTarget(easel.Pt(90, 90)); got != nil {
		t.Errorf("FindTarget() on empty area = %v", got)
	}
}

func TestActiveObjectRenderedLast(t *testing.T) {
	c, _ := newTestCanvas(t)
	a, b := redRect(0, 0, 10), redRect(0, 0, 20)
	c.Add(a, b)

	var deselected int
	a.On("deselected", func(*scene.Event) { deselected++ })
	c.SetActiveObject(a)

	if got := c.objectsToRender(); got[len(got)-1] != scene.Node(a) {
		t.Error("active object not rendered last")
	}
	c.SetPreserveObjectStacking(true)
	if got := c.objectsToRender(); got[0] != scene.Node(a) {
		t.Error("stacking not preserved")
	}
	if c.Item(0) != scene.Node(a) {
		t.Error("stacking order changed")
	}

	c.Remove(a)
	if c.ActiveObject() != nil || deselected != 1 {
		t.Errorf("ActiveObject() = %v, deselected = %d", c.ActiveObject(), deselected)
	}
	if c.SetActiveObject(a) {
		t.Error("SetActiveObject() of a removed node = true")
	}
}

func TestActiveSelectionRenderedLast(t *testing.T) {
	c, _ := newTestCanvas(t)
	a, b, d, e := redRect(0, 0, 10), redRect(0, 0, 20), redRect(0, 0, 30), redRect(0, 0, 40)
	c.Add(a, b, d, e)

	selected := map[scene.Node]int{}
	for _, n := range []scene.Node{a, b, d, e} {
		n.Base().On("selected", func(*scene.Event) { selected[n]++ })
	}
	if !c.SetActiveObjects(d, a) {
		t.Fatal("SetActiveObjects() = false")
	}
	if selected[a] != 1 || selected[d] != 1 || selected[b] != 0 {
		t.Errorf("selected events = %v", selected)
	}

	want := []scene.Node{b, e, a, d}
	if got := c.objectsToRender(); !slices.Equal(got, want) {
		t.Errorf("objectsToRender() = %v, want %v", got, want)
	}
	if got := c.FindTarget(easel.Pt(5, 5)); got != scene.Node(d) {
		t.Errorf("FindTarget() = %v, want topmost active node", got)
	}

	c.Remove(a)
	if got := c.ActiveObjects(); len(got) != 1 || got[0] != scene.Node(d) {
		t.Errorf("ActiveObjects() after Remove = %v", got)
	}
	if c.SetActiveObjects(b, a) {
		t.Error("SetActiveObjects() with a removed node = true")
	}
	if got := c.ActiveObjects(); len(got) != 1 {
		t.Errorf("failed selection changed ActiveObjects() = %v", got)
	}
}

func TestRenderAllClearsStaleTop(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.SetDrawingMode(brush.NewPencil(c))
	c.OnPointerDown(easel.Pt(10, 10), 0)
	c.OnPointerMove(easel.Pt(50, 10), 0)
	c.SetDrawingMode(nil)
	c.RenderAll()
	img := c.TopImage()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("top layer not cleared")
		}
	}
}

func TestCanvasDisposeReleasesTop(t *testing.T) {
	c, _ := newTestCanvas(t)
	if err := <-c.Dispose(); err != nil {
		t.Fatalf("Dispose() = %v", err)
	}
	if c.TopContext() != nil || c.TopImage() != nil {
		t.Error("top layer survived Dispose")
	}
	c.RenderTop()
}
