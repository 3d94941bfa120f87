package brush

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
	"github.com/gogpu/easel/scene"
)

// fakeHost records what a brush does to its driver.
type fakeHost struct {
	env     *scene.Env
	top     *raster.Recorder
	vpt     easel.Matrix
	width   float64
	height  float64
	added   []scene.Node
	events  []string
	clears  int
	renders int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		env:    scene.NewEnv(easel.DefaultConfig()),
		top:    raster.NewRecorder(100, 100),
		vpt:    easel.Identity(),
		width:  100,
		height: 100,
	}
}

func (h *fakeHost) Env() *scene.Env                 { return h.env }
func (h *fakeHost) TopContext() raster.Drawer       { return h.top }
func (h *fakeHost) ClearTopContext()                { h.clears++ }
func (h *fakeHost) ViewportTransform() easel.Matrix { return h.vpt }
func (h *fakeHost) Zoom() float64                   { return h.vpt.A }
func (h *fakeHost) RetinaScaling() float64          { return 1 }
func (h *fakeHost) Width() float64                  { return h.width }
func (h *fakeHost) Height() float64                 { return h.height }
func (h *fakeHost) Add(nodes ...scene.Node)         { h.added = append(h.added, nodes...) }
func (h *fakeHost) RequestRenderAll()               { h.renders++ }

func (h *fakeHost) Fire(event string, e *scene.Event) {
	h.events = append(h.events, event)
}

func (h *fakeHost) strokes() []raster.Call {
	var out []raster.Call
	for _, c := range h.top.Calls() {
		if c.Type == raster.CallStroke {
			out = append(out, c)
		}
	}
	return out
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestModifiersHas(t *testing.T) {
	tests := []struct {
		mods, key Modifiers
		want      bool
	}{
		{ModShift, ModShift, true},
		{ModShift | ModCtrl, ModCtrl, true},
		{ModAlt, ModShift, false},
		{ModShift, 0, false},
		{ModShift, ModShift | ModAlt, false},
	}
	for _, tt := range tests {
		if got := tt.mods.Has(tt.key); got != tt.want {
			t.Errorf("%b.Has(%b) = %v, want %v", tt.mods, tt.key, got, tt.want)
		}
	}
}

func TestDecimatePoints(t *testing.T) {
	line := []easel.Point{{X: 0}, {X: 0.3}, {X: 0.6}, {X: 1}}
	tests := []struct {
		name     string
		points   []easel.Point
		distance float64
		zoom     float64
		want     []easel.Point
	}{
		{"empty", nil, 1, 1, nil},
		{"two points", []easel.Point{{X: 0}, {X: 0}}, 5, 1, []easel.Point{{X: 0}, {X: 0}}},
		{"drops close samples", line, 0.4, 1, []easel.Point{{X: 0}, {X: 0.6}, {X: 1}}},
		{"zoom shrinks threshold", line, 0.4, 2, line},
		{"keeps endpoints", line, 100, 1, []easel.Point{{X: 0}, {X: 1}}},
		{"zero threshold drops repeats", []easel.Point{{X: 0}, {X: 0}, {X: 2}, {X: 3}}, 0, 1, []easel.Point{{X: 0}, {X: 2}, {X: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecimatePoints(tt.points, tt.distance, tt.zoom)
			if len(got) != len(tt.want) {
				t.Fatalf("DecimatePoints() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSmoothPathStraightLine(t *testing.T) {
	const eps = 0.01
	pts := DecimatePoints([]easel.Point{{X: 0}, {X: 10}, {X: 20}}, 0, 1)
	cmds := SmoothPath(pts, eps)

	m, ok := cmds[0].(path.MoveTo)
	if !ok || !m.Point.Approx(easel.Pt(-eps, 0), 1e-12) {
		t.Errorf("first command = %#v, want MoveTo(-eps, 0)", cmds[0])
	}
	for i, c := range cmds[1 : len(cmds)-1] {
		if _, ok := c.(path.QuadTo); !ok {
			t.Errorf("command %d = %T, want QuadTo", i+1, c)
		}
	}
	l, ok := cmds[len(cmds)-1].(path.LineTo)
	if !ok || !l.Point.Approx(easel.Pt(20+eps, 0), 1e-12) {
		t.Errorf("last command = %#v, want LineTo(20+eps, 0)", cmds[len(cmds)-1])
	}
	if got := len(cmds); got != 4 {
		t.Errorf("len(cmds) = %d, want 4", got)
	}

	shape := scene.NewPath(cmds, scene.Record{"strokeWidth": 0})
	if !near(shape.Width(), 20, 2*eps+1e-9) {
		t.Errorf("Width() = %v, want about 20", shape.Width())
	}
}

func TestSmoothPathDirection(t *testing.T) {
	pts := []easel.Point{{X: 10, Y: 10}, {X: 10, Y: 5}, {X: 10, Y: 0}}
	cmds := SmoothPath(pts, 1)
	if m := cmds[0].(path.MoveTo); m.Point != easel.Pt(10, 11) {
		t.Errorf("start = %v, want (10, 11)", m.Point)
	}
	if l := cmds[len(cmds)-1].(path.LineTo); l.Point != easel.Pt(10, -1) {
		t.Errorf("end = %v, want (10, -1)", l.Point)
	}
}

func TestSmoothPathDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []easel.Point
	}{
		{"no points", nil},
		{"one point", []easel.Point{{X: 3, Y: 4}}},
		{"repeated point", []easel.Point{{X: 3, Y: 4}, {X: 3, Y: 4}, {X: 3, Y: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := SmoothPath(tt.points, 0.01)
			if !path.IsEmpty(cmds) {
				t.Errorf("SmoothPath() = %q, want the empty stroke", path.Join(cmds, -1))
			}
		})
	}
	if path.IsEmpty(SmoothPath([]easel.Point{{X: 0}, {X: 1}}, 0)) {
		t.Error("distinct samples smoothed to the empty stroke")
	}
}

func TestPencilCommit(t *testing.T) {
	h := newFakeHost()
	p := NewPencil(h)
	p.Color = "red"
	p.Width = 2
	p.StrokeDashArray = []float64{4, 2}

	p.OnPointerDown(easel.Pt(0, 0), 0)
	p.OnPointerMove(easel.Pt(10, 0), 0)
	p.OnPointerMove(easel.Pt(20, 0), 0)
	if p.OnPointerUp(0) {
		t.Error("OnPointerUp() = true, want false")
	}

	if len(h.added) != 1 {
		t.Fatalf("added %d nodes, want 1", len(h.added))
	}
	node, ok := h.added[0].(*scene.Path)
	if !ok {
		t.Fatalf("added %T, want *scene.Path", h.added[0])
	}
	if want := []string{EventBeforePathCreated, EventPathCreated}; len(h.events) != 2 || h.events[0] != want[0] || h.events[1] != want[1] {
		t.Errorf("events = %v, want %v", h.events, want)
	}
	if !near(node.Width(), 20, 0.01) || node.Height() != 0 {
		t.Errorf("size = %vx%v, want about 20x0", node.Width(), node.Height())
	}
	if node.Fill() != nil {
		t.Errorf("Fill() = %v, want nil", node.Fill())
	}
	if node.Stroke() != scene.Color("red") || node.StrokeWidth() != 2 {
		t.Errorf("stroke = %v width %v", node.Stroke(), node.StrokeWidth())
	}
	for key, want := range map[string]any{"strokeLineCap": "round", "strokeLineJoin": "round", "strokeMiterLimit": 10.0} {
		if got, _ := node.Get(key); got != want {
			t.Errorf("%s = %v, want %v", key, got, want)
		}
	}
	if dash, _ := node.Get("strokeDashArray"); len(dash.([]float64)) != 2 {
		t.Errorf("strokeDashArray = %v", dash)
	}
	if h.renders == 0 {
		t.Error("commit did not request a render")
	}
	if len(p.Points()) != 0 {
		t.Errorf("points kept after commit: %v", p.Points())
	}
}

func TestPencilClickDiscarded(t *testing.T) {
	h := newFakeHost()
	p := NewPencil(h)
	p.OnPointerDown(easel.Pt(5, 5), 0)
	if got := len(h.strokes()); got != 1 {
		t.Errorf("live strokes = %d, want 1 dot", got)
	}
	p.OnPointerUp(0)
	if len(h.added) != 0 || len(h.events) != 0 {
		t.Errorf("click committed %v with events %v", h.added, h.events)
	}
	if h.renders != 1 {
		t.Errorf("renders = %d, want 1", h.renders)
	}
}

func TestPencilStraightLine(t *testing.T) {
	h := newFakeHost()
	p := NewPencil(h)
	p.OnPointerDown(easel.Pt(0, 0), ModShift)
	p.OnPointerMove(easel.Pt(5, 5), ModShift)
	p.OnPointerMove(easel.Pt(10, 0), ModShift)

	pts := p.Points()
	if len(pts) != 2 || pts[1] != easel.Pt(10, 0) {
		t.Errorf("Points() = %v, want [(0,0) (10,0)]", pts)
	}
	if !p.NeedsFullRender() {
		t.Error("straight segment did not force a full render")
	}
	if h.clears != 2 {
		t.Errorf("top layer cleared %d times, want 2", h.clears)
	}

	p.OnPointerUp(0)
	if len(h.added) != 1 {
		t.Fatalf("added %d nodes, want 1", len(h.added))
	}
	if got := h.added[0].Base().Height(); got != 0 {
		t.Errorf("Height() = %v, want a flat line", got)
	}
	p.OnPointerDown(easel.Pt(0, 0), 0)
	if p.NeedsFullRender() {
		t.Error("straight line flag survived the next stroke reset")
	}
}

func TestPencilIncrementalRender(t *testing.T) {
	h := newFakeHost()
	h.vpt = easel.Scale(2, 2)
	p := NewPencil(h)
	p.OnPointerDown(easel.Pt(0, 0), 0)
	p.OnPointerMove(easel.Pt(10, 0), 0)
	p.OnPointerMove(easel.Pt(20, 0), 0)

	if h.clears != 0 {
		t.Errorf("incremental render cleared the top layer %d times", h.clears)
	}
	strokes := h.strokes()
	if len(strokes) != 3 {
		t.Fatalf("strokes = %d, want 3", len(strokes))
	}
	last := strokes[2]
	want := []path.Command{
		path.MoveTo{Point: easel.Pt(5, 0)},
		path.QuadTo{Control: easel.Pt(10, 0), Point: easel.Pt(15, 0)},
	}
	if len(last.Path) != len(want) || last.Path[0] != want[0] || last.Path[1] != want[1] {
		t.Errorf("last segment = %v, want %v", last.Path, want)
	}
	if last.Transform != h.vpt {
		t.Errorf("segment transform = %v, want the viewport %v", last.Transform, h.vpt)
	}
	if last.Style.Width != 1 {
		t.Errorf("stroke width = %v, want 1", last.Style.Width)
	}
	if h.top.Depth() != 0 {
		t.Errorf("unbalanced save/restore: depth %d", h.top.Depth())
	}
}

func TestPencilFullRender(t *testing.T) {
	h := newFakeHost()
	h.vpt = easel.Scale(2, 2)
	p := NewPencil(h)
	p.Color = "rgba(0,0,0,0.5)"
	p.Shadow = scene.NewShadow("black", 4, 2, 3)

	p.OnPointerDown(easel.Pt(0, 0), 0)
	p.OnPointerMove(easel.Pt(10, 0), 0)
	p.OnPointerMove(easel.Pt(20, 0), 0)

	if h.clears != 2 {
		t.Errorf("clears = %d, want one per move", h.clears)
	}
	strokes := h.strokes()
	last := strokes[len(strokes)-1]
	if _, ok := last.Path[len(last.Path)-1].(path.LineTo); !ok {
		t.Errorf("full render does not end with a line: %v", last.Path)
	}
	sh := last.Shadow
	if sh.OffsetX != 4 || sh.OffsetY != 6 || sh.Blur != 8 {
		t.Errorf("top layer shadow = %+v, want offsets 4,6 blur 8", sh)
	}

	p.OnPointerUp(0)
	node := h.added[0].Base()
	if node.Shadow() == nil || !node.Shadow().AffectStroke {
		t.Errorf("committed shadow = %+v, want AffectStroke", node.Shadow())
	}
	if p.Shadow.AffectStroke {
		t.Error("brush shadow was modified")
	}
}

func TestPencilLimitedToCanvas(t *testing.T) {
	h := newFakeHost()
	p := NewPencil(h)
	p.LimitedToCanvasSize = true
	p.OnPointerDown(easel.Pt(50, 50), 0)
	p.OnPointerMove(easel.Pt(-5, 50), 0)
	p.OnPointerMove(easel.Pt(50, 150), 0)
	if got := len(p.Points()); got != 2 {
		t.Errorf("len(Points()) = %d, want 2", got)
	}
	p.OnPointerMove(easel.Pt(60, 50), 0)
	if got := len(p.Points()); got != 3 {
		t.Errorf("len(Points()) = %d, want 3", got)
	}
}

func TestCircleBrush(t *testing.T) {
	h := newFakeHost()
	c := NewCircle(h)
	c.Rand = rand.New(rand.NewPCG(1, 2))

	c.OnPointerDown(easel.Pt(10, 10), 0)
	c.OnPointerMove(easel.Pt(40, 30), 0)
	if got := h.top.Count(raster.CallFill); got != 2 {
		t.Errorf("live dots = %d, want 2", got)
	}
	c.OnPointerUp(0)

	if len(h.added) != 1 {
		t.Fatalf("added %d nodes, want 1", len(h.added))
	}
	g, ok := h.added[0].(*scene.Group)
	if !ok || g.Len() != 2 {
		t.Fatalf("added %T, want a group of 2", h.added[0])
	}
	for i, want := range []easel.Point{{X: 10, Y: 10}, {X: 40, Y: 30}} {
		circle := g.Item(i).(*scene.Circle)
		if r := circle.Radius(); r < 0 || r > 15 || r != math.Floor(r*2)/2 {
			t.Errorf("dot %d radius = %v, want a half step in [0, 15]", i, r)
		}
		center := circle.CalcTransformMatrix(false).Translation()
		if !center.Approx(want, 1e-9) {
			t.Errorf("dot %d center = %v, want %v", i, center, want)
		}
	}
	if len(h.events) != 2 {
		t.Errorf("events = %v", h.events)
	}
}

func TestSprayBrush(t *testing.T) {
	tests := []struct {
		name      string
		optimize  bool
		wantRects int
	}{
		{"overlaps merged", true, 1},
		{"overlaps kept", false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFakeHost()
			s := NewSpray(h)
			s.Rand = rand.New(rand.NewPCG(3, 4))
			s.Width = 0
			s.Density = 5
			s.DotWidthVariance = 0
			s.OptimizeOverlapping = tt.optimize

			s.OnPointerDown(easel.Pt(50, 50), 0)
			if got := h.top.Count(raster.CallFill); got != 5 {
				t.Errorf("live dots = %d, want 5", got)
			}
			s.OnPointerUp(0)

			g, ok := h.added[0].(*scene.Group)
			if !ok {
				t.Fatalf("added %T, want *scene.Group", h.added[0])
			}
			if g.Len() != tt.wantRects {
				t.Errorf("Len() = %d, want %d", g.Len(), tt.wantRects)
			}
			if layout, _ := g.Get("layout"); layout != scene.LayoutFixed {
				t.Errorf("layout = %v, want fixed", layout)
			}
			center := g.Item(0).Base().CalcTransformMatrix(false).Translation()
			if !center.Approx(easel.Pt(51, 51), 1e-9) {
				t.Errorf("dot center = %v, want (51, 51)", center)
			}
		})
	}
}

func TestSprayRandomOpacity(t *testing.T) {
	h := newFakeHost()
	s := NewSpray(h)
	s.Rand = rand.New(rand.NewPCG(5, 6))
	s.RandomOpacity = true
	s.OnPointerDown(easel.Pt(20, 20), 0)
	s.OnPointerMove(easel.Pt(30, 20), 0)
	s.OnPointerUp(0)

	g := h.added[0].(*scene.Group)
	for _, n := range g.Children() {
		b := n.Base()
		if op := b.Opacity(); op < 0 || op > 1 {
			t.Errorf("opacity = %v, want within [0, 1]", op)
		}
		if w := b.Width(); w < 1 || w > 2 {
			t.Errorf("dot width = %v, want 1 or 2", w)
		}
		c := b.CalcTransformMatrix(false).Translation()
		if c.X < 16 || c.X > 36 || c.Y < 16 || c.Y > 26 {
			t.Errorf("dot at %v is outside the spray area", c)
		}
	}
}
