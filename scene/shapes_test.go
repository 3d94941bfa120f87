package scene

import (
	"reflect"
	"testing"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
)

func TestRectRadii(t *testing.T) {
	tests := []struct {
		name           string
		rx, ry         float64
		wantRx, wantRy float64
	}{
		{"none", 0, 0, 0, 0},
		{"rx only", 4, 0, 4, 4},
		{"ry only", 0, 3, 3, 3},
		{"both", 4, 2, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(Record{"width": 20, "height": 20, "rx": tt.rx, "ry": tt.ry})
			rx, ry := r.Radii()
			if rx != tt.wantRx || ry != tt.wantRy {
				t.Errorf("Radii() = %v, %v, want %v, %v", rx, ry, tt.wantRx, tt.wantRy)
			}
		})
	}
}

func TestCircle(t *testing.T) {
	c := NewCircle(Record{"radius": 6})
	if c.Width() != 12 || c.Height() != 12 {
		t.Errorf("size = %vx%v, want 12x12", c.Width(), c.Height())
	}

	tests := []struct {
		start, end float64
		full       bool
	}{
		{0, 360, true},
		{90, 450, true},
		{0, 180, false},
		{45, 90, false},
	}
	for _, tt := range tests {
		c.Set("startAngle", tt.start)
		c.Set("endAngle", tt.end)
		if got := c.isFull(); got != tt.full {
			t.Errorf("isFull(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.full)
		}
	}

	half := NewCircle(Record{"radius": 10, "endAngle": 180})
	b := path.Bounds(half.Outline(), nil)
	if !approx(b.Top, 0) || !approx(b.Bottom(), 10) {
		t.Errorf("half circle bounds = %+v, want the lower half", b)
	}
}

func TestEllipseSize(t *testing.T) {
	e := NewEllipse(Record{"rx": 5, "ry": 2})
	if e.Width() != 10 || e.Height() != 4 {
		t.Errorf("size = %vx%v, want 10x4", e.Width(), e.Height())
	}
	e.Set("rx", 7)
	if e.Width() != 14 {
		t.Errorf("Width() = %v after rx change, want 14", e.Width())
	}
}

func TestPathNode(t *testing.T) {
	p := NewPath(nil, Record{"path": "M 0 0 L 10 0 L 10 20 z", "strokeWidth": 0})
	if p.Width() != 10 || p.Height() != 20 {
		t.Errorf("size = %vx%v, want 10x20", p.Width(), p.Height())
	}
	if got := p.PathOffset(); got != easel.Pt(5, 10) {
		t.Errorf("PathOffset() = %v, want (5, 10)", got)
	}
	if got := p.CenterPoint(); !got.Approx(easel.Pt(5, 10), 1e-9) {
		t.Errorf("CenterPoint() = %v, want (5, 10)", got)
	}
	if got, want := p.PathData(), "M 0 0 L 10 0 L 10 20 Z"; got != want {
		t.Errorf("PathData() = %q, want %q", got, want)
	}
	if m, ok := p.Outline()[0].(path.MoveTo); !ok || m.Point != easel.Pt(-5, -10) {
		t.Errorf("outline starts at %v, want M -5 -10", p.Outline()[0])
	}

	rec := p.ToObject()
	q := NewPath(nil, rec)
	if !reflect.DeepEqual(q.Commands(), p.Commands()) {
		t.Errorf("commands from record = %v, want %v", q.Commands(), p.Commands())
	}

	if err := p.Set("path", []any{"M 0 0"}); err == nil {
		t.Error("bad segment accepted")
	}
}

func TestPathNodePlacement(t *testing.T) {
	cmds := []path.Command{
		path.MoveTo{Point: easel.Pt(100, 100)},
		path.LineTo{Point: easel.Pt(120, 100)},
	}
	p := NewPath(cmds, Record{"strokeWidth": 0})
	if got := p.CenterPoint(); !got.Approx(easel.Pt(110, 100), 1e-9) {
		t.Errorf("CenterPoint() = %v, want (110, 100)", got)
	}
	placed := NewPath(cmds, Record{"left": 0, "top": 0, "strokeWidth": 0})
	if placed.Left() != 0 || placed.Top() != 0 {
		t.Errorf("explicit position moved to %v,%v", placed.Left(), placed.Top())
	}
}

func TestPolyline(t *testing.T) {
	pts := []easel.Point{{X: 0, Y: 0}, {X: 20, Y: 10}, {X: 40, Y: 0}}
	tests := []struct {
		name     string
		node     *Polyline
		wantType string
		wantCmds int
	}{
		{"open", NewPolyline(pts, nil), "Polyline", 3},
		{"closed", NewPolygon(pts, nil), "Polygon", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Type(); got != tt.wantType {
				t.Errorf("Type() = %q, want %q", got, tt.wantType)
			}
			if tt.node.Width() != 40 || tt.node.Height() != 10 {
				t.Errorf("size = %vx%v, want 40x10", tt.node.Width(), tt.node.Height())
			}
			if got := len(tt.node.Outline()); got != tt.wantCmds {
				t.Errorf("len(Outline()) = %d, want %d", got, tt.wantCmds)
			}
			if got := tt.node.CenterPoint(); !got.Approx(easel.Pt(20, 5), 1e-9) {
				t.Errorf("CenterPoint() = %v, want (20, 5)", got)
			}
		})
	}

	p := NewPolyline(nil, Record{"points": []any{Record{"x": 1.0, "y": 2.0}, Record{"x": 3.0, "y": 6.0}}})
	if got := p.Points(); len(got) != 2 || got[1] != easel.Pt(3, 6) {
		t.Errorf("Points() = %v", got)
	}
}
