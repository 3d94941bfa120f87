package stroke

import (
	"math"
	"testing"

	"github.com/gogpu/easel/path"
)

func TestNewDash(t *testing.T) {
	tests := []struct {
		name    string
		lengths []float64
		wantNil bool
		wantLen float64
	}{
		{"empty", nil, true, 0},
		{"all zero", []float64{0, 0}, true, 0},
		{"even", []float64{5, 3}, false, 8},
		{"odd doubles", []float64{5}, false, 10},
		{"negative abs", []float64{-4, 2}, false, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDash(tt.lengths...)
			if (d == nil) != tt.wantNil {
				t.Fatalf("NewDash(%v) = %v", tt.lengths, d)
			}
			if got := d.PatternLength(); got != tt.wantLen {
				t.Errorf("PatternLength() = %v, want %v", got, tt.wantLen)
			}
		})
	}
}

func TestDashNilSafe(t *testing.T) {
	var d *Dash
	if d.IsDashed() {
		t.Error("nil dash is dashed")
	}
	if d.Scale(2) != nil || d.WithOffset(3) != nil {
		t.Error("nil dash methods returned non-nil")
	}
	cmds := line(0, 0, 10, 0)
	if got := d.Apply(cmds, DefaultTolerance); len(got) != len(cmds) {
		t.Errorf("nil Apply changed the path: %v", got)
	}
}

func TestDashScale(t *testing.T) {
	d := NewDash(2, 4).WithOffset(1).Scale(3)
	if d.Array[0] != 6 || d.Array[1] != 12 || d.Offset != 3 {
		t.Errorf("scaled dash = %+v", d)
	}
}

func countDashes(cmds []path.Command) int {
	n := 0
	for _, c := range cmds {
		if _, ok := c.(path.MoveTo); ok {
			n++
		}
	}
	return n
}

func TestDashApply(t *testing.T) {
	tests := []struct {
		name   string
		dash   *Dash
		length float64
		want   int
	}{
		{"even split", NewDash(10, 10), 100, 5},
		{"partial last", NewDash(10, 10), 95, 5},
		{"offset into gap", NewDash(10, 10).WithOffset(10), 100, 5},
		{"odd pattern", NewDash(10), 100, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.dash.Apply(line(0, 0, tt.length, 0), DefaultTolerance)
			if n := countDashes(got); n != tt.want {
				t.Errorf("dashes = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestDashRestartsPerSubpath(t *testing.T) {
	p := path.New()
	p.MoveTo(0, 0)
	p.LineTo(15, 0)
	p.MoveTo(0, 10)
	p.LineTo(15, 10)
	got := NewDash(10, 10).Apply(p.Commands(), DefaultTolerance)
	if n := countDashes(got); n != 2 {
		t.Fatalf("dashes = %d, want 2", n)
	}
	b := path.Bounds(got, nil)
	if math.Abs(b.Width-10) > 1e-9 {
		t.Errorf("dash width = %v, want 10", b.Width)
	}
}
