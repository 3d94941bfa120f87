package path

import (
	"math"
	"testing"

	"github.com/gogpu/easel"
)

func TestJoin(t *testing.T) {
	cmds := []Command{
		MoveTo{easel.Pt(0.123456, -0.00001)},
		QuadTo{easel.Pt(1, 2), easel.Pt(3.5, 4)},
		CubicTo{easel.Pt(1, 1), easel.Pt(2, 2), easel.Pt(3, 3)},
		LineTo{easel.Pt(10, 20)},
		Close{},
	}
	got := Join(cmds, 4)
	want := "M 0.1235 0 Q 1 2 3.5 4 C 1 1 2 2 3 3 L 10 20 Z"
	if got != want {
		t.Errorf("Join = %q, want %q", got, want)
	}
}

func TestJoinEmptySentinel(t *testing.T) {
	cmds := []Command{MoveTo{}, QuadTo{}, LineTo{}}
	if got := Join(cmds, 2); got != Empty {
		t.Errorf("Join = %q, want %q", got, Empty)
	}
	if !IsEmpty(cmds) {
		t.Error("IsEmpty = false for the sentinel")
	}
	parsed, err := ParseCommands(Empty)
	if err != nil || !IsEmpty(parsed) {
		t.Errorf("sentinel does not round trip: %v %v", parsed, err)
	}
}

func TestJoinReparseBounds(t *testing.T) {
	d := "M 3.14159 2.71828 C 10.333 -4.25 20.5 30.75 40 5 Q 50 60 70 7 Z"
	cmds, err := ParseCommands(d)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseCommands(Join(cmds, 3))
	if err != nil {
		t.Fatal(err)
	}
	a, b := Bounds(cmds, nil), Bounds(back, nil)
	if math.Abs(a.Left-b.Left) > 1e-2 || math.Abs(a.Width-b.Width) > 1e-2 ||
		math.Abs(a.Top-b.Top) > 1e-2 || math.Abs(a.Height-b.Height) > 1e-2 {
		t.Errorf("bounds changed after join: %+v vs %+v", a, b)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   string
	}{
		{1.5, 2, "1.5"},
		{-0.0001, 2, "0"},
		{2.675, -1, "2.675"},
		{100, 0, "100"},
		{0.1 + 0.2, 4, "0.3"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v, tt.digits); got != tt.want {
			t.Errorf("FormatNumber(%v, %d) = %q, want %q", tt.v, tt.digits, got, tt.want)
		}
	}
}
