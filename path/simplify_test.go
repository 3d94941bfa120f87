package path

import (
	"math"
	"reflect"
	"testing"

	"github.com/gogpu/easel"
)

func TestSimplifyRelative(t *testing.T) {
	cmds, err := ParseCommands("m10 10 l5 0 h5 v5 H0 V0 z l1 1")
	if err != nil {
		t.Fatal(err)
	}
	want := []Command{
		MoveTo{easel.Pt(10, 10)},
		LineTo{easel.Pt(15, 10)},
		LineTo{easel.Pt(20, 10)},
		LineTo{easel.Pt(20, 15)},
		LineTo{easel.Pt(0, 15)},
		LineTo{easel.Pt(0, 0)},
		Close{},
		// Close resets the current point to the subpath start.
		LineTo{easel.Pt(11, 11)},
	}
	if !reflect.DeepEqual(cmds, want) {
		t.Errorf("got %v\nwant %v", cmds, want)
	}
}

func TestSimplifySmoothCurves(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Command
	}{
		{
			"S after C reflects",
			"M0 0 C0 10 10 10 10 0 S20 -10 20 0",
			CubicTo{easel.Pt(10, -10), easel.Pt(20, -10), easel.Pt(20, 0)},
		},
		{
			"S after L uses current point",
			"M0 0 L10 0 S20 -10 20 0",
			CubicTo{easel.Pt(10, 0), easel.Pt(20, -10), easel.Pt(20, 0)},
		},
		{
			"T after Q reflects",
			"M0 0 Q5 10 10 0 T20 0",
			QuadTo{easel.Pt(15, -10), easel.Pt(20, 0)},
		},
		{
			"T chain reflects reflected control",
			"M0 0 Q5 10 10 0 T20 0 t10 0",
			QuadTo{easel.Pt(25, 10), easel.Pt(30, 0)},
		},
		{
			"T after M uses current point",
			"M0 0 T20 0",
			QuadTo{easel.Pt(0, 0), easel.Pt(20, 0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, err := ParseCommands(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			got := cmds[len(cmds)-1]
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("last command = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	inputs := []string{
		"M 10 10 l 20 0 q 10 10 20 0 t 20 0 c 0 10 10 10 10 0 s 10 -10 10 0 z",
		"M0 0 A 30 50 -45 0 1 100 100 a 10 10 0 1 0 20 0 Z m 5 5 h 10 v 10",
		"M 1 1 L 2 2",
	}
	for _, in := range inputs {
		once, err := ParseCommands(in)
		if err != nil {
			t.Fatal(err)
		}
		twice := Simplify(Segments(once))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Simplify is not idempotent for %q:\n%v\n%v", in, once, twice)
		}
	}
}

func TestArcEndpointContinuity(t *testing.T) {
	from := easel.Pt(10, 20)
	dests := []easel.Point{easel.Pt(110, 20), easel.Pt(40, 90), easel.Pt(-30, -5)}
	radii := [][2]float64{{50, 50}, {80, 30}, {5, 5}}
	for _, large := range []bool{false, true} {
		for _, sweep := range []bool{false, true} {
			for _, rot := range []float64{0, 30, -75} {
				for _, r := range radii {
					for _, to := range dests {
						cmds := ArcToCubics(from, r[0], r[1], rot, large, sweep, to)
						if len(cmds) == 0 {
							t.Fatalf("no segments for large=%v sweep=%v r=%v", large, sweep, r)
						}
						last := cmds[len(cmds)-1].(CubicTo)
						if !last.Point.Approx(to, 1e-9) {
							t.Errorf("large=%v sweep=%v rot=%v r=%v: end %v, want %v",
								large, sweep, rot, r, last.Point, to)
						}
						// The unsnapped segment end must already be close.
						c := arcToSegments(to.X-from.X, to.Y-from.Y, r[0], r[1], large, sweep, rot)
						end := c[len(c)-1].Point.Add(from)
						if !end.Approx(to, 1e-6) {
							t.Errorf("large=%v sweep=%v rot=%v r=%v: raw end %v, want %v",
								large, sweep, rot, r, end, to)
						}
					}
				}
			}
		}
	}
}

func TestArcSegmentCount(t *testing.T) {
	// A half circle spans two quarter turns.
	cmds := ArcToCubics(easel.Pt(0, 0), 50, 50, 0, false, true, easel.Pt(100, 0))
	if len(cmds) != 2 {
		t.Errorf("half circle produced %d segments, want 2", len(cmds))
	}
	// With y down, sweep=1 runs clockwise on screen, over the top.
	b := Bounds(append([]Command{MoveTo{easel.Pt(0, 0)}}, cmds...), nil)
	if math.Abs(b.Height-50) > 1e-3 || math.Abs(b.Top+50) > 1e-3 {
		t.Errorf("half circle bounds = %+v, want top -50 height 50", b)
	}
}

func TestArcDegenerate(t *testing.T) {
	if got := ArcToCubics(easel.Pt(1, 1), 10, 10, 0, false, false, easel.Pt(1, 1)); got != nil {
		t.Errorf("coincident endpoints produced %v", got)
	}
	got := ArcToCubics(easel.Pt(0, 0), 0, 10, 0, false, false, easel.Pt(5, 5))
	if len(got) != 1 || got[0] != (LineTo{easel.Pt(5, 5)}) {
		t.Errorf("zero radius produced %v, want a line", got)
	}
}
