package raster

import "testing"

func TestParseCompositeOp(t *testing.T) {
	for i, name := range compositeNames {
		op, ok := ParseCompositeOp(name)
		if !ok || op != CompositeOp(i) {
			t.Errorf("ParseCompositeOp(%q) = %v, %v", name, op, ok)
		}
		if op.String() != name {
			t.Errorf("String() = %q, want %q", op.String(), name)
		}
	}
	if op, ok := ParseCompositeOp("multiply-ish"); ok || op != SourceOver {
		t.Errorf("unknown op parsed as %v, %v", op, ok)
	}
}

func TestCompositeFuncs(t *testing.T) {
	// Half transparent white source over opaque red.
	const sr, sg, sb, sa = 128, 128, 128, 128
	const dr, dg, db, da = 255, 0, 0, 255

	tests := []struct {
		op         CompositeOp
		r, g, b, a byte
	}{
		{SourceOver, 255, 128, 128, 255},
		{DestinationOver, 255, 0, 0, 255},
		{SourceIn, 128, 128, 128, 128},
		{DestinationIn, 128, 0, 0, 128},
		{SourceOut, 0, 0, 0, 0},
		{DestinationOut, 127, 0, 0, 127},
		{SourceAtop, 255, 128, 128, 255},
		{DestinationAtop, 128, 0, 0, 128},
		{Lighter, 255, 128, 128, 255},
		{Copy, 128, 128, 128, 128},
		{Xor, 127, 0, 0, 127},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			r, g, b, a := tt.op.fn()(sr, sg, sb, sa, dr, dg, db, da)
			if !near(r, tt.r, 1) || !near(g, tt.g, 1) || !near(b, tt.b, 1) || !near(a, tt.a, 1) {
				t.Errorf("got (%d,%d,%d,%d), want (%d,%d,%d,%d)", r, g, b, a, tt.r, tt.g, tt.b, tt.a)
			}
		})
	}
}

func TestUnbounded(t *testing.T) {
	unbounded := map[CompositeOp]bool{SourceIn: true, SourceOut: true, DestinationIn: true, DestinationAtop: true, Copy: true}
	for i := range compositeNames {
		op := CompositeOp(i)
		if op.Unbounded() != unbounded[op] {
			t.Errorf("%v.Unbounded() = %v", op, op.Unbounded())
		}
	}
}
