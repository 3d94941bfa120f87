package raster

import (
	"image"
	"testing"

	"github.com/gogpu/easel"
)

func TestRecorderCalls(t *testing.T) {
	r := NewRecorder(100, 50)
	r.Save()
	r.Transform(easel.Translate(10, 0))
	r.SetGlobalAlpha(0.5)
	r.Fill(rectPath(0, 0, 1, 1), Solid{easel.Red}, EvenOdd)
	r.Restore()
	r.Stroke(rectPath(0, 0, 1, 1), Solid{easel.Blue}, DefaultStrokeStyle())
	r.DrawImage(nil, image.Rectangle{}, easel.Rect{})

	calls := r.Calls()
	want := []CallType{CallSave, CallTransform, CallSetGlobalAlpha, CallFill, CallRestore, CallStroke}
	if len(calls) != len(want) {
		t.Fatalf("recorded %d calls, want %d", len(calls), len(want))
	}
	for i, c := range calls {
		if c.Type != want[i] {
			t.Errorf("call %d = %v, want %v", i, c.Type, want[i])
		}
	}

	fill := calls[3]
	if fill.Alpha != 0.5 || fill.Depth != 1 || fill.Rule != EvenOdd {
		t.Errorf("fill state = alpha %v depth %d rule %v", fill.Alpha, fill.Depth, fill.Rule)
	}
	if fill.Transform.C != 10 {
		t.Errorf("fill transform = %v", fill.Transform)
	}
	if stroke := calls[5]; stroke.Alpha != 1 || !stroke.Transform.IsIdentity() || stroke.Depth != 0 {
		t.Errorf("state leaked past Restore: %+v", stroke)
	}
	if r.Count(CallFill) != 1 || r.Depth() != 0 {
		t.Errorf("Count = %d Depth = %d", r.Count(CallFill), r.Depth())
	}
	if w, h := r.Size(); w != 100 || h != 50 {
		t.Errorf("Size() = %d, %d", w, h)
	}
	if CallDrawImage.String() != "DrawImage" || CallType(200).String() != "Unknown" {
		t.Error("call names")
	}

	r.Reset()
	if len(r.Calls()) != 0 {
		t.Error("Reset kept calls")
	}
}
