package raster

import (
	"image"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
)

// CallType identifies a recorded Drawer call.
type CallType uint8

const (
	CallSave CallType = iota
	CallRestore
	CallTransform
	CallSetTransform
	CallSetGlobalAlpha
	CallSetCompositeOp
	CallSetShadow
	CallSetImageSmoothing
	CallFill
	CallStroke
	CallDrawImage
	CallClearRect
	CallClear
)

var callTypeNames = [...]string{
	CallSave:              "Save",
	CallRestore:           "Restore",
	CallTransform:         "Transform",
	CallSetTransform:      "SetTransform",
	CallSetGlobalAlpha:    "SetGlobalAlpha",
	CallSetCompositeOp:    "SetCompositeOp",
	CallSetShadow:         "SetShadow",
	CallSetImageSmoothing: "SetImageSmoothing",
	CallFill:              "Fill",
	CallStroke:            "Stroke",
	CallDrawImage:         "DrawImage",
	CallClearRect:         "ClearRect",
	CallClear:             "Clear",
}

// String returns the method name of the call.
func (t CallType) String() string {
	if int(t) < len(callTypeNames) {
		return callTypeNames[t]
	}
	return "Unknown"
}

// Call is one recorded Drawer call with the state it was made under.
type Call struct {
	Type CallType

	// State at the time of the call, after it took effect.
	Transform easel.Matrix
	Alpha     float64
	Op        CompositeOp
	Shadow    Shadow
	Depth     int

	// Arguments; only those of Type are set.
	Path   []path.Command
	Paint  Paint
	Rule   FillRule
	Style  StrokeStyle
	Image  image.Image
	Src    image.Rectangle
	Rect   easel.Rect
	Matrix easel.Matrix
	Flag   bool
}

// Recorder is a Drawer that records calls instead of drawing.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	st            state
	stack         []state
	calls         []Call
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height, st: defaultState()}
}

// Calls returns the recorded calls.
func (r *Recorder) Calls() []Call { return r.calls }

// Reset drops recorded calls and state.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
	r.st = defaultState()
	r.stack = r.stack[:0]
}

// Count returns how many calls of type t were recorded.
func (r *Recorder) Count(t CallType) int {
	n := 0
	for _, c := range r.calls {
		if c.Type == t {
			n++
		}
	}
	return n
}

// Depth returns the number of unrestored Save calls.
func (r *Recorder) Depth() int { return len(r.stack) }

func (r *Recorder) record(c Call) {
	c.Transform = r.st.transform
	c.Alpha = r.st.alpha
	c.Op = r.st.op
	c.Shadow = r.st.shadow
	c.Depth = len(r.stack)
	r.calls = append(r.calls, c)
}

// Save implements Drawer.
func (r *Recorder) Save() {
	r.stack = append(r.stack, r.st)
	r.record(Call{Type: CallSave})
}

// Restore implements Drawer.
func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.st = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.record(Call{Type: CallRestore})
}

// Transform implements Drawer.
func (r *Recorder) Transform(m easel.Matrix) {
	r.st.transform = r.st.transform.Multiply(m)
	r.record(Call{Type: CallTransform, Matrix: m})
}

// SetTransform implements Drawer.
func (r *Recorder) SetTransform(m easel.Matrix) {
	r.st.transform = m
	r.record(Call{Type: CallSetTransform, Matrix: m})
}

// CurrentTransform implements Drawer.
func (r *Recorder) CurrentTransform() easel.Matrix { return r.st.transform }

// SetGlobalAlpha implements Drawer.
func (r *Recorder) SetGlobalAlpha(a float64) {
	if a >= 0 && a <= 1 {
		r.st.alpha = a
	}
	r.record(Call{Type: CallSetGlobalAlpha})
}

// GlobalAlpha implements Drawer.
func (r *Recorder) GlobalAlpha() float64 { return r.st.alpha }

// SetCompositeOp implements Drawer.
func (r *Recorder) SetCompositeOp(op CompositeOp) {
	r.st.op = op
	r.record(Call{Type: CallSetCompositeOp})
}

// SetShadow implements Drawer.
func (r *Recorder) SetShadow(s Shadow) {
	r.st.shadow = s
	r.record(Call{Type: CallSetShadow})
}

// SetImageSmoothing implements Drawer.
func (r *Recorder) SetImageSmoothing(enabled bool) {
	r.st.smoothing = enabled
	r.record(Call{Type: CallSetImageSmoothing, Flag: enabled})
}

// Fill implements Drawer.
func (r *Recorder) Fill(cmds []path.Command, paint Paint, rule FillRule) {
	r.record(Call{Type: CallFill, Path: cmds, Paint: paint, Rule: rule})
}

// Stroke implements Drawer.
func (r *Recorder) Stroke(cmds []path.Command, paint Paint, style StrokeStyle) {
	r.record(Call{Type: CallStroke, Path: cmds, Paint: paint, Style: style})
}

// DrawImage implements Drawer.
func (r *Recorder) DrawImage(img image.Image, src image.Rectangle, dst easel.Rect) {
	if img == nil {
		return
	}
	r.record(Call{Type: CallDrawImage, Image: img, Src: src, Rect: dst})
}

// ClearRect implements Drawer.
func (r *Recorder) ClearRect(rect easel.Rect) {
	r.record(Call{Type: CallClearRect, Rect: rect})
}

// Clear implements Drawer.
func (r *Recorder) Clear() {
	r.record(Call{Type: CallClear})
}

// Size implements Drawer.
func (r *Recorder) Size() (int, int) { return r.width, r.height }
