package raster

import (
	"image"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
)

// FillRule selects how path interiors are determined.
type FillRule uint8

const (
	// NonZero fills areas with a nonzero winding number.
	NonZero FillRule = iota
	// EvenOdd fills areas crossed an odd number of times.
	EvenOdd
)

// String returns the canvas name of the rule.
func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// ParseFillRule parses a canvas fill rule name. Unknown names map to NonZero.
func ParseFillRule(s string) FillRule {
	if s == "evenodd" {
		return EvenOdd
	}
	return NonZero
}

// Shadow is a drop shadow applied to subsequent drawing. Blur and offsets are
// in device pixels and ignore the current transform.
type Shadow struct {
	Color   easel.RGBA
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// Visible reports whether the shadow would paint anything.
func (s Shadow) Visible() bool {
	return s.Color.A > 0 && (s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0)
}

// Drawer is a stateful 2D drawing context.
//
// Paths are given in user space and transformed by the current transform.
// State changes are undone by the matching Restore.
type Drawer interface {
	Save()
	Restore()

	// Transform multiplies the current transform by m, so m applies first.
	Transform(m easel.Matrix)
	SetTransform(m easel.Matrix)
	CurrentTransform() easel.Matrix

	SetGlobalAlpha(a float64)
	GlobalAlpha() float64
	SetCompositeOp(op CompositeOp)
	SetShadow(s Shadow)
	SetImageSmoothing(enabled bool)

	Fill(cmds []path.Command, paint Paint, rule FillRule)
	Stroke(cmds []path.Command, paint Paint, style StrokeStyle)

	// DrawImage draws the src rectangle of img into dst, given in user space.
	// A nil img draws nothing.
	DrawImage(img image.Image, src image.Rectangle, dst easel.Rect)

	// ClearRect makes the user-space rectangle r transparent.
	ClearRect(r easel.Rect)
	// Clear makes the whole surface transparent, ignoring all state.
	Clear()

	Size() (width, height int)
}

// Surface is an offscreen pixel buffer with its drawing context.
type Surface interface {
	Width() int
	Height() int

	// Resize reallocates the buffer. Contents are cleared and the context
	// state is reset.
	Resize(width, height int)

	Context() Drawer

	// Image returns the premultiplied pixels backing the surface.
	Image() *image.RGBA
}

// Provider creates offscreen surfaces.
type Provider interface {
	NewSurface(width, height int) Surface
}
