package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
)

func rectPath(x, y, w, h float64) []path.Command {
	p := path.New()
	p.Rect(x, y, w, h)
	return p.Commands()
}

func pixel(b *Buffer, x, y int) color.RGBA {
	return b.Image().RGBAAt(x, y)
}

func near(a, b byte, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func TestFillSolid(t *testing.T) {
	b := NewBuffer(20, 20)
	ctx := b.Context()
	ctx.Fill(rectPath(5, 5, 10, 10), Solid{easel.Red}, NonZero)

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"inside", 10, 10, color.RGBA{255, 0, 0, 255}},
		{"corner inside", 5, 5, color.RGBA{255, 0, 0, 255}},
		{"outside left", 4, 10, color.RGBA{}},
		{"outside bottom", 10, 15, color.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pixel(b, tt.x, tt.y); got != tt.want {
				t.Errorf("pixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFillTransformAndRestore(t *testing.T) {
	b := NewBuffer(40, 40)
	ctx := b.Context()
	ctx.Save()
	ctx.Transform(easel.Translate(20, 20))
	ctx.Transform(easel.Scale(2, 2))
	ctx.Fill(rectPath(0, 0, 5, 5), Solid{easel.Blue}, NonZero)
	ctx.Restore()

	if got := pixel(b, 29, 29); got.B != 255 {
		t.Errorf("scaled fill missing at (29,29): %v", got)
	}
	if got := pixel(b, 31, 31); got.A != 0 {
		t.Errorf("scaled fill leaked to (31,31): %v", got)
	}
	if !ctx.CurrentTransform().IsIdentity() {
		t.Errorf("transform after Restore = %v", ctx.CurrentTransform())
	}
}

func TestGlobalAlpha(t *testing.T) {
	b := NewBuffer(10, 10)
	ctx := b.Context()
	ctx.SetGlobalAlpha(0.5)
	ctx.Fill(rectPath(0, 0, 10, 10), Solid{easel.White}, NonZero)
	got := pixel(b, 5, 5)
	if !near(got.A, 128, 1) || !near(got.R, 128, 1) {
		t.Errorf("half alpha white = %v", got)
	}

	ctx.SetGlobalAlpha(2)
	if ctx.GlobalAlpha() != 0.5 {
		t.Errorf("out of range alpha accepted: %v", ctx.GlobalAlpha())
	}
}

func TestCompositeOps(t *testing.T) {
	tests := []struct {
		name      string
		op        CompositeOp
		overlap   color.RGBA // at (5,5): both shapes
		destOnly  color.RGBA // at (2,2): only the first shape
		srcOnly   color.RGBA // at (12,12): only the second shape
	}{
		{"source-over", SourceOver, color.RGBA{0, 0, 255, 255}, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}},
		{"destination-in", DestinationIn, color.RGBA{255, 0, 0, 255}, color.RGBA{}, color.RGBA{}},
		{"destination-out", DestinationOut, color.RGBA{}, color.RGBA{255, 0, 0, 255}, color.RGBA{}},
		{"source-in", SourceIn, color.RGBA{0, 0, 255, 255}, color.RGBA{}, color.RGBA{}},
		{"destination-over", DestinationOver, color.RGBA{255, 0, 0, 255}, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}},
		{"copy", Copy, color.RGBA{0, 0, 255, 255}, color.RGBA{}, color.RGBA{0, 0, 255, 255}},
		{"xor", Xor, color.RGBA{}, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(16, 16)
			ctx := b.Context()
			ctx.Fill(rectPath(0, 0, 8, 8), Solid{easel.Red}, NonZero)
			ctx.SetCompositeOp(tt.op)
			ctx.Fill(rectPath(4, 4, 12, 12), Solid{easel.Blue}, NonZero)

			if got := pixel(b, 5, 5); got != tt.overlap {
				t.Errorf("overlap = %v, want %v", got, tt.overlap)
			}
			if got := pixel(b, 2, 2); got != tt.destOnly {
				t.Errorf("destination only = %v, want %v", got, tt.destOnly)
			}
			if got := pixel(b, 12, 12); got != tt.srcOnly {
				t.Errorf("source only = %v, want %v", got, tt.srcOnly)
			}
		})
	}
}

func TestStrokeCoversLine(t *testing.T) {
	b := NewBuffer(30, 30)
	ctx := b.Context()
	p := path.New()
	p.MoveTo(5, 15)
	p.LineTo(25, 15)
	style := DefaultStrokeStyle()
	style.Width = 4
	ctx.Stroke(p.Commands(), Solid{easel.Black}, style)

	if got := pixel(b, 15, 15); got.A != 255 {
		t.Errorf("stroke center alpha = %d", got.A)
	}
	if got := pixel(b, 15, 10); got.A != 0 {
		t.Errorf("stroke leaked to (15,10): %v", got)
	}
	if got := pixel(b, 2, 15); got.A != 0 {
		t.Errorf("butt cap leaked to (2,15): %v", got)
	}
}

func TestClearRect(t *testing.T) {
	b := NewBuffer(10, 10)
	ctx := b.Context()
	ctx.Fill(rectPath(0, 0, 10, 10), Solid{easel.Green}, NonZero)
	ctx.ClearRect(easel.Rect{Left: 0, Top: 0, Width: 5, Height: 10})
	if got := pixel(b, 2, 5); got.A != 0 {
		t.Errorf("cleared pixel = %v", got)
	}
	if got := pixel(b, 7, 5); got.G != 255 {
		t.Errorf("kept pixel = %v", got)
	}
	ctx.Clear()
	if got := pixel(b, 7, 5); got.A != 0 {
		t.Errorf("Clear left %v", got)
	}
}

func TestShadowOffset(t *testing.T) {
	b := NewBuffer(30, 30)
	ctx := b.Context()
	ctx.SetShadow(Shadow{Color: easel.Black, OffsetX: 10, OffsetY: 10})
	ctx.Fill(rectPath(2, 2, 6, 6), Solid{easel.Red}, NonZero)

	if got := pixel(b, 5, 5); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("shape pixel = %v", got)
	}
	if got := pixel(b, 15, 15); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("shadow pixel = %v", got)
	}
	if got := pixel(b, 25, 25); got.A != 0 {
		t.Errorf("beyond shadow = %v", got)
	}
}

func TestShadowBlurSpreads(t *testing.T) {
	b := NewBuffer(40, 40)
	ctx := b.Context()
	ctx.SetShadow(Shadow{Color: easel.Black, Blur: 8, OffsetX: 0.1})
	ctx.Fill(rectPath(15, 15, 10, 10), Solid{easel.White}, NonZero)
	if got := pixel(b, 12, 20); got.A == 0 {
		t.Error("blurred shadow did not spread outside the shape")
	}
}

func TestDrawImageScaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	src.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	src.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})

	b := NewBuffer(20, 20)
	ctx := b.Context()
	ctx.SetImageSmoothing(false)
	ctx.DrawImage(src, src.Bounds(), easel.Rect{Left: 0, Top: 0, Width: 20, Height: 20})

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 5, color.RGBA{255, 0, 0, 255}},
		{15, 5, color.RGBA{0, 255, 0, 255}},
		{5, 15, color.RGBA{0, 0, 255, 255}},
		{15, 15, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := pixel(b, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	ctx.DrawImage(nil, image.Rect(0, 0, 1, 1), easel.Rect{Width: 1, Height: 1})
}

func TestRestoreUnbalanced(t *testing.T) {
	ctx := NewContext(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	ctx.Restore()
	ctx.Save()
	ctx.SetGlobalAlpha(0.2)
	ctx.Restore()
	if ctx.GlobalAlpha() != 1 || ctx.Depth() != 0 {
		t.Errorf("alpha = %v depth = %d", ctx.GlobalAlpha(), ctx.Depth())
	}
}
