package raster

import (
	"image"
	"math"
	"sort"

	"github.com/gogpu/easel"
)

// Paint supplies the color of a filled or stroked area.
type Paint interface {
	// ColorAt returns the color at the given point in user space.
	ColorAt(x, y float64) easel.RGBA
}

// Solid paints a single color.
type Solid struct {
	Color easel.RGBA
}

// ColorAt implements Paint.
func (s Solid) ColorAt(x, y float64) easel.RGBA { return s.Color }

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds.
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  easel.RGBA
}

// SortStops returns a copy of stops ordered by offset. Stops with equal
// offsets keep their order.
func SortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// applyExtendMode applies the extend mode to normalize t to [0, 1].
func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = math.Max(0, math.Min(1, t))
	}
	return t
}

// colorAtOffset interpolates sorted stops at t.
func colorAtOffset(stops []ColorStop, t float64, mode ExtendMode) easel.RGBA {
	switch len(stops) {
	case 0:
		return easel.Transparent
	case 1:
		return stops[0].Color
	}

	t = applyExtendMode(t, mode)
	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	s1, s2 := stops[idx-1], stops[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	return s1.Color.Lerp(s2.Color, (t-s1.Offset)/(s2.Offset-s1.Offset))
}

// userToPaint maps a user space point into paint space.
func userToPaint(m easel.Matrix, x, y float64) easel.Point {
	if m == (easel.Matrix{}) || m.IsIdentity() {
		return easel.Pt(x, y)
	}
	return m.Invert().TransformPoint(easel.Pt(x, y))
}

// LinearGradient is a color transition along the line from Start to End.
type LinearGradient struct {
	Start, End easel.Point
	Stops      []ColorStop // sorted by offset
	Extend     ExtendMode
	// Transform maps gradient space to user space. The zero value means
	// identity.
	Transform easel.Matrix
}

// NewLinearGradient creates a gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64, stops []ColorStop) *LinearGradient {
	return &LinearGradient{
		Start:     easel.Pt(x0, y0),
		End:       easel.Pt(x1, y1),
		Stops:     SortStops(stops),
		Transform: easel.Identity(),
	}
}

// ColorAt implements Paint.
func (g *LinearGradient) ColorAt(x, y float64) easel.RGBA {
	p := userToPaint(g.Transform, x, y)
	d := g.End.Sub(g.Start)
	lengthSq := d.LengthSquared()
	if lengthSq == 0 {
		return colorAtOffset(g.Stops, 0, ExtendPad)
	}
	t := p.Sub(g.Start).Dot(d) / lengthSq
	return colorAtOffset(g.Stops, t, g.Extend)
}

// RadialGradient radiates from a focal point inside the circle (Center,
// EndRadius). With Focus equal to Center the transition runs from
// StartRadius to EndRadius.
type RadialGradient struct {
	Center      easel.Point
	Focus       easel.Point
	StartRadius float64
	EndRadius   float64
	Stops       []ColorStop // sorted by offset
	Extend      ExtendMode
	Transform   easel.Matrix
}

// NewRadialGradient creates a gradient between the circles (fx, fy, r0) and
// (cx, cy, r1).
func NewRadialGradient(fx, fy, r0, cx, cy, r1 float64, stops []ColorStop) *RadialGradient {
	return &RadialGradient{
		Center:      easel.Pt(cx, cy),
		Focus:       easel.Pt(fx, fy),
		StartRadius: r0,
		EndRadius:   r1,
		Stops:       SortStops(stops),
		Transform:   easel.Identity(),
	}
}

// ColorAt implements Paint.
func (g *RadialGradient) ColorAt(x, y float64) easel.RGBA {
	if g.EndRadius == g.StartRadius {
		return colorAtOffset(g.Stops, 0, ExtendPad)
	}
	p := userToPaint(g.Transform, x, y)
	if g.Focus.Approx(g.Center, 1e-9) {
		t := (p.Distance(g.Center) - g.StartRadius) / (g.EndRadius - g.StartRadius)
		return colorAtOffset(g.Stops, t, g.Extend)
	}
	return colorAtOffset(g.Stops, g.focalT(p), g.Extend)
}

// focalT solves the ray from Focus through p against the end circle.
func (g *RadialGradient) focalT(p easel.Point) float64 {
	d := p.Sub(g.Focus)
	f := g.Center.Sub(g.Focus)

	a := d.LengthSquared()
	if a == 0 {
		return 0
	}
	b := -2 * d.Dot(f)
	c := f.LengthSquared() - g.EndRadius*g.EndRadius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 1
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	t := math.Max(t1, t2)
	if t <= 0 {
		return 0
	}
	// p lies at ray parameter 1; the circle at parameter t.
	return 1 / t
}

// Repeat controls how an ImagePattern tiles.
type Repeat uint8

const (
	RepeatBoth Repeat = iota
	RepeatX
	RepeatY
	NoRepeat
)

// String returns the canvas name of the repeat mode.
func (r Repeat) String() string {
	switch r {
	case RepeatX:
		return "repeat-x"
	case RepeatY:
		return "repeat-y"
	case NoRepeat:
		return "no-repeat"
	}
	return "repeat"
}

// ParseRepeat parses a canvas repeat mode name.
func ParseRepeat(s string) Repeat {
	switch s {
	case "repeat-x":
		return RepeatX
	case "repeat-y":
		return RepeatY
	case "no-repeat":
		return NoRepeat
	}
	return RepeatBoth
}

// ImagePattern tiles an image. The image origin sits at the pattern space
// origin.
type ImagePattern struct {
	Image     image.Image
	Repeat    Repeat
	Transform easel.Matrix
}

// NewImagePattern creates a pattern of img.
func NewImagePattern(img image.Image, repeat Repeat) *ImagePattern {
	return &ImagePattern{Image: img, Repeat: repeat, Transform: easel.Identity()}
}

// ColorAt implements Paint.
func (p *ImagePattern) ColorAt(x, y float64) easel.RGBA {
	if p.Image == nil {
		return easel.Transparent
	}
	b := p.Image.Bounds()
	if b.Empty() {
		return easel.Transparent
	}
	q := userToPaint(p.Transform, x, y)
	px := int(math.Floor(q.X))
	py := int(math.Floor(q.Y))
	w, h := b.Dx(), b.Dy()

	if p.Repeat == RepeatBoth || p.Repeat == RepeatX {
		px = ((px % w) + w) % w
	} else if px < 0 || px >= w {
		return easel.Transparent
	}
	if p.Repeat == RepeatBoth || p.Repeat == RepeatY {
		py = ((py % h) + h) % h
	} else if py < 0 || py >= h {
		return easel.Transparent
	}
	return easel.FromColor(p.Image.At(b.Min.X+px, b.Min.Y+py))
}
