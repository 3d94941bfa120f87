package scene

import (
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/raster"
)

// Paint is a fill or stroke source: a Color, a *Gradient or a *Pattern.
// Paints are positioned relative to the top-left corner of the node.
type Paint interface {
	// rasterPaint resolves the paint for a node drawn centered on the
	// origin. It returns nil when the paint draws nothing.
	rasterPaint(o *Object) raster.Paint
	toRecord(digits int) any
}

// Color is a CSS color string resolved through the environment's color
// resolver at draw time.
type Color string

func (c Color) rasterPaint(o *Object) raster.Paint {
	rgba, ok := o.resolveColor(string(c))
	if !ok {
		return nil
	}
	return raster.Solid{Color: rgba}
}

func (c Color) toRecord(int) any { return string(c) }

// Gradient units.
const (
	UnitsPixels     = "pixels"
	UnitsPercentage = "percentage"
)

// ColorStop is a gradient stop. Opacity multiplies the color's alpha.
type ColorStop struct {
	Offset  float64
	Color   string
	Opacity float64
}

// GradientCoords holds the gradient geometry. Linear gradients use the line
// (X1, Y1)-(X2, Y2); radial gradients run from the circle (X1, Y1, R1) to
// the circle (X2, Y2, R2).
type GradientCoords struct {
	X1, Y1, X2, Y2 float64
	R1, R2         float64
}

// Gradient is a linear or radial gradient paint.
type Gradient struct {
	// Type is "linear" or "radial".
	Type       string
	Coords     GradientCoords
	ColorStops []ColorStop
	// Units is UnitsPixels or UnitsPercentage. Percentage coordinates are
	// fractions of the node's width and height.
	Units string
	// Transform is applied to the gradient coordinates. The zero value means
	// identity.
	Transform        easel.Matrix
	OffsetX, OffsetY float64
}

// NewLinearGradient creates a gradient along (x1, y1)-(x2, y2) in pixels.
func NewLinearGradient(x1, y1, x2, y2 float64, stops ...ColorStop) *Gradient {
	return &Gradient{
		Type:       "linear",
		Coords:     GradientCoords{X1: x1, Y1: y1, X2: x2, Y2: y2},
		ColorStops: stops,
		Units:      UnitsPixels,
	}
}

// NewRadialGradient creates a gradient from circle (x1, y1, r1) to circle
// (x2, y2, r2) in pixels.
func NewRadialGradient(x1, y1, r1, x2, y2, r2 float64, stops ...ColorStop) *Gradient {
	return &Gradient{
		Type:       "radial",
		Coords:     GradientCoords{X1: x1, Y1: y1, X2: x2, Y2: y2, R1: r1, R2: r2},
		ColorStops: stops,
		Units:      UnitsPixels,
	}
}

// Stop is a shorthand for an opaque ColorStop.
func Stop(offset float64, color string) ColorStop {
	return ColorStop{Offset: offset, Color: color, Opacity: 1}
}

// paintTransform maps paint coordinates, anchored at the node's top-left
// corner, to the node plane.
func paintTransform(o *Object, offsetX, offsetY float64, t easel.Matrix) easel.Matrix {
	m := easel.Translate(-o.width/2+offsetX, -o.height/2+offsetY)
	if t != (easel.Matrix{}) {
		m = m.Multiply(t)
	}
	return m
}

func (g *Gradient) rasterPaint(o *Object) raster.Paint {
	stops := make([]raster.ColorStop, 0, len(g.ColorStops))
	for _, s := range g.ColorStops {
		c, ok := o.resolveColor(s.Color)
		if !ok {
			continue
		}
		stops = append(stops, raster.ColorStop{Offset: s.Offset, Color: c.WithAlpha(c.A * s.Opacity)})
	}
	if len(stops) == 0 {
		return nil
	}
	m := paintTransform(o, g.OffsetX, g.OffsetY, g.Transform)
	if g.Units == UnitsPercentage {
		m = m.Multiply(easel.Scale(o.width, o.height))
	}
	c := g.Coords
	if g.Type == "radial" {
		rg := raster.NewRadialGradient(c.X1, c.Y1, c.R1, c.X2, c.Y2, c.R2, stops)
		rg.Transform = m
		return rg
	}
	lg := raster.NewLinearGradient(c.X1, c.Y1, c.X2, c.Y2, stops)
	lg.Transform = m
	return lg
}

func (g *Gradient) toRecord(digits int) any {
	stops := make([]any, len(g.ColorStops))
	for i, s := range g.ColorStops {
		stops[i] = Record{"offset": round(s.Offset, digits), "color": s.Color, "opacity": round(s.Opacity, digits)}
	}
	rec := Record{
		"type": g.Type,
		"coords": Record{
			"x1": round(g.Coords.X1, digits), "y1": round(g.Coords.Y1, digits),
			"x2": round(g.Coords.X2, digits), "y2": round(g.Coords.Y2, digits),
			"r1": round(g.Coords.R1, digits), "r2": round(g.Coords.R2, digits),
		},
		"colorStops":    stops,
		"gradientUnits": g.Units,
		"offsetX":       round(g.OffsetX, digits),
		"offsetY":       round(g.OffsetY, digits),
	}
	if g.Transform != (easel.Matrix{}) {
		rec["gradientTransform"] = matrixToAny(g.Transform, digits)
	}
	return rec
}

func gradientFromRecord(rec Record) (*Gradient, error) {
	typ, _ := toString(rec["type"])
	if typ != "linear" && typ != "radial" {
		return nil, fmt.Errorf("%w: gradient type %q", ErrInvalidValue, typ)
	}
	g := &Gradient{Type: typ, Units: UnitsPixels}
	if u, ok := toString(rec["gradientUnits"]); ok && u != "" {
		g.Units = u
	}
	if c, ok := toRecord(rec["coords"]); ok {
		g.Coords.X1, _ = toFloat(c["x1"])
		g.Coords.Y1, _ = toFloat(c["y1"])
		g.Coords.X2, _ = toFloat(c["x2"])
		g.Coords.Y2, _ = toFloat(c["y2"])
		g.Coords.R1, _ = toFloat(c["r1"])
		g.Coords.R2, _ = toFloat(c["r2"])
	}
	g.OffsetX, _ = toFloat(rec["offsetX"])
	g.OffsetY, _ = toFloat(rec["offsetY"])
	if m, ok := matrixFromAny(rec["gradientTransform"]); ok {
		g.Transform = m
	}
	stops, _ := rec["colorStops"].([]any)
	for _, s := range stops {
		sr, ok := toRecord(s)
		if !ok {
			continue
		}
		stop := ColorStop{Opacity: 1}
		stop.Offset, _ = toFloat(sr["offset"])
		stop.Color, _ = toString(sr["color"])
		if op, ok := toFloat(sr["opacity"]); ok {
			stop.Opacity = op
		}
		g.ColorStops = append(g.ColorStops, stop)
	}
	return g, nil
}

// Pattern tiles an image. Source is the image location used for
// serialization and loading; Image is the decoded image, nil until loaded.
type Pattern struct {
	Source  string
	Image   image.Image
	Repeat  string
	OffsetX float64
	OffsetY float64
	// Transform is the pattern transform. The zero value means identity.
	Transform easel.Matrix
}

// NewPattern creates a repeating pattern of img.
func NewPattern(img image.Image, source string) *Pattern {
	return &Pattern{Source: source, Image: img, Repeat: "repeat"}
}

func (p *Pattern) rasterPaint(o *Object) raster.Paint {
	if p.Image == nil {
		return nil
	}
	ip := raster.NewImagePattern(p.Image, raster.ParseRepeat(p.Repeat))
	ip.Transform = paintTransform(o, p.OffsetX, p.OffsetY, p.Transform)
	return ip
}

func (p *Pattern) toRecord(digits int) any {
	rec := Record{
		"type":    "pattern",
		"source":  p.Source,
		"repeat":  p.Repeat,
		"offsetX": round(p.OffsetX, digits),
		"offsetY": round(p.OffsetY, digits),
	}
	if p.Transform != (easel.Matrix{}) {
		rec["patternTransform"] = matrixToAny(p.Transform, digits)
	}
	return rec
}

func patternFromRecord(rec Record) *Pattern {
	p := &Pattern{Repeat: "repeat"}
	p.Source, _ = toString(rec["source"])
	if r, ok := toString(rec["repeat"]); ok && r != "" {
		p.Repeat = r
	}
	p.OffsetX, _ = toFloat(rec["offsetX"])
	p.OffsetY, _ = toFloat(rec["offsetY"])
	if m, ok := matrixFromAny(rec["patternTransform"]); ok {
		p.Transform = m
	}
	return p
}

// paintFromValue converts a property value to a Paint. Strings become
// colors; records become gradients or patterns.
func paintFromValue(v any) (Paint, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case string:
		if p == "" {
			return nil, nil
		}
		return Color(p), nil
	case Color:
		if p == "" {
			return nil, nil
		}
		return p, nil
	case *Gradient:
		return p, nil
	case *Pattern:
		return p, nil
	case map[string]any:
		if t, _ := toString(p["type"]); t == "pattern" || p["source"] != nil {
			return patternFromRecord(p), nil
		}
		return gradientFromRecord(p)
	}
	return nil, fmt.Errorf("%w: paint %T", ErrInvalidValue, v)
}

// paintToValue is the serialized form of p.
func paintToValue(p Paint, digits int) any {
	if p == nil {
		return nil
	}
	return p.toRecord(digits)
}

// isTransparentPaint reports whether p draws nothing.
func isTransparentPaint(p Paint) bool {
	if p == nil {
		return true
	}
	if c, ok := p.(Color); ok {
		return c == "" || strings.EqualFold(string(c), "transparent")
	}
	return false
}

func matrixToAny(m easel.Matrix, digits int) []any {
	a := m.Array()
	out := make([]any, 6)
	for i, v := range a {
		out[i] = round(v, digits)
	}
	return out
}

func matrixFromAny(v any) (easel.Matrix, bool) {
	switch m := v.(type) {
	case easel.Matrix:
		return m, true
	case [6]float64:
		return easel.MatrixFromArray(m), true
	}
	f, ok := toFloats(v)
	if !ok || len(f) != 6 {
		return easel.Matrix{}, false
	}
	return easel.MatrixFromArray([6]float64(f)), true
}
