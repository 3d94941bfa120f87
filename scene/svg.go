package scene

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
)

// SVGOptions configure WriteSVG.
type SVGOptions struct {
	Width, Height float64
	// ViewportTransform wraps the nodes in a group with this matrix. The
	// zero value means identity.
	ViewportTransform easel.Matrix
	// Background fills the whole document when not empty.
	Background string
	// Digits is the number precision. Zero means the default configuration.
	Digits int
}

// WriteSVG writes a standalone SVG document with nodes in paint order.
// Nodes excluded from export are skipped.
func WriteSVG(w io.Writer, nodes []Node, opts SVGOptions) error {
	digits := opts.Digits
	if digits == 0 {
		digits = DefaultEnv().Config.NumFractionDigits
	}
	sw := &svgWriter{digits: digits}
	for _, n := range nodes {
		sw.node(n)
	}
	num := sw.num
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no" ?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(opts.Width), num(opts.Height), num(opts.Width), num(opts.Height))
	b.WriteString("<desc>Created with easel</desc>\n")
	if sw.defs.Len() > 0 {
		b.WriteString("<defs>\n")
		b.WriteString(sw.defs.String())
		b.WriteString("</defs>\n")
	}
	if opts.Background != "" {
		fmt.Fprintf(&b, `<rect x="0" y="0" width="100%%" height="100%%" fill="%s"></rect>`+"\n", escape(opts.Background))
	}
	vpt := opts.ViewportTransform
	wrap := vpt != (easel.Matrix{}) && !vpt.IsIdentity()
	if wrap {
		fmt.Fprintf(&b, `<g transform="%s">`+"\n", sw.matrix(vpt))
	}
	b.WriteString(sw.body.String())
	if wrap {
		b.WriteString("</g>\n")
	}
	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// ToSVG returns the markup of n: a group carrying the node's own transform
// around its geometry. Gradient, pattern, shadow and clip definitions
// precede the group.
func ToSVG(n Node) string {
	sw := &svgWriter{digits: n.Base().config().NumFractionDigits}
	sw.node(n)
	return sw.defs.String() + sw.body.String()
}

type svgWriter struct {
	defs   strings.Builder
	body   strings.Builder
	digits int
}

func (w *svgWriter) num(v float64) string {
	return path.FormatNumber(v, w.digits)
}

func (w *svgWriter) matrix(m easel.Matrix) string {
	a := m.Array()
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = w.num(v)
	}
	return "matrix(" + strings.Join(parts, " ") + ")"
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// node writes n with its own matrix; nested nodes inherit the parent group.
func (w *svgWriter) node(n Node) {
	o := n.Base()
	if o.excludeFromExport {
		return
	}
	w.nodeWithMatrix(n, o.CalcOwnMatrix())
}

func (w *svgWriter) nodeWithMatrix(n Node, m easel.Matrix) {
	o := n.Base()
	attrs := []string{
		fmt.Sprintf(`transform="%s"`, w.matrix(m)),
		fmt.Sprintf(`id="%s"`, escape(o.id)),
	}
	if o.opacity != 1 {
		attrs = append(attrs, fmt.Sprintf(`opacity="%s"`, w.num(o.opacity)))
	}
	if !o.visible {
		attrs = append(attrs, `visibility="hidden"`)
	}
	if o.clipPath != nil {
		if id := w.clipPath(o); id != "" {
			attrs = append(attrs, fmt.Sprintf(`clip-path="url(#%s)"`, id))
		}
	}
	if o.shadow != nil {
		attrs = append(attrs, fmt.Sprintf(`filter="url(#%s)"`, w.shadow(o)))
	}
	fmt.Fprintf(&w.body, "<g %s>\n", strings.Join(attrs, " "))
	if o.backgroundColor != "" {
		dim := o.NonTransformedDimensions()
		fmt.Fprintf(&w.body, `<rect fill="%s" x="%s" y="%s" width="%s" height="%s"></rect>`+"\n",
			escape(o.backgroundColor), w.num(-dim.X/2), w.num(-dim.Y/2), w.num(dim.X), w.num(dim.Y))
	}
	w.geometry(n)
	w.body.WriteString("</g>\n")
}

// geometry writes the node's element in its own plane.
func (w *svgWriter) geometry(n Node) {
	o := n.Base()
	var style string
	switch n.(type) {
	case *Group, *Image:
	default:
		style = w.style(o, true)
	}
	switch t := n.(type) {
	case *Group:
		for _, c := range t.children {
			w.node(c)
		}
	case *Rect:
		rx, ry := t.Radii()
		fmt.Fprintf(&w.body, `<rect style="%s" x="%s" y="%s" rx="%s" ry="%s" width="%s" height="%s"%s/>`+"\n",
			style, w.num(-t.width/2), w.num(-t.height/2), w.num(rx), w.num(ry),
			w.num(t.width), w.num(t.height), w.extraAttrs(o))
	case *Circle:
		if t.isFull() {
			fmt.Fprintf(&w.body, `<circle style="%s" cx="0" cy="0" r="%s"%s/>`+"\n",
				style, w.num(t.radius), w.extraAttrs(o))
		} else {
			w.pathElement(style, path.Join(t.Outline(), w.digits), "", o)
		}
	case *Ellipse:
		fmt.Fprintf(&w.body, `<ellipse style="%s" cx="0" cy="0" rx="%s" ry="%s"%s/>`+"\n",
			style, w.num(t.rx), w.num(t.ry), w.extraAttrs(o))
	case *Polyline:
		pts := make([]string, len(t.points))
		for i, p := range t.points {
			pts[i] = w.num(p.X-t.pathOffset.X) + "," + w.num(p.Y-t.pathOffset.Y)
		}
		el := "polyline"
		if t.closed {
			el = "polygon"
		}
		fmt.Fprintf(&w.body, `<%s style="%s" points="%s"%s/>`+"\n",
			el, style, strings.Join(pts, " "), w.extraAttrs(o))
	case *Path:
		tr := fmt.Sprintf(` transform="translate(%s, %s)"`, w.num(-t.pathOffset.X), w.num(-t.pathOffset.Y))
		w.pathElement(style, path.Join(t.commands, w.digits), tr, o)
	case *Text:
		w.text(t, style)
	case *Image:
		w.image(t)
	default:
		if ol, ok := n.(Outliner); ok {
			w.pathElement(style, path.Join(ol.Outline(), w.digits), "", o)
		}
	}
}

func (w *svgWriter) pathElement(style, d, extra string, o *Object) {
	fmt.Fprintf(&w.body, `<path style="%s" d="%s"%s%s/>`+"\n", style, d, extra, w.extraAttrs(o))
}

func (w *svgWriter) extraAttrs(o *Object) string {
	var b strings.Builder
	if o.strokeUniform {
		b.WriteString(` vector-effect="non-scaling-stroke"`)
	}
	if o.paintFirst == PaintStroke {
		b.WriteString(` paint-order="stroke"`)
	}
	return b.String()
}

// style returns the presentation properties of o as a style attribute
// value. Without withFill the fill is none.
func (w *svgWriter) style(o *Object, withFill bool) string {
	fill := "none"
	if withFill {
		fill = w.paint(o, o.fill, "fill")
	}
	props := []string{
		"stroke: " + w.paint(o, o.stroke, "stroke"),
		"stroke-width: " + w.num(o.strokeWidth),
		"stroke-dasharray: " + w.dashArray(o.strokeDashArray),
		"stroke-linecap: " + o.strokeLineCap,
		"stroke-dashoffset: " + w.num(o.strokeDashOffset),
		"stroke-linejoin: " + o.strokeLineJoin,
		"stroke-miterlimit: " + w.num(o.strokeMiterLimit),
		"fill: " + fill,
		"fill-rule: " + o.fillRule,
		"opacity: 1",
	}
	return escape(strings.Join(props, "; ") + ";")
}

func (w *svgWriter) dashArray(d []float64) string {
	if len(d) == 0 {
		return "none"
	}
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = w.num(v)
	}
	return strings.Join(parts, " ")
}

// paint returns the CSS value for p, emitting a definition for gradients
// and patterns.
func (w *svgWriter) paint(o *Object, p Paint, role string) string {
	switch v := p.(type) {
	case nil:
		return "none"
	case Color:
		if v == "" {
			return "none"
		}
		return string(v)
	case *Gradient:
		id := "SVGID_" + role + "_" + o.id
		w.gradient(o, v, id)
		return "url(#" + id + ")"
	case *Pattern:
		id := "SVGID_" + role + "_" + o.id
		w.pattern(o, v, id)
		return "url(#" + id + ")"
	}
	return "none"
}

func (w *svgWriter) gradient(o *Object, g *Gradient, id string) {
	m := paintTransform(o, g.OffsetX, g.OffsetY, g.Transform)
	if g.Units == UnitsPercentage {
		m = m.Multiply(easel.Scale(o.width, o.height))
	}
	c := g.Coords
	if g.Type == "radial" {
		fmt.Fprintf(&w.defs, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" gradientTransform="%s" cx="%s" cy="%s" r="%s" fx="%s" fy="%s" fr="%s">`+"\n",
			escape(id), w.matrix(m), w.num(c.X2), w.num(c.Y2), w.num(c.R2), w.num(c.X1), w.num(c.Y1), w.num(c.R1))
	} else {
		fmt.Fprintf(&w.defs, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" gradientTransform="%s" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			escape(id), w.matrix(m), w.num(c.X1), w.num(c.Y1), w.num(c.X2), w.num(c.Y2))
	}
	for _, s := range g.ColorStops {
		fmt.Fprintf(&w.defs, `<stop offset="%s" style="stop-color: %s; stop-opacity: %s"/>`+"\n",
			w.num(s.Offset), escape(s.Color), w.num(s.Opacity))
	}
	if g.Type == "radial" {
		w.defs.WriteString("</radialGradient>\n")
	} else {
		w.defs.WriteString("</linearGradient>\n")
	}
}

func (w *svgWriter) pattern(o *Object, p *Pattern, id string) {
	var iw, ih float64
	if p.Image != nil {
		b := p.Image.Bounds()
		iw, ih = float64(b.Dx()), float64(b.Dy())
	}
	href := p.Source
	if href == "" && p.Image != nil {
		href = imageDataURL(p.Image)
	}
	m := paintTransform(o, p.OffsetX, p.OffsetY, p.Transform)
	fmt.Fprintf(&w.defs, `<pattern id="%s" patternUnits="userSpaceOnUse" patternTransform="%s" width="%s" height="%s">`+"\n",
		escape(id), w.matrix(m), w.num(iw), w.num(ih))
	fmt.Fprintf(&w.defs, `<image x="0" y="0" width="%s" height="%s" xlink:href="%s"></image>`+"\n",
		w.num(iw), w.num(ih), escape(href))
	w.defs.WriteString("</pattern>\n")
}

// shadow emits a drop shadow filter for o and returns its id.
func (w *svgWriter) shadow(o *Object) string {
	sh := o.shadow
	id := "SVGID_shadow_" + o.id
	fmt.Fprintf(&w.defs, `<filter id="%s" y="-40%%" height="180%%" x="-40%%" width="180%%">`+"\n", escape(id))
	fmt.Fprintf(&w.defs, "\t"+`<feGaussianBlur in="SourceAlpha" stdDeviation="%s"></feGaussianBlur>`+"\n", w.num(sh.Blur/2))
	fmt.Fprintf(&w.defs, "\t"+`<feOffset dx="%s" dy="%s" result="oBlur"></feOffset>`+"\n", w.num(sh.OffsetX), w.num(sh.OffsetY))
	fmt.Fprintf(&w.defs, "\t"+`<feFlood flood-color="%s"/>`+"\n", escape(sh.Color))
	w.defs.WriteString("\t" + `<feComposite in2="oBlur" operator="in"/>` + "\n")
	w.defs.WriteString("\t<feMerge>\n\t\t<feMergeNode></feMergeNode>\n\t\t" +
		`<feMergeNode in="SourceGraphic"></feMergeNode>` + "\n\t</feMerge>\n")
	w.defs.WriteString("</filter>\n")
	return id
}

// clipPath emits a clipPath definition for o's clip path and returns its
// id. Inverted clip paths cannot be expressed and are skipped.
func (w *svgWriter) clipPath(o *Object) string {
	clip := o.clipPath.Base()
	if clip.inverted {
		easel.Logger().Debug("scene: inverted clip path not exported to SVG", "node", o.id)
		return ""
	}
	m := clip.CalcOwnMatrix()
	if clip.absolutePositioned {
		m = o.CalcTransformMatrix(false).Invert().Multiply(m)
	}
	id := "CLIPPATH_" + o.id
	inner := &svgWriter{digits: w.digits}
	inner.nodeWithMatrix(o.clipPath, m)
	w.defs.WriteString(inner.defs.String())
	fmt.Fprintf(&w.defs, `<clipPath id="%s">`+"\n", escape(id))
	w.defs.WriteString(inner.body.String())
	w.defs.WriteString("</clipPath>\n")
	return id
}

func (w *svgWriter) text(t *Text, style string) {
	var deco []string
	if t.underline {
		deco = append(deco, "underline")
	}
	if t.overline {
		deco = append(deco, "overline")
	}
	if t.linethrough {
		deco = append(deco, "line-through")
	}
	fmt.Fprintf(&w.body, `<text xml:space="preserve" font-family="%s" font-size="%s" font-style="%s" font-weight="%s"`,
		escape(t.fontFamily), w.num(t.fontSize), escape(t.fontStyle), escape(t.fontWeight))
	if len(deco) > 0 {
		fmt.Fprintf(&w.body, ` text-decoration="%s"`, strings.Join(deco, " "))
	}
	fmt.Fprintf(&w.body, ` style="%s"%s>`, style, w.extraAttrs(&t.Object))
	for i, line := range t.lines {
		fmt.Fprintf(&w.body, `<tspan x="%s" y="%s">%s</tspan>`,
			w.num(t.lineLeft(i)), w.num(t.baseline(i)), escape(line))
	}
	w.body.WriteString("</text>\n")
}

func (w *svgWriter) image(i *Image) {
	href := i.src
	if href == "" && i.element != nil {
		href = imageDataURL(i.element)
	}
	if href == "" {
		return
	}
	ew, eh := i.width, i.height
	if i.element != nil {
		b := i.element.Bounds()
		ew, eh = float64(b.Dx()), float64(b.Dy())
	}
	x, y := -i.width/2, -i.height/2
	clip := ""
	if i.cropX != 0 || i.cropY != 0 || ew > i.width || eh > i.height {
		id := "imageCrop_" + i.id
		fmt.Fprintf(&w.defs, `<clipPath id="%s"><rect x="%s" y="%s" width="%s" height="%s"></rect></clipPath>`+"\n",
			escape(id), w.num(x), w.num(y), w.num(i.width), w.num(i.height))
		clip = fmt.Sprintf(` clip-path="url(#%s)"`, id)
	}
	fmt.Fprintf(&w.body, `<image xlink:href="%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none"%s></image>`+"\n",
		escape(href), w.num(x-i.cropX), w.num(y-i.cropY), w.num(ew), w.num(eh), clip)
	if i.HasStroke() {
		fmt.Fprintf(&w.body, `<rect style="%s" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			w.style(&i.Object, false), w.num(x), w.num(y), w.num(i.width), w.num(i.height))
	}
}
