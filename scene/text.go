package scene

import (
	"bytes"
	"strconv"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
)

// Text metrics as fractions of the font size.
const (
	fontSizeMult     = 1.13
	fontSizeFraction = 0.222
	underlineOffset  = 0.10
	linethroughShift = -0.315
	overlineShift    = -0.88
	decorationWeight = 1.0 / 15
)

// Text alignment values.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Text is a multi-line text node drawn from glyph outlines. Lines are split
// on newlines; the node is sized to the widest line.
type Text struct {
	Object
	text        string
	fontSize    float64
	fontFamily  string
	fontWeight  string
	fontStyle   string
	lineHeight  float64
	textAlign   string
	charSpacing float64
	underline   bool
	overline    bool
	linethrough bool

	lines      []string
	lineWidths []float64
}

// NewText creates a text node showing s.
func NewText(s string, opts Record) *Text {
	t := &Text{}
	o := clone(opts)
	if _, ok := o["text"]; !ok {
		o["text"] = s
	}
	t.init(t, o)
	t.initDimensions()
	return t
}

// Type implements Node.
func (t *Text) Type() string { return "Text" }

func (t *Text) defaults() Record {
	d := objectDefaults()
	d["text"] = ""
	d["fontSize"] = 40.0
	d["fontFamily"] = "Go"
	d["fontWeight"] = "normal"
	d["fontStyle"] = "normal"
	d["lineHeight"] = 1.16
	d["textAlign"] = AlignLeft
	d["charSpacing"] = 0.0
	d["underline"] = false
	d["overline"] = false
	d["linethrough"] = false
	return d
}

var textProperties = []string{
	"text", "fontSize", "fontFamily", "fontWeight", "fontStyle", "lineHeight",
	"textAlign", "charSpacing", "underline", "overline", "linethrough",
}

func (t *Text) extraCacheProperties() []string { return textProperties }

func (t *Text) setProperty(key string, v any) (bool, error) {
	var err error
	switch key {
	case "text":
		var s string
		if err = setString(&s, key, v); err == nil {
			t.text = norm.NFC.String(s)
		}
	case "fontSize":
		err = setFloat(&t.fontSize, key, v)
	case "fontFamily":
		err = setString(&t.fontFamily, key, v)
	case "fontWeight":
		err = setOrigin(&t.fontWeight, key, v)
	case "fontStyle":
		err = setString(&t.fontStyle, key, v)
	case "lineHeight":
		err = setFloat(&t.lineHeight, key, v)
	case "textAlign":
		err = setString(&t.textAlign, key, v)
	case "charSpacing":
		err = setFloat(&t.charSpacing, key, v)
	case "underline":
		err = setBool(&t.underline, key, v)
	case "overline":
		err = setBool(&t.overline, key, v)
	case "linethrough":
		err = setBool(&t.linethrough, key, v)
	default:
		return false, nil
	}
	if err == nil && t.self != nil {
		t.initDimensions()
	}
	return true, err
}

func (t *Text) getProperty(key string) (any, bool) {
	switch key {
	case "text":
		return t.text, true
	case "fontSize":
		return t.fontSize, true
	case "fontFamily":
		return t.fontFamily, true
	case "fontWeight":
		return t.fontWeight, true
	case "fontStyle":
		return t.fontStyle, true
	case "lineHeight":
		return t.lineHeight, true
	case "textAlign":
		return t.textAlign, true
	case "charSpacing":
		return t.charSpacing, true
	case "underline":
		return t.underline, true
	case "overline":
		return t.overline, true
	case "linethrough":
		return t.linethrough, true
	}
	return nil, false
}

// Text returns the shown string.
func (t *Text) Text() string { return t.text }

// Lines returns the text split into lines.
func (t *Text) Lines() []string { return t.lines }

// LineWidth returns the advance width of line i.
func (t *Text) LineWidth(i int) float64 { return t.lineWidths[i] }

// initDimensions splits the lines and sets width and height from the font
// metrics.
func (t *Text) initDimensions() {
	t.lines = strings.Split(t.text, "\n")
	t.lineWidths = make([]float64, len(t.lines))
	f := fontFor(t.fontFamily, t.fontWeight, t.fontStyle)
	var widest float64
	if f != nil {
		for i, line := range t.lines {
			t.lineWidths[i] = t.measureLine(f, line)
			widest = max(widest, t.lineWidths[i])
		}
	}
	n := float64(len(t.lines))
	t.width = widest
	t.height = t.fontSize * fontSizeMult * (t.lineHeight*(n-1) + 1)
}

func (t *Text) ppem() fixed.Int26_6 {
	return fixed.Int26_6(t.fontSize * 64)
}

func (t *Text) spacing() float64 {
	return t.charSpacing * t.fontSize / 1000
}

func (t *Text) measureLine(f *bundledFont, line string) float64 {
	glyphs := f.shape(line, t.ppem())
	var w fixed.Int26_6
	for _, g := range glyphs {
		w += g.Advance
	}
	width := float64(w) / 64
	if n := len(glyphs); n > 1 {
		width += t.spacing() * float64(n-1)
	}
	return width
}

// lineHeightPx returns the distance between consecutive baselines.
func (t *Text) lineHeightPx() float64 {
	return t.fontSize * fontSizeMult * t.lineHeight
}

// lineLeft returns the x offset of line i in the node plane.
func (t *Text) lineLeft(i int) float64 {
	left := -t.width / 2
	switch t.textAlign {
	case AlignCenter:
		return left + (t.width-t.lineWidths[i])/2
	case AlignRight:
		return left + t.width - t.lineWidths[i]
	}
	return left
}

// baseline returns the y of line i's baseline in the node plane.
func (t *Text) baseline(i int) float64 {
	top := -t.height/2 + float64(i)*t.lineHeightPx()
	return top + t.fontSize*fontSizeMult - t.fontSize*fontSizeFraction
}

// Outline implements Outliner: the glyph contours of every line, followed
// by the decoration bars.
func (t *Text) Outline() []path.Command {
	f := fontFor(t.fontFamily, t.fontWeight, t.fontStyle)
	if f == nil {
		return nil
	}
	var buf sfnt.Buffer
	ppem := t.ppem()
	var cmds []path.Command
	for i, line := range t.lines {
		x, y := t.lineLeft(i), t.baseline(i)
		for j, g := range f.shape(line, ppem) {
			if j > 0 {
				x += t.spacing()
			}
			// Shaper offsets point up; glyph outlines point down.
			gx, gy := x+float64(g.XOffset)/64, y-float64(g.YOffset)/64
			if segs, err := f.outlines.LoadGlyph(&buf, sfnt.GlyphIndex(g.GlyphID), ppem, nil); err == nil {
				cmds = appendGlyph(cmds, segs, gx, gy)
			}
			x += float64(g.Advance) / 64
		}
	}
	return append(cmds, t.decorations()...)
}

// appendGlyph converts glyph segments, whose y axis points down, to
// commands offset by (x, y). Every contour is closed explicitly.
func appendGlyph(cmds []path.Command, segs sfnt.Segments, x, y float64) []path.Command {
	pt := func(p fixed.Point26_6) easel.Point {
		return easel.Pt(x+float64(p.X)/64, y+float64(p.Y)/64)
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				cmds = append(cmds, path.Close{})
			}
			cmds = append(cmds, path.MoveTo{Point: pt(s.Args[0])})
			open = true
		case sfnt.SegmentOpLineTo:
			cmds = append(cmds, path.LineTo{Point: pt(s.Args[0])})
		case sfnt.SegmentOpQuadTo:
			cmds = append(cmds, path.QuadTo{Control: pt(s.Args[0]), Point: pt(s.Args[1])})
		case sfnt.SegmentOpCubeTo:
			cmds = append(cmds, path.CubicTo{
				Control1: pt(s.Args[0]), Control2: pt(s.Args[1]), Point: pt(s.Args[2]),
			})
		}
	}
	if open {
		cmds = append(cmds, path.Close{})
	}
	return cmds
}

func (t *Text) decorations() []path.Command {
	var shifts []float64
	if t.underline {
		shifts = append(shifts, underlineOffset)
	}
	if t.linethrough {
		shifts = append(shifts, linethroughShift)
	}
	if t.overline {
		shifts = append(shifts, overlineShift)
	}
	if len(shifts) == 0 {
		return nil
	}
	thickness := t.fontSize * decorationWeight
	p := path.New()
	for i := range t.lines {
		if t.lineWidths[i] == 0 {
			continue
		}
		for _, s := range shifts {
			y := t.baseline(i) + s*t.fontSize
			p.Rect(t.lineLeft(i), y, t.lineWidths[i], thickness)
		}
	}
	return p.Commands()
}

// DrawGeometry implements Node.
func (t *Text) DrawGeometry(d raster.Drawer) {
	t.renderPaintInOrder(d, t.Outline())
}

func (t *Text) extendRecord(rec Record, digits int) {
	rec["text"] = t.text
	rec["fontSize"] = round(t.fontSize, digits)
	rec["fontFamily"] = t.fontFamily
	rec["fontWeight"] = t.fontWeight
	rec["fontStyle"] = t.fontStyle
	rec["lineHeight"] = round(t.lineHeight, digits)
	rec["textAlign"] = t.textAlign
	rec["charSpacing"] = round(t.charSpacing, digits)
	rec["underline"] = t.underline
	rec["overline"] = t.overline
	rec["linethrough"] = t.linethrough
}

// faceKey selects one of the bundled Go fonts.
type faceKey struct {
	mono, bold, italic bool
}

// bundledFont pairs the shaping view of a font with its outline view. Both
// parse the same data, so glyph IDs agree.
type bundledFont struct {
	shaping  *font.Font
	outlines *sfnt.Font
}

var (
	fontsMu sync.Mutex
	fonts   = map[faceKey]*bundledFont{}

	shapers = sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }}
)

var fontData = map[faceKey][]byte{
	{}:                                     goregular.TTF,
	{bold: true}:                           gobold.TTF,
	{italic: true}:                         goitalic.TTF,
	{bold: true, italic: true}:             gobolditalic.TTF,
	{mono: true}:                           gomono.TTF,
	{mono: true, bold: true}:               gomonobold.TTF,
	{mono: true, italic: true}:             gomonoitalic.TTF,
	{mono: true, bold: true, italic: true}: gomonobolditalic.TTF,
}

// fontFor returns the bundled font closest to the given family, weight and
// style. Families containing "mono" or "courier" map to Go Mono, all others
// to Go.
func fontFor(family, weight, style string) *bundledFont {
	fam := strings.ToLower(family)
	key := faceKey{
		mono:   strings.Contains(fam, "mono") || strings.Contains(fam, "courier"),
		bold:   isBold(weight),
		italic: style == "italic" || style == "oblique",
	}
	fontsMu.Lock()
	defer fontsMu.Unlock()
	if f, ok := fonts[key]; ok {
		return f
	}
	outlines, err := sfnt.Parse(fontData[key])
	if err != nil {
		easel.Logger().Warn("scene: parsing bundled font", "err", err)
		return nil
	}
	face, err := font.ParseTTF(bytes.NewReader(fontData[key]))
	if err != nil {
		easel.Logger().Warn("scene: parsing bundled font", "err", err)
		return nil
	}
	f := &bundledFont{shaping: face.Font, outlines: outlines}
	fonts[key] = f
	return f
}

// shape runs line through HarfBuzz at size ppem, applying kerning and
// ligatures. Text is laid out left to right on a single line.
func (f *bundledFont) shape(line string, ppem fixed.Int26_6) []shaping.Glyph {
	runes := []rune(line)
	if len(runes) == 0 {
		return nil
	}
	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f.shaping),
		Size:      ppem,
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := shapers.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(in)
	shapers.Put(hb)
	return out.Glyphs
}

// scriptOf returns the script of the first non-space rune.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r != ' ' && r != '\t' {
			return language.LookupScript(r)
		}
	}
	return language.Latin
}

func isBold(weight string) bool {
	switch weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}
