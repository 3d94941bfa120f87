package easel

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1] and is not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R*255 + 0.5)),
		G: uint8(clamp255(c.G*255 + 0.5)),
		B: uint8(clamp255(c.B*255 + 0.5)),
		A: uint8(clamp255(c.A*255 + 0.5)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// IsTransparent reports whether c has no coverage at all.
func (c RGBA) IsTransparent() bool {
	return c.A <= 0
}

// String renders c as rgba(r,g,b,a) with 0-255 channels.
func (c RGBA) String() string {
	var b strings.Builder
	b.WriteString("rgba(")
	b.WriteString(strconv.Itoa(int(clamp255(math.Round(c.R * 255)))))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(clamp255(math.Round(c.G * 255)))))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(clamp255(math.Round(c.B * 255)))))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(math.Max(0, math.Min(1, c.A)), 'f', -1, 64))
	b.WriteByte(')')
	return b.String()
}

// ToHex renders the color channels as #rrggbb, dropping alpha.
func (c RGBA) ToHex() string {
	const digits = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []float64{c.R, c.G, c.B} {
		n := int(clamp255(math.Round(v * 255)))
		buf[1+2*i] = digits[n>>4]
		buf[2+2*i] = digits[n&0xf]
	}
	return string(buf)
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA".
func Hex(hex string) RGBA {
	c, ok := parseHexColor(hex)
	if !ok {
		return Black
	}
	return c
}

func parseHexColor(hex string) (RGBA, bool) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return RGBA{}, false
		}
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return RGBA{}, false
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, true
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return uint32(c - 'A' + 10), true
	}
	return 0, false
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return
		}
		*val = *val*16 + d
	}
}

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Transparent = RGBA2(0, 0, 0, 0)
)

// HSL creates a color from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float64) RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB(r+m, g+m, b+m)
}

// ColorResolver turns a color string into channel values.
type ColorResolver interface {
	Resolve(s string) (RGBA, bool)
}

// ColorResolverFunc adapts a function to ColorResolver.
type ColorResolverFunc func(string) (RGBA, bool)

// Resolve calls f.
func (f ColorResolverFunc) Resolve(s string) (RGBA, bool) { return f(s) }

// DefaultColors resolves the color syntaxes accepted by ParseColor.
var DefaultColors ColorResolver = ColorResolverFunc(ParseColor)

// namedColors is the subset of CSS color keywords scenes commonly use.
var namedColors = map[string]RGBA{
	"black":   Black,
	"white":   White,
	"red":     Red,
	"lime":    Green,
	"green":   RGB(0, 128.0/255, 0),
	"blue":    Blue,
	"yellow":  Yellow,
	"cyan":    Cyan,
	"aqua":    Cyan,
	"magenta": Magenta,
	"fuchsia": Magenta,
	"gray":    RGB(128.0/255, 128.0/255, 128.0/255),
	"grey":    RGB(128.0/255, 128.0/255, 128.0/255),
	"silver":  RGB(192.0/255, 192.0/255, 192.0/255),
	"maroon":  RGB(128.0/255, 0, 0),
	"olive":   RGB(128.0/255, 128.0/255, 0),
	"navy":    RGB(0, 0, 128.0/255),
	"purple":  RGB(128.0/255, 0, 128.0/255),
	"teal":    RGB(0, 128.0/255, 128.0/255),
	"orange":  RGB(1, 165.0/255, 0),
	"pink":    RGB(1, 192.0/255, 203.0/255),
	"brown":   RGB(165.0/255, 42.0/255, 42.0/255),
}

// ParseColor parses #hex, rgb(), rgba(), hsl(), hsla(), a color keyword or
// "transparent". Channel values may be percentages.
func ParseColor(s string) (RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return RGBA{}, false
	case s == "transparent" || s == "none":
		return Transparent, true
	case s[0] == '#':
		return parseHexColor(s)
	}
	name, args, ok := splitFunc(s)
	if !ok {
		c, found := namedColors[s]
		return c, found
	}
	switch name {
	case "rgb", "rgba":
		if len(args) != 3 && len(args) != 4 {
			return RGBA{}, false
		}
		var ch [3]float64
		for i := range ch {
			v, pct, ok := parseColorNumber(args[i])
			if !ok {
				return RGBA{}, false
			}
			if pct {
				ch[i] = v / 100
			} else {
				ch[i] = v / 255
			}
		}
		a, ok := parseAlpha(args, 3)
		if !ok {
			return RGBA{}, false
		}
		return RGBA{R: clamp01(ch[0]), G: clamp01(ch[1]), B: clamp01(ch[2]), A: a}, true
	case "hsl", "hsla":
		if len(args) != 3 && len(args) != 4 {
			return RGBA{}, false
		}
		h, _, ok1 := parseColorNumber(args[0])
		sat, _, ok2 := parseColorNumber(args[1])
		l, _, ok3 := parseColorNumber(args[2])
		a, ok4 := parseAlpha(args, 3)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return RGBA{}, false
		}
		return HSL(h, clamp01(sat/100), clamp01(l/100)).WithAlpha(a), true
	}
	return RGBA{}, false
}

func splitFunc(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	body := s[open+1 : len(s)-1]
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	return strings.TrimSpace(s[:open]), fields, true
}

func parseAlpha(args []string, i int) (float64, bool) {
	if len(args) <= i {
		return 1, true
	}
	v, pct, ok := parseColorNumber(args[i])
	if !ok {
		return 0, false
	}
	if pct {
		v /= 100
	}
	return clamp01(v), true
}

// parseColorNumber parses a number with an optional trailing '%'.
func parseColorNumber(s string) (v float64, pct bool, ok bool) {
	b := []byte(strings.TrimSpace(s))
	if n := len(b); n > 0 && b[n-1] == '%' {
		pct = true
		b = b[:n-1]
	}
	v, n := pstrconv.ParseFloat(b)
	if n == 0 || n != len(b) {
		return 0, false, false
	}
	return v, pct, true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
