package path

import (
	"math"
	"strconv"
	"strings"
)

// Empty is the serialized form of a degenerate stroke.
const Empty = "M 0 0 Q 0 0 0 0 L 0 0"

// Join renders cmds as space separated path data, rounding numbers to digits
// fraction digits. digits < 0 keeps full precision.
func Join(cmds []Command, digits int) string {
	var b strings.Builder
	write := func(op byte, vals ...float64) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(op)
		for _, v := range vals {
			b.WriteByte(' ')
			b.WriteString(FormatNumber(v, digits))
		}
	}
	for _, c := range cmds {
		switch c := c.(type) {
		case MoveTo:
			write('M', c.Point.X, c.Point.Y)
		case LineTo:
			write('L', c.Point.X, c.Point.Y)
		case QuadTo:
			write('Q', c.Control.X, c.Control.Y, c.Point.X, c.Point.Y)
		case CubicTo:
			write('C', c.Control1.X, c.Control1.Y, c.Control2.X, c.Control2.Y, c.Point.X, c.Point.Y)
		case Close:
			write('Z')
		}
	}
	return b.String()
}

// FormatNumber formats v rounded to digits fraction digits without trailing
// zeros. Negative zero prints as 0.
func FormatNumber(v float64, digits int) string {
	if digits >= 0 {
		p := math.Pow10(digits)
		v = math.Round(v*p) / p
	}
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsEmpty reports whether cmds is the degenerate stroke sentinel.
func IsEmpty(cmds []Command) bool {
	return Join(cmds, -1) == Empty
}
