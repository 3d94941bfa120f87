// Package path implements the path command model: parsing of the SVG path
// grammar, normalization to absolute move/line/quad/cubic/close commands,
// analytic bounds, serialization and arc-length sampling.
package path

import "github.com/gogpu/easel"

// Command is a single normalized path command. It is one of MoveTo, LineTo,
// QuadTo, CubicTo or Close.
type Command interface {
	isCommand()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	Point easel.Point
}

func (MoveTo) isCommand() {}

// LineTo draws a straight line to a point.
type LineTo struct {
	Point easel.Point
}

func (LineTo) isCommand() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control easel.Point
	Point   easel.Point
}

func (QuadTo) isCommand() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 easel.Point
	Control2 easel.Point
	Point    easel.Point
}

func (CubicTo) isCommand() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isCommand() {}

// Segment is a raw parsed path command: an op letter from MmLlHhVvCcSsQqTtAaZz
// and its arguments.
type Segment struct {
	Op   byte
	Args []float64
}

// argCount returns the number of arguments op takes, or -1 for an unknown op.
func argCount(op byte) int {
	switch op | 0x20 {
	case 'm', 'l', 't':
		return 2
	case 'h', 'v':
		return 1
	case 'c':
		return 6
	case 's', 'q':
		return 4
	case 'a':
		return 7
	case 'z':
		return 0
	}
	return -1
}

// Segments returns the absolute segment form of cmds. Simplify(Segments(c))
// reproduces c.
func Segments(cmds []Command) []Segment {
	out := make([]Segment, 0, len(cmds))
	for _, c := range cmds {
		switch c := c.(type) {
		case MoveTo:
			out = append(out, Segment{Op: 'M', Args: []float64{c.Point.X, c.Point.Y}})
		case LineTo:
			out = append(out, Segment{Op: 'L', Args: []float64{c.Point.X, c.Point.Y}})
		case QuadTo:
			out = append(out, Segment{Op: 'Q', Args: []float64{c.Control.X, c.Control.Y, c.Point.X, c.Point.Y}})
		case CubicTo:
			out = append(out, Segment{Op: 'C', Args: []float64{
				c.Control1.X, c.Control1.Y, c.Control2.X, c.Control2.Y, c.Point.X, c.Point.Y,
			}})
		case Close:
			out = append(out, Segment{Op: 'Z'})
		}
	}
	return out
}

// Transform returns cmds with every point mapped through m.
func Transform(cmds []Command, m easel.Matrix) []Command {
	out := make([]Command, len(cmds))
	for i, c := range cmds {
		switch c := c.(type) {
		case MoveTo:
			out[i] = MoveTo{Point: m.TransformPoint(c.Point)}
		case LineTo:
			out[i] = LineTo{Point: m.TransformPoint(c.Point)}
		case QuadTo:
			out[i] = QuadTo{Control: m.TransformPoint(c.Control), Point: m.TransformPoint(c.Point)}
		case CubicTo:
			out[i] = CubicTo{
				Control1: m.TransformPoint(c.Control1),
				Control2: m.TransformPoint(c.Control2),
				Point:    m.TransformPoint(c.Point),
			}
		default:
			out[i] = c
		}
	}
	return out
}

// Translate returns cmds moved by (dx, dy).
func Translate(cmds []Command, dx, dy float64) []Command {
	return Transform(cmds, easel.Translate(dx, dy))
}

// EndPoint returns the point a command ends on. Close reports false since
// its end depends on the subpath start.
func EndPoint(c Command) (easel.Point, bool) {
	switch c := c.(type) {
	case MoveTo:
		return c.Point, true
	case LineTo:
		return c.Point, true
	case QuadTo:
		return c.Point, true
	case CubicTo:
		return c.Point, true
	}
	return easel.Point{}, false
}
