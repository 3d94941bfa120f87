package raster

import "github.com/gogpu/easel/internal/stroke"

// StrokeStyle describes how paths are stroked.
type StrokeStyle = stroke.Style

// LineCap is the shape drawn at open subpath ends.
type LineCap = stroke.LineCap

// LineJoin is the shape drawn where segments meet.
type LineJoin = stroke.LineJoin

// Dash is a dash pattern of alternating on and off lengths.
type Dash = stroke.Dash

const (
	CapButt   = stroke.CapButt
	CapRound  = stroke.CapRound
	CapSquare = stroke.CapSquare

	JoinMiter = stroke.JoinMiter
	JoinRound = stroke.JoinRound
	JoinBevel = stroke.JoinBevel
)

// NewDash creates a dash pattern. It returns nil when every length is zero.
func NewDash(lengths ...float64) *Dash { return stroke.NewDash(lengths...) }

// ParseCap parses a canvas lineCap name.
func ParseCap(s string) LineCap { return stroke.ParseCap(s) }

// ParseJoin parses a canvas lineJoin name.
func ParseJoin(s string) LineJoin { return stroke.ParseJoin(s) }

// DefaultStrokeStyle returns a 1px butt-capped miter-joined style.
func DefaultStrokeStyle() StrokeStyle { return stroke.DefaultStyle() }
