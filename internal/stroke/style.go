package stroke

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// CapButt ends the stroke exactly at the endpoint.
	CapButt LineCap = iota
	// CapRound adds a semicircle with radius width/2.
	CapRound
	// CapSquare extends the stroke by width/2.
	CapSquare
)

// String returns the canvas name of the cap.
func (c LineCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return "butt"
}

// ParseCap returns the cap named s, defaulting to CapButt.
func ParseCap(s string) LineCap {
	switch s {
	case "round":
		return CapRound
	case "square":
		return CapSquare
	}
	return CapButt
}

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// JoinMiter makes sharp corners up to the miter limit.
	JoinMiter LineJoin = iota
	// JoinRound makes circular corners.
	JoinRound
	// JoinBevel cuts corners straight.
	JoinBevel
)

// String returns the canvas name of the join.
func (j LineJoin) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	}
	return "miter"
}

// ParseJoin returns the join named s, defaulting to JoinMiter.
func ParseJoin(s string) LineJoin {
	switch s {
	case "round":
		return JoinRound
	case "bevel":
		return JoinBevel
	}
	return JoinMiter
}

// Style defines the geometry of a stroke.
type Style struct {
	// Width is the line width. Default: 1.0
	Width float64
	Cap   LineCap
	Join  LineJoin
	// MiterLimit is the limit for miter joins before they become bevels.
	// Default: 4.0
	MiterLimit float64
	// Dash is the dash pattern; nil means a solid line.
	Dash *Dash
}

// DefaultStyle returns a solid 1 unit line with butt caps and miter joins.
func DefaultStyle() Style {
	return Style{
		Width:      1.0,
		Cap:        CapButt,
		Join:       JoinMiter,
		MiterLimit: 4.0,
	}
}

// Scaled returns s with width and dash lengths multiplied by f.
func (s Style) Scaled(f float64) Style {
	s.Width *= f
	s.Dash = s.Dash.Scale(f)
	return s
}
