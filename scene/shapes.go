package scene

import (
	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
)

// Outliner is implemented by nodes whose geometry is a single path in the
// node plane, centered on the origin.
type Outliner interface {
	Outline() []path.Command
}

// Rect is a rectangle with optional rounded corners.
type Rect struct {
	Object
	rx, ry float64
}

// NewRect creates a rectangle from opts merged over the defaults.
func NewRect(opts Record) *Rect {
	r := &Rect{}
	r.init(r, opts)
	return r
}

// Type implements Node.
func (r *Rect) Type() string { return "Rect" }

func (r *Rect) defaults() Record {
	d := objectDefaults()
	d["rx"] = 0.0
	d["ry"] = 0.0
	return d
}

func (r *Rect) extraCacheProperties() []string { return []string{"rx", "ry"} }

func (r *Rect) setProperty(key string, v any) (bool, error) {
	switch key {
	case "rx":
		return true, setFloat(&r.rx, key, v)
	case "ry":
		return true, setFloat(&r.ry, key, v)
	}
	return false, nil
}

func (r *Rect) getProperty(key string) (any, bool) {
	switch key {
	case "rx":
		return r.rx, true
	case "ry":
		return r.ry, true
	}
	return nil, false
}

// Radii returns the corner radii. A single nonzero radius applies to both
// axes.
func (r *Rect) Radii() (rx, ry float64) {
	rx, ry = r.rx, r.ry
	if rx != 0 && ry == 0 {
		ry = rx
	} else if ry != 0 && rx == 0 {
		rx = ry
	}
	return rx, ry
}

// Outline implements Outliner.
func (r *Rect) Outline() []path.Command {
	p := path.New()
	rx, ry := r.Radii()
	p.RoundRect(-r.width/2, -r.height/2, r.width, r.height, rx, ry)
	return p.Commands()
}

// DrawGeometry implements Node.
func (r *Rect) DrawGeometry(d raster.Drawer) {
	r.renderPaintInOrder(d, r.Outline())
}

func (r *Rect) extendRecord(rec Record, digits int) {
	rec["rx"] = round(r.rx, digits)
	rec["ry"] = round(r.ry, digits)
}

// Circle is a circle or circular arc of a given radius.
type Circle struct {
	Object
	radius           float64
	startAngle       float64
	endAngle         float64
	counterClockwise bool
}

// NewCircle creates a circle. Setting radius also sets width and height.
func NewCircle(opts Record) *Circle {
	c := &Circle{}
	c.init(c, opts)
	return c
}

// Type implements Node.
func (c *Circle) Type() string { return "Circle" }

func (c *Circle) defaults() Record {
	d := objectDefaults()
	d["radius"] = 0.0
	d["startAngle"] = 0.0
	d["endAngle"] = 360.0
	d["counterClockwise"] = false
	return d
}

func (c *Circle) extraCacheProperties() []string {
	return []string{"radius", "startAngle", "endAngle", "counterClockwise"}
}

func (c *Circle) setProperty(key string, v any) (bool, error) {
	switch key {
	case "radius":
		f, ok := toFloat(v)
		if !ok {
			return true, errInvalid(key, v)
		}
		c.radius = f
		c.width, c.height = 2*f, 2*f
		return true, nil
	case "startAngle":
		return true, setFloat(&c.startAngle, key, v)
	case "endAngle":
		return true, setFloat(&c.endAngle, key, v)
	case "counterClockwise":
		return true, setBool(&c.counterClockwise, key, v)
	}
	return false, nil
}

func (c *Circle) getProperty(key string) (any, bool) {
	switch key {
	case "radius":
		return c.radius, true
	case "startAngle":
		return c.startAngle, true
	case "endAngle":
		return c.endAngle, true
	case "counterClockwise":
		return c.counterClockwise, true
	}
	return nil, false
}

// Radius returns the radius.
func (c *Circle) Radius() float64 { return c.radius }

// isFull reports whether the angles describe the whole circle.
func (c *Circle) isFull() bool {
	sweep := c.endAngle - c.startAngle
	return sweep >= 360 || sweep <= -360 || (c.startAngle == 0 && c.endAngle == 360)
}

// Outline implements Outliner.
func (c *Circle) Outline() []path.Command {
	p := path.New()
	if c.isFull() {
		p.Circle(0, 0, c.radius)
	} else {
		p.Arc(0, 0, c.radius,
			easel.DegreesToRadians(c.startAngle), easel.DegreesToRadians(c.endAngle),
			c.counterClockwise)
	}
	return p.Commands()
}

// DrawGeometry implements Node.
func (c *Circle) DrawGeometry(d raster.Drawer) {
	c.renderPaintInOrder(d, c.Outline())
}

func (c *Circle) extendRecord(rec Record, digits int) {
	rec["radius"] = round(c.radius, digits)
	rec["startAngle"] = round(c.startAngle, digits)
	rec["endAngle"] = round(c.endAngle, digits)
	rec["counterClockwise"] = c.counterClockwise
}

// Ellipse is an axis-aligned ellipse with radii rx and ry.
type Ellipse struct {
	Object
	rx, ry float64
}

// NewEllipse creates an ellipse. Setting rx or ry also sets width or height.
func NewEllipse(opts Record) *Ellipse {
	e := &Ellipse{}
	e.init(e, opts)
	return e
}

// Type implements Node.
func (e *Ellipse) Type() string { return "Ellipse" }

func (e *Ellipse) defaults() Record {
	d := objectDefaults()
	d["rx"] = 0.0
	d["ry"] = 0.0
	return d
}

func (e *Ellipse) extraCacheProperties() []string { return []string{"rx", "ry"} }

func (e *Ellipse) setProperty(key string, v any) (bool, error) {
	switch key {
	case "rx":
		f, ok := toFloat(v)
		if !ok {
			return true, errInvalid(key, v)
		}
		e.rx, e.width = f, 2*f
		return true, nil
	case "ry":
		f, ok := toFloat(v)
		if !ok {
			return true, errInvalid(key, v)
		}
		e.ry, e.height = f, 2*f
		return true, nil
	}
	return false, nil
}

func (e *Ellipse) getProperty(key string) (any, bool) {
	switch key {
	case "rx":
		return e.rx, true
	case "ry":
		return e.ry, true
	}
	return nil, false
}

// Outline implements Outliner.
func (e *Ellipse) Outline() []path.Command {
	p := path.New()
	p.Ellipse(0, 0, e.rx, e.ry)
	return p.Commands()
}

// DrawGeometry implements Node.
func (e *Ellipse) DrawGeometry(d raster.Drawer) {
	e.renderPaintInOrder(d, e.Outline())
}

func (e *Ellipse) extendRecord(rec Record, digits int) {
	rec["rx"] = round(e.rx, digits)
	rec["ry"] = round(e.ry, digits)
}
