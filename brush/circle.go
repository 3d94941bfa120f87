package brush

import (
	"math"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
	"github.com/gogpu/easel/scene"
)

type dot struct {
	center easel.Point
	radius float64
	fill   easel.RGBA
}

// Circle stamps dots of random size and opacity and commits them as a group
// of scene.Circle nodes.
type Circle struct {
	Base
	dots []dot
}

// NewCircle creates a circle brush bound to h.
func NewCircle(h Host) *Circle {
	c := &Circle{Base: newBase(h)}
	c.Width = 10
	return c
}

// OnPointerDown implements Brush.
func (c *Circle) OnPointerDown(pt easel.Point, _ Modifiers) {
	c.dots = c.dots[:0]
	c.host.ClearTopContext()
	c.drawDot(pt)
}

// OnPointerMove implements Brush.
func (c *Circle) OnPointerMove(pt easel.Point, _ Modifiers) {
	if c.LimitedToCanvasSize && c.isOutsideCanvas(pt) {
		return
	}
	if c.NeedsFullRender() {
		c.host.ClearTopContext()
		c.addDot(pt)
		c.Render()
		return
	}
	c.drawDot(pt)
}

// OnPointerUp implements Brush.
func (c *Circle) OnPointerUp(Modifiers) bool {
	if len(c.dots) == 0 {
		return false
	}
	circles := make([]scene.Node, 0, len(c.dots))
	for _, d := range c.dots {
		rec := scene.Record{
			"radius":  d.radius,
			"left":    d.center.X,
			"top":     d.center.Y,
			"originX": scene.OriginCenter,
			"originY": scene.OriginCenter,
			"fill":    d.fill.String(),
		}
		if sh := c.shadowCopy(); sh != nil {
			rec["shadow"] = sh
		}
		circles = append(circles, scene.NewCircle(rec))
	}
	c.dots = c.dots[:0]
	c.commit(scene.NewGroup(circles, nil))
	return false
}

// Render implements Brush.
func (c *Circle) Render() {
	c.withTop(func(d raster.Drawer) {
		for _, dt := range c.dots {
			fillDot(d, dt)
		}
	})
}

func (c *Circle) drawDot(pt easel.Point) {
	dt := c.addDot(pt)
	c.withTop(func(d raster.Drawer) { fillDot(d, dt) })
}

// addDot records a dot at pt with a radius within 20 of Width and a random
// alpha.
func (c *Circle) addDot(pt easel.Point) dot {
	col, ok := c.resolveColor(c.Color)
	if !ok {
		col = easel.RGB(0, 0, 0)
	}
	dt := dot{
		center: pt,
		radius: c.randomInt(math.Max(0, c.Width-20), c.Width+20) / 2,
		fill:   col.WithAlpha(c.randomInt(0, 100) / 100),
	}
	c.dots = append(c.dots, dt)
	return dt
}

func fillDot(d raster.Drawer, dt dot) {
	p := path.New()
	p.Circle(dt.center.X, dt.center.Y, dt.radius)
	d.Fill(p.Commands(), raster.Solid{Color: dt.fill}, raster.NonZero)
}
