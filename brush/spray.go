package brush

import (
	"math"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
	"github.com/gogpu/easel/scene"
)

type sprayDot struct {
	x, y    float64
	width   float64
	opacity float64
}

// Spray scatters square dots around the pointer and commits them as a
// fixed-layout group of scene.Rect nodes.
type Spray struct {
	Base

	// Density is the number of dots per sample.
	Density int
	// DotWidth is the nominal dot side; DotWidthVariance widens the range
	// dot sides are drawn from.
	DotWidth         float64
	DotWidthVariance float64
	// RandomOpacity gives each dot a random opacity.
	RandomOpacity bool
	// OptimizeOverlapping commits only one dot per position.
	OptimizeOverlapping bool

	chunks [][]sprayDot
}

// NewSpray creates a spray brush bound to h.
func NewSpray(h Host) *Spray {
	s := &Spray{
		Base:                newBase(h),
		Density:             20,
		DotWidth:            1,
		DotWidthVariance:    1,
		OptimizeOverlapping: true,
	}
	s.Width = 10
	return s
}

// OnPointerDown implements Brush.
func (s *Spray) OnPointerDown(pt easel.Point, _ Modifiers) {
	s.chunks = s.chunks[:0]
	s.host.ClearTopContext()
	s.renderChunk(s.addChunk(pt))
}

// OnPointerMove implements Brush.
func (s *Spray) OnPointerMove(pt easel.Point, _ Modifiers) {
	if s.LimitedToCanvasSize && s.isOutsideCanvas(pt) {
		return
	}
	s.renderChunk(s.addChunk(pt))
}

// OnPointerUp implements Brush.
func (s *Spray) OnPointerUp(Modifiers) bool {
	var rects []scene.Node
	seen := make(map[easel.Point]bool)
	for _, chunk := range s.chunks {
		for _, d := range chunk {
			pos := easel.Pt(d.x+1, d.y+1)
			if s.OptimizeOverlapping {
				if seen[pos] {
					continue
				}
				seen[pos] = true
			}
			rec := scene.Record{
				"width":   d.width,
				"height":  d.width,
				"left":    pos.X,
				"top":     pos.Y,
				"originX": scene.OriginCenter,
				"originY": scene.OriginCenter,
				"fill":    s.Color,
			}
			if s.RandomOpacity {
				rec["opacity"] = d.opacity
			}
			rects = append(rects, scene.NewRect(rec))
		}
	}
	s.chunks = s.chunks[:0]
	if len(rects) == 0 {
		return false
	}
	opts := scene.Record{
		"objectCaching": true,
		"layout":        scene.LayoutFixed,
	}
	if sh := s.shadowCopy(); sh != nil {
		opts["shadow"] = sh
	}
	s.commit(scene.NewGroup(rects, opts))
	return false
}

// Render implements Brush.
func (s *Spray) Render() {
	for _, chunk := range s.chunks {
		s.renderChunk(chunk)
	}
}

// addChunk scatters Density dots within Width/2 of pt.
func (s *Spray) addChunk(pt easel.Point) []sprayDot {
	radius := s.Width / 2
	chunk := make([]sprayDot, 0, s.Density)
	for range s.Density {
		d := sprayDot{
			x:       s.randomInt(pt.X-radius, pt.X+radius),
			y:       s.randomInt(pt.Y-radius, pt.Y+radius),
			width:   s.DotWidth,
			opacity: 1,
		}
		if s.DotWidthVariance != 0 {
			d.width = s.randomInt(math.Max(1, s.DotWidth-s.DotWidthVariance), s.DotWidth+s.DotWidthVariance)
		}
		if s.RandomOpacity {
			d.opacity = s.randomInt(0, 100) / 100
		}
		chunk = append(chunk, d)
	}
	s.chunks = append(s.chunks, chunk)
	return chunk
}

func (s *Spray) renderChunk(chunk []sprayDot) {
	paint := s.paint()
	s.withTop(func(d raster.Drawer) {
		for _, dt := range chunk {
			d.SetGlobalAlpha(dt.opacity)
			p := path.New()
			p.Rect(dt.x, dt.y, dt.width, dt.width)
			d.Fill(p.Commands(), paint, raster.NonZero)
		}
	})
}
