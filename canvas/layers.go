package canvas

import (
	"image"
	"image/draw"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/raster"
)

// layers holds the lower surface the scene renders into and, on interactive
// canvases, the top layer drawn over it. Both are sized in device pixels.
type layers struct {
	lower   raster.Surface
	top     raster.Surface
	claimed *raster.Buffer
	retina  float64
}

func newLayers(o options, width, height, retina float64) (*layers, error) {
	w, h := deviceSize(width, retina), deviceSize(height, retina)
	l := &layers{retina: retina}
	if o.surface != nil {
		if err := o.surface.Claim(); err != nil {
			return nil, err
		}
		l.claimed = o.surface
		l.lower = o.surface
		if o.surface.Width() != w || o.surface.Height() != h {
			o.surface.Resize(w, h)
		}
	} else {
		l.lower = raster.NewBuffer(w, h)
	}
	return l, nil
}

func deviceSize(v, retina float64) int {
	return max(int(v*retina+0.5), 0)
}

// addTop creates the top layer.
func (l *layers) addTop() {
	l.top = raster.NewBuffer(l.lower.Width(), l.lower.Height())
	l.top.Context().SetTransform(easel.Scale(l.retina, l.retina))
}

// resize reallocates every layer. Contents are lost.
func (l *layers) resize(width, height float64) {
	w, h := deviceSize(width, l.retina), deviceSize(height, l.retina)
	l.lower.Resize(w, h)
	if l.top != nil {
		l.top.Resize(w, h)
		l.top.Context().SetTransform(easel.Scale(l.retina, l.retina))
	}
}

// clearTop makes the top layer transparent.
func (l *layers) clearTop() {
	if l.top != nil {
		l.top.Context().Clear()
	}
}

// composite returns a copy of the lower layer with the top layer blended
// over it.
func (l *layers) composite() *image.RGBA {
	src := l.lower.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	if l.top != nil {
		top := l.top.Image()
		draw.Draw(out, out.Bounds(), top, top.Bounds().Min, draw.Over)
	}
	return out
}

// release gives the claimed buffer back and drops the surfaces.
func (l *layers) release() {
	if l.claimed != nil {
		l.claimed.Release()
		l.claimed = nil
	}
	l.top = nil
}
