package scene

import (
	"math"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/raster"
)

// cacheState is the offscreen raster cache of a node.
type cacheState struct {
	surface raster.Surface

	// width and height are the limited cache dimensions the surface was
	// last prepared for. The surface itself may be larger.
	width, height float64

	translationX, translationY float64
	zoomX, zoomY               float64
}

// CacheDimensions describes the pixel size needed to cache a node.
type CacheDimensions struct {
	// Width and Height are the cache size in pixels, including the
	// aliasing margin.
	Width, Height float64
	// ZoomX and ZoomY scale the node plane to cache pixels.
	ZoomX, ZoomY float64
	// X and Y are the drawing size in pixels, without the margin.
	X, Y float64
	// Capped is set when the size was reduced to fit the budget.
	Capped bool
}

// CacheStats is a snapshot of a node's cache for diagnostics.
type CacheStats struct {
	Allocated bool
	// SurfaceWidth and SurfaceHeight are the allocated pixel size.
	SurfaceWidth, SurfaceHeight int
	// Width and Height are the cache dimensions in use.
	Width, Height              float64
	ZoomX, ZoomY               float64
	TranslationX, TranslationY float64
}

// CacheStats returns the current cache state.
func (o *Object) CacheStats() CacheStats {
	st := CacheStats{
		Width:        o.cache.width,
		Height:       o.cache.height,
		ZoomX:        o.cache.zoomX,
		ZoomY:        o.cache.zoomY,
		TranslationX: o.cache.translationX,
		TranslationY: o.cache.translationY,
	}
	if s := o.cache.surface; s != nil {
		st.Allocated = true
		st.SurfaceWidth, st.SurfaceHeight = s.Width(), s.Height()
	}
	return st
}

// ShouldCache decides whether the node renders through its own cache and
// records the decision as the node's own-caching state. A node caches when
// it needs its own cache, or when caching is enabled and no ancestor is
// already rendering into a cache.
func (o *Object) ShouldCache() bool {
	if s, ok := o.self.(interface{ shouldCache() bool }); ok {
		return s.shouldCache()
	}
	return o.shouldCacheBase()
}

func (o *Object) shouldCacheBase() bool {
	o.ownCaching = (o.objectCaching && (o.group == nil || !o.group.IsOnACache())) ||
		o.NeedsItsOwnCache()
	return o.ownCaching
}

// NeedsItsOwnCache reports whether the node cannot be drawn directly: it has
// a clip path, or it paints the stroke under the fill with a shadow.
func (o *Object) NeedsItsOwnCache() bool {
	if o.paintFirst == PaintStroke && o.HasFill() && o.HasStroke() && o.shadow != nil {
		return true
	}
	return o.clipPath != nil
}

// CacheDimensions returns the unlimited cache size for the node at its
// current total scaling.
func (o *Object) CacheDimensions() CacheDimensions {
	scale := o.TotalObjectScaling()
	d := o.dimensionOptions()
	d.skewX, d.skewY = 0, 0
	dim := o.transformedDimensions(d)
	x := dim.X * scale.X / math.Abs(o.scaleX)
	y := dim.Y * scale.Y / math.Abs(o.scaleY)
	aliasing := o.config().AliasingLimit
	return CacheDimensions{
		Width:  math.Ceil(x + aliasing),
		Height: math.Ceil(y + aliasing),
		ZoomX:  scale.X,
		ZoomY:  scale.Y,
		X:      x,
		Y:      y,
	}
}

// LimitCacheSize fits dims into the budget of cfg. Within budget, sides are
// raised to MinCacheSideLimit. Over budget, the sides are cut to the
// largest box of the same aspect ratio within PerfLimitSizeTotal, clamped to
// [MinCacheSideLimit, MaxCacheSideLimit], and the zoom shrinks by the same
// factor so the whole node still fits.
func LimitCacheSize(dims CacheDimensions, cfg easel.Config) CacheDimensions {
	w, h := dims.Width, dims.Height
	maxSide, minSide := cfg.MaxCacheSideLimit, cfg.MinCacheSideLimit
	if w <= maxSide && h <= maxSide && w*h <= cfg.PerfLimitSizeTotal {
		if w < minSide {
			dims.Width = minSide
		}
		if h < minSide {
			dims.Height = minSide
		}
		return dims
	}
	limX, limY := limitDimsByArea(w/h, cfg.PerfLimitSizeTotal)
	x := capValue(minSide, limX, maxSide)
	y := capValue(minSide, limY, maxSide)
	if w > x {
		dims.ZoomX /= w / x
		dims.Width = x
		dims.Capped = true
	}
	if h > y {
		dims.ZoomY /= h / y
		dims.Height = y
		dims.Capped = true
	}
	return dims
}

// limitDimsByArea returns the largest whole-pixel box with aspect ratio ar
// and an area within perfLimit.
func limitDimsByArea(ar, perfLimit float64) (float64, float64) {
	roughWidth := math.Sqrt(perfLimit * ar)
	return math.Floor(roughWidth), math.Floor(perfLimit / roughWidth)
}

// grownSurfaceSize adds the growth margin to a w x h cache, keeping the
// surface within MaxCacheSideLimit and PerfLimitSizeTotal. The margin is
// what gives way; the surface never gets smaller than the cache.
func grownSurfaceSize(w, h, extraW, extraH float64, cfg easel.Config) (int, int) {
	minW, minH := math.Ceil(w), math.Ceil(h)
	gw := math.Min(math.Ceil(w+extraW), math.Max(cfg.MaxCacheSideLimit, minW))
	gh := math.Min(math.Ceil(h+extraH), math.Max(cfg.MaxCacheSideLimit, minH))
	if area := gw * gh; area > cfg.PerfLimitSizeTotal {
		k := math.Sqrt(cfg.PerfLimitSizeTotal / area)
		gw = math.Max(minW, math.Floor(gw*k))
		gh = math.Max(minH, math.Floor(gh*k))
	}
	return int(gw), int(gh)
}

func capValue(minValue, value, maxValue float64) float64 {
	return math.Max(minValue, math.Min(value, maxValue))
}

func (o *Object) createCache() {
	o.cache = cacheState{surface: o.env().Provider.NewSurface(0, 0)}
	o.updateCacheCanvas()
	o.dirty = true
}

// updateCacheCanvas prepares the cache surface for the current dimensions
// and zoom. The surface is reallocated when it must grow, or when it would
// shrink below CacheShrinkRatio of its size; growth adds CacheGrowMargin.
// It reports whether the cache content was invalidated.
func (o *Object) updateCacheCanvas() bool {
	s := o.cache.surface
	if s == nil {
		return false
	}
	cfg := o.config()
	dims := LimitCacheSize(o.CacheDimensions(), *cfg)
	w, h := dims.Width, dims.Height
	dimsChanged := w != o.cache.width || h != o.cache.height
	zoomChanged := o.cache.zoomX != dims.ZoomX || o.cache.zoomY != dims.ZoomY
	if !dimsChanged && !zoomChanged {
		return false
	}

	resize := false
	var extraW, extraH float64
	if dimsChanged {
		cw, ch := float64(s.Width()), float64(s.Height())
		minSide := cfg.MinCacheSideLimit
		growing := w > cw || h > ch
		shrinking := (w < cw*cfg.CacheShrinkRatio || h < ch*cfg.CacheShrinkRatio) &&
			cw > minSide && ch > minSide
		resize = growing || shrinking
		if growing && !dims.Capped && (w > minSide || h > minSide) {
			extraW, extraH = w*cfg.CacheGrowMargin, h*cfg.CacheGrowMargin
		}
	}

	d := s.Context()
	if resize {
		s.Resize(grownSurfaceSize(w, h, extraW, extraH, *cfg))
		easel.Logger().Debug("scene: cache resized",
			"id", o.id, "width", s.Width(), "height", s.Height(), "capped", dims.Capped)
	} else {
		d.SetTransform(easel.Identity())
		d.Clear()
	}

	halfX, halfY := dims.X/2, dims.Y/2
	o.cache.translationX = math.Round(float64(s.Width())/2-halfX) + halfX
	o.cache.translationY = math.Round(float64(s.Height())/2-halfY) + halfY
	o.cache.width, o.cache.height = w, h
	d.Transform(easel.Translate(o.cache.translationX, o.cache.translationY))
	d.Transform(easel.Scale(dims.ZoomX, dims.ZoomY))
	o.cache.zoomX, o.cache.zoomY = dims.ZoomX, dims.ZoomY
	return true
}

// IsCacheDirty reports whether the cache must be redrawn. Unless skipCanvas
// is set, the cache is prepared for the current size and cleared when it
// has to be redrawn.
func (o *Object) IsCacheDirty(skipCanvas bool) bool {
	if o.IsNotVisible() {
		return false
	}
	s := o.cache.surface
	if s != nil && !skipCanvas && o.updateCacheCanvas() {
		return true
	}
	if o.dirty || (o.clipPath != nil && o.clipPath.Base().absolutePositioned) {
		if s != nil && !skipCanvas {
			w := o.cache.width / o.cache.zoomX
			h := o.cache.height / o.cache.zoomY
			s.Context().ClearRect(easel.Rect{Left: -w / 2, Top: -h / 2, Width: w, Height: h})
		}
		return true
	}
	return false
}

// RenderCache redraws the cache when it is dirty. With forClipping the node
// is drawn as an opaque silhouette.
func (o *Object) RenderCache(forClipping bool) {
	if o.cache.surface == nil {
		o.createCache()
	}
	if o.IsCacheDirty(false) {
		o.drawObject(o.cache.surface.Context(), forClipping)
		o.dirty = false
	}
}

// drawCacheOnCanvas blits the cache into d, whose transform is the node
// plane.
func (o *Object) drawCacheOnCanvas(d raster.Drawer) {
	s := o.cache.surface
	if s == nil {
		return
	}
	d.Transform(easel.Scale(1/o.cache.zoomX, 1/o.cache.zoomY))
	img := s.Image()
	d.DrawImage(img, img.Bounds(), easel.Rect{
		Left:   -o.cache.translationX,
		Top:    -o.cache.translationY,
		Width:  float64(s.Width()),
		Height: float64(s.Height()),
	})
}

func (o *Object) removeCache() {
	o.cache = cacheState{}
}
