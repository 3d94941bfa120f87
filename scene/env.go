package scene

import (
	"sync"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
)

// Env is the platform context shared by a driver and its nodes: tunables,
// the offscreen surface provider, color resolution and image loading.
// It is created by the driver and handed to nodes through their Host.
type Env struct {
	Config   easel.Config
	Provider raster.Provider
	Colors   easel.ColorResolver
	Images   raster.ImageLoader

	// BoundsCache memoizes curve bounds when Config.CachesBoundsOfCurve is set.
	BoundsCache *path.BoundsCache
}

// NewEnv creates an environment with the software provider, the default
// color resolver and a file loader.
func NewEnv(cfg easel.Config) *Env {
	env := &Env{
		Config:   cfg,
		Provider: raster.Software{},
		Colors:   easel.DefaultColors,
		Images:   raster.NewFileLoader(raster.DefaultImageCacheSize),
	}
	if cfg.CachesBoundsOfCurve {
		env.BoundsCache = path.NewBoundsCache(cfg.BoundsOfCurveCacheSize)
	}
	return env
}

var (
	defaultEnvOnce sync.Once
	defaultEnv     *Env
)

// DefaultEnv returns the environment used by nodes that are not attached to
// a driver.
func DefaultEnv() *Env {
	defaultEnvOnce.Do(func() {
		defaultEnv = NewEnv(easel.DefaultConfig())
	})
	return defaultEnv
}

// Host is the driver a top-level node is attached to.
type Host interface {
	Env() *Env

	// ViewportTransform maps the scene plane to the device plane, without
	// retina scaling.
	ViewportTransform() easel.Matrix
	Zoom() float64
	RetinaScaling() float64

	// ViewportBounds is the visible region in the scene plane.
	ViewportBounds() easel.Rect
	SkipOffscreen() bool

	// TopContext is the transient top layer, or nil.
	TopContext() raster.Drawer
	PreserveObjectStacking() bool
}

func (o *Object) env() *Env {
	if h := o.Host(); h != nil {
		if env := h.Env(); env != nil {
			return env
		}
	}
	return DefaultEnv()
}

func (o *Object) config() *easel.Config {
	return &o.env().Config
}

func (o *Object) resolveColor(s string) (easel.RGBA, bool) {
	if s == "" {
		return easel.RGBA{}, false
	}
	env := o.env()
	if env.Colors == nil {
		return easel.ParseColor(s)
	}
	return env.Colors.Resolve(s)
}
