package canvas

import (
	"github.com/gogpu/easel"
	"github.com/gogpu/easel/raster"
	"github.com/gogpu/easel/scene"
)

// Option configures a canvas during creation.
//
// Example:
//
//	sched := canvas.NewManualScheduler()
//	c, err := canvas.NewStatic(800, 600,
//		canvas.WithConfig(cfg),
//		canvas.WithScheduler(sched),
//	)
type Option func(*options)

type options struct {
	cfg       easel.Config
	provider  raster.Provider
	scheduler Scheduler
	colors    easel.ColorResolver
	images    raster.ImageLoader
	registry  *scene.Registry
	surface   *raster.Buffer
	retina    bool
}

func defaultOptions() options {
	return options{
		cfg:      easel.DefaultConfig(),
		provider: raster.Software{},
		retina:   true,
	}
}

// WithConfig sets the tunables shared by the canvas and its nodes.
func WithConfig(cfg easel.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithProvider sets the provider of offscreen surfaces for node caches.
func WithProvider(p raster.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithScheduler sets the scheduler that runs coalesced render requests.
// The default is a ManualScheduler, flushed by the caller.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithColors sets the color resolver.
func WithColors(r easel.ColorResolver) Option {
	return func(o *options) {
		o.colors = r
	}
}

// WithImageLoader sets the loader used when enlivening images and patterns.
func WithImageLoader(l raster.ImageLoader) Option {
	return func(o *options) {
		o.images = l
	}
}

// WithRegistry sets the type registry used by LoadFromJSON.
func WithRegistry(r *scene.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithSurface renders into an existing buffer instead of allocating one.
// The buffer is claimed for the life of the canvas; a buffer already owned
// by another canvas makes construction fail with
// easel.ErrAlreadyInitialized.
func WithSurface(b *raster.Buffer) Option {
	return func(o *options) {
		o.surface = b
	}
}

// WithRetinaScaling enables or disables rendering at the configured device
// pixel ratio. It is enabled by default.
func WithRetinaScaling(enabled bool) Option {
	return func(o *options) {
		o.retina = enabled
	}
}
