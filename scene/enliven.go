package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/raster"
)

// Constructor builds a node from its serialized record.
type Constructor func(ctx context.Context, rec Record, opts EnlivenOptions) (Node, error)

// Registry maps type names to constructors. Lookups ignore case.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Constructor
}

// NewRegistry returns a registry holding the built-in node types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Constructor)}
	r.Register("Rect", simpleConstructor(func(rec Record) Node { return NewRect(rec) }))
	r.Register("Circle", simpleConstructor(func(rec Record) Node { return NewCircle(rec) }))
	r.Register("Ellipse", simpleConstructor(func(rec Record) Node { return NewEllipse(rec) }))
	r.Register("Path", simpleConstructor(func(rec Record) Node { return NewPath(nil, rec) }))
	r.Register("Polyline", simpleConstructor(func(rec Record) Node { return NewPolyline(nil, rec) }))
	r.Register("Polygon", simpleConstructor(func(rec Record) Node { return NewPolygon(nil, rec) }))
	r.Register("Text", simpleConstructor(func(rec Record) Node { return NewText("", rec) }))
	r.Register("Image", imageFromObject)
	r.Register("Group", groupFromObject)
	return r
}

// DefaultRegistry is used when EnlivenOptions.Registry is nil.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry()
}

// Register adds or replaces the constructor for typ.
func (r *Registry) Register(typ string, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[strings.ToLower(typ)] = c
}

// Resolve returns the constructor for typ.
func (r *Registry) Resolve(typ string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.types[strings.ToLower(typ)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", easel.ErrUnknownType, typ)
	}
	return c, nil
}

// EnlivenOptions configure FromObject.
type EnlivenOptions struct {
	// Registry resolves type names. Nil means DefaultRegistry.
	Registry *Registry
	// Env supplies the image loader. Nil means DefaultEnv.
	Env *Env
}

func (opts EnlivenOptions) registry() *Registry {
	if opts.Registry != nil {
		return opts.Registry
	}
	return DefaultRegistry
}

func (opts EnlivenOptions) images() raster.ImageLoader {
	if opts.Env != nil && opts.Env.Images != nil {
		return opts.Env.Images
	}
	return DefaultEnv().Images
}

// FromObject builds a node from its record, loading pattern and image
// sources and enlivening the clip path. Cancelling ctx aborts the build;
// the returned error then matches easel.ErrAborted and ctx.Err().
func FromObject(ctx context.Context, rec Record, opts EnlivenOptions) (Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, easel.Aborted(err)
	}
	typ, _ := toString(rec["type"])
	c, err := opts.registry().Resolve(typ)
	if err != nil {
		return nil, err
	}
	return c(ctx, rec, opts)
}

// EnlivenObjects builds nodes from records concurrently and returns them in
// record order. If any build fails, or ctx is cancelled, every node built so
// far is disposed and the first error is returned.
func EnlivenObjects(ctx context.Context, recs []any, opts EnlivenOptions) ([]Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, easel.Aborted(err)
	}
	records := make([]Record, len(recs))
	for i, r := range recs {
		rec, ok := toRecord(r)
		if !ok {
			return nil, fmt.Errorf("%w: object %d is %T", ErrInvalidValue, i, r)
		}
		records[i] = rec
	}
	nodes := make([]Node, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	for i, rec := range records {
		g.Go(func() error {
			n, err := FromObject(gctx, rec, opts)
			if err != nil {
				return err
			}
			nodes[i] = n
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
		}
	}
	if err != nil {
		disposeAll(nodes)
		return nil, abortError(ctx, err)
	}
	return nodes, nil
}

func disposeAll(nodes []Node) {
	for _, n := range nodes {
		if n != nil {
			n.Base().Dispose()
		}
	}
}

// abortError reports err as an abort when ctx was cancelled.
func abortError(ctx context.Context, err error) error {
	if ctx.Err() == nil || errors.Is(err, easel.ErrAborted) {
		return err
	}
	return easel.Aborted(ctx.Err())
}

// enlivenProps returns a copy of rec with paints, shadow and clip path
// converted to their live values. Pattern sources are loaded and the clip
// path is built concurrently.
func enlivenProps(ctx context.Context, rec Record, opts EnlivenOptions) (Record, error) {
	out := clone(rec)
	g, gctx := errgroup.WithContext(ctx)
	for _, key := range []string{"fill", "stroke"} {
		if _, ok := toRecord(rec[key]); !ok {
			continue
		}
		p, err := paintFromValue(rec[key])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = p
		if pat, ok := p.(*Pattern); ok && pat.Source != "" && pat.Image == nil {
			g.Go(func() error {
				img, err := opts.images().LoadImage(gctx, pat.Source, raster.LoadOptions{})
				if err != nil {
					return err
				}
				pat.Image = img
				return nil
			})
		}
	}
	if s, ok := rec["shadow"]; ok && s != nil {
		sh, err := shadowFromValue(s)
		if err != nil {
			return nil, err
		}
		out["shadow"] = sh
	}
	var clip Node
	if cr, ok := toRecord(rec["clipPath"]); ok {
		g.Go(func() error {
			n, err := FromObject(gctx, cr, opts)
			if err != nil {
				return err
			}
			clip = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if clip != nil {
			clip.Base().Dispose()
		}
		return nil, abortError(ctx, err)
	}
	if clip != nil {
		out["clipPath"] = clip
	}
	return out, nil
}

// simpleConstructor adapts a synchronous constructor taking enlivened
// properties.
func simpleConstructor(build func(Record) Node) Constructor {
	return func(ctx context.Context, rec Record, opts EnlivenOptions) (Node, error) {
		props, err := enlivenProps(ctx, rec, opts)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			disposeProps(props)
			return nil, easel.Aborted(err)
		}
		return build(props), nil
	}
}

func disposeProps(props Record) {
	if n, ok := props["clipPath"].(Node); ok {
		n.Base().Dispose()
	}
}

func imageFromObject(ctx context.Context, rec Record, opts EnlivenOptions) (Node, error) {
	src, _ := toString(rec["src"])
	cross, _ := toString(rec["crossOrigin"])
	var (
		props   Record
		element image.Image
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := enlivenProps(gctx, rec, opts)
		props = p
		return err
	})
	if src != "" {
		g.Go(func() error {
			img, err := opts.images().LoadImage(gctx, src, raster.LoadOptions{CrossOrigin: cross})
			element = img
			return err
		})
	}
	if err := g.Wait(); err != nil {
		disposeProps(props)
		return nil, abortError(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		disposeProps(props)
		return nil, easel.Aborted(err)
	}
	return NewImage(element, props), nil
}

func groupFromObject(ctx context.Context, rec Record, opts EnlivenOptions) (Node, error) {
	objs, _ := rec["objects"].([]any)
	var (
		children []Node
		props    Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := EnlivenObjects(gctx, objs, opts)
		children = c
		return err
	})
	g.Go(func() error {
		p, err := enlivenProps(gctx, rec, opts)
		props = p
		return err
	})
	if err := g.Wait(); err != nil {
		disposeAll(children)
		disposeProps(props)
		return nil, abortError(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		disposeAll(children)
		disposeProps(props)
		return nil, easel.Aborted(err)
	}
	return newGroupInPlane(children, props), nil
}
