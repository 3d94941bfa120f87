package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/scene"
)

// ToObject returns the plain-data form of the canvas: the nodes not
// excluded from export, the background and overlay, and the clip path.
// include names extra node properties to serialize.
func (c *StaticCanvas) ToObject(include ...string) scene.Record {
	objects := make([]any, 0, len(c.objects))
	for _, n := range c.objects {
		if n.Base().ExcludeFromExport() {
			continue
		}
		objects = append(objects, c.nodeRecord(n, include))
	}
	rec := scene.Record{
		"version": scene.FormatVersion,
		"objects": objects,
	}
	if c.BackgroundColor != "" {
		rec["background"] = c.BackgroundColor
	}
	if c.OverlayColor != "" {
		rec["overlay"] = c.OverlayColor
	}
	for key, n := range map[string]scene.Node{
		"backgroundImage": c.BackgroundImage,
		"overlayImage":    c.OverlayImage,
		"clipPath":        c.ClipPath,
	} {
		if n != nil && !n.Base().ExcludeFromExport() {
			rec[key] = c.nodeRecord(n, include)
		}
	}
	return rec
}

// nodeRecord serializes n, forcing default elision when the canvas does
// not include default values.
func (c *StaticCanvas) nodeRecord(n scene.Node, include []string) scene.Record {
	b := n.Base()
	if c.IncludeDefaultValues {
		return b.ToObject(include...)
	}
	orig, _ := b.Get("includeDefaultValues")
	_ = b.Set("includeDefaultValues", false)
	defer func() { _ = b.Set("includeDefaultValues", orig) }()
	return b.ToObject(include...)
}

// ToJSON encodes ToObject as JSON.
func (c *StaticCanvas) ToJSON(include ...string) ([]byte, error) {
	return json.Marshal(c.ToObject(include...))
}

// LoadFromJSON replaces the canvas content with the scene encoded in data.
// See LoadFromObject.
func (c *StaticCanvas) LoadFromJSON(ctx context.Context, data []byte) error {
	var rec scene.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("canvas: decode scene: %w", err)
	}
	return c.LoadFromObject(ctx, rec)
}

// LoadFromObject enlivens the nodes, background and overlay images and
// clip path of rec, then replaces the canvas content with them. It does
// not render. If any part fails or ctx is cancelled, everything built is
// disposed and the canvas is left unchanged.
func (c *StaticCanvas) LoadFromObject(ctx context.Context, rec scene.Record) error {
	opts := scene.EnlivenOptions{Registry: c.registry, Env: c.env}
	objects, _ := rec["objects"].([]any)

	var (
		nodes  []scene.Node
		extras = map[string]scene.Node{}
		recs   = map[string]scene.Record{}
	)
	for _, key := range []string{"backgroundImage", "overlayImage", "clipPath"} {
		if r, ok := rec[key].(map[string]any); ok {
			recs[key] = r
		}
	}
	built := make([]scene.Node, len(recs))
	keys := make([]string, 0, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nodes, err = scene.EnlivenObjects(gctx, objects, opts)
		return err
	})
	for key, r := range recs {
		i := len(keys)
		keys = append(keys, key)
		g.Go(func() error {
			n, err := scene.FromObject(gctx, r, opts)
			if err != nil {
				return fmt.Errorf("canvas: %s: %w", key, err)
			}
			built[i] = n
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
		if err != nil {
			err = easel.Aborted(err)
		}
	}
	if err != nil {
		for _, n := range append(nodes, built...) {
			if n != nil {
				n.Base().Dispose()
			}
		}
		return err
	}
	for i, key := range keys {
		extras[key] = built[i]
	}

	renderOnAddRemove := c.RenderOnAddRemove
	c.RenderOnAddRemove = false
	defer func() { c.RenderOnAddRemove = renderOnAddRemove }()

	c.Clear()
	c.Add(nodes...)
	c.BackgroundColor, _ = rec["background"].(string)
	c.OverlayColor, _ = rec["overlay"].(string)
	c.BackgroundImage = extras["backgroundImage"]
	c.OverlayImage = extras["overlayImage"]
	c.ClipPath = extras["clipPath"]
	return nil
}

// WritePNG renders the canvas now and encodes the result as PNG.
func (c *StaticCanvas) WritePNG(w io.Writer) error {
	if c.destroyed {
		return ErrDestroyed
	}
	c.self.RenderAll()
	return png.Encode(w, c.Image())
}

// WriteSVG writes the canvas as an SVG document. The viewport transform is
// exported when SVGViewportTransformation is set.
func (c *StaticCanvas) WriteSVG(w io.Writer) error {
	opts := scene.SVGOptions{
		Width:      c.width,
		Height:     c.height,
		Background: c.BackgroundColor,
		Digits:     c.env.Config.NumFractionDigits,
	}
	if c.SVGViewportTransformation {
		opts.ViewportTransform = c.vpt
	}
	return scene.WriteSVG(w, c.objects, opts)
}
