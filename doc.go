// Package easel is a retained 2D scene graph with a software renderer.
//
// # Overview
//
// easel keeps a tree of drawable objects (rectangles, circles, paths,
// polylines, images, text and groups), renders them through a viewport
// transform and keeps per-object raster caches sized under a pixel budget.
// Free drawing is handled by brushes that turn pointer samples into
// smoothed path objects.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/easel/canvas"
//		"github.com/gogpu/easel/scene"
//	)
//
//	c, err := canvas.NewStatic(640, 480)
//	if err != nil {
//		log.Fatal(err)
//	}
//	c.Add(scene.NewRect(scene.Record{
//		"left": 10, "top": 10, "width": 100, "height": 50, "fill": "red",
//	}))
//	c.RenderAll()
//	c.WritePNG(w)
//
// # Architecture
//
// The module is organized into:
//   - easel: Point, Matrix, transform composition, Rect, colors, Config
//   - path: path grammar parsing, normalization, bounds and sampling
//   - raster: drawing contexts, software surfaces, paints, image loading
//   - scene: objects, groups, the render cache engine, serialization
//   - brush: pencil, circle and spray brushes
//   - canvas: static and interactive canvas drivers
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Object angles are in degrees and rotate clockwise on screen
//
// # Logging
//
// Library code logs through Logger, which is silent until SetLogger is
// called.
package easel
