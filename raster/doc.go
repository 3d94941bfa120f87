// Package raster provides the drawing surfaces the scene renders into.
//
// A Surface is an offscreen pixel buffer paired with a Drawer, the stateful
// drawing context used by scene nodes, object caches and brushes. The
// Software provider backs surfaces with premultiplied *image.RGBA buffers and
// rasterizes with golang.org/x/image/vector.
//
// # Drawing model
//
// Drawer mirrors a canvas 2D context: a transform stack with Save/Restore,
// global alpha, a Porter-Duff composite operation, a drop shadow in device
// space, and Fill/Stroke/DrawImage primitives. Every primitive is drawn into
// a transparent layer, its shadow (if any) is composited first and the layer
// second.
//
// Composite operations that are unbounded on a canvas (source-in,
// source-out, destination-in, destination-atop, copy) affect the whole
// surface, not only the area covered by the shape.
//
// # Images
//
// FileLoader implements ImageLoader for files, data: URLs and http(s) URLs.
// Decoded images are memoized in a bounded LRU.
//
// # Recording
//
// Recorder implements Drawer by recording calls, which is useful to assert
// render order and state discipline without rasterizing.
package raster
