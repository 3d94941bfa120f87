// Package scene implements the retained scene graph: drawable nodes, groups,
// the per-node raster cache, serialization to plain records and SVG export.
//
// Every node embeds an Object, which carries the transform, paint and cache
// state shared by all node types. Nodes draw themselves centered on the
// origin of their own plane; Object.Render applies the transform chain
// (object, group, viewport) and decides whether the node is drawn directly
// or through its offscreen cache.
//
// Basic usage:
//
//	r := scene.NewRect(scene.Record{"left": 10, "top": 10, "width": 80, "height": 40, "fill": "red"})
//	g := scene.NewGroup([]scene.Node{r}, nil)
//	g.Render(surface.Context())
//
// All mutation goes through Object.Set, which keeps the dirty flags of the
// node and its ancestors consistent. Scene nodes are not safe for concurrent
// use; rendering and mutation happen on one goroutine.
package scene
