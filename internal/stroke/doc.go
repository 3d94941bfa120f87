// Package stroke converts stroked paths to filled outlines.
//
// Stroke expansion builds two parallel offset paths along the flattened
// input:
//   - Forward path: offset by -width/2 along the normal
//   - Backward path: offset by +width/2 along the normal
//
// The filled outline is the forward path, the end cap, the reversed
// backward path and the start cap. Closed subpaths produce two rings. The
// outline is meant to be filled with the nonzero rule.
//
// Dash patterns are applied before expansion by Dash.Apply, which splits
// each subpath into its "on" intervals.
//
// The algorithm follows tiny-skia (path/src/stroker.rs) and kurbo
// (src/stroke.rs).
package stroke
