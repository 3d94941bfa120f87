// Package canvas provides the drivers that own a scene: StaticCanvas renders
// top-level nodes through a viewport transform, and Canvas adds a top layer,
// free drawing and hit testing.
//
// # Rendering
//
// Mutations such as Add, Remove or SetViewportTransform do not draw. They
// call RequestRenderAll, which schedules a single render on the canvas
// Scheduler; further requests before that frame are coalesced. RenderAll
// draws immediately and cancels a scheduled render.
//
//	sched := canvas.NewManualScheduler()
//	c, err := canvas.NewStatic(640, 480, canvas.WithScheduler(sched))
//	if err != nil {
//		log.Fatal(err)
//	}
//	c.Add(scene.NewRect(scene.Record{"width": 40, "height": 40, "fill": "red"}))
//	sched.Flush()
//
// A frame is drawn in this order: background color and image, the nodes
// under the viewport transform, the canvas clip path, then overlay color
// and image.
//
// # Concurrency
//
// Canvases are not safe for concurrent use. FrameLoop runs scheduled
// renders on its own goroutine; while it runs, every call on the canvases
// it drives must go through FrameLoop.Post or FrameLoop.Do.
//
// # Disposal
//
// Dispose releases nodes, images and a claimed surface. When a render is
// scheduled, the release waits until that render completes; a second
// Dispose supersedes the first, whose channel then receives
// easel.ErrAborted.
package canvas
