package scene

import (
	"math"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/raster"
)

// testHost is a minimal Host with an adjustable viewport.
type testHost struct {
	env    *Env
	vpt    easel.Matrix
	retina float64
	bounds easel.Rect
	skip   bool
	top    raster.Drawer
}

func newTestHost() *testHost {
	return &testHost{
		env:    NewEnv(easel.DefaultConfig()),
		vpt:    easel.Identity(),
		retina: 1,
		bounds: easel.Rect{Width: 100, Height: 100},
	}
}

func (h *testHost) Env() *Env                       { return h.env }
func (h *testHost) ViewportTransform() easel.Matrix { return h.vpt }
func (h *testHost) Zoom() float64                   { return h.vpt.A }
func (h *testHost) RetinaScaling() float64          { return h.retina }
func (h *testHost) ViewportBounds() easel.Rect      { return h.bounds }
func (h *testHost) SkipOffscreen() bool             { return h.skip }
func (h *testHost) TopContext() raster.Drawer       { return h.top }
func (h *testHost) PreserveObjectStacking() bool    { return false }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func clearDirty(nodes ...Node) {
	for _, n := range nodes {
		n.Base().dirty = false
	}
}
