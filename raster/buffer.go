package raster

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/easel"
)

// Buffer is a Surface backed by a premultiplied *image.RGBA.
type Buffer struct {
	img     *image.RGBA
	ctx     *Context
	claimed atomic.Bool
}

// NewBuffer allocates a width x height surface. Negative sizes are treated
// as zero.
func NewBuffer(width, height int) *Buffer {
	img := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	return &Buffer{img: img, ctx: NewContext(img)}
}

// Width implements Surface.
func (b *Buffer) Width() int { return b.img.Rect.Dx() }

// Height implements Surface.
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// Resize implements Surface.
func (b *Buffer) Resize(width, height int) {
	b.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	b.ctx.reset(b.img)
	easel.Logger().Debug("raster: surface resized", "width", width, "height", height)
}

// Context implements Surface.
func (b *Buffer) Context() Drawer { return b.ctx }

// Image implements Surface.
func (b *Buffer) Image() *image.RGBA { return b.img }

// Claim marks the buffer as owned by a driver. Claiming an already claimed
// buffer fails with easel.ErrAlreadyInitialized.
func (b *Buffer) Claim() error {
	if !b.claimed.CompareAndSwap(false, true) {
		return easel.ErrAlreadyInitialized
	}
	return nil
}

// Release gives up a claim made by Claim.
func (b *Buffer) Release() {
	b.claimed.Store(false)
}

// Claimed reports whether the buffer is owned by a driver.
func (b *Buffer) Claimed() bool { return b.claimed.Load() }

// Software is the default Provider, creating Buffers.
type Software struct{}

// NewSurface implements Provider.
func (Software) NewSurface(width, height int) Surface {
	return NewBuffer(width, height)
}
