package raster

import (
	"errors"
	"testing"

	"github.com/gogpu/easel"
)

func TestBufferClaim(t *testing.T) {
	b := NewBuffer(4, 4)
	if err := b.Claim(); err != nil {
		t.Fatalf("first Claim() = %v", err)
	}
	if err := b.Claim(); !errors.Is(err, easel.ErrAlreadyInitialized) {
		t.Fatalf("second Claim() = %v, want ErrAlreadyInitialized", err)
	}
	b.Release()
	if err := b.Claim(); err != nil {
		t.Fatalf("Claim() after Release = %v", err)
	}
}

func TestBufferResize(t *testing.T) {
	var p Provider = Software{}
	s := p.NewSurface(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	ctx := s.Context()
	ctx.SetGlobalAlpha(0.3)
	ctx.Save()
	s.Resize(8, 6)
	if w, h := ctx.Size(); w != 8 || h != 6 {
		t.Errorf("context size = %dx%d", w, h)
	}
	if ctx.GlobalAlpha() != 1 {
		t.Errorf("state survived Resize: alpha %v", ctx.GlobalAlpha())
	}
	if len(s.Image().Pix) != 8*6*4 {
		t.Errorf("pix len = %d", len(s.Image().Pix))
	}

	s.Resize(-1, 2)
	if s.Width() != 0 {
		t.Errorf("negative width = %d", s.Width())
	}
}
