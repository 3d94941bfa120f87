package scene

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"math"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
)

// Image is a node drawing a raster image, optionally cropped. A node whose
// image is not loaded draws nothing.
type Image struct {
	Object
	element        image.Image
	src            string
	crossOrigin    string
	cropX, cropY   float64
	imageSmoothing bool
}

// NewImage creates an image node. Width and height default to the image
// size when not given in opts.
func NewImage(img image.Image, opts Record) *Image {
	i := &Image{}
	i.init(i, opts)
	_, hasW := opts["width"]
	_, hasH := opts["height"]
	i.setElement(img, !hasW, !hasH)
	return i
}

// LoadImage loads src through loader and creates an image node for it.
// Load failures and cancellation are returned as errors.
func LoadImage(ctx context.Context, loader raster.ImageLoader, src string, opts Record) (*Image, error) {
	o := clone(opts)
	o["src"] = src
	cross, _ := toString(o["crossOrigin"])
	img, err := loader.LoadImage(ctx, src, raster.LoadOptions{CrossOrigin: cross})
	if err != nil {
		return nil, err
	}
	return NewImage(img, o), nil
}

// Type implements Node.
func (i *Image) Type() string { return "Image" }

func (i *Image) defaults() Record {
	d := objectDefaults()
	d["strokeWidth"] = 0.0
	d["src"] = ""
	d["crossOrigin"] = ""
	d["cropX"] = 0.0
	d["cropY"] = 0.0
	d["imageSmoothing"] = true
	return d
}

func (i *Image) extraCacheProperties() []string { return []string{"cropX", "cropY"} }

func (i *Image) setProperty(key string, v any) (bool, error) {
	switch key {
	case "src":
		return true, setString(&i.src, key, v)
	case "crossOrigin":
		return true, setString(&i.crossOrigin, key, v)
	case "cropX":
		return true, setFloat(&i.cropX, key, v)
	case "cropY":
		return true, setFloat(&i.cropY, key, v)
	case "imageSmoothing":
		return true, setBool(&i.imageSmoothing, key, v)
	}
	return false, nil
}

func (i *Image) getProperty(key string) (any, bool) {
	switch key {
	case "src":
		return i.src, true
	case "crossOrigin":
		return i.crossOrigin, true
	case "cropX":
		return i.cropX, true
	case "cropY":
		return i.cropY, true
	case "imageSmoothing":
		return i.imageSmoothing, true
	}
	return nil, false
}

// Element returns the loaded image, or nil.
func (i *Image) Element() image.Image { return i.element }

// Src returns the image source.
func (i *Image) Src() string { return i.src }

// SetElement replaces the image. The node is resized to the image when it
// has no size yet.
func (i *Image) SetElement(img image.Image) {
	i.setElement(img, i.width == 0, i.height == 0)
	i.setDirty(true)
}

func (i *Image) setElement(img image.Image, fitWidth, fitHeight bool) {
	i.element = img
	if img == nil {
		return
	}
	b := img.Bounds()
	if fitWidth {
		i.width = float64(b.Dx())
	}
	if fitHeight {
		i.height = float64(b.Dy())
	}
}

// DrawGeometry implements Node.
func (i *Image) DrawGeometry(d raster.Drawer) {
	d.SetImageSmoothing(i.imageSmoothing)
	if i.paintFirst == PaintStroke {
		i.strokeBorder(d)
		i.drawElement(d)
		return
	}
	i.drawElement(d)
	i.strokeBorder(d)
}

// drawElement draws the cropped image over the node box. The destination is
// cut short where the crop runs past the image.
func (i *Image) drawElement(d raster.Drawer) {
	if i.element == nil {
		return
	}
	b := i.element.Bounds()
	elW, elH := float64(b.Dx()), float64(b.Dy())
	cropX, cropY := math.Max(i.cropX, 0), math.Max(i.cropY, 0)
	sw := math.Min(i.width, elW-cropX)
	sh := math.Min(i.height, elH-cropY)
	if sw <= 0 || sh <= 0 {
		return
	}
	src := image.Rect(
		b.Min.X+int(math.Round(cropX)), b.Min.Y+int(math.Round(cropY)),
		b.Min.X+int(math.Round(cropX+sw)), b.Min.Y+int(math.Round(cropY+sh)),
	)
	d.DrawImage(i.element, src, easel.Rect{Left: -i.width / 2, Top: -i.height / 2, Width: sw, Height: sh})
}

func (i *Image) strokeBorder(d raster.Drawer) {
	if !i.HasStroke() {
		return
	}
	p := path.New()
	p.Rect(-i.width/2, -i.height/2, i.width, i.height)
	i.renderStroke(d, p.Commands())
}

func (i *Image) extendRecord(rec Record, digits int) {
	src := i.src
	if src == "" && i.element != nil {
		src = imageDataURL(i.element)
	}
	rec["src"] = src
	rec["crossOrigin"] = i.crossOrigin
	rec["cropX"] = round(i.cropX, digits)
	rec["cropY"] = round(i.cropY, digits)
}

// imageDataURL encodes img as a PNG data URL, or returns "" on failure.
func imageDataURL(img image.Image) string {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
