package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/cache"
)

// ErrEmptyData is returned when an image source holds no bytes.
var ErrEmptyData = errors.New("raster: empty image data")

// LoadOptions tune a single image load.
type LoadOptions struct {
	// CrossOrigin is the requested CORS mode; it is sent as the request
	// mode hint for http sources and otherwise ignored.
	CrossOrigin string
}

// ImageLoader loads images referenced by scene nodes.
type ImageLoader interface {
	// LoadImage fetches and decodes src. Failures match easel.ErrImageLoad;
	// cancellation of ctx matches easel.ErrAborted and the context error.
	LoadImage(ctx context.Context, src string, opts LoadOptions) (image.Image, error)
}

// FileLoader loads images from files, data: URLs and http(s) URLs, and
// memoizes decoded images by source.
type FileLoader struct {
	// Client performs http requests. Nil means http.DefaultClient.
	Client *http.Client
	// Dir resolves relative file paths. Empty means the working directory.
	Dir string

	memo *cache.LRU[string, image.Image]
}

// DefaultImageCacheSize is the number of decoded images a FileLoader keeps.
const DefaultImageCacheSize = 64

// NewFileLoader creates a loader keeping up to capacity decoded images.
func NewFileLoader(capacity int) *FileLoader {
	if capacity <= 0 {
		capacity = DefaultImageCacheSize
	}
	return &FileLoader{memo: cache.New[string, image.Image](capacity)}
}

// CacheStats returns statistics of the decoded image cache.
func (l *FileLoader) CacheStats() cache.Stats {
	return l.memo.Stats()
}

// LoadImage implements ImageLoader.
func (l *FileLoader) LoadImage(ctx context.Context, src string, opts LoadOptions) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, easel.Aborted(err)
	}
	if img, ok := l.memo.Get(src); ok {
		return img, nil
	}

	data, err := l.fetch(ctx, src, opts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, easel.Aborted(ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %w", easel.ErrImageLoad, shortSource(src), err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", easel.ErrImageLoad, shortSource(src), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, easel.Aborted(err)
	}
	l.memo.Set(src, img)
	return img, nil
}

func (l *FileLoader) fetch(ctx context.Context, src string, opts LoadOptions) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURL(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return l.fetchHTTP(ctx, src, opts)
	}
	p := src
	if u, err := url.Parse(src); err == nil && u.Scheme == "file" {
		p = u.Path
	}
	if !filepath.IsAbs(p) && l.Dir != "" {
		p = filepath.Join(l.Dir, p)
	}
	data, err := os.ReadFile(filepath.Clean(p))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return data, nil
}

func (l *FileLoader) fetchHTTP(ctx context.Context, src string, opts LoadOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	if opts.CrossOrigin != "" {
		req.Header.Set("Sec-Fetch-Mode", "cors")
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// decodeDataURL returns the payload of a data: URL.
func decodeDataURL(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data url")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// shortSource truncates data URLs for error messages.
func shortSource(src string) string {
	if len(src) > 64 {
		return src[:64] + "..."
	}
	return src
}

// Decode decodes an image, auto-detecting the format. PNG, JPEG, GIF, WebP,
// BMP and TIFF are supported.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("raster: decode: %w", err)
	}
	return img, nil
}

// EncodePNG writes the surface pixels as PNG.
func EncodePNG(w io.Writer, s Surface) error {
	if err := png.Encode(w, s.Image()); err != nil {
		return fmt.Errorf("raster: encode PNG: %w", err)
	}
	return nil
}

// DataURL returns the surface pixels as a PNG data: URL.
func DataURL(s Surface) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, s); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
