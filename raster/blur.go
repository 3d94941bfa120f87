package raster

import "math"

// boxSizes returns the widths of n box filters whose successive application
// approximates a gaussian with the given sigma.
func boxSizes(sigma float64, n int) []int {
	wIdeal := math.Sqrt(12*sigma*sigma/float64(n) + 1)
	wl := int(math.Floor(wIdeal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2
	mIdeal := (12*sigma*sigma - float64(n*wl*wl) - float64(4*n*wl) - float64(3*n)) / float64(-4*wl-4)
	m := int(math.Round(mIdeal))

	sizes := make([]int, n)
	for i := range sizes {
		if i < m {
			sizes[i] = wl
		} else {
			sizes[i] = wu
		}
	}
	return sizes
}

// blurAlpha blurs a w*h alpha plane in place with three box passes per axis.
// Pixels beyond the plane are treated as transparent.
func blurAlpha(plane []float32, w, h int, sigma float64) {
	if sigma <= 0 || w == 0 || h == 0 {
		return
	}
	tmp := make([]float32, len(plane))
	for _, size := range boxSizes(sigma, 3) {
		r := (size - 1) / 2
		if r <= 0 {
			continue
		}
		boxHorizontal(plane, tmp, w, h, r)
		boxVertical(tmp, plane, w, h, r)
	}
}

func boxHorizontal(src, dst []float32, w, h, r int) {
	inv := 1 / float32(2*r+1)
	for y := range h {
		row := src[y*w : (y+1)*w]
		var acc float32
		for x := 0; x <= r && x < w; x++ {
			acc += row[x]
		}
		for x := range w {
			dst[y*w+x] = acc * inv
			if x+r+1 < w {
				acc += row[x+r+1]
			}
			if x-r >= 0 {
				acc -= row[x-r]
			}
		}
	}
}

func boxVertical(src, dst []float32, w, h, r int) {
	inv := 1 / float32(2*r+1)
	for x := range w {
		var acc float32
		for y := 0; y <= r && y < h; y++ {
			acc += src[y*w+x]
		}
		for y := range h {
			dst[y*w+x] = acc * inv
			if y+r+1 < h {
				acc += src[(y+r+1)*w+x]
			}
			if y-r >= 0 {
				acc -= src[(y-r)*w+x]
			}
		}
	}
}
