package raster

import (
	"math"
	"testing"
)

func TestBoxSizes(t *testing.T) {
	for _, sigma := range []float64{1, 2.5, 4, 10} {
		sizes := boxSizes(sigma, 3)
		var variance float64
		for _, w := range sizes {
			if w%2 == 0 {
				t.Errorf("sigma %v: even box %d", sigma, w)
			}
			variance += float64(w*w-1) / 12
		}
		if got := math.Sqrt(variance); math.Abs(got-sigma) > 0.6 {
			t.Errorf("sigma %v: boxes %v approximate %v", sigma, sizes, got)
		}
	}
}

func TestBlurAlphaPreservesMass(t *testing.T) {
	const w, h = 41, 41
	plane := make([]float32, w*h)
	plane[20*w+20] = 1
	blurAlpha(plane, w, h, 3)

	var sum float32
	for _, v := range plane {
		sum += v
	}
	if math.Abs(float64(sum)-1) > 1e-3 {
		t.Errorf("mass = %v, want 1", sum)
	}
	if plane[20*w+20] >= 1 || plane[20*w+25] == 0 {
		t.Errorf("impulse not spread: center %v, off-center %v", plane[20*w+20], plane[20*w+25])
	}
}
