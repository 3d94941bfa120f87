package raster

import "math"

// Blend modes follow W3C Compositing and Blending Level 1: the result is
//
//	(1 - Sa)*D + (1 - Da)*S + Sa*Da*B(Cs, Cb)
//
// where Cs and Cb are the unpremultiplied source and backdrop colors.

type channelBlend func(s, d float64) float64

type colorBlend func(s, d [3]float64) [3]float64

func (op CompositeOp) blendFunc() compositeFunc {
	switch op {
	case Multiply:
		return separable(func(s, d float64) float64 { return s * d })
	case Screen:
		return separable(func(s, d float64) float64 { return s + d - s*d })
	case Overlay:
		return separable(func(s, d float64) float64 { return hardLight(d, s) })
	case Darken:
		return separable(math.Min)
	case Lighten:
		return separable(math.Max)
	case ColorDodge:
		return separable(colorDodge)
	case ColorBurn:
		return separable(colorBurn)
	case HardLight:
		return separable(hardLight)
	case SoftLight:
		return separable(softLight)
	case Difference:
		return separable(func(s, d float64) float64 { return math.Abs(s - d) })
	case Exclusion:
		return separable(func(s, d float64) float64 { return s + d - 2*s*d })
	case Hue:
		return nonSeparable(func(s, d [3]float64) [3]float64 {
			return setLum(setSat(s, sat(d)), lum(d))
		})
	case Saturation:
		return nonSeparable(func(s, d [3]float64) [3]float64 {
			return setLum(setSat(d, sat(s)), lum(d))
		})
	case Color:
		return nonSeparable(func(s, d [3]float64) [3]float64 {
			return setLum(s, lum(d))
		})
	case Luminosity:
		return nonSeparable(func(s, d [3]float64) [3]float64 {
			return setLum(d, lum(s))
		})
	}
	return nil
}

func colorDodge(s, d float64) float64 {
	switch {
	case d == 0:
		return 0
	case s >= 1:
		return 1
	}
	return math.Min(1, d/(1-s))
}

func colorBurn(s, d float64) float64 {
	switch {
	case d >= 1:
		return 1
	case s <= 0:
		return 0
	}
	return 1 - math.Min(1, (1-d)/s)
}

func hardLight(s, d float64) float64 {
	if s <= 0.5 {
		return d * 2 * s
	}
	s2 := 2*s - 1
	return d + s2 - d*s2
}

func softLight(s, d float64) float64 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dx float64
	if d <= 0.25 {
		dx = ((16*d-12)*d + 4) * d
	} else {
		dx = math.Sqrt(d)
	}
	return d + (2*s-1)*(dx-d)
}

func separable(b channelBlend) compositeFunc {
	return nonSeparable(func(s, d [3]float64) [3]float64 {
		return [3]float64{b(s[0], d[0]), b(s[1], d[1]), b(s[2], d[2])}
	})
}

func nonSeparable(b colorBlend) compositeFunc {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		if sa == 0 {
			return dr, dg, db, da
		}
		if da == 0 {
			return sr, sg, sb, sa
		}
		as, ad := float64(sa)/255, float64(da)/255
		src := [3]float64{float64(sr) / 255, float64(sg) / 255, float64(sb) / 255}
		dst := [3]float64{float64(dr) / 255, float64(dg) / 255, float64(db) / 255}
		mixed := b(unpremultiply(src, as), unpremultiply(dst, ad))

		var out [3]byte
		for i := range out {
			v := (1-as)*dst[i] + (1-ad)*src[i] + as*ad*mixed[i]
			out[i] = toByte(v)
		}
		return out[0], out[1], out[2], toByte(as + ad - as*ad)
	}
}

func unpremultiply(c [3]float64, a float64) [3]float64 {
	return [3]float64{
		math.Min(1, c[0]/a),
		math.Min(1, c[1]/a),
		math.Min(1, c[2]/a),
	}
}

func toByte(v float64) byte {
	return byte(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func lum(c [3]float64) float64 {
	return 0.3*c[0] + 0.59*c[1] + 0.11*c[2]
}

func sat(c [3]float64) float64 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

func clipColor(c [3]float64) [3]float64 {
	l := lum(c)
	n := min(c[0], c[1], c[2])
	x := max(c[0], c[1], c[2])
	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setLum(c [3]float64, l float64) [3]float64 {
	d := l - lum(c)
	return clipColor([3]float64{c[0] + d, c[1] + d, c[2] + d})
}

// setSat rescales c so that max-min equals s, keeping the channel order.
func setSat(c [3]float64, s float64) [3]float64 {
	lo, mid, hi := 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	var out [3]float64
	if c[hi] > c[lo] {
		out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		out[hi] = s
	}
	return out
}
