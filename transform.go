package easel

import "math"

// MinScaleEpsilon replaces an exact zero scale so composed matrices stay
// invertible.
const MinScaleEpsilon = 0.0001

// TransformOptions describes a transform as separate components.
// Angles are in degrees.
type TransformOptions struct {
	Angle      float64
	ScaleX     float64
	ScaleY     float64
	SkewX      float64
	SkewY      float64
	FlipX      bool
	FlipY      bool
	TranslateX float64
	TranslateY float64
}

// DefaultTransformOptions returns options describing the identity.
func DefaultTransformOptions() TransformOptions {
	return TransformOptions{ScaleX: 1, ScaleY: 1}
}

// DimensionsMatrix returns the scale, flip and skew part of o, without
// rotation or translation. Flips are expressed as negative scales.
func DimensionsMatrix(o TransformOptions) Matrix {
	sx, sy := o.ScaleX, o.ScaleY
	if o.FlipX {
		sx = -sx
	}
	if o.FlipY {
		sy = -sy
	}
	m := Scale(sx, sy)
	if o.SkewX != 0 {
		m = m.Multiply(SkewX(o.SkewX))
	}
	if o.SkewY != 0 {
		m = m.Multiply(SkewY(o.SkewY))
	}
	return m
}

// ComposeMatrix builds T * R * S * SkewX * SkewY from o.
func ComposeMatrix(o TransformOptions) Matrix {
	m := Identity()
	if o.TranslateX != 0 || o.TranslateY != 0 {
		m = Translate(o.TranslateX, o.TranslateY)
	}
	if o.Angle != 0 {
		m = m.Multiply(Rotate(DegreesToRadians(o.Angle)))
	}
	dims := DimensionsMatrix(o)
	if !dims.IsIdentity() {
		m = m.Multiply(dims)
	}
	return m
}

// QRDecompose splits m into translation, rotation, scale and a horizontal
// skew. SkewY is always zero and flips are folded into the scales.
// ComposeMatrix(QRDecompose(m)) reproduces m.
func QRDecompose(m Matrix) TransformOptions {
	a, b, c, d := m.A, m.D, m.B, m.E
	denom := a*a + b*b
	scaleX := math.Sqrt(denom)
	var scaleY, skewX float64
	if scaleX != 0 {
		scaleY = (a*d - c*b) / scaleX
		skewX = math.Atan2(a*c+b*d, denom)
	}
	return TransformOptions{
		Angle:      RadiansToDegrees(math.Atan2(b, a)),
		ScaleX:     scaleX,
		ScaleY:     scaleY,
		SkewX:      RadiansToDegrees(skewX),
		TranslateX: m.C,
		TranslateY: m.F,
	}
}

// ConstrainScale keeps a scale away from zero. Exact zero becomes
// MinScaleEpsilon; magnitudes below minLimit are raised to minLimit
// keeping the sign.
func ConstrainScale(v, minLimit float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MinScaleEpsilon
	}
	if math.Abs(v) < minLimit {
		if v < 0 {
			return -minLimit
		}
		return minLimit
	}
	if v == 0 {
		return MinScaleEpsilon
	}
	return v
}

// SizeAfterTransform returns the size of the axis-aligned box holding a
// width x height rectangle centered on the origin after applying the
// linear part of m.
func SizeAfterTransform(width, height float64, m Matrix) Point {
	dx, dy := width/2, height/2
	lin := m.Linear()
	box := BoundingBox(
		lin.TransformPoint(Pt(-dx, -dy)),
		lin.TransformPoint(Pt(dx, -dy)),
		lin.TransformPoint(Pt(-dx, dy)),
		lin.TransformPoint(Pt(dx, dy)),
	)
	return Pt(box.Width, box.Height)
}
