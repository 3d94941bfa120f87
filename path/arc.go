package path

import (
	"math"

	"github.com/gogpu/easel"
)

// ArcToCubics converts an SVG elliptical arc from 'from' to 'to' into cubic
// Beziers using the endpoint-to-center parameterization. rotation is in
// degrees. One segment is emitted per started quarter turn of the sweep.
// A zero radius degrades to a line; coincident endpoints emit nothing.
func ArcToCubics(from easel.Point, rx, ry, rotation float64, largeArc, sweep bool, to easel.Point) []Command {
	if from.Eq(to) {
		return nil
	}
	if rx == 0 || ry == 0 {
		return []Command{LineTo{Point: to}}
	}
	segs := arcToSegments(to.X-from.X, to.Y-from.Y, rx, ry, largeArc, sweep, rotation)
	out := make([]Command, len(segs))
	for i, s := range segs {
		out[i] = CubicTo{
			Control1: s.Control1.Add(from),
			Control2: s.Control2.Add(from),
			Point:    s.Point.Add(from),
		}
	}
	if n := len(out); n > 0 {
		last := out[n-1].(CubicTo)
		last.Point = to
		out[n-1] = last
	}
	return out
}

// arcToSegments works relative to a start point at the origin.
func arcToSegments(toX, toY, rx, ry float64, large, sweep bool, rotateX float64) []CubicTo {
	rx, ry = math.Abs(rx), math.Abs(ry)
	th := easel.DegreesToRadians(rotateX)
	sinTh, cosTh := math.Sincos(th)
	px := -cosTh*toX*0.5 - sinTh*toY*0.5
	py := -cosTh*toY*0.5 + sinTh*toX*0.5
	rx2, ry2, px2, py2 := rx*rx, ry*ry, px*px, py*py
	pl := rx2*ry2 - rx2*py2 - ry2*px2

	root := 0.0
	if pl < 0 {
		// Radii too small to reach the endpoint: scale them up uniformly.
		s := math.Sqrt(1 - pl/(rx2*ry2))
		rx *= s
		ry *= s
	} else {
		root = math.Sqrt(pl / (rx2*py2 + ry2*px2))
		if large == sweep {
			root = -root
		}
	}

	cx := root * rx * py / ry
	cy := -root * ry * px / rx
	cx1 := cosTh*cx - sinTh*cy + toX*0.5
	cy1 := sinTh*cx + cosTh*cy + toY*0.5

	theta := vectorAngle(1, 0, (px-cx)/rx, (py-cy)/ry)
	dtheta := vectorAngle((px-cx)/rx, (py-cy)/ry, (-px-cx)/rx, (-py-cy)/ry)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(dtheta / math.Pi * 2)))
	if n == 0 {
		return nil
	}
	delta := dtheta / float64(n)
	t := 8.0 / 3.0 * math.Sin(delta/4) * math.Sin(delta/4) / math.Sin(delta/2)

	out := make([]CubicTo, n)
	var from easel.Point
	th3 := theta + delta
	for i := range out {
		out[i] = segmentToBezier(theta, th3, cosTh, sinTh, rx, ry, cx1, cy1, t, from)
		from = out[i].Point
		theta = th3
		th3 += delta
	}
	return out
}

func segmentToBezier(th2, th3, cosTh, sinTh, rx, ry, cx1, cy1, t float64, from easel.Point) CubicTo {
	sin2, cos2 := math.Sincos(th2)
	sin3, cos3 := math.Sincos(th3)
	to := easel.Pt(
		cosTh*rx*cos3-sinTh*ry*sin3+cx1,
		sinTh*rx*cos3+cosTh*ry*sin3+cy1,
	)
	return CubicTo{
		Control1: easel.Pt(
			from.X+t*(-cosTh*rx*sin2-sinTh*ry*cos2),
			from.Y+t*(-sinTh*rx*sin2+cosTh*ry*cos2),
		),
		Control2: easel.Pt(
			to.X+t*(cosTh*rx*sin3+sinTh*ry*cos3),
			to.Y+t*(sinTh*rx*sin3-cosTh*ry*cos3),
		),
		Point: to,
	}
}

// vectorAngle returns the angle from u to v in [0, 2*pi).
func vectorAngle(ux, uy, vx, vy float64) float64 {
	ta := math.Atan2(uy, ux)
	tb := math.Atan2(vy, vx)
	if tb >= ta {
		return tb - ta
	}
	return 2*math.Pi - (ta - tb)
}
