package path

import (
	"math"

	"github.com/gogpu/easel"
)

// lengthSteps is the number of chords used to measure a curve.
const lengthSteps = 100

// SegmentInfo describes one command of a normalized path for arc-length
// sampling.
type SegmentInfo struct {
	Command Command
	// Start is the point the command begins at.
	Start easel.Point
	// End is the point the command ends at; for Close, the subpath start.
	End    easel.Point
	Length float64
}

// at returns the position of the segment at parameter t.
func (s SegmentInfo) at(t float64) easel.Point {
	switch c := s.Command.(type) {
	case QuadTo:
		return QuadPoint(s.Start, c.Control, c.Point, t)
	case CubicTo:
		return CubicPoint(s.Start, c.Control1, c.Control2, c.Point, t)
	}
	return s.Start.Lerp(s.End, t)
}

// angleAt returns the tangent direction in radians at parameter t.
func (s SegmentInfo) angleAt(t float64) float64 {
	var d easel.Point
	switch c := s.Command.(type) {
	case QuadTo:
		mt := 1 - t
		d = c.Control.Sub(s.Start).Mul(2 * mt).Add(c.Point.Sub(c.Control).Mul(2 * t))
	case CubicTo:
		mt := 1 - t
		d = c.Control1.Sub(s.Start).Mul(3 * mt * mt).
			Add(c.Control2.Sub(c.Control1).Mul(6 * mt * t)).
			Add(c.Point.Sub(c.Control2).Mul(3 * t * t))
	default:
		d = s.End.Sub(s.Start)
	}
	return d.Angle()
}

// SegmentsInfo measures every command of cmds. The second result is the
// total length.
func SegmentsInfo(cmds []Command) ([]SegmentInfo, float64) {
	infos := make([]SegmentInfo, 0, len(cmds))
	var cur, start easel.Point
	total := 0.0
	for _, c := range cmds {
		info := SegmentInfo{Command: c, Start: cur}
		switch c := c.(type) {
		case MoveTo:
			cur, start = c.Point, c.Point
			info.Start, info.End = c.Point, c.Point
		case LineTo:
			info.End = c.Point
			info.Length = cur.Distance(c.Point)
			cur = c.Point
		case QuadTo, CubicTo:
			info.End, _ = EndPoint(c)
			info.Length = curveLength(info)
			cur = info.End
		case Close:
			info.End = start
			info.Length = cur.Distance(start)
			cur = start
		}
		total += info.Length
		infos = append(infos, info)
	}
	return infos, total
}

func curveLength(s SegmentInfo) float64 {
	prev := s.Start
	length := 0.0
	for i := 1; i <= lengthSteps; i++ {
		p := s.at(float64(i) / lengthSteps)
		length += prev.Distance(p)
		prev = p
	}
	return length
}

// Length returns the total length of cmds.
func Length(cmds []Command) float64 {
	_, total := SegmentsInfo(cmds)
	return total
}

// PointAt returns the position and tangent angle (radians) at distance along
// cmds. Distances past the end land on the last segment.
func PointAt(cmds []Command, distance float64) (easel.Point, float64) {
	infos, _ := SegmentsInfo(cmds)
	return PointAtInfo(infos, distance)
}

// PointAtInfo is PointAt over precomputed segment info.
func PointAtInfo(infos []SegmentInfo, distance float64) (easel.Point, float64) {
	if len(infos) == 0 {
		return easel.Point{}, 0
	}
	i := 0
	for distance-infos[i].Length > 0 && i < len(infos)-1 {
		distance -= infos[i].Length
		i++
	}
	s := infos[i]
	switch s.Command.(type) {
	case MoveTo:
		return s.Start, 0
	case QuadTo, CubicTo:
		return findPercentageForDistance(s, distance)
	}
	t := 0.0
	if s.Length > 0 {
		t = math.Min(1, distance/s.Length)
	}
	return s.Start.Lerp(s.End, t), s.angleAt(t)
}

// findPercentageForDistance walks the curve in steps of 1%, halving the
// step whenever it overshoots, until the step drops below 0.0001.
func findPercentageForDistance(s SegmentInfo, distance float64) (easel.Point, float64) {
	var (
		perc, lastPerc float64
		walked         float64
		step           = 0.01
		prev           = s.Start
		p              = s.Start
	)
	for walked < distance && step > 0.0001 {
		p = s.at(perc)
		lastPerc = perc
		next := prev.Distance(p)
		if walked+next > distance {
			perc -= step
			step /= 2
		} else {
			prev = p
			perc += step
			walked += next
		}
	}
	return p, s.angleAt(lastPerc)
}
