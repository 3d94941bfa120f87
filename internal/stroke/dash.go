package stroke

import (
	"math"

	"github.com/gogpu/easel/path"
)

// Dash defines a dash pattern for stroking.
// A dash pattern consists of alternating dash and gap lengths.
// For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type Dash struct {
	// Array contains alternating dash/gap lengths.
	// If the array has an odd number of elements, it is logically duplicated
	// to create an even-length pattern (e.g., [5] becomes [5, 5]).
	Array []float64

	// Offset is the starting offset into the pattern.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Returns nil if no lengths are provided or all lengths are zero.
func NewDash(lengths ...float64) *Dash {
	allZeroOrNeg := true
	for _, l := range lengths {
		if l > 0 {
			allZeroOrNeg = false
			break
		}
	}
	if allZeroOrNeg {
		return nil
	}

	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}
	return &Dash{Array: normalized}
}

// WithOffset returns a new Dash with the given offset.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: d.Array, Offset: offset}
}

// PatternLength returns the total length of one complete pattern cycle.
// For odd-length arrays, this includes the duplicated pattern.
func (d *Dash) PatternLength() float64 {
	if d == nil {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed returns true if this represents a dashed line (not solid).
func (d *Dash) IsDashed() bool {
	return d.PatternLength() > 0
}

// Scale returns a new Dash with all lengths multiplied by the given factor.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 || factor == 1 {
		return d
	}
	scaled := make([]float64, len(d.Array))
	for i, l := range d.Array {
		scaled[i] = l * factor
	}
	return &Dash{Array: scaled, Offset: d.Offset * factor}
}

// effectiveArray returns the array with odd-length arrays duplicated.
func (d *Dash) effectiveArray() []float64 {
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	result := make([]float64, len(d.Array)*2)
	copy(result, d.Array)
	copy(result[len(d.Array):], d.Array)
	return result
}

// dashState walks a dash pattern.
type dashState struct {
	array     []float64
	index     int
	remaining float64
}

func (d *Dash) start() dashState {
	arr := d.effectiveArray()
	offset := math.Mod(d.Offset, d.PatternLength())
	if offset < 0 {
		offset += d.PatternLength()
	}
	s := dashState{array: arr, remaining: arr[0]}
	for offset > 0 {
		if offset < s.remaining {
			s.remaining -= offset
			break
		}
		offset -= s.remaining
		s.advance()
	}
	return s
}

func (s *dashState) on() bool { return s.index%2 == 0 }

func (s *dashState) advance() {
	s.index = (s.index + 1) % len(s.array)
	s.remaining = s.array[s.index]
}

// Apply splits every subpath of cmds into its dash intervals. The pattern
// restarts at the beginning of each subpath.
func (d *Dash) Apply(cmds []path.Command, tolerance float64) []path.Command {
	if !d.IsDashed() {
		return cmds
	}
	out := path.New()
	for _, pl := range Flatten(cmds, tolerance) {
		pts := pl.Points
		if pl.Closed && len(pts) > 0 {
			pts = append(pts, pts[0])
		}
		state := d.start()
		drawing := false
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := a.Distance(b)
			pos := 0.0
			for segLen-pos > 1e-12 {
				step := math.Min(state.remaining, segLen-pos)
				from := a.Lerp(b, pos/segLen)
				to := a.Lerp(b, (pos+step)/segLen)
				if state.on() {
					if !drawing {
						out.MoveTo(from.X, from.Y)
						drawing = true
					}
					out.LineTo(to.X, to.Y)
				}
				pos += step
				state.remaining -= step
				if state.remaining <= 1e-12 {
					state.advance()
					drawing = false
				}
			}
		}
	}
	return out.Commands()
}
