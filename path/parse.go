package path

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// ErrSyntax reports malformed path data.
var ErrSyntax = errors.New("path: syntax error")

// Parse tokenizes path data into raw segments. Repeated argument groups are
// split into repeated segments, with extra moveto pairs becoming lineto.
// Arc flags may be packed without separators ("a1 1 0 11 5 5").
func Parse(d string) ([]Segment, error) {
	b := []byte(d)
	var (
		segs []Segment
		op   byte
		args []float64
	)
	flush := func(pos int) error {
		if op == 0 {
			return nil
		}
		n := argCount(op)
		if n == 0 {
			if len(args) > 0 {
				return fmt.Errorf("%w: close takes no arguments at offset %d", ErrSyntax, pos)
			}
			segs = append(segs, Segment{Op: op})
			return nil
		}
		if len(args) == 0 || len(args)%n != 0 {
			return fmt.Errorf("%w: %c expects a multiple of %d arguments, got %d at offset %d",
				ErrSyntax, op, n, len(args), pos)
		}
		cur := op
		for i := 0; i < len(args); i += n {
			segs = append(segs, Segment{Op: cur, Args: append([]float64(nil), args[i:i+n]...)})
			switch cur {
			case 'M':
				cur = 'L'
			case 'm':
				cur = 'l'
			}
		}
		return nil
	}

	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			i++
		case argCount(c) >= 0:
			if err := flush(i); err != nil {
				return nil, err
			}
			op, args = c, args[:0]
			i++
		default:
			if op == 0 {
				return nil, fmt.Errorf("%w: data must start with a command, found %q", ErrSyntax, c)
			}
			if isArcFlag(op, len(args)) {
				if c != '0' && c != '1' {
					return nil, fmt.Errorf("%w: invalid arc flag %q at offset %d", ErrSyntax, c, i)
				}
				args = append(args, float64(c-'0'))
				i++
				continue
			}
			v, n := strconv.ParseFloat(b[i:])
			if n == 0 {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, c, i)
			}
			args = append(args, v)
			i += n
		}
	}
	if err := flush(len(b)); err != nil {
		return nil, err
	}
	return segs, nil
}

// isArcFlag reports whether the next argument of op is a large-arc or sweep flag.
func isArcFlag(op byte, argIndex int) bool {
	if op|0x20 != 'a' {
		return false
	}
	k := argIndex % 7
	return k == 3 || k == 4
}

// MustParse is like Parse but panics on malformed data.
func MustParse(d string) []Segment {
	segs, err := Parse(d)
	if err != nil {
		panic(err)
	}
	return segs
}

// ParseCommands parses and normalizes path data in one step.
func ParseCommands(d string) ([]Command, error) {
	segs, err := Parse(d)
	if err != nil {
		return nil, err
	}
	return Simplify(segs), nil
}
