package scene

import (
	"fmt"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/path"
	"github.com/gogpu/easel/raster"
)

// Path is a node drawing normalized path commands. The commands keep their
// absolute coordinates; PathOffset, the center of their bounding box, is
// the node's origin.
type Path struct {
	Object
	commands   []path.Command
	pathOffset easel.Point
}

// NewPath creates a path node from cmds, or from the "path" option when
// cmds is nil. Without explicit left and top the node is positioned where
// the commands lie.
func NewPath(cmds []path.Command, opts Record) *Path {
	p := &Path{}
	p.init(p, opts)
	if cmds != nil {
		p.setCommands(cmds)
	}
	_, hasLeft := opts["left"]
	_, hasTop := opts["top"]
	if !hasLeft && !hasTop {
		p.SetPositionByOrigin(p.pathOffset, OriginCenter, OriginCenter)
	}
	return p
}

// Type implements Node.
func (p *Path) Type() string { return "Path" }

func (p *Path) defaults() Record {
	d := objectDefaults()
	d["path"] = nil
	return d
}

func (p *Path) extraCacheProperties() []string { return []string{"path"} }

func (p *Path) setProperty(key string, v any) (bool, error) {
	if key != "path" {
		return false, nil
	}
	cmds, err := commandsFromValue(v)
	if err != nil {
		return true, err
	}
	p.setCommands(cmds)
	return true, nil
}

func (p *Path) getProperty(key string) (any, bool) {
	if key == "path" {
		return p.commands, true
	}
	return nil, false
}

// setCommands stores cmds and recomputes the size and path offset.
func (p *Path) setCommands(cmds []path.Command) {
	p.commands = cmds
	if len(cmds) == 0 {
		p.width, p.height = 0, 0
		p.pathOffset = easel.Point{}
		return
	}
	var memo *path.BoundsCache
	if env := p.env(); env.Config.CachesBoundsOfCurve {
		memo = env.BoundsCache
	}
	b := path.Bounds(cmds, memo)
	p.width, p.height = b.Width, b.Height
	p.pathOffset = b.Center()
}

// Commands returns the absolute path commands.
func (p *Path) Commands() []path.Command { return p.commands }

// PathOffset returns the center of the commands' bounding box.
func (p *Path) PathOffset() easel.Point { return p.pathOffset }

// PathData returns the commands as path data with the configured precision.
func (p *Path) PathData() string {
	return path.Join(p.commands, p.config().NumFractionDigits)
}

// Outline implements Outliner.
func (p *Path) Outline() []path.Command {
	return path.Translate(p.commands, -p.pathOffset.X, -p.pathOffset.Y)
}

// DrawGeometry implements Node.
func (p *Path) DrawGeometry(d raster.Drawer) {
	p.renderPaintInOrder(d, p.Outline())
}

func (p *Path) extendRecord(rec Record, digits int) {
	rec["path"] = segmentsToAny(path.Segments(p.commands), digits)
}

func segmentsToAny(segs []path.Segment, digits int) []any {
	out := make([]any, len(segs))
	for i, s := range segs {
		e := make([]any, 0, len(s.Args)+1)
		e = append(e, string(s.Op))
		for _, a := range s.Args {
			e = append(e, round(a, digits))
		}
		out[i] = e
	}
	return out
}

// commandsFromValue accepts path data, commands, or the serialized list of
// [op, args...] arrays.
func commandsFromValue(v any) ([]path.Command, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case string:
		return path.ParseCommands(c)
	case []path.Command:
		return c, nil
	case []path.Segment:
		return path.Simplify(c), nil
	case []any:
		segs := make([]path.Segment, 0, len(c))
		for _, e := range c {
			arr, ok := e.([]any)
			if !ok || len(arr) == 0 {
				return nil, fmt.Errorf("%w: path entry %#v", ErrInvalidValue, e)
			}
			op, ok := arr[0].(string)
			if !ok || len(op) != 1 {
				return nil, fmt.Errorf("%w: path op %#v", ErrInvalidValue, arr[0])
			}
			args, ok := toFloats(arr[1:])
			if !ok {
				return nil, fmt.Errorf("%w: path args %#v", ErrInvalidValue, arr[1:])
			}
			segs = append(segs, path.Segment{Op: op[0], Args: args})
		}
		return path.Simplify(segs), nil
	}
	return nil, errInvalid("path", v)
}
