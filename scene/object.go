package scene

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/raster"
)

var (
	// ErrUnknownProperty is returned by Set for a key the node does not have.
	ErrUnknownProperty = errors.New("scene: unknown property")

	// ErrInvalidValue is returned by Set for a value of the wrong kind.
	ErrInvalidValue = errors.New("scene: invalid property value")
)

// Node is a drawable scene node. Every node type embeds an Object.
type Node interface {
	// Base returns the shared object state.
	Base() *Object
	// Type returns the serialized type name, such as "Rect".
	Type() string
	// DrawGeometry draws the node in its own plane, centered on the origin,
	// using the node's paints.
	DrawGeometry(d raster.Drawer)
	// Render draws the node with its transform, opacity, shadow and cache.
	Render(d raster.Drawer)
}

// Container is a node that owns an ordered list of children.
type Container interface {
	Node
	Children() []Node
	Add(nodes ...Node) []Node
	Remove(nodes ...Node) []Node
	Contains(n Node, deep bool) bool
}

// Optional per-type behavior, implemented by node types.
type (
	propertySetter interface {
		setProperty(key string, v any) (handled bool, err error)
	}
	propertyGetter interface {
		getProperty(key string) (any, bool)
	}
	cachePropertyLister interface {
		extraCacheProperties() []string
	}
	defaultsProvider interface {
		defaults() Record
	}
)

// Paint order values.
const (
	PaintFill   = "fill"
	PaintStroke = "stroke"
)

// Object is the state shared by all nodes: transform, paint, cache and
// listeners. It is embedded by value in every node type and is not used on
// its own.
type Object struct {
	self  Node
	id    string
	group *Group
	host  Host
	// clipOwner is the node this object clips, when it is a clip path.
	clipOwner *Object

	left, top, width, height float64
	scaleX, scaleY           float64
	skewX, skewY             float64
	angle                    float64
	flipX, flipY             bool
	originX, originY         string

	opacity                  float64
	visible                  bool
	fill, stroke             Paint
	strokeWidth              float64
	strokeDashArray          []float64
	strokeDashOffset         float64
	strokeLineCap            string
	strokeLineJoin           string
	strokeMiterLimit         float64
	strokeUniform            bool
	paintFirst               string
	fillRule                 string
	globalCompositeOperation string
	backgroundColor          string
	shadow                   *Shadow

	clipPath           Node
	inverted           bool
	absolutePositioned bool

	objectCaching        bool
	selectable           bool
	evented              bool
	hoverCursor          string
	excludeFromExport    bool
	includeDefaultValues bool

	dirty         bool
	ownCaching    bool
	transformDone bool
	cache         cacheState

	Emitter
}

// objectDefaults are the property defaults shared by all node types.
func objectDefaults() Record {
	return Record{
		"originX":                  "left",
		"originY":                  "top",
		"left":                     0.0,
		"top":                      0.0,
		"width":                    0.0,
		"height":                   0.0,
		"scaleX":                   1.0,
		"scaleY":                   1.0,
		"skewX":                    0.0,
		"skewY":                    0.0,
		"angle":                    0.0,
		"flipX":                    false,
		"flipY":                    false,
		"opacity":                  1.0,
		"visible":                  true,
		"fill":                     "rgb(0,0,0)",
		"stroke":                   nil,
		"strokeWidth":              1.0,
		"strokeDashArray":          nil,
		"strokeDashOffset":         0.0,
		"strokeLineCap":            "butt",
		"strokeLineJoin":           "miter",
		"strokeMiterLimit":         4.0,
		"strokeUniform":            false,
		"paintFirst":               PaintFill,
		"fillRule":                 "nonzero",
		"globalCompositeOperation": "source-over",
		"backgroundColor":          "",
		"shadow":                   nil,
		"objectCaching":            true,
		"selectable":               true,
		"evented":                  true,
		"hoverCursor":              "",
		"excludeFromExport":        false,
		"includeDefaultValues":     false,
	}
}

// cacheProperties invalidate the node's own cache when they change.
var cacheProperties = []string{
	"fill", "stroke", "strokeWidth", "strokeDashArray", "width", "height",
	"paintFirst", "strokeUniform", "strokeLineCap", "strokeDashOffset",
	"strokeLineJoin", "strokeMiterLimit", "backgroundColor", "clipPath",
	"fillRule",
}

// stateProperties mark the parent group dirty when they change.
var stateProperties = map[string]bool{
	"top": true, "left": true, "width": true, "height": true,
	"scaleX": true, "scaleY": true, "flipX": true, "flipY": true,
	"originX": true, "originY": true, "angle": true, "opacity": true,
	"globalCompositeOperation": true, "shadow": true, "visible": true,
	"skewX": true, "skewY": true,
}

// init applies defaults overlaid with opts. Invalid options are logged and
// skipped.
func (o *Object) init(self Node, opts Record) {
	o.self = self
	o.id = easel.NewID(easel.PrefixObject)
	defaults := o.defaults()
	for k, v := range defaults {
		if _, ok := opts[k]; ok {
			continue
		}
		if err := o.assign(k, v); err != nil {
			panic(fmt.Sprintf("scene: bad default for %s.%s: %v", self.Type(), k, err))
		}
	}
	o.SetOptions(opts)
	o.dirty = true
}

// SetOptions sets every property in opts without change propagation
// ordering guarantees. Keys naming serialization metadata are ignored and
// invalid entries are logged and skipped.
func (o *Object) SetOptions(opts Record) {
	for k, v := range opts {
		switch k {
		case "type", "version", "objects":
			continue
		case "clipPath":
			if _, ok := v.(map[string]any); ok {
				// Records are enlivened by FromObject.
				continue
			}
		}
		if err := o.Set(k, v); err != nil {
			easel.Logger().Warn("scene: ignoring option", "type", o.self.Type(), "key", k, "err", err)
		}
	}
}

func (o *Object) defaults() Record {
	if d, ok := o.self.(defaultsProvider); ok {
		return d.defaults()
	}
	return objectDefaults()
}

// Base implements Node.
func (o *Object) Base() *Object { return o }

// Self returns the node embedding o.
func (o *Object) Self() Node { return o.self }

// ID returns the node id, an "obj_" type id unless set explicitly.
func (o *Object) ID() string { return o.id }

// Group returns the parent group, or nil.
func (o *Object) Group() *Group { return o.group }

// SetHost attaches a top-level node to a driver. Drivers call it on
// insertion and pass nil on removal.
func (o *Object) SetHost(h Host) { o.host = h }

// Host returns the driver the node renders for, looking through parent
// groups and clip-path owners.
func (o *Object) Host() Host {
	for cur := o; cur != nil; {
		if cur.host != nil {
			return cur.host
		}
		switch {
		case cur.group != nil:
			cur = &cur.group.Object
		case cur.clipOwner != nil:
			cur = cur.clipOwner
		default:
			return nil
		}
	}
	return nil
}

// Set assigns a property through the single mutation chokepoint. A changed
// cache property marks the node dirty; dirty nodes and changed state
// properties mark the parent group dirty.
func (o *Object) Set(key string, value any) error {
	if key == "dirty" {
		d, ok := toBool(value)
		if !ok {
			return errInvalid(key, value)
		}
		o.setDirty(d)
		return nil
	}
	before, _ := o.Get(key)
	if err := o.assign(key, value); err != nil {
		return err
	}
	after, _ := o.Get(key)
	if changed(before, after) {
		o.afterChange(key)
	}
	return nil
}

func changed(a, b any) bool {
	switch a.(type) {
	case Node, *Gradient, *Pattern, *Shadow:
		return a != b
	}
	switch b.(type) {
	case Node, *Gradient, *Pattern, *Shadow:
		return a != b
	}
	return !sameValue(a, b)
}

func (o *Object) afterChange(key string) {
	switch {
	case o.isCacheProperty(key):
		o.dirty = true
		if o.group != nil {
			o.group.setDirty(true)
		}
	case o.group != nil && stateProperties[key]:
		o.group.setDirty(true)
	}
}

// setDirty sets the dirty flag. Marking a node dirty marks its parent dirty;
// clearing it never touches the parent.
func (o *Object) setDirty(d bool) {
	o.dirty = d
	if d && o.group != nil {
		o.group.setDirty(true)
	}
}

func (o *Object) isCacheProperty(key string) bool {
	for _, k := range cacheProperties {
		if k == key {
			return true
		}
	}
	if l, ok := o.self.(cachePropertyLister); ok {
		for _, k := range l.extraCacheProperties() {
			if k == key {
				return true
			}
		}
	}
	return false
}

func (o *Object) assign(key string, v any) error {
	if s, ok := o.self.(propertySetter); ok {
		if handled, err := s.setProperty(key, v); handled {
			return err
		}
	}
	return o.setBase(key, v)
}

func setFloat(dst *float64, key string, v any) error {
	f, ok := toFloat(v)
	if !ok {
		return errInvalid(key, v)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, key string, v any) error {
	b, ok := toBool(v)
	if !ok {
		return errInvalid(key, v)
	}
	*dst = b
	return nil
}

func setString(dst *string, key string, v any) error {
	s, ok := toString(v)
	if !ok {
		return errInvalid(key, v)
	}
	*dst = s
	return nil
}

func setOrigin(dst *string, key string, v any) error {
	if f, ok := toFloat(v); ok {
		*dst = strconv.FormatFloat(f, 'f', -1, 64)
		return nil
	}
	return setString(dst, key, v)
}

func (o *Object) setBase(key string, v any) error {
	switch key {
	case "id":
		return setString(&o.id, key, v)
	case "left":
		return setFloat(&o.left, key, v)
	case "top":
		return setFloat(&o.top, key, v)
	case "width":
		return setFloat(&o.width, key, v)
	case "height":
		return setFloat(&o.height, key, v)
	case "scaleX", "scaleY":
		f, ok := toFloat(v)
		if !ok {
			return errInvalid(key, v)
		}
		f = easel.ConstrainScale(f, 0)
		if key == "scaleX" {
			o.scaleX = f
		} else {
			o.scaleY = f
		}
		return nil
	case "skewX":
		return setFloat(&o.skewX, key, v)
	case "skewY":
		return setFloat(&o.skewY, key, v)
	case "angle":
		return setFloat(&o.angle, key, v)
	case "flipX":
		return setBool(&o.flipX, key, v)
	case "flipY":
		return setBool(&o.flipY, key, v)
	case "originX":
		return setOrigin(&o.originX, key, v)
	case "originY":
		return setOrigin(&o.originY, key, v)
	case "opacity":
		return setFloat(&o.opacity, key, v)
	case "visible":
		return setBool(&o.visible, key, v)
	case "fill", "stroke":
		p, err := paintFromValue(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == "fill" {
			o.fill = p
		} else {
			o.stroke = p
		}
		return nil
	case "strokeWidth":
		return setFloat(&o.strokeWidth, key, v)
	case "strokeDashArray":
		f, ok := toFloats(v)
		if !ok {
			return errInvalid(key, v)
		}
		o.strokeDashArray = f
		return nil
	case "strokeDashOffset":
		return setFloat(&o.strokeDashOffset, key, v)
	case "strokeLineCap":
		return setString(&o.strokeLineCap, key, v)
	case "strokeLineJoin":
		return setString(&o.strokeLineJoin, key, v)
	case "strokeMiterLimit":
		return setFloat(&o.strokeMiterLimit, key, v)
	case "strokeUniform":
		return setBool(&o.strokeUniform, key, v)
	case "paintFirst":
		return setString(&o.paintFirst, key, v)
	case "fillRule":
		return setString(&o.fillRule, key, v)
	case "globalCompositeOperation":
		s, ok := toString(v)
		if !ok {
			return errInvalid(key, v)
		}
		if _, ok := raster.ParseCompositeOp(s); !ok {
			return errInvalid(key, v)
		}
		o.globalCompositeOperation = s
		return nil
	case "backgroundColor":
		return setString(&o.backgroundColor, key, v)
	case "shadow":
		s, err := shadowFromValue(v)
		if err != nil {
			return err
		}
		o.shadow = s
		return nil
	case "clipPath":
		return o.setClipPath(v)
	case "inverted":
		return setBool(&o.inverted, key, v)
	case "absolutePositioned":
		return setBool(&o.absolutePositioned, key, v)
	case "objectCaching":
		return setBool(&o.objectCaching, key, v)
	case "selectable":
		return setBool(&o.selectable, key, v)
	case "evented":
		return setBool(&o.evented, key, v)
	case "hoverCursor":
		return setString(&o.hoverCursor, key, v)
	case "excludeFromExport":
		return setBool(&o.excludeFromExport, key, v)
	case "includeDefaultValues":
		return setBool(&o.includeDefaultValues, key, v)
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, o.self.Type(), key)
}

func (o *Object) setClipPath(v any) error {
	var clip Node
	switch c := v.(type) {
	case nil:
	case Node:
		clip = c
	default:
		return errInvalid("clipPath", v)
	}
	if clip != nil && clip.Base() == o {
		return errInvalid("clipPath", v)
	}
	if o.clipPath != nil && o.clipPath != clip {
		o.clipPath.Base().clipOwner = nil
	}
	o.clipPath = clip
	if clip != nil {
		clip.Base().clipOwner = o
	}
	return nil
}

// Get returns a property value. Paints are returned as Paint values and the
// clip path as a Node.
func (o *Object) Get(key string) (any, bool) {
	if g, ok := o.self.(propertyGetter); ok {
		if v, ok := g.getProperty(key); ok {
			return v, true
		}
	}
	switch key {
	case "id":
		return o.id, true
	case "left":
		return o.left, true
	case "top":
		return o.top, true
	case "width":
		return o.width, true
	case "height":
		return o.height, true
	case "scaleX":
		return o.scaleX, true
	case "scaleY":
		return o.scaleY, true
	case "skewX":
		return o.skewX, true
	case "skewY":
		return o.skewY, true
	case "angle":
		return o.angle, true
	case "flipX":
		return o.flipX, true
	case "flipY":
		return o.flipY, true
	case "originX":
		return o.originX, true
	case "originY":
		return o.originY, true
	case "opacity":
		return o.opacity, true
	case "visible":
		return o.visible, true
	case "fill":
		return o.fill, true
	case "stroke":
		return o.stroke, true
	case "strokeWidth":
		return o.strokeWidth, true
	case "strokeDashArray":
		return o.strokeDashArray, true
	case "strokeDashOffset":
		return o.strokeDashOffset, true
	case "strokeLineCap":
		return o.strokeLineCap, true
	case "strokeLineJoin":
		return o.strokeLineJoin, true
	case "strokeMiterLimit":
		return o.strokeMiterLimit, true
	case "strokeUniform":
		return o.strokeUniform, true
	case "paintFirst":
		return o.paintFirst, true
	case "fillRule":
		return o.fillRule, true
	case "globalCompositeOperation":
		return o.globalCompositeOperation, true
	case "backgroundColor":
		return o.backgroundColor, true
	case "shadow":
		return o.shadow, true
	case "clipPath":
		return o.clipPath, true
	case "inverted":
		return o.inverted, true
	case "absolutePositioned":
		return o.absolutePositioned, true
	case "objectCaching":
		return o.objectCaching, true
	case "selectable":
		return o.selectable, true
	case "evented":
		return o.evented, true
	case "hoverCursor":
		return o.hoverCursor, true
	case "excludeFromExport":
		return o.excludeFromExport, true
	case "includeDefaultValues":
		return o.includeDefaultValues, true
	case "dirty":
		return o.dirty, true
	}
	return nil, false
}

// Accessors for the common properties.

func (o *Object) Left() float64         { return o.left }
func (o *Object) Top() float64          { return o.top }
func (o *Object) Width() float64        { return o.width }
func (o *Object) Height() float64       { return o.height }
func (o *Object) ScaleX() float64       { return o.scaleX }
func (o *Object) ScaleY() float64       { return o.scaleY }
func (o *Object) SkewX() float64        { return o.skewX }
func (o *Object) SkewY() float64        { return o.skewY }
func (o *Object) Angle() float64        { return o.angle }
func (o *Object) FlipX() bool           { return o.flipX }
func (o *Object) FlipY() bool           { return o.flipY }
func (o *Object) OriginX() string       { return o.originX }
func (o *Object) OriginY() string       { return o.originY }
func (o *Object) Opacity() float64      { return o.opacity }
func (o *Object) Visible() bool         { return o.visible }
func (o *Object) Fill() Paint           { return o.fill }
func (o *Object) Stroke() Paint         { return o.stroke }
func (o *Object) StrokeWidth() float64  { return o.strokeWidth }
func (o *Object) PaintFirst() string    { return o.paintFirst }
func (o *Object) Shadow() *Shadow       { return o.shadow }
func (o *Object) ClipPath() Node        { return o.clipPath }
func (o *Object) Inverted() bool        { return o.inverted }
func (o *Object) Dirty() bool           { return o.dirty }
func (o *Object) ObjectCaching() bool   { return o.objectCaching }
func (o *Object) Selectable() bool      { return o.selectable }
func (o *Object) Evented() bool         { return o.evented }

// ExcludeFromExport reports whether serialization and SVG export skip the
// node.
func (o *Object) ExcludeFromExport() bool { return o.excludeFromExport }

// AbsolutePositioned reports whether the node, used as a clip path, is
// positioned in the scene plane instead of its owner's plane.
func (o *Object) AbsolutePositioned() bool { return o.absolutePositioned }

// HasFill reports whether the node has a visible fill.
func (o *Object) HasFill() bool { return !isTransparentPaint(o.fill) }

// HasStroke reports whether the node has a visible stroke.
func (o *Object) HasStroke() bool {
	return !isTransparentPaint(o.stroke) && o.strokeWidth != 0
}

// IsNotVisible reports whether rendering the node would draw nothing.
func (o *Object) IsNotVisible() bool {
	return o.opacity == 0 ||
		(o.width == 0 && o.height == 0 && o.strokeWidth == 0) ||
		!o.visible
}

// WillDrawShadow reports whether the node casts an offset shadow.
func (o *Object) WillDrawShadow() bool {
	if c, ok := o.self.(interface{ willDrawShadow() bool }); ok {
		return c.willDrawShadow()
	}
	return o.shadow.hasOffset()
}

// Dispose releases the raster cache and detaches all listeners. The clip
// path, if any, is disposed too.
func (o *Object) Dispose() {
	o.removeCache()
	o.Off("")
	if o.clipPath != nil {
		o.clipPath.Base().Dispose()
	}
	if d, ok := o.self.(interface{ disposeChildren() }); ok {
		d.disposeChildren()
	}
}
