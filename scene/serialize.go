package scene

// FormatVersion is written to every serialized record.
const FormatVersion = "1.0"

// recordExtender adds type-specific fields to a serialized record.
type recordExtender interface {
	extendRecord(rec Record, digits int)
}

// baseRecordKeys are serialized for every node.
var baseRecordKeys = []string{
	"originX", "originY", "left", "top", "width", "height",
	"fill", "stroke", "strokeWidth", "strokeDashArray", "strokeLineCap",
	"strokeDashOffset", "strokeLineJoin", "strokeUniform", "strokeMiterLimit",
	"scaleX", "scaleY", "angle", "flipX", "flipY", "opacity", "shadow",
	"visible", "backgroundColor", "fillRule", "paintFirst",
	"globalCompositeOperation", "skewX", "skewY",
}

// neverElided are kept even when equal to their default.
var neverElided = map[string]bool{"type": true, "version": true, "left": true, "top": true}

// ToObject returns the plain-data form of the node. Numbers are rounded to
// the configured fraction digits and, unless the node's
// includeDefaultValues property is set, properties equal to their default
// are left out. include names extra properties to serialize, such as "id"
// or "selectable".
func (o *Object) ToObject(include ...string) Record {
	digits := o.config().NumFractionDigits
	rec := Record{
		"type":    o.self.Type(),
		"version": FormatVersion,
	}
	for _, k := range baseRecordKeys {
		v, _ := o.Get(k)
		rec[k] = serializeValue(v, digits)
	}
	if e, ok := o.self.(recordExtender); ok {
		e.extendRecord(rec, digits)
	}
	for _, k := range include {
		if v, ok := o.Get(k); ok {
			rec[k] = serializeValue(v, digits)
		}
	}
	if !o.includeDefaultValues {
		o.elideDefaults(rec)
	}
	if o.clipPath != nil {
		cb := o.clipPath.Base()
		clip := cb.ToObject()
		clip["inverted"] = cb.inverted
		clip["absolutePositioned"] = cb.absolutePositioned
		rec["clipPath"] = clip
	}
	return rec
}

func (o *Object) elideDefaults(rec Record) {
	defaults := o.defaults()
	for k, v := range rec {
		if neverElided[k] {
			continue
		}
		def, ok := defaults[k]
		if !ok {
			continue
		}
		if sameValue(v, serializeValue(def, -1)) {
			delete(rec, k)
		}
	}
}

// serializeValue converts a property value to its record form.
func serializeValue(v any, digits int) any {
	switch x := v.(type) {
	case float64:
		return round(x, digits)
	case []float64:
		if x == nil {
			return nil
		}
		return floatsToAny(x, digits)
	case Paint:
		return paintToValue(x, digits)
	case *Shadow:
		if x == nil {
			return nil
		}
		return x.toRecord(digits)
	case Node:
		return x.Base().ToObject()
	}
	return v
}
