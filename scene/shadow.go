package scene

import (
	"strconv"
	"strings"
)

// Shadow is a drop shadow cast by a node.
type Shadow struct {
	Color   string
	Blur    float64
	OffsetX float64
	OffsetY float64
	// AffectStroke makes the stroke cast a shadow too.
	AffectStroke bool
	// NonScaling keeps offsets and blur independent of the node's scale.
	NonScaling bool
}

// NewShadow creates a shadow.
func NewShadow(color string, blur, offsetX, offsetY float64) *Shadow {
	return &Shadow{Color: color, Blur: blur, OffsetX: offsetX, OffsetY: offsetY}
}

// ParseShadow parses the CSS-like form "color offsetX offsetY blur", for
// example "rgba(0,0,0,0.3) 5px 5px 10px". Numbers may carry a px suffix;
// missing numbers are zero and a missing color is black.
func ParseShadow(s string) *Shadow {
	sh := &Shadow{}
	var nums []float64
	var color []string
	depth := 0
	for _, f := range strings.Fields(s) {
		if depth == 0 {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64); err == nil && len(nums) < 3 {
				nums = append(nums, v)
				continue
			}
		}
		depth += strings.Count(f, "(") - strings.Count(f, ")")
		color = append(color, f)
	}
	sh.Color = strings.Join(color, " ")
	if sh.Color == "" {
		sh.Color = "rgb(0,0,0)"
	}
	for i, v := range nums {
		switch i {
		case 0:
			sh.OffsetX = v
		case 1:
			sh.OffsetY = v
		case 2:
			sh.Blur = v
		}
	}
	return sh
}

// hasOffset reports whether the shadow is displaced from its caster.
func (s *Shadow) hasOffset() bool {
	return s != nil && (s.OffsetX != 0 || s.OffsetY != 0)
}

func (s *Shadow) toRecord(digits int) Record {
	return Record{
		"color":        s.Color,
		"blur":         round(s.Blur, digits),
		"offsetX":      round(s.OffsetX, digits),
		"offsetY":      round(s.OffsetY, digits),
		"affectStroke": s.AffectStroke,
		"nonScaling":   s.NonScaling,
	}
}

func shadowFromValue(v any) (*Shadow, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case *Shadow:
		return s, nil
	case Shadow:
		return &s, nil
	case string:
		if s == "" {
			return nil, nil
		}
		return ParseShadow(s), nil
	case map[string]any:
		sh := &Shadow{Color: "rgb(0,0,0)"}
		if c, ok := toString(s["color"]); ok && c != "" {
			sh.Color = c
		}
		sh.Blur, _ = toFloat(s["blur"])
		sh.OffsetX, _ = toFloat(s["offsetX"])
		sh.OffsetY, _ = toFloat(s["offsetY"])
		sh.AffectStroke, _ = toBool(s["affectStroke"])
		sh.NonScaling, _ = toBool(s["nonScaling"])
		return sh, nil
	}
	return nil, errInvalid("shadow", v)
}
