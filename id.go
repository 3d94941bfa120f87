package easel

import "go.jetify.com/typeid/v2"

// ID prefixes used by the packages of this module.
const (
	PrefixObject = "obj"
	PrefixCanvas = "cnv"
	PrefixStroke = "stroke"
)

// NewID returns a sortable, globally unique id such as obj_01h455vb4pex5vsknk084sn02q.
func NewID(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

// ValidID reports whether id is a well-formed id carrying prefix.
func ValidID(id, prefix string) bool {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.Prefix() == prefix
}
