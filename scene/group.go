package scene

import (
	"slices"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/raster"
)

// Layout names.
const (
	// LayoutFitContent resizes the group to the bounding box of its
	// children after every membership change.
	LayoutFitContent = "fit-content"
	// LayoutFixed keeps the group size as set.
	LayoutFixed = "fixed"
)

// Group is a node owning an ordered list of children whose transforms are
// relative to the group plane.
type Group struct {
	Object
	children       []Node
	layout         string
	interactive    bool
	subTargetCheck bool
}

// NewGroup creates a group around children, which are given in the scene
// plane. Their transforms are rewritten into the group plane so they render
// where they were. Without explicit left and top the group is centered on
// the children's bounding box.
func NewGroup(children []Node, opts Record) *Group {
	g := &Group{}
	g.init(g, opts)
	accepted := g.filterInsertable(children)
	if len(accepted) > 0 {
		b := childrenBounds(accepted)
		if _, ok := opts["width"]; !ok {
			g.width = b.Width
		}
		if _, ok := opts["height"]; !ok {
			g.height = b.Height
		}
		_, hasLeft := opts["left"]
		_, hasTop := opts["top"]
		if !hasLeft && !hasTop {
			g.SetPositionByOrigin(b.Center(), OriginCenter, OriginCenter)
		}
	}
	for _, c := range accepted {
		g.enter(c, true)
	}
	g.children = accepted
	g.Layout()
	return g
}

// newGroupInPlane creates a group whose children are already expressed in
// the group plane, as in a serialized record. No layout runs.
func newGroupInPlane(children []Node, opts Record) *Group {
	g := &Group{}
	g.init(g, opts)
	accepted := g.filterInsertable(children)
	for _, c := range accepted {
		g.enter(c, false)
	}
	g.children = accepted
	return g
}

// Type implements Node.
func (g *Group) Type() string { return "Group" }

func (g *Group) defaults() Record {
	d := objectDefaults()
	d["strokeWidth"] = 0.0
	d["layout"] = LayoutFitContent
	d["interactive"] = false
	d["subTargetCheck"] = false
	return d
}

func (g *Group) setProperty(key string, v any) (bool, error) {
	switch key {
	case "layout":
		s, ok := toString(v)
		if !ok || (s != LayoutFitContent && s != LayoutFixed) {
			return true, errInvalid(key, v)
		}
		g.layout = s
		return true, nil
	case "interactive":
		return true, setBool(&g.interactive, key, v)
	case "subTargetCheck":
		return true, setBool(&g.subTargetCheck, key, v)
	}
	return false, nil
}

func (g *Group) getProperty(key string) (any, bool) {
	switch key {
	case "layout":
		return g.layout, true
	case "interactive":
		return g.interactive, true
	case "subTargetCheck":
		return g.subTargetCheck, true
	}
	return nil, false
}

// Children returns a copy of the child list in paint order.
func (g *Group) Children() []Node { return slices.Clone(g.children) }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.children) }

// Item returns the child at i.
func (g *Group) Item(i int) Node { return g.children[i] }

// Contains reports whether n is a child of g, or with deep set, a
// descendant.
func (g *Group) Contains(n Node, deep bool) bool {
	if n == nil {
		return false
	}
	b := n.Base()
	for _, c := range g.children {
		if c.Base() == b {
			return true
		}
		if deep {
			if sub, ok := c.(*Group); ok && sub.Contains(n, true) {
				return true
			}
		}
	}
	return false
}

// Add appends nodes given in the scene plane and returns the accepted ones.
// The group itself, its ancestors and nodes already present are rejected
// with a warning.
func (g *Group) Add(nodes ...Node) []Node {
	return g.insertAt(len(g.children), nodes, true)
}

// AddRelative appends nodes whose transforms are already relative to the
// group plane.
func (g *Group) AddRelative(nodes ...Node) []Node {
	return g.insertAt(len(g.children), nodes, false)
}

// Insert inserts nodes given in the scene plane at index.
func (g *Group) Insert(index int, nodes ...Node) []Node {
	return g.insertAt(index, nodes, true)
}

func (g *Group) insertAt(index int, nodes []Node, rewrite bool) []Node {
	accepted := g.filterInsertable(nodes)
	if len(accepted) == 0 {
		return nil
	}
	index = max(0, min(index, len(g.children)))
	for _, n := range accepted {
		g.enter(n, rewrite)
	}
	g.children = slices.Insert(g.children, index, accepted...)
	for _, n := range accepted {
		n.Base().Fire("added", &Event{Type: "added", Target: g})
		g.Fire("object:added", &Event{Type: "object:added", Target: n})
	}
	g.Layout()
	g.setDirty(true)
	return accepted
}

// Remove detaches nodes and rewrites their transforms back into the scene
// plane. It returns the nodes that were children.
func (g *Group) Remove(nodes ...Node) []Node {
	return g.remove(nodes, true)
}

// RemoveRelative detaches nodes and leaves their transforms relative to
// the former group plane.
func (g *Group) RemoveRelative(nodes ...Node) []Node {
	return g.remove(nodes, false)
}

func (g *Group) remove(nodes []Node, applyGroup bool) []Node {
	var removed []Node
	for _, n := range nodes {
		if n == nil {
			continue
		}
		i := slices.IndexFunc(g.children, func(c Node) bool { return c.Base() == n.Base() })
		if i < 0 {
			continue
		}
		g.children = slices.Delete(g.children, i, i+1)
		g.exit(n, applyGroup)
		removed = append(removed, n)
	}
	if len(removed) == 0 {
		return nil
	}
	for _, n := range removed {
		n.Base().Fire("removed", &Event{Type: "removed", Target: g})
		g.Fire("object:removed", &Event{Type: "object:removed", Target: n})
	}
	g.Layout()
	g.setDirty(true)
	return removed
}

// filterInsertable drops nil nodes, the group itself, its ancestors and
// duplicates, logging each rejection.
func (g *Group) filterInsertable(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		b := n.Base()
		switch {
		case b == &g.Object:
			easel.Logger().Warn("scene: group cannot contain itself", "group", g.id)
		case g.isAncestor(b):
			easel.Logger().Warn("scene: rejecting ancestor as child", "group", g.id, "node", b.id)
		case g.Contains(n, false) || slices.ContainsFunc(out, func(c Node) bool { return c.Base() == b }):
			easel.Logger().Warn("scene: rejecting duplicate child", "group", g.id, "node", b.id)
		default:
			out = append(out, n)
		}
	}
	return out
}

func (g *Group) isAncestor(b *Object) bool {
	for a := g.group; a != nil; a = a.group {
		if &a.Object == b {
			return true
		}
	}
	return false
}

// enter attaches n. With rewrite, n's transform is changed so its scene
// placement is preserved under the group.
func (g *Group) enter(n Node, rewrite bool) {
	b := n.Base()
	if b.group != nil && b.group != g {
		b.group.Remove(n)
	}
	if b.host != nil {
		easel.Logger().Warn("scene: node moved from a canvas into a group", "node", b.id)
		b.host = nil
	}
	if rewrite {
		inv := g.CalcTransformMatrix(false).Invert()
		b.applyTransform(inv.Multiply(b.CalcTransformMatrix(false)))
	}
	b.group = g
}

func (g *Group) exit(n Node, applyGroup bool) {
	b := n.Base()
	b.group = nil
	if applyGroup {
		b.applyTransform(g.CalcTransformMatrix(false).Multiply(b.CalcOwnMatrix()))
	}
	b.removeCache()
}

// childrenBounds returns the bounding box of the nodes' corners in their
// parent plane.
func childrenBounds(nodes []Node) easel.Rect {
	var b easel.Rect
	for i, n := range nodes {
		pts := n.Base().relativeCoords()
		r := easel.BoundingBox(pts[:]...)
		if i == 0 {
			b = r
		} else {
			b = b.Union(r)
		}
	}
	return b
}

// Layout fits a fit-content group to its children. Children are shifted so
// the group plane origin is the center of their bounding box, and the group
// moves by the same amount, leaving every child where it was in the scene.
func (g *Group) Layout() {
	if g.layout != LayoutFitContent || len(g.children) == 0 {
		return
	}
	b := childrenBounds(g.children)
	rel := b.Center()
	newCenter := g.CalcOwnMatrix().TransformPoint(rel)
	if rel.X != 0 || rel.Y != 0 {
		for _, c := range g.children {
			cb := c.Base()
			cb.Set("left", cb.left-rel.X)
			cb.Set("top", cb.top-rel.Y)
		}
	}
	g.Set("width", b.Width)
	g.Set("height", b.Height)
	g.SetPositionByOrigin(newCenter, OriginCenter, OriginCenter)
	easel.Logger().Debug("scene: group layout", "group", g.id, "width", b.Width, "height", b.Height)
}

// IsOnACache reports whether the group or an ancestor renders into its own
// cache.
func (g *Group) IsOnACache() bool {
	return g.ownCaching || (g.group != nil && g.group.IsOnACache())
}

// shouldCache disables the group's own cache when a child casts a shadow,
// so the shadow is not clipped by the group cache.
func (g *Group) shouldCache() bool {
	own := g.shouldCacheBase()
	if own {
		for _, c := range g.children {
			if c.Base().WillDrawShadow() {
				g.ownCaching = false
				return false
			}
		}
	}
	return own
}

func (g *Group) willDrawShadow() bool {
	if g.shadow.hasOffset() {
		return true
	}
	for _, c := range g.children {
		if c.Base().WillDrawShadow() {
			return true
		}
	}
	return false
}

// Render implements Node. Children render in the group plane.
func (g *Group) Render(d raster.Drawer) {
	g.transformDone = true
	g.Object.Render(d)
	g.transformDone = false
}

// DrawGeometry implements Node.
func (g *Group) DrawGeometry(d raster.Drawer) {
	for _, c := range g.children {
		c.Render(d)
	}
}

func (g *Group) disposeChildren() {
	for _, c := range g.children {
		c.Base().Dispose()
	}
}

func (g *Group) extendRecord(rec Record, digits int) {
	objs := make([]any, 0, len(g.children))
	for _, c := range g.children {
		if c.Base().excludeFromExport {
			continue
		}
		objs = append(objs, c.Base().ToObject())
	}
	rec["objects"] = objs
	rec["layout"] = g.layout
}
