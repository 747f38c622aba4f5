package layout

import (
	"fmt"

	"github.com/matzehuels/includeviz/pkg/dag"
)

// EdgeType labels an include edge by the depth difference of its endpoints.
type EdgeType int

const (
	// EdgeTree joins a header to one on the next ring out.
	EdgeTree EdgeType = iota
	// EdgeBack points at a shallower ring.
	EdgeBack
	// EdgeSameLevel stays on one ring. Self-includes land here.
	EdgeSameLevel
	// EdgeForwardSkip jumps outward by more than one ring.
	EdgeForwardSkip
)

// EdgeTypes lists every edge type in a stable order.
var EdgeTypes = []EdgeType{EdgeTree, EdgeBack, EdgeSameLevel, EdgeForwardSkip}

func (t EdgeType) String() string {
	switch t {
	case EdgeTree:
		return "tree"
	case EdgeBack:
		return "back"
	case EdgeSameLevel:
		return "same"
	case EdgeForwardSkip:
		return "skip"
	}
	return fmt.Sprintf("EdgeType(%d)", int(t))
}

// ParseEdgeType is the inverse of [EdgeType.String].
func ParseEdgeType(s string) (EdgeType, error) {
	for _, t := range EdgeTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown edge type %q", s)
}

// ClassifyEdge returns the type of an edge from a header at parentDepth to
// one at childDepth.
func ClassifyEdge(parentDepth, childDepth int) EdgeType {
	switch {
	case childDepth == parentDepth+1:
		return EdgeTree
	case childDepth < parentDepth:
		return EdgeBack
	case childDepth == parentDepth:
		return EdgeSameLevel
	default:
		return EdgeForwardSkip
	}
}

// Classified buckets include edges by [EdgeType].
type Classified map[EdgeType][]dag.Edge

// Classify labels every edge whose endpoints both have a depth. Edges
// touching an unreachable header are dropped silently. Each bucket lists
// edges sorted by parent, then child, so the result does not depend on map
// iteration order.
func Classify(edges Edges, depths *Depths) Classified {
	c := Classified{}
	for _, t := range EdgeTypes {
		c[t] = nil
	}
	for _, p := range edges.Parents() {
		pd, ok := depths.Depth(p)
		if !ok {
			continue
		}
		for _, ch := range edges.Children(p) {
			cd, ok := depths.Depth(ch)
			if !ok {
				continue
			}
			t := ClassifyEdge(pd, cd)
			c[t] = append(c[t], dag.Edge{From: p, To: ch})
		}
	}
	return c
}

// Len returns the number of classified edges across all buckets.
func (c Classified) Len() int {
	n := 0
	for _, es := range c {
		n += len(es)
	}
	return n
}

// All returns every classified edge, bucket by bucket in [EdgeTypes] order.
func (c Classified) All() []dag.Edge {
	all := make([]dag.Edge, 0, c.Len())
	for _, t := range EdgeTypes {
		all = append(all, c[t]...)
	}
	return all
}

// Types maps each classified edge to its type.
func (c Classified) Types() map[dag.Edge]EdgeType {
	m := make(map[dag.Edge]EdgeType, c.Len())
	for t, es := range c {
		for _, e := range es {
			m[e] = t
		}
	}
	return m
}

// TreeParents maps each child to its parents over TREE edges, sorted.
func (c Classified) TreeParents() map[string][]string {
	m := make(map[string][]string)
	for _, e := range c[EdgeTree] {
		m[e.To] = append(m[e.To], e.From)
	}
	return m
}
