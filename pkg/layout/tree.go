package layout

import (
	"fmt"
	"slices"

	"github.com/matzehuels/includeviz/pkg/dag"
)

// RootID is the synthetic centre of every layout. It sits on row 0.
const RootID = "__root__"

// Tree is the primary-parent spanning tree over all reachable headers.
type Tree struct {
	// Graph holds the root, every header and any bridge nodes. Each
	// non-root node has exactly one parent on the previous row.
	Graph *dag.DAG

	// Parent maps each header to its primary parent: RootID for ring 1, a
	// TREE parent otherwise, or the anchor of a bridge chain for headers
	// without one.
	Parent map[string]string

	// Fallback lists, by ring then name, the headers attached through bridge chains.
	Fallback []string
}

// BridgeID names the bridge on row for the chain ending at header.
func BridgeID(header string, row int) string {
	return fmt.Sprintf("%s__bridge_%d", header, row)
}

// BuildTree picks one primary parent for every reachable header.
//
// Ring 1 headers hang off [RootID]. Deeper headers choose among their TREE
// parents the one with the fewest distinct outgoing edges, then the
// lexicographically smallest. A header with no TREE parent is attached to
// an anchor on a shallower ring through a chain of bridge nodes, one per
// skipped row. The anchor is its deepest shallower parent over any edge
// type, else the first header of the nearest non-empty shallower ring, else
// the root.
func BuildTree(edges Edges, depths *Depths, classified Classified) *Tree {
	t := &Tree{
		Graph:  dag.New(),
		Parent: make(map[string]string, depths.Len()),
	}
	g := t.Graph
	_ = g.AddNode(dag.Node{ID: RootID, Row: 0, Kind: dag.NodeKindRoot})
	for _, ring := range depths.RingIDs() {
		for _, h := range depths.Rings[ring] {
			_ = g.AddNode(dag.Node{ID: h, Row: ring})
		}
	}

	treeParents := classified.TreeParents()
	inbound := inboundParents(edges, depths)

	for _, ring := range depths.RingIDs() {
		for _, h := range depths.Rings[ring] {
			if ring == 1 {
				t.attach(RootID, h)
				continue
			}
			if cands := treeParents[h]; len(cands) > 0 {
				t.attach(lightestParent(edges, cands), h)
				continue
			}
			anchor := t.fallbackAnchor(edges, depths, inbound[h], ring)
			t.attachChain(anchor, h, ring)
			t.Fallback = append(t.Fallback, h)
		}
	}
	return t
}

func (t *Tree) attach(parent, child string) {
	_ = t.Graph.AddEdge(dag.Edge{From: parent, To: child})
	t.Parent[child] = parent
}

// attachChain links anchor to h through bridges on every row between them.
func (t *Tree) attachChain(anchor, h string, ring int) {
	t.Parent[h] = anchor
	anchorRow := 0
	if n, ok := t.Graph.Node(anchor); ok {
		anchorRow = n.Row
	}
	prev := anchor
	for row := anchorRow + 1; row < ring; row++ {
		id := BridgeID(h, row)
		_ = t.Graph.AddNode(dag.Node{ID: id, Row: row, Kind: dag.NodeKindBridge, MasterID: h})
		_ = t.Graph.AddEdge(dag.Edge{From: prev, To: id})
		prev = id
	}
	_ = t.Graph.AddEdge(dag.Edge{From: prev, To: h})
}

func (t *Tree) fallbackAnchor(edges Edges, depths *Depths, parents []string, ring int) string {
	best, bestDepth := "", 0
	for _, p := range parents {
		pd, _ := depths.Depth(p)
		if pd >= ring || pd < bestDepth {
			continue
		}
		if pd > bestDepth || best == "" || lighter(edges, p, best) {
			best, bestDepth = p, pd
		}
	}
	if best != "" {
		return best
	}
	for r := ring - 1; r >= 1; r-- {
		if hs := depths.Rings[r]; len(hs) > 0 {
			return hs[0]
		}
	}
	return RootID
}

func lightestParent(edges Edges, cands []string) string {
	best := cands[0]
	for _, c := range cands[1:] {
		if lighter(edges, c, best) {
			best = c
		}
	}
	return best
}

// lighter reports whether a should be preferred over b as a parent.
func lighter(edges Edges, a, b string) bool {
	da, db := edges.OutDegree(a), edges.OutDegree(b)
	if da != db {
		return da < db
	}
	return a < b
}

// inboundParents maps each reachable header to its reachable parents over
// the full edge set.
func inboundParents(edges Edges, depths *Depths) map[string][]string {
	m := make(map[string][]string)
	for _, p := range edges.Parents() {
		if _, ok := depths.Depth(p); !ok {
			continue
		}
		for _, c := range edges.Children(p) {
			if _, ok := depths.Depth(c); ok {
				m[c] = append(m[c], p)
			}
		}
	}
	return m
}

// IsFallback reports whether h was attached through a bridge chain.
func (t *Tree) IsFallback(h string) bool {
	return slices.Contains(t.Fallback, h)
}
