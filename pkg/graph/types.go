package graph

import (
	"maps"
	"slices"

	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/layout"
)

// =============================================================================
// Graph - Include Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for include graphs: which
// header includes which, starting from one root translation unit.
//
// Direct lists the headers the root includes directly. When it is empty the
// root's children in Edges are used instead. IncludeCounts records how often
// each header was pulled in by the preprocessor; headers without a count
// fall back to their number of includers.
type Graph struct {
	Root          string         `json:"root,omitempty" bson:"root,omitempty"`
	Direct        []string       `json:"direct,omitempty" bson:"direct,omitempty"`
	Edges         []Edge         `json:"edges" bson:"edges"`
	IncludeCounts map[string]int `json:"include_counts,omitempty" bson:"include_counts,omitempty"`
}

// Edge is a directed include: From includes To. Type is only set in layout
// documents and holds the classification ("tree", "back", "same", "skip").
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Type string `json:"type,omitempty" bson:"type,omitempty"`
}

// AddEdge appends an include edge.
func (g *Graph) AddEdge(from, to string) {
	g.Edges = append(g.Edges, Edge{From: from, To: to})
}

// Headers returns every header named by the graph, sorted. The root is
// included only when it appears as an edge endpoint.
func (g *Graph) Headers() []string {
	set := make(map[string]struct{})
	for _, e := range g.Edges {
		set[e.From] = struct{}{}
		set[e.To] = struct{}{}
	}
	for _, h := range g.Direct {
		set[h] = struct{}{}
	}
	for h := range g.IncludeCounts {
		set[h] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Adjacency converts the edge list into the adjacency form the layout
// consumes. Edges leaving the root are dropped; the root is represented by
// [Graph.Seeds].
func (g *Graph) Adjacency() layout.Edges {
	adj := make(layout.Edges)
	for _, e := range g.Edges {
		if g.Root != "" && e.From == g.Root {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
	}
	return adj
}

// Seeds returns the headers placed on the first ring.
func (g *Graph) Seeds() []string {
	if len(g.Direct) > 0 {
		return slices.Clone(g.Direct)
	}
	if g.Root == "" {
		return nil
	}
	var seeds []string
	for _, e := range g.Edges {
		if e.From == g.Root && !slices.Contains(seeds, e.To) {
			seeds = append(seeds, e.To)
		}
	}
	return seeds
}

// IncludeCount returns how often h was included. Without a recorded count
// it is the number of distinct includers, plus one for a direct include.
func (g *Graph) IncludeCount(h string) int {
	return g.ResolvedIncludeCounts()[h]
}

// ResolvedIncludeCounts returns [Graph.IncludeCount] for every header in a
// single pass over the edges. Headers nobody includes are absent.
func (g *Graph) ResolvedIncludeCounts() map[string]int {
	includers := make(map[string]map[string]struct{})
	for _, e := range g.Edges {
		from, ok := includers[e.To]
		if !ok {
			from = make(map[string]struct{})
			includers[e.To] = from
		}
		from[e.From] = struct{}{}
	}

	counts := make(map[string]int, len(includers)+len(g.Direct))
	for h, from := range includers {
		counts[h] = len(from)
	}
	for _, h := range g.Direct {
		if _, viaRoot := includers[h][g.Root]; !viaRoot {
			counts[h] = len(includers[h]) + 1
		}
	}
	for h, n := range g.IncludeCounts {
		counts[h] = n
	}
	return counts
}

// Validate checks every header name in the graph.
func (g *Graph) Validate() error {
	if g.Root != "" {
		if err := errors.ValidateHeaderPath(g.Root); err != nil {
			return err
		}
	}
	for _, h := range g.Direct {
		if err := errors.ValidateHeaderPath(h); err != nil {
			return err
		}
	}
	for _, e := range g.Edges {
		if err := errors.ValidateHeaderPath(e.From); err != nil {
			return err
		}
		if err := errors.ValidateHeaderPath(e.To); err != nil {
			return err
		}
	}
	for h, n := range g.IncludeCounts {
		if n < 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "negative include count for %s", h)
		}
	}
	return nil
}
