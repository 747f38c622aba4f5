package filter

import (
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/matzehuels/includeviz/pkg/layout"
)

// WarningPrefix starts every path warning.
const WarningPrefix = "Path through external: "

// Result is the outcome of [Apply].
type Result struct {
	// Included holds headers matching at least one prefix.
	Included map[string]bool

	// Intermediate holds excluded headers on a chain between included ones.
	Intermediate map[string]bool

	// Warnings lists each chain through excluded headers once, in discovery
	// order, using base names: "Path through external: a.h -> x.h -> c.h".
	Warnings []string
}

// Visible reports whether h is laid out: included or intermediate.
func (r *Result) Visible(h string) bool {
	return r.Included[h] || r.Intermediate[h]
}

// VisibleHeaders returns the visible headers, sorted.
func (r *Result) VisibleHeaders() []string {
	set := maps.Clone(r.Included)
	if set == nil {
		set = make(map[string]bool)
	}
	maps.Copy(set, r.Intermediate)
	return slices.Sorted(maps.Keys(set))
}

// Restrict returns the edges whose endpoints are both visible.
func (r *Result) Restrict(edges layout.Edges) layout.Edges {
	out := make(layout.Edges)
	for _, p := range edges.Parents() {
		if !r.Visible(p) {
			continue
		}
		for _, c := range edges.Children(p) {
			if r.Visible(c) {
				out[p] = append(out[p], c)
			}
		}
	}
	return out
}

// Apply filters nodes by path prefix. allNodes may be nil, in which case
// the nodes are derived from edges. With no prefixes every node is
// included and nothing is reported.
//
// For every excluded header with an included includer, Apply walks forward
// through excluded headers only. Each included header reached closes a
// chain: all excluded headers on it become intermediate and the chain is
// reported once per included includer.
func Apply(edges layout.Edges, prefixes []string, allNodes []string) *Result {
	nodes := nodeSet(edges, allNodes)
	res := &Result{
		Included:     make(map[string]bool),
		Intermediate: make(map[string]bool),
	}
	if len(prefixes) == 0 {
		for h := range nodes {
			res.Included[h] = true
		}
		return res
	}

	for h := range nodes {
		if matchesAny(h, prefixes) {
			res.Included[h] = true
		}
	}

	includers := make(map[string][]string)
	for _, p := range edges.Parents() {
		for _, c := range edges.Children(p) {
			includers[c] = append(includers[c], p)
		}
	}

	seen := make(map[string]bool)
	for _, ext := range slices.Sorted(maps.Keys(nodes)) {
		if res.Included[ext] {
			continue
		}
		var from []string
		for _, p := range includers[ext] {
			if res.Included[p] {
				from = append(from, p)
			}
		}
		if len(from) == 0 {
			continue
		}
		slices.Sort(from)

		type step struct {
			node string
			path []string
		}
		visited := make(map[string]bool)
		queue := []step{{ext, []string{ext}}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if visited[cur.node] {
				continue
			}
			visited[cur.node] = true

			for _, c := range edges.Children(cur.node) {
				switch {
				case res.Included[c]:
					for _, p := range from {
						w := warning(p, cur.path, c)
						if !seen[w] {
							seen[w] = true
							res.Warnings = append(res.Warnings, w)
						}
					}
					for _, h := range cur.path {
						res.Intermediate[h] = true
					}
				case !visited[c]:
					queue = append(queue, step{c, append(slices.Clip(cur.path), c)})
				}
			}
		}
	}
	return res
}

func warning(from string, via []string, to string) string {
	names := make([]string, 0, len(via)+2)
	names = append(names, path.Base(from))
	for _, h := range via {
		names = append(names, path.Base(h))
	}
	names = append(names, path.Base(to))
	return WarningPrefix + strings.Join(names, " -> ")
}

func matchesAny(h string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(h, p) {
			return true
		}
	}
	return false
}

func nodeSet(edges layout.Edges, allNodes []string) map[string]bool {
	set := make(map[string]bool)
	if allNodes != nil {
		for _, h := range allNodes {
			set[h] = true
		}
		return set
	}
	for p, children := range edges {
		set[p] = true
		for _, c := range children {
			set[c] = true
		}
	}
	return set
}
