package graph

import (
	"slices"
	"strings"

	"github.com/matzehuels/includeviz/pkg/errors"
)

// DefaultMaxPaths caps the number of paths [Graph.Trace] returns.
const DefaultMaxPaths = 5

// TraceResult holds the shortest include chains between two headers.
// Total counts every shortest path, including those beyond the cap.
type TraceResult struct {
	From  string     `json:"from"`
	To    string     `json:"to"`
	Paths [][]string `json:"paths"`
	Total int        `json:"total"`
}

// Hidden returns how many shortest paths were not returned.
func (r TraceResult) Hidden() int { return r.Total - len(r.Paths) }

// MatchHeaders returns every header whose path contains pattern, sorted.
// The root counts as a header.
func (g *Graph) MatchHeaders(pattern string) []string {
	headers := g.Headers()
	if g.Root != "" && !slices.Contains(headers, g.Root) {
		headers = append(headers, g.Root)
	}
	var matches []string
	for _, h := range headers {
		if strings.Contains(h, pattern) {
			matches = append(matches, h)
		}
	}
	slices.Sort(matches)
	return matches
}

// FindHeader resolves a substring pattern to exactly one header. An exact
// match wins over substring matches. Ambiguous patterns yield INVALID_INPUT
// and unmatched ones NOT_FOUND.
func (g *Graph) FindHeader(pattern string) (string, error) {
	matches := g.MatchHeaders(pattern)
	if slices.Contains(matches, pattern) {
		return pattern, nil
	}
	switch len(matches) {
	case 0:
		return "", errors.New(errors.ErrCodeNotFound, "no header matching %q", pattern)
	case 1:
		return matches[0], nil
	}
	shown := matches[:min(len(matches), 10)]
	msg := strings.Join(shown, ", ")
	if len(matches) > len(shown) {
		msg += ", ..."
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "ambiguous pattern %q matches %d headers: %s", pattern, len(matches), msg)
}

// Trace finds the shortest include chains from one header to another. An
// empty from starts at the root. At most maxPaths paths are returned,
// ordered lexically; maxPaths <= 0 means [DefaultMaxPaths]. When to is not
// reachable the result has no paths and a zero total.
func (g *Graph) Trace(from, to string, maxPaths int) TraceResult {
	if from == "" {
		from = g.Root
	}
	if maxPaths <= 0 {
		maxPaths = DefaultMaxPaths
	}
	res := TraceResult{From: from, To: to}
	adj := g.traceAdjacency()

	dist := map[string]int{from: 0}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range adj[cur] {
			if _, seen := dist[c]; !seen {
				dist[c] = dist[cur] + 1
				queue = append(queue, c)
			}
		}
	}
	target, ok := dist[to]
	if !ok {
		return res
	}

	// Count shortest paths layer by layer.
	count := map[string]int{from: 1}
	order := []string{from}
	for i := 0; i < len(order); i++ {
		cur := order[i]
		if dist[cur] >= target {
			continue
		}
		for _, c := range adj[cur] {
			if dist[c] != dist[cur]+1 {
				continue
			}
			if _, seen := count[c]; !seen {
				order = append(order, c)
			}
			count[c] += count[cur]
		}
	}
	res.Total = count[to]

	// Mark headers that lie on some shortest path to the target so the walk
	// never descends into branches that cannot reach it.
	onPath := map[string]bool{to: true}
	for i := len(order) - 1; i >= 0; i-- {
		cur := order[i]
		for _, c := range adj[cur] {
			if dist[c] == dist[cur]+1 && onPath[c] {
				onPath[cur] = true
				break
			}
		}
	}

	var walk func(path []string)
	walk = func(path []string) {
		if len(res.Paths) >= maxPaths {
			return
		}
		cur := path[len(path)-1]
		if cur == to {
			res.Paths = append(res.Paths, slices.Clone(path))
			return
		}
		for _, c := range adj[cur] {
			if dist[c] == dist[cur]+1 && onPath[c] {
				walk(append(path, c))
			}
		}
	}
	walk([]string{from})
	return res
}

// traceAdjacency returns sorted children per header, with the root linked
// to its seeds.
func (g *Graph) traceAdjacency() map[string][]string {
	adj := make(map[string][]string)
	for h, children := range g.Adjacency() {
		for _, c := range children {
			if !slices.Contains(adj[h], c) {
				adj[h] = append(adj[h], c)
			}
		}
	}
	if g.Root != "" {
		for _, s := range g.Seeds() {
			if !slices.Contains(adj[g.Root], s) {
				adj[g.Root] = append(adj[g.Root], s)
			}
		}
	}
	for h := range adj {
		slices.Sort(adj[h])
	}
	return adj
}
