package dag

import (
	"cmp"
	"maps"
	"slices"
)

// CountCrossings returns the number of crossing edge pairs for the given ring
// orderings. The orders map holds header IDs per ring in angular order; edges
// whose endpoints are missing from orders are ignored.
//
// Two edges (p1,c1) and (p2,c2) are compared only when they join the same
// pair of rings, that is ring(p1) == ring(p2) and ring(c1) == ring(c2). They
// cross when their endpoints interleave:
//
//	(pos(p1) < pos(p2)) != (pos(c1) < pos(c2))
//
// Pairs sharing an endpoint never cross. Edges within one ring form the
// group (d, d) and follow the same rule.
//
// Example:
//
//	orders := map[int][]string{
//	    1: {"a.h", "b.h"},
//	    2: {"c.h", "d.h"},
//	}
//	edges := []dag.Edge{{From: "a.h", To: "d.h"}, {From: "b.h", To: "c.h"}}
//	n := dag.CountCrossings(orders, edges) // 1
func CountCrossings(orders map[int][]string, edges []Edge) int {
	return NewCrossingCounter(orders, edges).Total()
}

type ringPair struct{ from, to int }

type crossGroup struct {
	key   ringPair
	edges []Edge
}

// CrossingCounter keeps per-ring-pair crossing counts so that swapping two
// adjacent headers only recounts the ring pairs touching their ring.
//
// Create with [NewCrossingCounter]. The counter owns copies of the orderings;
// read them back with [CrossingCounter.Order]. It is not safe for concurrent
// use.
type CrossingCounter struct {
	orders map[int][]string
	pos    map[string]int
	groups []crossGroup
	byRing map[int][]int
	counts []int
	total  int
}

// NewCrossingCounter indexes edges by ring pair and computes the initial
// counts.
func NewCrossingCounter(orders map[int][]string, edges []Edge) *CrossingCounter {
	c := &CrossingCounter{
		orders: make(map[int][]string, len(orders)),
		pos:    make(map[string]int),
		byRing: make(map[int][]int),
	}
	ringOf := make(map[string]int)
	for r, ids := range orders {
		c.orders[r] = slices.Clone(ids)
		for i, id := range ids {
			c.pos[id] = i
			ringOf[id] = r
		}
	}

	grouped := make(map[ringPair][]Edge)
	for _, e := range edges {
		rf, okF := ringOf[e.From]
		rt, okT := ringOf[e.To]
		if !okF || !okT {
			continue
		}
		k := ringPair{rf, rt}
		grouped[k] = append(grouped[k], e)
	}

	keys := slices.SortedFunc(maps.Keys(grouped), func(a, b ringPair) int {
		if x := cmp.Compare(a.from, b.from); x != 0 {
			return x
		}
		return cmp.Compare(a.to, b.to)
	})
	for _, k := range keys {
		idx := len(c.groups)
		c.groups = append(c.groups, crossGroup{key: k, edges: grouped[k]})
		c.byRing[k.from] = append(c.byRing[k.from], idx)
		if k.to != k.from {
			c.byRing[k.to] = append(c.byRing[k.to], idx)
		}
	}

	c.counts = make([]int, len(c.groups))
	for i := range c.groups {
		c.counts[i] = c.countGroup(i)
		c.total += c.counts[i]
	}
	return c
}

// Total returns the current number of crossings over all ring pairs.
func (c *CrossingCounter) Total() int { return c.total }

// RingCrossings returns the crossings on ring pairs that involve ring.
func (c *CrossingCounter) RingCrossings(ring int) int {
	n := 0
	for _, g := range c.byRing[ring] {
		n += c.counts[g]
	}
	return n
}

// Order returns the current ordering of ring. The slice is read-only.
func (c *CrossingCounter) Order(ring int) []string { return c.orders[ring] }

// Swap exchanges the headers at positions i and i+1 of ring, updates the
// affected counts and returns the new total. Calling Swap again with the same
// arguments reverts it. Out-of-range positions leave the counter unchanged.
func (c *CrossingCounter) Swap(ring, i int) int {
	ids := c.orders[ring]
	if i < 0 || i+1 >= len(ids) {
		return c.total
	}
	ids[i], ids[i+1] = ids[i+1], ids[i]
	c.pos[ids[i]] = i
	c.pos[ids[i+1]] = i + 1

	for _, g := range c.byRing[ring] {
		n := c.countGroup(g)
		c.total += n - c.counts[g]
		c.counts[g] = n
	}
	return c.total
}

// countGroup counts inversions among the edges of one ring pair: edges are
// sorted by source position and every earlier edge with a larger target
// position is a crossing.
func (c *CrossingCounter) countGroup(g int) int {
	edges := c.groups[g].edges
	if len(edges) < 2 {
		return 0
	}

	type span struct{ from, to int }
	spans := make([]span, len(edges))
	width := 0
	for i, e := range edges {
		spans[i] = span{c.pos[e.From], c.pos[e.To]}
		width = max(width, spans[i].to+1)
	}
	slices.SortFunc(spans, func(a, b span) int {
		if a.from != b.from {
			return a.from - b.from
		}
		return a.to - b.to
	})

	fenwick := make([]int, width+1)
	crossings, total := 0, 0
	start := 0
	for start < len(spans) {
		// Edges leaving the same header share an endpoint, so query the
		// whole run before adding any of it.
		end := start
		for end < len(spans) && spans[end].from == spans[start].from {
			end++
		}
		for _, s := range spans[start:end] {
			lessOrEqual := 0
			for q := s.to + 1; q > 0; q -= q & (-q) {
				lessOrEqual += fenwick[q]
			}
			crossings += total - lessOrEqual
		}
		for _, s := range spans[start:end] {
			total++
			for idx := s.to + 1; idx < len(fenwick); idx += idx & (-idx) {
				fenwick[idx]++
			}
		}
		start = end
	}
	return crossings
}
