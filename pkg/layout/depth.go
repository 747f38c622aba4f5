package layout

import (
	"maps"
	"slices"
)

// Edges maps a header to the headers it includes directly. Child lists have
// no meaningful order and may contain duplicates; every consumer in this
// package dedups and sorts them.
type Edges map[string][]string

// Children returns the deduplicated, sorted children of h.
func (e Edges) Children(h string) []string {
	kids := slices.Clone(e[h])
	slices.Sort(kids)
	return slices.Compact(kids)
}

// OutDegree returns the number of distinct children of h.
func (e Edges) OutDegree(h string) int { return len(e.Children(h)) }

// Parents returns the sorted keys of e.
func (e Edges) Parents() []string { return slices.Sorted(maps.Keys(e)) }

// Depths is the result of [AssignDepths]: the ring index of every reachable
// header and the headers on each ring in lexicographic order.
type Depths struct {
	ByHeader map[string]int
	Rings    map[int][]string
}

// AssignDepths runs a multi-source breadth-first search from seeds and
// returns the shortest number of include hops to every reachable header.
// Seeds sit on ring 1. A header that already has a depth is never revisited,
// so the first assignment wins and is minimal.
//
// Headers not reachable from any seed receive no depth. An empty edge set or
// empty seed set yields empty Depths.
func AssignDepths(edges Edges, seeds []string) *Depths {
	d := &Depths{
		ByHeader: make(map[string]int),
		Rings:    make(map[int][]string),
	}

	seedList := slices.Clone(seeds)
	slices.Sort(seedList)
	seedList = slices.Compact(seedList)

	queue := make([]string, 0, len(seedList))
	for _, s := range seedList {
		if s == "" {
			continue
		}
		d.ByHeader[s] = 1
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		next := d.ByHeader[h] + 1
		for _, c := range edges.Children(h) {
			if _, seen := d.ByHeader[c]; seen {
				continue
			}
			d.ByHeader[c] = next
			queue = append(queue, c)
		}
	}

	d.rebuildRings()
	return d
}

func (d *Depths) rebuildRings() {
	d.Rings = make(map[int][]string)
	for h, depth := range d.ByHeader {
		d.Rings[depth] = append(d.Rings[depth], h)
	}
	for depth := range d.Rings {
		slices.Sort(d.Rings[depth])
	}
}

// Depth returns the ring index of h and whether h is reachable.
func (d *Depths) Depth(h string) (int, bool) {
	depth, ok := d.ByHeader[h]
	return depth, ok
}

// Len returns the number of reachable headers.
func (d *Depths) Len() int { return len(d.ByHeader) }

// RingIDs returns the non-empty ring indices in ascending order.
func (d *Depths) RingIDs() []int { return slices.Sorted(maps.Keys(d.Rings)) }

// MaxDepth returns the deepest ring index, or 0 when nothing is reachable.
func (d *Depths) MaxDepth() int {
	ids := d.RingIDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// Counts returns the number of headers per ring.
func (d *Depths) Counts() map[int]int {
	counts := make(map[int]int, len(d.Rings))
	for depth, hs := range d.Rings {
		counts[depth] = len(hs)
	}
	return counts
}

// Restrict returns a copy keeping only the headers for which keep returns
// true. Ring indices are not recomputed.
func (d *Depths) Restrict(keep func(h string) bool) *Depths {
	out := &Depths{ByHeader: make(map[string]int, len(d.ByHeader))}
	for h, depth := range d.ByHeader {
		if keep(h) {
			out.ByHeader[h] = depth
		}
	}
	out.rebuildRings()
	return out
}

// Truncate returns a copy keeping only rings up to maxDepth. Headers on
// deeper rings become unreachable for the rest of the layout. A maxDepth of
// zero or less keeps everything.
func (d *Depths) Truncate(maxDepth int) *Depths {
	out := &Depths{ByHeader: make(map[string]int, len(d.ByHeader))}
	for h, depth := range d.ByHeader {
		if maxDepth <= 0 || depth <= maxDepth {
			out.ByHeader[h] = depth
		}
	}
	out.rebuildRings()
	return out
}
