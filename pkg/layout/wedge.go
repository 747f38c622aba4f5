package layout

import (
	"math"
	"slices"
)

// WedgePlacer splits the circle among the spanning tree. Every node owns a
// wedge proportional to the number of leaves below it, children divide
// their parent's wedge in name order, and each header sits at the centre of
// its wedge. Rings are then spread to the minimum gap. There is no
// relaxation or swap refinement.
type WedgePlacer struct{}

// Name implements [Placer].
func (WedgePlacer) Name() string { return "wedge" }

// Place implements [Placer].
func (WedgePlacer) Place(in *Input) *Placement {
	g := in.Tree.Graph
	leaves := make(map[string]int)
	var count func(id string) int
	count = func(id string) int {
		if n, ok := leaves[id]; ok {
			return n
		}
		n := 0
		for _, c := range g.Children(id) {
			n += count(c)
		}
		n = max(n, 1)
		leaves[id] = n
		return n
	}
	count(RootID)

	centres := make(map[string]float64)
	var split func(id string, lo, hi float64)
	split = func(id string, lo, hi float64) {
		kids := slices.Clone(g.Children(id))
		slices.Sort(kids)
		total := 0
		for _, c := range kids {
			total += leaves[c]
		}
		start := lo
		for _, c := range kids {
			width := (hi - lo) * float64(leaves[c]) / float64(total)
			centres[c] = start + width/2
			split(c, start, start+width)
			start += width
		}
	}
	split(RootID, RootAngle-math.Pi, RootAngle+math.Pi)

	angles := make(map[string]float64, in.Depths.Len())
	rings := make(map[int][]string)
	for _, ring := range in.Depths.RingIDs() {
		hs := in.Depths.Rings[ring]
		targets := make([]target, len(hs))
		for i, h := range hs {
			targets[i] = target{id: h, angle: NormalizeAngle(centres[h])}
		}
		rings[ring] = spreadRing(targets, in.minGap(ring), angles)
	}

	crossings := countCrossings(rings, in.Classified)
	in.debug("wedge placement", "rings", len(rings), "crossings", crossings)
	return &Placement{
		Angles:    angles,
		Rings:     rings,
		Crossings: crossings,
	}
}
