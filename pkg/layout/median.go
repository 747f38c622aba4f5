package layout

import (
	"slices"

	"github.com/matzehuels/includeviz/pkg/dag"
)

// MedianPlacer places headers in three phases:
//
//  1. Initial placement. Rings are processed outward. Each header targets
//     the circular median of its already placed tree parents, or 0 when
//     none is placed. The ring is sorted by target and spread to the
//     minimum gap.
//  2. Relaxation. Up to MaxRelaxPasses sweeps retarget every header to the
//     circular median of all placed neighbours, parents and children alike,
//     then re-sort and re-spread its ring. A sweep that leaves every ring
//     order unchanged ends the phase.
//  3. Refinement. Up to MaxSwapPasses passes try every adjacent swap on
//     every ring and keep it only when the total crossing count strictly
//     drops. A pass without an accepted swap ends the phase. The angular
//     slots of each ring are then reassigned in the new order.
type MedianPlacer struct{}

// Name implements [Placer].
func (MedianPlacer) Name() string { return "median" }

// Place implements [Placer].
func (MedianPlacer) Place(in *Input) *Placement {
	s := newMedianState(in)
	s.initial()
	in.debug("initial placement", "rings", len(s.rings), "crossings", countCrossings(s.rings, in.Classified))

	relax := s.relax(in.MaxRelaxPasses)
	in.debug("relaxation", "passes", relax, "crossings", countCrossings(s.rings, in.Classified))

	counter, passes, swaps := s.refine(in.MaxSwapPasses)
	in.debug("swap refinement", "passes", passes, "swaps", swaps, "crossings", counter.Total())

	delete(s.angles, RootID)
	return &Placement{
		Angles:      s.angles,
		Rings:       s.rings,
		Crossings:   counter.Total(),
		RelaxPasses: relax,
		SwapPasses:  passes,
		Swaps:       swaps,
	}
}

type medianState struct {
	in         *Input
	ringIDs    []int
	angles     map[string]float64
	rings      map[int][]string
	parents    map[string][]string
	neighbours map[string][]string
}

func newMedianState(in *Input) *medianState {
	s := &medianState{
		in:         in,
		ringIDs:    in.Depths.RingIDs(),
		angles:     map[string]float64{RootID: RootAngle},
		rings:      make(map[int][]string),
		parents:    make(map[string][]string),
		neighbours: make(map[string][]string),
	}

	treeParents := in.Classified.TreeParents()
	for _, ring := range s.ringIDs {
		for _, h := range in.Depths.Rings[ring] {
			switch {
			case ring == 1:
				s.parents[h] = []string{RootID}
			case len(treeParents[h]) > 0:
				s.parents[h] = treeParents[h]
			default:
				if p, ok := in.Tree.Parent[h]; ok {
					s.parents[h] = []string{p}
				}
			}
		}
	}

	for h := range in.Depths.ByHeader {
		nb := slices.Clone(s.parents[h])
		for _, c := range in.Edges.Children(h) {
			if _, ok := in.Depths.Depth(c); ok {
				nb = append(nb, c)
			}
		}
		slices.Sort(nb)
		nb = slices.Compact(nb)
		nb = slices.DeleteFunc(nb, func(n string) bool { return n == h })
		s.neighbours[h] = nb
	}
	return s
}

// medianOf returns the circular median of the placed angles among ids.
func (s *medianState) medianOf(ids []string) (float64, bool) {
	var angles []float64
	for _, id := range ids {
		if a, ok := s.angles[id]; ok {
			angles = append(angles, a)
		}
	}
	if len(angles) == 0 {
		return 0, false
	}
	return CircularMedian(angles, nil), true
}

func (s *medianState) initial() {
	for _, ring := range s.ringIDs {
		hs := s.in.Depths.Rings[ring]
		targets := make([]target, len(hs))
		for i, h := range hs {
			a, _ := s.medianOf(s.parents[h])
			targets[i] = target{id: h, angle: a}
		}
		s.rings[ring] = spreadRing(targets, s.in.minGap(ring), s.angles)
	}
}

// relax runs relaxation sweeps and returns how many were performed.
func (s *medianState) relax(maxPasses int) int {
	passes := 0
	for passes < maxPasses {
		passes++
		moved := false
		for _, ring := range s.ringIDs {
			old := s.rings[ring]
			targets := make([]target, len(old))
			for i, h := range old {
				a, ok := s.medianOf(s.neighbours[h])
				if !ok {
					a = s.angles[h]
				}
				targets[i] = target{id: h, angle: a}
			}
			order := spreadRing(targets, s.in.minGap(ring), s.angles)
			if !slices.Equal(order, old) {
				moved = true
			}
			s.rings[ring] = order
		}
		if !moved {
			break
		}
	}
	return passes
}

// refine runs adjacent-swap passes and then moves angles to follow the new
// order. Rings without crossings on their ring pairs are skipped. It returns
// the counter, the passes performed and accepted swaps.
func (s *medianState) refine(maxPasses int) (*dag.CrossingCounter, int, int) {
	counter := dag.NewCrossingCounter(s.rings, s.in.Classified.All())
	passes, swaps := 0, 0
	for passes < maxPasses && counter.Total() > 0 {
		passes++
		improved := false
		for _, ring := range s.ringIDs {
			if counter.RingCrossings(ring) == 0 {
				continue
			}
			for i := 0; i+1 < len(counter.Order(ring)); i++ {
				before := counter.Total()
				if counter.Swap(ring, i) < before {
					improved = true
					swaps++
					continue
				}
				counter.Swap(ring, i)
			}
		}
		if !improved {
			break
		}
	}

	for _, ring := range s.ringIDs {
		slots := make([]float64, 0, len(s.rings[ring]))
		for _, h := range s.rings[ring] {
			slots = append(slots, s.angles[h])
		}
		order := slices.Clone(counter.Order(ring))
		for i, h := range order {
			s.angles[h] = slots[i]
		}
		s.rings[ring] = order
	}
	return counter, passes, swaps
}
