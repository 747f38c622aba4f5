package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/includeviz/pkg/dag"
)

func inputFor(f fixture, opts Options) *Input {
	d := AssignDepths(f.edges, f.seeds)
	c := Classify(f.edges, d)
	return &Input{
		Edges:          f.edges,
		Depths:         d,
		Classified:     c,
		Tree:           BuildTree(f.edges, d, c),
		Radii:          RingRadii(d.Counts(), opts.MinNodeSpacing, opts.MinRingGap, opts.BaseRadius),
		MinNodeSpacing: opts.MinNodeSpacing,
		MaxRelaxPasses: opts.MaxRelaxPasses,
		MaxSwapPasses:  opts.MaxSwapPasses,
	}
}

func TestMedianPlacer_SimpleChainIsRadial(t *testing.T) {
	p := MedianPlacer{}.Place(inputFor(simpleChain, DefaultOptions()))
	for _, h := range []string{"A", "B", "C"} {
		if math.Abs(p.Angles[h]-RootAngle) > eps {
			t.Errorf("Angles[%s] = %v, want %v", h, p.Angles[h], RootAngle)
		}
	}
	if p.Crossings != 0 {
		t.Errorf("Crossings = %d, want 0", p.Crossings)
	}
	if _, ok := p.Angles[RootID]; ok {
		t.Error("Angles contains the root")
	}
}

func TestMedianPlacer_FollowsParents(t *testing.T) {
	// A -> D and B -> C: D must land on A's side and C on B's side.
	f := fixture{edges: Edges{"A": {"D"}, "B": {"C"}}, seeds: []string{"A", "B"}}
	p := MedianPlacer{}.Place(inputFor(f, DefaultOptions()))

	if !(p.Angles["A"] < p.Angles["B"]) {
		t.Errorf("A = %v, B = %v, want A < B", p.Angles["A"], p.Angles["B"])
	}
	if !(p.Angles["D"] < p.Angles["C"]) {
		t.Errorf("D = %v, C = %v, want D < C", p.Angles["D"], p.Angles["C"])
	}
	if p.Crossings != 0 {
		t.Errorf("Crossings = %d, want 0", p.Crossings)
	}
	if p.RelaxPasses != 1 {
		t.Errorf("RelaxPasses = %d, want 1", p.RelaxPasses)
	}
}

func TestMedianPlacer_RingOrderMatchesAngles(t *testing.T) {
	p := MedianPlacer{}.Place(inputFor(complexGraph, DefaultOptions()))
	for ring, hs := range p.Rings {
		for i := 0; i+1 < len(hs); i++ {
			if p.Angles[hs[i]] > p.Angles[hs[i+1]] {
				t.Errorf("ring %d order %v not sorted by angle", ring, hs)
				break
			}
		}
	}
	in := inputFor(complexGraph, DefaultOptions())
	if got := dag.CountCrossings(p.Rings, in.Classified.All()); got != p.Crossings {
		t.Errorf("recount = %d, Crossings = %d", got, p.Crossings)
	}
}

func TestMedianPlacer_MinimumGap(t *testing.T) {
	edges := Edges{"root.h": {}}
	for i := range 12 {
		h := string(rune('a'+i)) + ".h"
		edges["root.h"] = append(edges["root.h"], h)
		edges[h] = []string{"common.h"}
	}
	f := fixture{edges: edges, seeds: []string{"root.h"}}
	opts := DefaultOptions()
	in := inputFor(f, opts)
	p := MedianPlacer{}.Place(in)

	for ring, hs := range p.Rings {
		if len(hs) < 2 {
			continue
		}
		angles := make([]float64, len(hs))
		for i, h := range hs {
			angles[i] = p.Angles[h]
		}
		gap := in.minGap(ring)
		if g := minNeighbourGap(angles); g < gap-1e-6 {
			t.Errorf("ring %d min gap = %v, want >= %v", ring, g, gap)
		}
	}
}

func TestMedianPlacer_SwapsRemoveCrossings(t *testing.T) {
	// X's median parent is A, so X and Y tie on A's angle and land in name
	// order. B -> X then crosses A -> Y until one ring swaps its pair.
	f := fixture{
		edges: Edges{"A": {"X", "Y"}, "B": {"X"}},
		seeds: []string{"A", "B"},
	}
	opts := DefaultOptions()
	opts.MaxRelaxPasses = 0

	with := MedianPlacer{}.Place(inputFor(f, opts))
	opts.MaxSwapPasses = 0
	without := MedianPlacer{}.Place(inputFor(f, opts))

	if without.Crossings != 1 {
		t.Fatalf("Crossings without swaps = %d, want 1", without.Crossings)
	}
	if without.SwapPasses != 0 || without.Swaps != 0 {
		t.Errorf("SwapPasses = %d, Swaps = %d with MaxSwapPasses 0", without.SwapPasses, without.Swaps)
	}
	if with.Swaps == 0 {
		t.Errorf("Swaps = 0, want an accepted swap")
	}
	if with.Crossings != 0 {
		t.Errorf("Crossings with swaps = %d, want 0", with.Crossings)
	}

	for ring, hs := range with.Rings {
		for i := 0; i+1 < len(hs); i++ {
			if with.Angles[hs[i]] >= with.Angles[hs[i+1]] {
				t.Errorf("ring %d order %v not sorted by angle after swaps", ring, hs)
				break
			}
		}
	}
	in := inputFor(f, opts)
	if got := dag.CountCrossings(with.Rings, in.Classified.All()); got != with.Crossings {
		t.Errorf("recount = %d, Crossings = %d", got, with.Crossings)
	}
}

func TestMedianPlacer_Fallback(t *testing.T) {
	edges := Edges{"A": {"B"}}
	d := depthsOf(map[string]int{"A": 1, "B": 2, "X": 3})
	c := Classify(edges, d)
	opts := DefaultOptions()
	in := &Input{
		Edges:          edges,
		Depths:         d,
		Classified:     c,
		Tree:           BuildTree(edges, d, c),
		Radii:          RingRadii(d.Counts(), opts.MinNodeSpacing, opts.MinRingGap, 0),
		MinNodeSpacing: opts.MinNodeSpacing,
		MaxRelaxPasses: opts.MaxRelaxPasses,
		MaxSwapPasses:  opts.MaxSwapPasses,
	}
	p := MedianPlacer{}.Place(in)
	if len(p.Angles) != 3 {
		t.Fatalf("Angles = %v, want 3 headers", p.Angles)
	}
	// X anchors on B, the first header of ring 2, so it follows B.
	if math.Abs(p.Angles["X"]-p.Angles["B"]) > eps {
		t.Errorf("Angles[X] = %v, want %v", p.Angles["X"], p.Angles["B"])
	}
}

func TestWedgePlacer(t *testing.T) {
	p := WedgePlacer{}.Place(inputFor(simpleChain, DefaultOptions()))
	for _, h := range []string{"A", "B", "C"} {
		if math.Abs(p.Angles[h]-RootAngle) > eps {
			t.Errorf("Angles[%s] = %v, want %v", h, p.Angles[h], RootAngle)
		}
	}

	// Two ring-1 headers with one and three leaves split the circle 1:3.
	f := fixture{
		edges: Edges{"A": {"a1"}, "B": {"b1", "b2", "b3"}},
		seeds: []string{"A", "B"},
	}
	opts := DefaultOptions()
	opts.MinNodeSpacing = 0
	p = WedgePlacer{}.Place(inputFor(f, opts))
	wantA := NormalizeAngle(RootAngle - math.Pi + math.Pi/4)
	if math.Abs(p.Angles["A"]-wantA) > 1e-9 {
		t.Errorf("Angles[A] = %v, want %v", p.Angles["A"], wantA)
	}
	wantB := NormalizeAngle(RootAngle - math.Pi + math.Pi/2 + 3*math.Pi/4)
	if math.Abs(p.Angles["B"]-wantB) > 1e-9 {
		t.Errorf("Angles[B] = %v, want %v", p.Angles["B"], wantB)
	}
}

func TestPlacers_CompleteAssignment(t *testing.T) {
	for _, name := range PlacerNames() {
		placer := Placers[name]
		for fname, f := range allFixtures {
			t.Run(name+"/"+fname, func(t *testing.T) {
				in := inputFor(f, DefaultOptions())
				p := placer.Place(in)
				if len(p.Angles) != in.Depths.Len() {
					t.Errorf("Angles has %d headers, want %d", len(p.Angles), in.Depths.Len())
				}
				for h, a := range p.Angles {
					if a <= -math.Pi || a > math.Pi {
						t.Errorf("Angles[%s] = %v out of (-π, π]", h, a)
					}
				}
			})
		}
	}
}
