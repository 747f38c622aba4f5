package layout

import (
	"slices"
	"testing"
)

func TestAssignDepths(t *testing.T) {
	tests := []struct {
		name string
		f    fixture
		want map[string]int
	}{
		{"simple chain", simpleChain, map[string]int{"A": 1, "B": 2, "C": 3}},
		{"diamond", diamond, map[string]int{"A": 1, "B": 2, "C": 2, "D": 3}},
		{"multiple roots", multipleRoots, map[string]int{"A": 1, "B": 1, "C": 2, "D": 3}},
		{"back edge", backEdge, map[string]int{"A": 1, "B": 2, "C": 3}},
		{"shortcut", shortcut, map[string]int{"A": 1, "B": 2, "D": 2, "C": 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := AssignDepths(tt.f.edges, tt.f.seeds)
			if d.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", d.Len(), len(tt.want))
			}
			for h, want := range tt.want {
				if got, ok := d.Depth(h); !ok || got != want {
					t.Errorf("Depth(%s) = %d, %v, want %d", h, got, ok, want)
				}
			}
		})
	}
}

func TestAssignDepths_Empty(t *testing.T) {
	if d := AssignDepths(nil, []string{"A"}); d.Len() != 1 {
		t.Errorf("AssignDepths(nil edges) Len() = %d, want 1", d.Len())
	}
	if d := AssignDepths(simpleChain.edges, nil); d.Len() != 0 || d.MaxDepth() != 0 {
		t.Errorf("AssignDepths(no seeds) = %v, want empty", d.ByHeader)
	}
	if d := AssignDepths(nil, nil); len(d.Rings) != 0 {
		t.Errorf("AssignDepths(nil, nil) Rings = %v, want empty", d.Rings)
	}
}

func TestAssignDepths_Unreachable(t *testing.T) {
	edges := Edges{"A": {"B"}, "X": {"A", "Y"}}
	d := AssignDepths(edges, []string{"A"})
	for _, h := range []string{"X", "Y"} {
		if _, ok := d.Depth(h); ok {
			t.Errorf("Depth(%s) ok = true, want unreachable", h)
		}
	}
}

func TestAssignDepths_RingsSorted(t *testing.T) {
	edges := Edges{"m": {"z", "b", "k", "b"}}
	d := AssignDepths(edges, []string{"m"})
	want := []string{"b", "k", "z"}
	if got := d.Rings[2]; !slices.Equal(got, want) {
		t.Errorf("Rings[2] = %v, want %v", got, want)
	}
	if got := d.Counts(); got[1] != 1 || got[2] != 3 {
		t.Errorf("Counts() = %v, want map[1:1 2:3]", got)
	}
}

func TestAssignDepths_ShortestPath(t *testing.T) {
	// Every header deeper than ring 1 has a parent exactly one ring in.
	d := AssignDepths(complexGraph.edges, complexGraph.seeds)
	for h, depth := range d.ByHeader {
		if depth == 1 {
			continue
		}
		found := false
		for _, p := range complexGraph.edges.Parents() {
			pd, ok := d.Depth(p)
			if ok && pd == depth-1 && slices.Contains(complexGraph.edges[p], h) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s at depth %d has no parent at depth %d", h, depth, depth-1)
		}
	}
}

func TestAssignDepths_SingleMembership(t *testing.T) {
	d := AssignDepths(complexGraph.edges, complexGraph.seeds)
	seen := make(map[string]int)
	for ring, hs := range d.Rings {
		for _, h := range hs {
			if prev, dup := seen[h]; dup {
				t.Errorf("%s on rings %d and %d", h, prev, ring)
			}
			seen[h] = ring
		}
	}
	if len(seen) != d.Len() {
		t.Errorf("rings hold %d headers, want %d", len(seen), d.Len())
	}
}

func TestDepths_Truncate(t *testing.T) {
	d := AssignDepths(complexGraph.edges, complexGraph.seeds)
	tr := d.Truncate(2)
	if tr.MaxDepth() != 2 || tr.Len() != 3 {
		t.Errorf("Truncate(2) MaxDepth() = %d, Len() = %d, want 2, 3", tr.MaxDepth(), tr.Len())
	}
	if all := d.Truncate(0); all.Len() != d.Len() {
		t.Errorf("Truncate(0) Len() = %d, want %d", all.Len(), d.Len())
	}
	if d.MaxDepth() != 4 {
		t.Errorf("Truncate() modified the receiver: MaxDepth() = %d, want 4", d.MaxDepth())
	}
}
