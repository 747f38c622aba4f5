package layout

import "testing"

type fixture struct {
	edges Edges
	seeds []string
}

var (
	simpleChain = fixture{
		edges: Edges{"A": {"B"}, "B": {"C"}},
		seeds: []string{"A"},
	}
	diamond = fixture{
		edges: Edges{"A": {"B", "C"}, "B": {"D"}, "C": {"D"}},
		seeds: []string{"A"},
	}
	multipleRoots = fixture{
		edges: Edges{"A": {"C"}, "B": {"C"}, "C": {"D"}},
		seeds: []string{"A", "B"},
	}
	backEdge = fixture{
		edges: Edges{"A": {"B"}, "B": {"C"}, "C": {"A"}},
		seeds: []string{"A"},
	}
	sameLevel = fixture{
		edges: Edges{"A": {"B", "C"}, "B": {"C"}},
		seeds: []string{"A"},
	}
	shortcut = fixture{
		edges: Edges{"A": {"B", "D"}, "B": {"C"}, "C": {"D"}},
		seeds: []string{"A"},
	}
	complexGraph = fixture{
		edges: Edges{
			"/proj/A.h": {"/proj/B.h", "/proj/C.h"},
			"/proj/B.h": {"/proj/D.h", "/proj/E.h"},
			"/proj/C.h": {"/proj/E.h", "/proj/F.h"},
			"/proj/D.h": {"/proj/G.h"},
			"/proj/E.h": {"/proj/G.h"},
			"/proj/F.h": {"/proj/G.h", "/proj/B.h"},
		},
		seeds: []string{"/proj/A.h"},
	}
)

var allFixtures = map[string]fixture{
	"simple chain":   simpleChain,
	"diamond":        diamond,
	"multiple roots": multipleRoots,
	"back edge":      backEdge,
	"same level":     sameLevel,
	"shortcut":       shortcut,
	"complex":        complexGraph,
	"self loop":      {edges: Edges{"A": {"A", "B"}}, seeds: []string{"A"}},
}

// depthsOf builds Depths from an explicit map, bypassing BFS.
func depthsOf(m map[string]int) *Depths {
	d := &Depths{ByHeader: m}
	d.rebuildRings()
	return d
}

func mustCompute(t *testing.T, f fixture, opts Options) *Result {
	t.Helper()
	res, err := Compute(f.edges, f.seeds, opts)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return res
}
