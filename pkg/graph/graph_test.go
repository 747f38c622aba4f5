package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/includeviz/pkg/errors"
)

func sampleGraph() *Graph {
	g := &Graph{Root: "src/main.cpp", Direct: []string{"inc/app.h", "inc/log.h"}}
	g.AddEdge("inc/app.h", "inc/util.h")
	g.AddEdge("inc/log.h", "inc/util.h")
	g.AddEdge("inc/util.h", "inc/base.h")
	return g
}

func TestGraph_Seeds(t *testing.T) {
	tests := []struct {
		name string
		g    *Graph
		want []string
	}{
		{"Direct", sampleGraph(), []string{"inc/app.h", "inc/log.h"}},
		{
			name: "FromRootEdges",
			g: &Graph{Root: "main.cpp", Edges: []Edge{
				{From: "main.cpp", To: "b.h"},
				{From: "main.cpp", To: "a.h"},
				{From: "main.cpp", To: "b.h"},
				{From: "a.h", To: "c.h"},
			}},
			want: []string{"b.h", "a.h"},
		},
		{"NoRoot", &Graph{Edges: []Edge{{From: "a.h", To: "b.h"}}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.Seeds(); !slices.Equal(got, tt.want) {
				t.Errorf("Seeds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGraph_Adjacency(t *testing.T) {
	g := &Graph{Root: "main.cpp", Edges: []Edge{
		{From: "main.cpp", To: "a.h"},
		{From: "a.h", To: "b.h"},
		{From: "a.h", To: "c.h"},
	}}
	adj := g.Adjacency()
	if _, ok := adj["main.cpp"]; ok {
		t.Error("Adjacency() kept edges leaving the root")
	}
	if got := adj.Children("a.h"); !slices.Equal(got, []string{"b.h", "c.h"}) {
		t.Errorf("Children(a.h) = %v, want [b.h c.h]", got)
	}
}

func TestGraph_Headers(t *testing.T) {
	got := sampleGraph().Headers()
	want := []string{"inc/app.h", "inc/base.h", "inc/log.h", "inc/util.h"}
	if !slices.Equal(got, want) {
		t.Errorf("Headers() = %v, want %v", got, want)
	}
}

func TestGraph_IncludeCount(t *testing.T) {
	g := sampleGraph()
	g.IncludeCounts = map[string]int{"inc/base.h": 12}

	tests := []struct {
		header string
		want   int
	}{
		{"inc/base.h", 12},
		{"inc/util.h", 2},
		{"inc/app.h", 1},
		{"missing.h", 0},
	}
	for _, tt := range tests {
		if got := g.IncludeCount(tt.header); got != tt.want {
			t.Errorf("IncludeCount(%s) = %d, want %d", tt.header, got, tt.want)
		}
	}
}

func TestGraph_ResolvedIncludeCounts(t *testing.T) {
	g := sampleGraph()
	g.IncludeCounts = map[string]int{"inc/base.h": 12}

	counts := g.ResolvedIncludeCounts()
	for _, h := range g.Headers() {
		from := map[string]bool{}
		for _, e := range g.Edges {
			if e.To == h {
				from[e.From] = true
			}
		}
		want := len(from)
		if !from[g.Root] && slices.Contains(g.Direct, h) {
			want++
		}
		if n, ok := g.IncludeCounts[h]; ok {
			want = n
		}
		if counts[h] != want {
			t.Errorf("ResolvedIncludeCounts()[%s] = %d, want %d", h, counts[h], want)
		}
	}
	if _, ok := counts["missing.h"]; ok {
		t.Error("ResolvedIncludeCounts() has an entry for missing.h")
	}
}

func TestGraph_Validate(t *testing.T) {
	tests := []struct {
		name    string
		g       *Graph
		wantErr bool
	}{
		{"Valid", sampleGraph(), false},
		{"Empty", &Graph{}, false},
		{"EmptyEndpoint", &Graph{Edges: []Edge{{From: "a.h", To: ""}}}, true},
		{"ControlChar", &Graph{Direct: []string{"a\x01.h"}}, true},
		{"NegativeCount", &Graph{IncludeCounts: map[string]int{"a.h": -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidGraph) {
				t.Errorf("GetCode() = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidGraph)
			}
		})
	}
}

func TestMarshalGraph_RoundTrip(t *testing.T) {
	g := sampleGraph()
	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error: %v", err)
	}
	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() error: %v", err)
	}
	if got.Root != g.Root || len(got.Edges) != len(g.Edges) || !slices.Equal(got.Direct, g.Direct) {
		t.Errorf("round trip = %+v, want %+v", got, g)
	}
}

func TestReadGraph_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"Malformed", `{"edges": [`, errors.ErrCodeInvalidFormat},
		{"WrongType", `{"edges": {"a": "b"}}`, errors.ErrCodeInvalidFormat},
		{"BadHeader", `{"edges": [{"from": "", "to": "b.h"}]}`, errors.ErrCodeInvalidGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadGraph() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGraphFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")

	if err := WriteGraphFile(sampleGraph(), path); err != nil {
		t.Fatalf("WriteGraphFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"root": "src/main.cpp"`)) {
		t.Errorf("file content missing root:\n%s", data)
	}

	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error: %v", err)
	}
	if len(g.Edges) != 3 {
		t.Errorf("len(Edges) = %d, want 3", len(g.Edges))
	}

	_, err = ReadGraphFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadGraphFile(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
