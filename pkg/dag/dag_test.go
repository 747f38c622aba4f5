package dag

import (
	"errors"
	"slices"
	"testing"
)

func newTree(t *testing.T) *DAG {
	t.Helper()
	g := New()
	nodes := []Node{
		{ID: "__root__", Row: 0, Kind: NodeKindRoot},
		{ID: "a", Row: 1},
		{ID: "b", Row: 2},
		{ID: "c", Row: 2},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s) error: %v", n.ID, err)
		}
	}
	for _, e := range []Edge{{"__root__", "a"}, {"a", "b"}, {"a", "c"}} {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%v) error: %v", e, err)
		}
	}
	return g
}

func TestAddNode_Errors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddEdge_Errors(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(unknown from) = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(unknown to) = %v, want ErrUnknownTargetNode", err)
	}
}

func TestNodes_Sorted(t *testing.T) {
	g := newTree(t)
	var got []string
	for _, n := range g.Nodes() {
		got = append(got, n.ID)
	}
	want := []string{"__root__", "a", "b", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
	if c := g.Children("a"); !slices.Equal(c, []string{"b", "c"}) {
		t.Errorf("Children(a) = %v, want [b c]", c)
	}
	if p := g.Parents("b"); !slices.Equal(p, []string{"a"}) {
		t.Errorf("Parents(b) = %v, want [a]", p)
	}
}

func TestValidate(t *testing.T) {
	g := newTree(t)
	if err := g.ValidateTree("__root__"); err != nil {
		t.Errorf("ValidateTree() = %v, want nil", err)
	}

	skip := New()
	_ = skip.AddNode(Node{ID: "a", Row: 1})
	_ = skip.AddNode(Node{ID: "b", Row: 3})
	_ = skip.AddEdge(Edge{From: "a", To: "b"})
	if err := skip.Validate(); !errors.Is(err, ErrNonConsecutiveRows) {
		t.Errorf("Validate(skip) = %v, want ErrNonConsecutiveRows", err)
	}
}

func TestValidateTree_Violations(t *testing.T) {
	multi := newTree(t)
	_ = multi.AddNode(Node{ID: "d", Row: 3})
	_ = multi.AddEdge(Edge{From: "b", To: "d"})
	_ = multi.AddEdge(Edge{From: "c", To: "d"})
	if err := multi.ValidateTree("__root__"); !errors.Is(err, ErrMultipleParents) {
		t.Errorf("ValidateTree(two parents) = %v, want ErrMultipleParents", err)
	}

	orphan := newTree(t)
	_ = orphan.AddNode(Node{ID: "lost", Row: 1})
	if err := orphan.ValidateTree("__root__"); !errors.Is(err, ErrUnreachableNode) {
		t.Errorf("ValidateTree(orphan) = %v, want ErrUnreachableNode", err)
	}
}

func TestRegularParent(t *testing.T) {
	g := newTree(t)
	_ = g.AddNode(Node{ID: "b__bridge_3", Row: 3, Kind: NodeKindBridge, MasterID: "b"})
	_ = g.AddNode(Node{ID: "x", Row: 4})
	_ = g.AddEdge(Edge{From: "b", To: "b__bridge_3"})
	_ = g.AddEdge(Edge{From: "b__bridge_3", To: "x"})

	if p, ok := g.RegularParent("x"); !ok || p != "b" {
		t.Errorf("RegularParent(x) = %q, %v, want b, true", p, ok)
	}
	if p, ok := g.RegularParent("a"); !ok || p != "__root__" {
		t.Errorf("RegularParent(a) = %q, %v, want __root__, true", p, ok)
	}
	if _, ok := g.RegularParent("__root__"); ok {
		t.Error("RegularParent(root) ok = true, want false")
	}
	n, _ := g.Node("b__bridge_3")
	if !n.IsBridge() || n.MasterID != "b" {
		t.Errorf("bridge node = %+v, want a bridge for b", n)
	}
}
