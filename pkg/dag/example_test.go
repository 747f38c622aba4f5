package dag_test

import (
	"fmt"

	"github.com/matzehuels/includeviz/pkg/dag"
)

func ExampleDAG_basic() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "__root__", Row: 0, Kind: dag.NodeKindRoot})
	_ = g.AddNode(dag.Node{ID: "app.h", Row: 1})
	_ = g.AddNode(dag.Node{ID: "util.h", Row: 2})
	_ = g.AddEdge(dag.Edge{From: "__root__", To: "app.h"})
	_ = g.AddEdge(dag.Edge{From: "app.h", To: "util.h"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Children:", g.Children("app.h"))
	fmt.Println("Tree:", g.ValidateTree("__root__") == nil)
	// Output:
	// Nodes: 3
	// Edges: 2
	// Children: [util.h]
	// Tree: true
}

func ExampleDAG_RegularParent() {
	// deep.h hangs off app.h through a bridge on row 2
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "app.h", Row: 1})
	_ = g.AddNode(dag.Node{ID: "deep.h__bridge_2", Row: 2, Kind: dag.NodeKindBridge, MasterID: "deep.h"})
	_ = g.AddNode(dag.Node{ID: "deep.h", Row: 3})
	_ = g.AddEdge(dag.Edge{From: "app.h", To: "deep.h__bridge_2"})
	_ = g.AddEdge(dag.Edge{From: "deep.h__bridge_2", To: "deep.h"})

	p, _ := g.RegularParent("deep.h")
	fmt.Println("Parent:", p)
	// Output:
	// Parent: app.h
}

func ExampleCountCrossings() {
	orders := map[int][]string{
		1: {"a.h", "b.h"},
		2: {"c.h", "d.h"},
	}
	edges := []dag.Edge{
		{From: "a.h", To: "d.h"},
		{From: "b.h", To: "c.h"},
	}
	fmt.Println("Crossings:", dag.CountCrossings(orders, edges))
	// Output:
	// Crossings: 1
}

func ExampleCrossingCounter() {
	orders := map[int][]string{
		1: {"a.h", "b.h"},
		2: {"c.h", "d.h"},
	}
	edges := []dag.Edge{
		{From: "a.h", To: "d.h"},
		{From: "b.h", To: "c.h"},
	}
	c := dag.NewCrossingCounter(orders, edges)
	fmt.Println("Before:", c.Total())
	fmt.Println("After swap:", c.Swap(2, 0))
	fmt.Println("Order:", c.Order(2))
	// Output:
	// Before: 1
	// After swap: 0
	// Order: [d.h c.h]
}
