// Package dag provides the row-indexed graph used by the radial include
// layout.
//
// # Overview
//
// A radial layout places every header on a ring around a synthetic root.
// This package holds the primary-parent spanning tree that drives angle
// placement: nodes carry a Row (their ring index) and every edge joins
// consecutive rows.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "__root__", Row: 0, Kind: dag.NodeKindRoot})
//	g.AddNode(dag.Node{ID: "app.h", Row: 1})
//	g.AddEdge(dag.Edge{From: "__root__", To: "app.h"})
//
// [DAG.Validate] checks row consistency and acyclicity, and
// [DAG.ValidateTree] additionally checks that every node has exactly one
// parent and is reachable from the root.
//
// # Node Types
//
//   - [NodeKindRegular]: headers from the include graph
//   - [NodeKindBridge]: chain links that attach a header lacking a tree
//     parent to a shallower ring
//   - [NodeKindRoot]: the centre of the layout
//
// Bridge nodes keep a [Node.MasterID] pointing at the header the chain
// starts from. [DAG.RegularParent] walks up past them.
//
// # Edge Crossings
//
// [CountCrossings] counts interleaved edge pairs per ring pair with a
// Fenwick tree in O(E log V). [CrossingCounter] caches those counts so the
// swap refinement only recounts the ring pairs touched by a swap.
//
// # Concurrency
//
// DAG and CrossingCounter instances are not safe for concurrent use.
package dag
