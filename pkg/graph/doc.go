// Package graph provides serialization types for include graphs and their
// radial layouts.
//
// This package defines the wire format shared by the CLI, the HTTP API, the
// cache and the document store.
//
// # Core Types
//
//   - [Graph]: the include graph of one translation unit (root, direct
//     includes, include edges, optional include counts)
//   - [Layout]: a computed radial layout (placed nodes, typed edges, rings)
//   - [Edge]: shared directed edge type
//
// # Graph Serialization
//
// Graphs use a flat edge-list JSON format:
//
//	{
//	  "root": "src/main.cpp",
//	  "direct": ["include/app.h"],
//	  "edges": [{"from": "include/app.h", "to": "include/util.h"}],
//	  "include_counts": {"include/util.h": 3}
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("includes.json")
//	edges, seeds := g.Adjacency(), g.Seeds()
//	res, _ := layout.Compute(edges, seeds, layout.DefaultOptions())
//	doc := graph.FromResult(g, res, nil)
//	graph.WriteLayoutFile(doc, "layout.json")
//
// # Tracing
//
// [Graph.Trace] lists the shortest include chains from the root (or any
// header) to a target, which answers "why is this header pulled in?".
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
