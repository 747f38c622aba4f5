// Package pkg provides the libraries behind includeviz, a radial layout
// engine for C/C++ include graphs.
//
// # Overview
//
// A translation unit sits at the centre of the drawing. Headers it includes
// directly form the first ring and every other header lands on the ring of its
// shortest include distance. Headers are then ordered around their rings so
// that include edges cross as little as possible.
//
// The data flow:
//
//	graph JSON (root, edges, include counts)
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [filter] package (optional path-prefix restriction)
//	         ↓
//	    [layout] package (depths, spanning tree, ordering, radii)
//	         ↓
//	    [render/nodelink] package (DOT, then SVG/PNG/PDF)
//
// [pipeline] wires these stages together with caching and is what the CLI
// and the HTTP server call.
//
// # Quick Start
//
//	g, err := graph.ReadGraphFile("main.json")
//	if err != nil {
//	    return err
//	}
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Layout(ctx, g, pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//
//	artifacts, err := runner.Render(ctx, res.Layout, pipeline.RenderOptions{
//	    Formats: []string{pipeline.FormatSVG},
//	    Labels:  true,
//	})
//
// # Main Packages
//
// [layout] holds the algorithms: BFS depth assignment, edge classification
// (tree, back, same-ring, skip), best-parent spanning tree construction with
// a bridge fallback for headers whose parents were filtered out, and the
// circular-median and wedge placers. Crossings are counted with [dag].
//
// [graph] defines the serialized graph and layout documents and the include
// chain tracer.
//
// [cache] and [storage] hold computed layouts: a file or Redis cache keyed by
// content hash, and a MongoDB document store that hands out layout IDs.
//
// [errors] defines the error codes shared by every package and mapped to exit
// codes and HTTP statuses by the front ends.
//
// [observability] exposes hooks for pipeline, cache and HTTP events.
package pkg
