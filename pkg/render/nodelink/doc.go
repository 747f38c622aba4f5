// Package nodelink renders radial include-graph layouts as node-link
// diagrams through Graphviz.
//
// # Overview
//
// Positions are computed by pkg/layout, not by Graphviz. [ToDOT] pins every
// node with pos="x,y!" and [RenderSVG] runs the neato engine, which keeps
// pinned nodes in place and only routes edges.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Styling
//
// Node fill encodes how often a header is included: more than 10 red, more
// than 5 orange, more than 2 yellow, otherwise light grey. Intermediate
// headers are grey and smaller. The root is light blue. Edge colour
// encodes the classification: tree grey, back red, same-level blue,
// forward-skip purple.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
