// Package render provides output format conversion for include graph
// layouts.
//
// # Overview
//
// The [nodelink] subpackage turns a computed radial layout into Graphviz
// DOT with pinned node positions and renders it to SVG. This package adds
// the conversions from SVG to other formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
