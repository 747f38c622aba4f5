package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/includeviz/pkg/graph"
	"github.com/matzehuels/includeviz/pkg/layout"
	"github.com/matzehuels/includeviz/pkg/render"
)

// pointsPerInch converts layout units (points) to the inches neato reads
// pos in.
const pointsPerInch = 72.0

// Node fill colours by include count.
const (
	colorRoot         = "#87CEEB"
	colorIntermediate = "#d0d0d0"
	colorHot          = "#ff6b6b"
	colorWarm         = "#ffa94d"
	colorMild         = "#ffd43b"
	colorCold         = "#e9ecef"
)

var edgeColors = map[string]string{
	graph.EdgeTypeRoot:              "#888888",
	layout.EdgeTree.String():        "#cccccc",
	layout.EdgeBack.String():        "#ff00004d",
	layout.EdgeSameLevel.String():   "#0000ff4d",
	layout.EdgeForwardSkip.String(): "#8000804d",
}

// Options controls DOT generation.
type Options struct {
	// Labels appends the include count to each header label.
	Labels bool

	// Scale multiplies all coordinates. Zero means 1.
	Scale float64

	// Types limits the drawn edges to these classifications. Empty draws
	// every edge.
	Types []string
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

func (o Options) draws(edgeType string) bool {
	if len(o.Types) == 0 || edgeType == graph.EdgeTypeRoot {
		return true
	}
	for _, t := range o.Types {
		if t == edgeType {
			return true
		}
	}
	return false
}

// ToDOT converts a layout document to DOT with every node pinned at its
// computed position. The y axis is flipped so that angle -π/2 points up.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=10, fontname=\"Helvetica\", margin=\"0.08,0.04\"];\n")
	buf.WriteString("  edge [arrowsize=0.5, penwidth=1];\n")
	buf.WriteString("\n")

	s := opts.scale()
	for _, n := range l.Nodes {
		x := n.X * s / pointsPerInch
		y := -n.Y * s / pointsPerInch
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Labels)),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(x), fmtFloat(y)),
		}
		attrs = append(attrs, fmtAttrs(n)...)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if !opts.draws(e.Type) {
			continue
		}
		color, ok := edgeColors[e.Type]
		if !ok {
			color = edgeColors[layout.EdgeTree.String()]
		}
		fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", e.From, e.To, color)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, counts bool) string {
	if !counts || n.IsRoot() || n.Intermediate {
		return n.Label
	}
	return fmt.Sprintf("%s\n(%dx)", n.Label, n.IncludeCount)
}

func fmtAttrs(n graph.Node) []string {
	switch {
	case n.IsRoot():
		return []string{fmt.Sprintf("fillcolor=%q", colorRoot), "fontsize=12"}
	case n.Intermediate:
		return []string{fmt.Sprintf("fillcolor=%q", colorIntermediate), "fontsize=8", "fontcolor=\"#555555\""}
	}
	attrs := []string{fmt.Sprintf("fillcolor=%q", FillColor(n.IncludeCount))}
	if n.Fallback {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// FillColor returns the node fill for an include count.
func FillColor(count int) string {
	switch {
	case count > 10:
		return colorHot
	case count > 5:
		return colorWarm
	case count > 2:
		return colorMild
	default:
		return colorCold
	}
}

func fmtFloat(f float64) string {
	if f == 0 {
		f = 0 // normalise -0
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// RenderSVG lays out dot with neato and returns the SVG. Pinned positions
// are kept as given.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag to a zero-origin viewBox with
// matching width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders dot to SVG and converts it to PDF.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders dot to SVG and converts it to PNG at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
