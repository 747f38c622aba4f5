package pipeline

import (
	"context"

	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/graph"
	"github.com/matzehuels/includeviz/pkg/render/nodelink"
)

// pngScale is the resolution factor for PNG output.
const pngScale = 2.0

// RenderFormat renders l in a single format without caching.
func RenderFormat(ctx context.Context, l graph.Layout, format string, opts RenderOptions) ([]byte, error) {
	if format == FormatJSON {
		return graph.MarshalLayout(l)
	}

	dot := nodelink.ToDOT(l, nodelink.Options{
		Labels: opts.Labels,
		Scale:  opts.Scale,
		Types:  opts.Types,
	})

	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, pngScale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}
