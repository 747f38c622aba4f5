package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/matzehuels/includeviz/pkg/graph"
	"github.com/matzehuels/includeviz/pkg/observability"
)

// Stdin is the source name that reads a graph from standard input.
const Stdin = "-"

// Load reads an include graph from a JSON file, or from standard input when
// source is [Stdin].
func Load(ctx context.Context, source string) (*graph.Graph, error) {
	return LoadFrom(ctx, source, os.Stdin)
}

// LoadFrom is [Load] with an explicit reader for [Stdin].
func LoadFrom(ctx context.Context, source string, stdin io.Reader) (*graph.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	var g *graph.Graph
	var err error
	if source == Stdin {
		g, err = graph.ReadGraph(stdin)
	} else {
		g, err = graph.ReadGraphFile(source)
	}

	headers := 0
	if g != nil {
		headers = len(g.Headers())
	}
	hooks.OnLoadComplete(ctx, source, headers, time.Since(start), err)
	return g, err
}
