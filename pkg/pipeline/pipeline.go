// Package pipeline runs the load → filter → layout → render pipeline for
// include graphs.
//
// The CLI and the HTTP server share this package so that both lay out,
// cache and render graphs the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read an include graph from a JSON file or stdin
//  2. Layout: Filter by path prefix and compute the radial layout
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Layouts are cached by graph content and options, artifacts by layout
// content and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, err := pipeline.Load(ctx, "graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := runner.Layout(ctx, g, pipeline.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifacts, err := runner.Render(ctx, res.Layout, pipeline.RenderOptions{Formats: []string{"svg"}})
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/includeviz/pkg/cache"
	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/filter"
	"github.com/matzehuels/includeviz/pkg/graph"
	"github.com/matzehuels/includeviz/pkg/layout"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Layout Configuration
// =============================================================================

// Options configures the layout stage. It supports JSON for API requests
// and TOML for config files.
type Options struct {
	layout.Options

	// Prefixes restricts the layout to headers under these paths. Empty
	// keeps every header.
	Prefixes []string `json:"prefixes,omitempty" toml:"prefixes"`

	// Refresh skips the cache lookup. The result is still stored.
	Refresh bool `json:"refresh,omitempty" toml:"-"`
}

// DefaultOptions returns the default layout options without prefixes.
func DefaultOptions() Options {
	return Options{Options: layout.DefaultOptions()}
}

// Validate checks the layout tuning and every prefix.
func (o *Options) Validate() error {
	if err := o.Options.Validate(); err != nil {
		return err
	}
	for _, p := range o.Prefixes {
		if err := errors.ValidatePrefix(p); err != nil {
			return err
		}
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	placer := o.Placer
	if placer == "" {
		placer = layout.DefaultPlacer
	}
	prefixes := slices.Clone(o.Prefixes)
	slices.Sort(prefixes)
	return cache.LayoutKeyOpts{
		Placer:         placer,
		MinNodeSpacing: o.MinNodeSpacing,
		MinRingGap:     o.MinRingGap,
		BaseRadius:     o.BaseRadius,
		MaxRelaxPasses: o.MaxRelaxPasses,
		MaxSwapPasses:  o.MaxSwapPasses,
		MaxDepth:       o.MaxDepth,
		Prefixes:       slices.Compact(prefixes),
	}
}

// RenderOptions configures the render stage.
type RenderOptions struct {
	Formats []string `json:"formats,omitempty"`

	// Labels appends include counts to node labels.
	Labels bool `json:"labels,omitempty"`

	// Scale multiplies layout coordinates. Zero means 1.
	Scale float64 `json:"scale,omitempty"`

	// Types limits the drawn edge classifications.
	Types []string `json:"types,omitempty"`
}

// Validate applies defaults and checks formats and edge types.
func (o *RenderOptions) Validate() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "scale must not be negative, got %g", o.Scale)
	}
	for _, t := range o.Types {
		if t == graph.EdgeTypeRoot {
			continue
		}
		if _, err := layout.ParseEdgeType(t); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOptions, err, "edge type filter")
		}
	}
	return nil
}

// RenderKeyOpts returns cache key options for one format.
func (o *RenderOptions) RenderKeyOpts(format string) cache.RenderKeyOpts {
	types := slices.Clone(o.Types)
	slices.Sort(types)
	return cache.RenderKeyOpts{
		Format: format,
		Labels: o.Labels,
		Scale:  o.Scale,
		Types:  types,
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid format: %q (must be one of: %s)",
			format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a layout run.
type Result struct {
	// Layout is the layout document.
	Layout graph.Layout

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Filter is the prefix filter outcome. It is nil when the layout came
	// from the cache.
	Filter *filter.Result

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Headers    int // headers in the input graph
	Visible    int // headers placed on a ring
	Edges      int // classified edges in the layout
	LayoutTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // every requested artifact came from cache
}
