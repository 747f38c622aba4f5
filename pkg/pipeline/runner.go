package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/includeviz/pkg/cache"
	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/filter"
	"github.com/matzehuels/includeviz/pkg/graph"
	"github.com/matzehuels/includeviz/pkg/layout"
	"github.com/matzehuels/includeviz/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Layout filters g by opts.Prefixes and computes its radial layout.
//
// Depths are assigned on the full graph before filtering, so a visible
// header keeps its ring even when the chain that reached it is hidden.
// Results are cached by graph content and options.
func (r *Runner) Layout(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	data, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize graph")
	}
	res := &Result{GraphHash: cache.Hash(data)}
	res.Stats.Headers = len(g.Headers())
	cacheKey := r.Keyer.LayoutKey(res.GraphHash, opts.LayoutKeyOpts())

	start := time.Now()
	if !opts.Refresh {
		if cached, ok := r.cachedLayout(ctx, cacheKey); ok {
			res.Layout = cached
			res.CacheInfo.LayoutHit = true
			res.Stats.LayoutTime = time.Since(start)
			res.fillCounts()
			r.Logger.Debug("layout cache hit", "key", cacheKey)
			return res, nil
		}
	}

	doc, f, err := r.compute(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.Layout = doc
	res.Filter = f
	res.Stats.LayoutTime = time.Since(start)
	res.fillCounts()

	r.Logger.Info("computed layout",
		"headers", res.Stats.Visible,
		"crossings", doc.Crossings,
		"duration", res.Stats.LayoutTime)

	if data, err := graph.MarshalLayout(doc); err == nil {
		r.store(ctx, cacheKey, data, cache.LayoutTTL)
	}
	return res, nil
}

// compute runs filter and layout without touching the cache.
func (r *Runner) compute(ctx context.Context, g *graph.Graph, opts Options) (graph.Layout, *filter.Result, error) {
	hooks := observability.Pipeline()

	edges := g.Adjacency()
	depths := layout.AssignDepths(edges, g.Seeds())

	headers := slices.DeleteFunc(g.Headers(), func(h string) bool { return h == g.Root })
	f := filter.Apply(edges, opts.Prefixes, headers)
	if len(opts.Prefixes) > 0 {
		depths = depths.Restrict(f.Visible)
		edges = f.Restrict(edges)
	}
	hooks.OnFilterComplete(ctx, opts.Prefixes, len(f.Included)+len(f.Intermediate), len(f.Intermediate), len(f.Warnings))
	if len(f.Warnings) > 0 {
		r.Logger.Debug("filter found external chains", "count", len(f.Warnings))
	}

	placer := opts.LayoutKeyOpts().Placer
	hooks.OnLayoutStart(ctx, placer, depths.Len())
	start := time.Now()
	lr, err := layout.ComputeFromDepths(edges, depths, opts.Options)
	if err != nil {
		hooks.OnLayoutComplete(ctx, placer, 0, time.Since(start), err)
		return graph.Layout{}, nil, err
	}
	hooks.OnLayoutComplete(ctx, placer, lr.Crossings, time.Since(start), nil)

	doc := graph.FromResult(g, lr, f.Intermediate)
	doc.Warnings = f.Warnings
	return doc, f, nil
}

// Render generates artifacts for every requested format. Artifacts are
// cached by layout content and render options.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts RenderOptions) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// RenderWithCacheInfo is [Runner.Render] that also reports whether every
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts RenderOptions) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		key := r.Keyer.RenderKey(layoutHash, opts.RenderKeyOpts(format))
		if data, ok := r.lookup(ctx, key); ok {
			artifacts[format] = data
			continue
		}
		allCached = false

		data, err := r.renderFormat(ctx, l, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		r.store(ctx, key, data, cache.RenderTTL)
	}
	return artifacts, allCached, nil
}

func (r *Runner) renderFormat(ctx context.Context, l graph.Layout, format string, opts RenderOptions) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := RenderFormat(ctx, l, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("rendered", "format", format, "bytes", len(data), "duration", time.Since(start))
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (graph.Layout, bool) {
	data, ok := r.lookup(ctx, key)
	if !ok {
		return graph.Layout{}, false
	}
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		r.Logger.Warn("discarding corrupt cached layout", "key", key, "error", err)
		return graph.Layout{}, false
	}
	return l, true
}

// lookup reads key from the cache. Backend errors count as misses.
func (r *Runner) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return data, true
}

// store writes to the cache. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

func (res *Result) fillCounts() {
	res.Stats.Visible = 0
	for _, n := range res.Layout.Nodes {
		if !n.IsRoot() {
			res.Stats.Visible++
		}
	}
	res.Stats.Edges = 0
	for _, e := range res.Layout.Edges {
		if e.Type != graph.EdgeTypeRoot {
			res.Stats.Edges++
		}
	}
}
