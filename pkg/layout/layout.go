package layout

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/includeviz/pkg/errors"
)

// Default tuning values.
const (
	DefaultMinNodeSpacing = 80.0
	DefaultMinRingGap     = 100.0
	DefaultBaseRadius     = 0.0
	DefaultMaxRelaxPasses = 10
	DefaultMaxSwapPasses  = 30
	DefaultPlacer         = "median"
)

// Options tunes [Compute].
type Options struct {
	// MinNodeSpacing is the smallest arc length between neighbours on a ring.
	MinNodeSpacing float64 `json:"min_node_spacing" toml:"min_node_spacing"`
	// MinRingGap is the smallest radial distance between consecutive rings.
	MinRingGap float64 `json:"min_ring_gap" toml:"min_ring_gap"`
	// BaseRadius seeds the radius recurrence below ring 1.
	BaseRadius float64 `json:"base_radius" toml:"base_radius"`

	MaxRelaxPasses int `json:"max_relax_passes" toml:"max_relax_passes"`
	MaxSwapPasses  int `json:"max_swap_passes" toml:"max_swap_passes"`

	// MaxDepth drops rings deeper than this. Zero keeps all rings.
	MaxDepth int `json:"max_depth" toml:"max_depth"`

	// Placer names a strategy in [Placers].
	Placer string `json:"placer" toml:"placer"`

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger `json:"-" toml:"-"`
}

// DefaultOptions returns the default tuning.
func DefaultOptions() Options {
	return Options{
		MinNodeSpacing: DefaultMinNodeSpacing,
		MinRingGap:     DefaultMinRingGap,
		BaseRadius:     DefaultBaseRadius,
		MaxRelaxPasses: DefaultMaxRelaxPasses,
		MaxSwapPasses:  DefaultMaxSwapPasses,
		Placer:         DefaultPlacer,
	}
}

// Validate reports the first invalid field as an INVALID_OPTIONS error.
func (o Options) Validate() error {
	switch {
	case o.MinNodeSpacing < 0:
		return errors.New(errors.ErrCodeInvalidOptions, "min node spacing must not be negative, got %g", o.MinNodeSpacing)
	case o.MinRingGap <= 0:
		return errors.New(errors.ErrCodeInvalidOptions, "min ring gap must be positive, got %g", o.MinRingGap)
	case o.BaseRadius < 0:
		return errors.New(errors.ErrCodeInvalidOptions, "base radius must not be negative, got %g", o.BaseRadius)
	case o.MaxRelaxPasses < 0:
		return errors.New(errors.ErrCodeInvalidOptions, "max relax passes must not be negative, got %d", o.MaxRelaxPasses)
	case o.MaxSwapPasses < 0:
		return errors.New(errors.ErrCodeInvalidOptions, "max swap passes must not be negative, got %d", o.MaxSwapPasses)
	case o.MaxDepth < 0:
		return errors.New(errors.ErrCodeInvalidOptions, "max depth must not be negative, got %d", o.MaxDepth)
	}
	if _, err := o.placer(); err != nil {
		return err
	}
	return nil
}

func (o Options) placer() (Placer, error) {
	name := o.Placer
	if name == "" {
		name = DefaultPlacer
	}
	p, ok := Placers[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "unknown placer %q (available: %v)", name, PlacerNames())
	}
	return p, nil
}

// Result is the complete radial layout of an include graph.
type Result struct {
	Depths     *Depths
	Classified Classified
	Tree       *Tree
	Radii      map[int]float64

	// Angles holds one angle in (-π, π] per reachable header.
	Angles map[string]float64
	// Rings holds the final angular order per ring.
	Rings     map[int][]string
	Positions map[string]Position

	Crossings   int
	RelaxPasses int
	SwapPasses  int
	Swaps       int

	// Placer is the name of the strategy that produced the angles.
	Placer string
}

// Compute lays out edges on concentric rings around a synthetic root whose
// direct includes are seeds.
//
// The stages run in order: depth assignment, edge classification, spanning
// tree selection, ring radii, angle placement and finally Cartesian
// positions. Headers unreachable from seeds are left out of every output
// map. Empty input yields an empty Result. The only error is invalid
// options.
func Compute(edges Edges, seeds []string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return ComputeFromDepths(edges, AssignDepths(edges, seeds), opts)
}

// ComputeFromDepths is [Compute] with depths supplied by the caller. It is
// used when the visible graph is a subset of the graph the depths were
// computed on, so some headers may have lost their TREE parents; those are
// attached through bridge chains. Only headers present in depths are laid
// out.
func ComputeFromDepths(edges Edges, depths *Depths, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	placer, _ := opts.placer()
	start := time.Now()

	depths = depths.Truncate(opts.MaxDepth)
	classified := Classify(edges, depths)
	tree := BuildTree(edges, depths, classified)
	radii := RingRadii(depths.Counts(), opts.MinNodeSpacing, opts.MinRingGap, opts.BaseRadius)

	logDebug(opts.Logger, "layout prepared",
		"headers", depths.Len(),
		"rings", len(depths.Rings),
		"tree", len(classified[EdgeTree]),
		"back", len(classified[EdgeBack]),
		"same", len(classified[EdgeSameLevel]),
		"skip", len(classified[EdgeForwardSkip]),
		"fallback", len(tree.Fallback),
	)

	p := placer.Place(&Input{
		Edges:          edges,
		Depths:         depths,
		Classified:     classified,
		Tree:           tree,
		Radii:          radii,
		MinNodeSpacing: opts.MinNodeSpacing,
		MaxRelaxPasses: opts.MaxRelaxPasses,
		MaxSwapPasses:  opts.MaxSwapPasses,
		Logger:         opts.Logger,
	})

	logDebug(opts.Logger, "layout complete",
		"placer", placer.Name(),
		"headers", depths.Len(),
		"crossings", p.Crossings,
		"elapsed", time.Since(start),
	)

	return &Result{
		Depths:      depths,
		Classified:  classified,
		Tree:        tree,
		Radii:       radii,
		Angles:      p.Angles,
		Rings:       p.Rings,
		Positions:   Positions(p.Angles, depths, radii),
		Crossings:   p.Crossings,
		RelaxPasses: p.RelaxPasses,
		SwapPasses:  p.SwapPasses,
		Swaps:       p.Swaps,
		Placer:      placer.Name(),
	}, nil
}

func logDebug(l *log.Logger, msg string, keyvals ...any) {
	if l != nil {
		l.Debug(msg, keyvals...)
	}
}
