package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/layout"
	"github.com/matzehuels/includeviz/pkg/pipeline"
)

// loadConfig returns the default layout options overlaid with the TOML file
// at path. An empty path returns the defaults. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
//
// Example file:
//
//	min_node_spacing = 60
//	min_ring_gap = 120
//	placer = "median"
//	prefixes = ["src/", "include/"]
func loadConfig(path string) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return opts, fmt.Errorf("read config %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return opts, errors.New(errors.ErrCodeInvalidOptions, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// layoutFlags holds the layout flag values of one command.
type layoutFlags struct {
	minNodeSpacing float64
	minRingGap     float64
	baseRadius     float64
	maxRelaxPasses int
	maxSwapPasses  int
	maxDepth       int
	placer         string
	prefixes       string
	refresh        bool
}

func addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	d := layout.DefaultOptions()
	flags := cmd.Flags()
	flags.Float64Var(&f.minNodeSpacing, "min-node-spacing", d.MinNodeSpacing, "minimum arc length between neighbours on a ring")
	flags.Float64Var(&f.minRingGap, "min-ring-gap", d.MinRingGap, "minimum radial distance between rings")
	flags.Float64Var(&f.baseRadius, "base-radius", d.BaseRadius, "radius offset below the first ring")
	flags.IntVar(&f.maxRelaxPasses, "relax-passes", d.MaxRelaxPasses, "maximum median relaxation passes")
	flags.IntVar(&f.maxSwapPasses, "swap-passes", d.MaxSwapPasses, "maximum adjacent-swap refinement passes")
	flags.IntVar(&f.maxDepth, "max-depth", d.MaxDepth, "drop rings deeper than this (0: keep all)")
	flags.StringVar(&f.placer, "placer", d.Placer, "placement strategy: "+strings.Join(layout.PlacerNames(), ", "))
	flags.StringVarP(&f.prefixes, "prefix", "p", "", "only lay out headers under these paths (comma-separated)")
	flags.BoolVar(&f.refresh, "refresh", false, "recompute even when a cached layout exists")
}

// layoutOptions resolves defaults, then the config file, then flags the
// user set explicitly.
func (c *CLI) layoutOptions(cmd *cobra.Command, f *layoutFlags) (pipeline.Options, error) {
	opts, err := loadConfig(c.configPath)
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("min-node-spacing") {
		opts.MinNodeSpacing = f.minNodeSpacing
	}
	if flags.Changed("min-ring-gap") {
		opts.MinRingGap = f.minRingGap
	}
	if flags.Changed("base-radius") {
		opts.BaseRadius = f.baseRadius
	}
	if flags.Changed("relax-passes") {
		opts.MaxRelaxPasses = f.maxRelaxPasses
	}
	if flags.Changed("swap-passes") {
		opts.MaxSwapPasses = f.maxSwapPasses
	}
	if flags.Changed("max-depth") {
		opts.MaxDepth = f.maxDepth
	}
	if flags.Changed("placer") {
		opts.Placer = f.placer
	}
	if flags.Changed("prefix") {
		opts.Prefixes = parseList(f.prefixes)
	}
	opts.Refresh = f.refresh
	opts.Logger = c.Logger

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
