package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/includeviz/pkg/graph"
	"github.com/matzehuels/includeviz/pkg/pipeline"
)

// layoutCommand creates the layout command for computing radial layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		rings  bool
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json|-]",
		Short: "Compute the radial layout of an include graph",
		Long: `Compute the radial layout of an include graph.

The input is a graph.json file with the root translation unit, its direct
includes and the include edges. Use "-" to read it from stdin. The output is a
layout.json document with every header's ring, angle and position, the
classified edges, and the ring orderings. Render it with 'visualize'.

Layout options come from defaults, then the --config file, then flags.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.layoutOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, rings)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&rings, "rings", false, "print a per-ring summary")
	addLayoutFlags(cmd, &flags)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, rings bool) error {
	res, err := c.computeLayout(ctx, input, opts)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutputBase(input) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(res.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printLayoutSummary(res, rings)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)
	return nil
}

// computeLayout loads input and runs the layout stage with the CLI runner.
func (c *CLI) computeLayout(ctx context.Context, input string, opts pipeline.Options) (*pipeline.Result, error) {
	prog := newProgress(c.Logger)
	g, err := pipeline.Load(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Loaded %d headers", len(g.Headers())))

	runner, err := c.newRunner()
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Layout(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("compute layout: %w", err)
	}
	return res, nil
}

func printLayoutSummary(res *pipeline.Result, rings bool) {
	printStats(res.Stats.Visible, res.Stats.Edges, res.Layout.Crossings, res.CacheInfo.LayoutHit)
	for _, w := range res.Layout.Warnings {
		printWarning("%s", w)
	}
	if rings && len(res.Layout.Rings) > 0 {
		fmt.Fprintln(out, ringTable(res.Layout))
	}
}

// defaultOutputBase strips the extension and a trailing ".layout" from
// input. Stdin input writes to "graph" in the working directory.
func defaultOutputBase(input string) string {
	if input == pipeline.Stdin {
		return "graph"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return strings.TrimSuffix(base, ".layout")
}
