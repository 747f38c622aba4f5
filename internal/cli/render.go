package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/includeviz/pkg/graph"
	"github.com/matzehuels/includeviz/pkg/pipeline"
)

// renderFlags holds the render flag values of one command.
type renderFlags struct {
	formats string
	output  string
	labels  bool
	scale   float64
	types   string
}

func addRenderFlags(cmd *cobra.Command, f *renderFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	flags.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.BoolVar(&f.labels, "labels", false, "append include counts to header labels")
	flags.Float64Var(&f.scale, "scale", 1, "coordinate scale factor")
	flags.StringVar(&f.types, "edges", "", "edge types to draw: tree, back, same, skip (comma-separated, default: all)")
}

func (f *renderFlags) options() (pipeline.RenderOptions, error) {
	opts := pipeline.RenderOptions{
		Formats: parseFormats(f.formats),
		Labels:  f.labels,
		Scale:   f.scale,
		Types:   parseList(f.types),
	}
	return opts, opts.Validate()
}

// renderCommand creates the render command: graph.json straight to output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json|-]",
		Short: "Lay out an include graph and render it",
		Long: `Lay out an include graph and render it to SVG, PNG, PDF, DOT or JSON.

This is 'layout' followed by 'visualize'. Nodes are pinned at their layout
positions and drawn with Graphviz; edges are coloured by classification and
headers by include count. PNG and PDF output requires rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.layoutOptions(cmd, &lf)
			if err != nil {
				return err
			}
			ropts, err := rf.options()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res, err := c.computeLayout(ctx, args[0], opts)
			if err != nil {
				return err
			}
			printLayoutSummary(res, false)
			return c.runRender(ctx, res.Layout, args[0], rf.output, ropts)
		},
	}

	addLayoutFlags(cmd, &lf)
	addRenderFlags(cmd, &rf)
	return cmd
}

// visualizeCommand creates the visualize command for rendering a computed
// layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it. The layout contains all positioning information, so this step is
purely about drawing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ropts, err := rf.options()
			if err != nil {
				return err
			}
			l, err := graph.ReadLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			return c.runRender(cmd.Context(), l, args[0], rf.output, ropts)
		},
	}

	addRenderFlags(cmd, &rf)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, l graph.Layout, input, output string, opts pipeline.RenderOptions) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		printError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(artifacts)))

	paths, err := writeArtifacts(artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}
	status := iconFresh
	if cacheHit {
		status = iconCached
	}
	printSuccess("Render complete %s", StyleDim.Render("("+status+")"))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each format to disk and returns the paths in
// format order. A single format goes to output verbatim; multiple formats
// use output as the base path with the format as extension. JSON gets
// ".layout.json" so it never replaces the input graph.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := output
	if base == "" {
		base = defaultOutputBase(input)
	}

	var paths []string
	for _, format := range formats {
		path := base + "." + format
		if format == pipeline.FormatJSON {
			path = base + ".layout.json"
		}
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
