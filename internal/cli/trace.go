package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/graph"
	"github.com/matzehuels/includeviz/pkg/pipeline"
)

// traceCommand creates the trace command that explains why a header is
// included.
func (c *CLI) traceCommand() *cobra.Command {
	var (
		from        string
		maxPaths    int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "trace [graph.json|-] [header]",
		Short: "Show the shortest include chains to a header",
		Long: `Show the shortest include chains to a header.

The header is matched by substring; an exact path wins over partial matches.
Chains start at the root translation unit unless --from names another header.
With --interactive an ambiguous pattern opens a picker instead of failing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), args[0], args[1], from, maxPaths, interactive)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start header pattern (default: root)")
	cmd.Flags().IntVarP(&maxPaths, "max-paths", "n", graph.DefaultMaxPaths, "maximum chains to print")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick among ambiguous matches interactively")

	return cmd
}

func (c *CLI) runTrace(ctx context.Context, input, target, from string, maxPaths int, interactive bool) error {
	g, err := pipeline.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	to, err := resolveHeader(g, target, interactive)
	if err != nil || to == "" {
		return err
	}
	start := ""
	if from != "" {
		if start, err = resolveHeader(g, from, interactive); err != nil || start == "" {
			return err
		}
	}

	res := g.Trace(start, to, maxPaths)
	printTrace(res)
	return nil
}

// resolveHeader turns a pattern into one header. Ambiguous patterns open the
// picker when interactive is set; quitting the picker yields "".
func resolveHeader(g *graph.Graph, pattern string, interactive bool) (string, error) {
	h, err := g.FindHeader(pattern)
	if err == nil {
		return h, nil
	}
	if !interactive || !errors.Is(err, errors.ErrCodeInvalidInput) {
		return "", err
	}
	return pickHeader(fmt.Sprintf("Headers matching %q", pattern), g.MatchHeaders(pattern))
}

func printTrace(res graph.TraceResult) {
	if res.Total == 0 {
		printWarning("%s is not reachable from %s", res.To, res.From)
		return
	}
	printInfo("%s %s %s", StyleHighlight.Render(res.From), StyleDim.Render(iconArrow), StyleHighlight.Render(res.To))
	for i, p := range res.Paths {
		printPath(i+1, p)
	}
	if hidden := res.Hidden(); hidden > 0 {
		printDetail("... and %d more shortest chain(s)", hidden)
	}
}
