// Package cli implements the includeviz command-line interface.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/includeviz/pkg/buildinfo"
	"github.com/matzehuels/includeviz/pkg/cache"
	"github.com/matzehuels/includeviz/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "includeviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "includeviz lays out C/C++ include graphs on concentric rings",
		Long: `includeviz lays out C/C++ include graphs radially: the translation unit sits
at the centre, directly included headers on the first ring, and every other
header on the ring of its shortest include distance. Headers are ordered on
their rings to minimise edge crossings.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML file with layout options")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cache, err := c.newCache()
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache returns the file cache, or a null cache when caching is disabled
// or no cache directory can be determined.
func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Helpers
// =============================================================================

// parseList splits a comma-separated flag value, dropping empty items.
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if formats := parseList(s); len(formats) > 0 {
		return formats
	}
	return []string{pipeline.FormatSVG}
}
