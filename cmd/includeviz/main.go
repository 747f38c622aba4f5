package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/includeviz/internal/cli"
	ivzerrors "github.com/matzehuels/includeviz/pkg/errors"
)

// Exit codes beyond the usual 0/1.
const (
	exitInvalid     = 2   // malformed graph, options or arguments
	exitNotFound    = 3   // missing file, header or layout
	exitInterrupted = 130 // SIGINT, shell convention
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := run(ctx, c); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(exitInterrupted)
		}
		fmt.Fprintln(os.Stderr, errorLine(err))
		c.Logger.Debug("error detail", "err", err)
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context, c *cli.CLI) error {
	var verbose bool

	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// errorLine formats err for the terminal without its code prefix.
func errorLine(err error) string {
	return "Error: " + ivzerrors.UserMessage(err)
}

func exitCode(err error) int {
	switch {
	case ivzerrors.IsInvalid(err):
		return exitInvalid
	case ivzerrors.IsNotFound(err):
		return exitNotFound
	default:
		return 1
	}
}
