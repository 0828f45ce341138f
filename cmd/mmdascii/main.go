package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flowtext/mmdascii/internal/cli"
	"github.com/flowtext/mmdascii/pkg/buildinfo"
	"github.com/flowtext/mmdascii/pkg/mmerr"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: 2 for a malformed
// invocation (bad flags, bad config), 1 for everything else, matching the
// usual shell convention of reserving 2 for usage errors.
func exitCode(err error) int {
	if mmerr.GetCode(err) == mmerr.ErrCodeUsage {
		return 2
	}
	return 1
}

// run executes the CLI, recovering a panicking *mmerr.Error (raised for
// internal invariant violations such as CodeLayout) into a clean error
// return instead of a raw stack trace.
func run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	c.Version = buildinfo.Version
	c.Commit = buildinfo.Commit
	c.Date = buildinfo.Date

	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)
		cmd.SetContext(cli.ContextWithLogger(cmd.Context(), c.Logger))

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
