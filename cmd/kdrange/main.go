package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-sod/kdrange/internal/buildinfo"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/shutdown"
	"github.com/spf13/cobra"
)

func main() {
	ctx, done := shutdown.New()
	err := newRootCommand().ExecuteContext(ctx)
	done()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type app struct {
	verbose bool
}

// context returns the command context carrying a logger at the requested level.
func (a *app) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.NewLogger(a.verbose))
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "kdrange",
		Short:         "Build k-d trees over point sets and run orthogonal range queries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.newGenCommand(),
		a.newSearchCommand(),
		a.newInspectCommand(),
		a.newBenchCommand(),
		a.newPushCommand(),
		a.newQueryCommand(),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Info.String())
		},
	}
}
