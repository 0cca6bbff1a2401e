package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// app carries what every subcommand shares.
type app struct {
	cfg    Config
	logger *slog.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := ParseConfig(nil)
	if err != nil {
		return err
	}
	root := newRootCmd(cfg, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

func newRootCmd(cfg Config, stderr io.Writer) *cobra.Command {
	a := &app{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel})),
	}
	root := &cobra.Command{
		Use:           "phasehull",
		Short:         "Convex-hull phase stability for 2–4 element systems",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newComputeCmd(a),
		newWatchCmd(a),
		newProjectCmd(a),
		newGenerateCmd(a),
	)

	return root
}
