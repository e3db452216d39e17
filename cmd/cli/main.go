package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/databuild/builders/envsource"
	"github.com/vk/databuild/builders/httpfetch"
	"github.com/vk/databuild/builders/report"
	"github.com/vk/databuild/internal/cli"
	"github.com/vk/databuild/internal/ctxlog"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/engine"
	"github.com/vk/databuild/internal/executor"
	"github.com/vk/databuild/internal/hcl"
	"github.com/vk/databuild/internal/registry"
)

// main is the entrypoint for the databuild tool.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := cli.NewLogger(cfg, os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	reg := registry.New()
	modules := []registry.Module{
		&envsource.Module{},
		&httpfetch.Module{},
		&report.Module{},
	}
	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("registering stock builders: %w", err)
		}
	}
	eng := engine.New(reg)

	flows, err := hcl.NewLoader().Load(ctx, cfg.FlowPath)
	if err != nil {
		return err
	}
	if len(flows) == 0 {
		return fmt.Errorf("no flow definitions found under %s", cfg.FlowPath)
	}

	for _, flow := range flows {
		if err := runFlow(ctx, outW, eng, cfg, flow); err != nil {
			return fmt.Errorf("flow %q: %w", flow.Name, err)
		}
	}
	return nil
}

// runFlow executes one loaded flow and prints its summary.
func runFlow(ctx context.Context, outW io.Writer, eng *engine.Engine, cfg *cli.Config, flow hcl.Flow) error {
	logger := ctxlog.FromContext(ctx).With("flow", flow.Name)
	logger.Info("Starting flow.", "targets", flow.Targets, "parallel", flow.Parallel)

	res, err := eng.Run(ctx, engine.RunRequest{
		Targets:  flow.Targets,
		Seed:     seedDataSet(flow),
		Parallel: flow.Parallel && !cfg.Sequential,
		Options: executor.Options{
			Timeout:         flow.BuilderTimeout,
			MaxConcurrency:  flow.MaxConcurrency,
			ContinueOnError: flow.ContinueOnError,
		},
	})
	if err != nil {
		return err
	}

	stats := res.Stats
	fmt.Fprintf(outW, "flow %s: built %d, skipped %d in %s (run %s)\n",
		flow.Name, stats.Executed, stats.Skipped, stats.WallTime, stats.RunID)
	if name, d := stats.Slowest(); name != "" {
		fmt.Fprintf(outW, "  slowest builder: %s (%s)\n", name, d)
	}
	if stats.LevelCount > 0 {
		fmt.Fprintf(outW, "  levels: %d, peak concurrency: %d, parallel efficiency: %.0f%%\n",
			stats.LevelCount, stats.MaxConcurrency, 100*stats.ParallelEfficiency())
	}
	return nil
}

// seedDataSet turns a flow's converted seed values into the initial dataset.
func seedDataSet(flow hcl.Flow) *data.DataSet {
	if len(flow.Seeds) == 0 {
		return nil
	}
	return data.NewDataSet(flow.Seeds...)
}
