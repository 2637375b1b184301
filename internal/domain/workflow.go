package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"meowcode.dev/pkg/meowcode/internal/adapter"
	"meowcode.dev/pkg/meowcode/internal/controller"
	m "meowcode.dev/pkg/meowcode/internal/model"
)

var (
	// ErrFilesFailed is returned when at least one file could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")
	// ErrOutOfDate is returned by a dry run when a file would change.
	ErrOutOfDate = errors.New("generated code is out of date")
)

// SourceArgs selects the files of a pass.
type SourceArgs struct {
	Paths    []m.Path
	Discover adapter.DiscoverOptions
}

// RunArgs contains the arguments for a generation pass.
type RunArgs struct {
	SourceArgs
	Registry m.Path
	// Enabled is the persisted on/off switch; a disabled pass does nothing.
	Enabled bool
	// DryRun reports what would change, with diffs, without writing.
	DryRun bool
}

// StripArgs contains the arguments for removing generated code.
type StripArgs struct {
	SourceArgs
	DryRun bool
}

// RegistryArgs contains the arguments for showing the registry.
type RegistryArgs struct {
	Registry m.Path
}

// Workflow drives a pass over every discovered file.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) (m.Summary, error)
	Strip(ctx context.Context, args StripArgs) (m.Summary, error)
	ShowRegistry(ctx context.Context, args RegistryArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.RegistryStore
	controller.UI
	Codegen
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	registryStore adapter.RegistryStore,
	ui controller.UI,
	codegen Codegen,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		RegistryStore:   registryStore,
		UI:              ui,
		Codegen:         codegen,
	}
}

func (w *workflow) Run(ctx context.Context, args RunArgs) (m.Summary, error) {
	if !args.Enabled {
		slog.Info("Code generation disabled")
		w.DisplayDisabled(ctx)

		return m.Summary{}, nil
	}

	registry, err := w.Load(ctx, args.Registry)
	if err != nil {
		slog.Error("Failed to load registry", "path", args.Registry, "error", err)
		return m.Summary{}, fmt.Errorf("load registry: %w", err)
	}

	slog.Debug("Loaded registry", "path", args.Registry, "types", registry.Len())

	opts := ProcessOptions{DryRun: args.DryRun}

	summary, err := w.pass(ctx, args.SourceArgs, args.DryRun, func(ctx context.Context, file m.File) m.FileResult {
		return w.ProcessFile(ctx, file, registry, opts)
	})
	if err != nil {
		return summary, err
	}

	if args.DryRun && summary.Updated > 0 {
		return summary, fmt.Errorf("%w: %d file(s)", ErrOutOfDate, summary.Updated)
	}

	return summary, nil
}

func (w *workflow) Strip(ctx context.Context, args StripArgs) (m.Summary, error) {
	opts := ProcessOptions{DryRun: args.DryRun}

	return w.pass(ctx, args.SourceArgs, args.DryRun, func(ctx context.Context, file m.File) m.FileResult {
		return w.StripFile(ctx, file, opts)
	})
}

func (w *workflow) ShowRegistry(ctx context.Context, args RegistryArgs) error {
	registry, err := w.Load(ctx, args.Registry)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	return w.DisplayRegistry(ctx, registry)
}

// pass discovers files on one goroutine and processes them one at a time,
// in order, on another. A failing file never stops the pass.
func (w *workflow) pass(
	ctx context.Context,
	sources SourceArgs,
	dryRun bool,
	process func(context.Context, m.File) m.FileResult,
) (m.Summary, error) {
	var (
		summary m.Summary
		results []m.FileResult
	)

	files := make(chan m.File)
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(files)

		found, err := w.Get(groupCtx, sources.Paths, sources.Discover)
		if err != nil {
			slog.Error("Failed to discover sources", "error", err)
			return fmt.Errorf("discover sources: %w", err)
		}

		w.DisplayDiscovered(groupCtx, len(found))

		for _, file := range found {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case files <- file:
			}
		}

		return nil
	})

	group.Go(func() error {
		for file := range files {
			result := process(groupCtx, file)

			summary.Add(result)
			results = append(results, result)

			w.DisplayFileResult(groupCtx, result)

			if dryRun {
				if err := w.DisplayDiff(groupCtx, result); err != nil {
					slog.Warn("Failed to display diff", "path", file.ShortPath, "error", err)
				}
			}
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return summary, err
	}

	w.DisplaySummary(ctx, summary, results)

	slog.Info("Pass completed",
		"updated", summary.Updated,
		"unchanged", summary.Unchanged,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"dry_run", dryRun,
	)

	if summary.Failed > 0 {
		return summary, fmt.Errorf("%w: %d file(s)", ErrFilesFailed, summary.Failed)
	}

	return summary, nil
}
