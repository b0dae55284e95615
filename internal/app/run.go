package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/wfgraph/internal/config"
	"github.com/specialistvlad/wfgraph/internal/ctxlog"
	"github.com/specialistvlad/wfgraph/internal/ui"
)

// Run executes the main application logic. It compiles every job, prints
// the results and, in watch mode, keeps recompiling until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Info("Starting wfgraph...")

	if a.config.ListMappers {
		for _, tag := range a.registry.Tags() {
			fmt.Fprintln(a.outW, tag)
		}
		return nil
	}

	results := a.compileAll(ctx, a.jobs)
	err := joinFailures(results)

	if a.config.Watch {
		if err != nil {
			a.logger.Warn("Initial compilation had failures, watching anyway.", "error", err)
		}
		return a.watch(ctx)
	}
	if err == nil {
		a.logger.Info("All workflows compiled successfully.")
	}
	return err
}

// compileAll compiles jobs with at most Parallel running at once. Graphs
// destined for stdout are written in job order once all jobs are done so
// concurrent output never interleaves.
func (a *App) compileAll(ctx context.Context, jobs []*config.Job) []ui.Result {
	results := make([]ui.Result, len(jobs))
	outputs := make([][]byte, len(jobs))

	var g errgroup.Group
	g.SetLimit(a.config.Parallel)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i], outputs[i] = a.compileJob(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	toStdout := false
	for i, out := range outputs {
		if jobs[i].OutputPath == "" {
			toStdout = true
		}
		if len(out) > 0 {
			if _, err := a.outW.Write(out); err != nil {
				a.logger.Error("Failed to write graph.", "job", jobs[i].Name, "error", err)
			}
		}
	}
	// The summary would corrupt a graph printed to stdout.
	if !toStdout {
		ui.PrintSummary(a.outW, results)
	}
	return results
}

func joinFailures(results []ui.Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Job, r.Err))
		}
	}
	return errors.Join(errs...)
}
