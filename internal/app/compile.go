package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"

	"github.com/specialistvlad/wfgraph/internal/builder"
	"github.com/specialistvlad/wfgraph/internal/config"
	"github.com/specialistvlad/wfgraph/internal/ctxlog"
	"github.com/specialistvlad/wfgraph/internal/export"
	"github.com/specialistvlad/wfgraph/internal/props"
	"github.com/specialistvlad/wfgraph/internal/ui"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// compileJob turns one job into a serialized graph. When the job has no
// output directory the serialized bytes are returned for the caller to
// print; otherwise they are written to disk.
func (a *App) compileJob(ctx context.Context, job *config.Job) (ui.Result, []byte) {
	start := time.Now()
	res := ui.Result{Job: job.Name, DagName: job.DagName}
	logger := ctxlog.FromContext(ctx).With("job", job.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	out, err := a.compile(ctx, job, &res)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		logger.Error("Compilation failed.", "error", err)
		return res, nil
	}
	logger.Info("Compilation finished.", "nodes", res.Nodes, "tasks", res.Tasks, "output", res.Output)
	return res, out
}

func (a *App) compile(ctx context.Context, job *config.Job, res *ui.Result) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	path, err := locateWorkflow(job.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Workflow located.", "path", path)

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", workflow.ErrMalformedInput, path, err)
	}

	wf := workflow.New(job.DagName, path, job.OutputPath)
	b := builder.New(a.registry, props.New(job.Properties, job.Config), a.buildOpts...)
	if err := b.Build(ctx, doc, wf); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}

	graph := export.FromWorkflow(wf)
	res.Nodes = len(graph.Nodes)
	res.Tasks = graph.TaskCount()
	res.Relations = len(graph.Relations)

	var buf bytes.Buffer
	if err := export.WriteDocument(&buf, graph, a.format); err != nil {
		return nil, err
	}
	if job.OutputPath == "" {
		return buf.Bytes(), nil
	}

	if err := os.MkdirAll(job.OutputPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	target := filepath.Join(job.OutputPath, a.format.FileName(job.DagName))
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", target, err)
	}
	res.Output = target
	return nil, nil
}
