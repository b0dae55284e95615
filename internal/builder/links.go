package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/wfgraph/internal/ctxlog"
	"github.com/specialistvlad/wfgraph/internal/dag"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// linkNodes turns named edges into task relations and sets path flags.
// Edges touching a node without tasks (the start node) only set flags.
func linkNodes(ctx context.Context, wf *workflow.Workflow) error {
	logger := ctxlog.FromContext(ctx)

	for _, name := range wf.NodeNames() {
		n := wf.Nodes[name]
		for _, d := range n.Downstreams() {
			target, ok := wf.Node(d)
			if !ok {
				return workflow.Malformedf(name, "downstream node %q was never built", d)
			}
			target.MarkOkPath()
			from, hasFrom := n.LastTaskIDOfOkFlow()
			to, hasTo := target.FirstTaskID()
			if hasFrom && hasTo {
				wf.Relations.Add(task.Relation{From: from, To: to})
				logger.Debug("Linked downstream.", "node", name, "downstream", d)
			}
		}

		errorTarget, ok := n.ErrorTarget()
		if !ok {
			continue
		}
		target, ok := wf.Node(errorTarget)
		if !ok {
			return workflow.Malformedf(name, "error node %q was never built", errorTarget)
		}
		target.MarkErrorPath()
		from, err := n.LastTaskIDOfErrorFlow()
		if err != nil {
			return err
		}
		if to, hasTo := target.FirstTaskID(); hasTo {
			wf.Relations.Add(task.Relation{From: from, To: to, IsError: true})
			logger.Debug("Linked error target.", "node", name, "error_target", errorTarget)
		}
	}
	return nil
}

// detectCycles rejects workflows whose node-level control flow loops.
func detectCycles(wf *workflow.Workflow) error {
	g := dag.New()
	names := wf.NodeNames()
	for _, name := range names {
		g.AddNode(name)
	}
	for _, name := range names {
		n := wf.Nodes[name]
		targets := n.Downstreams()
		if et, ok := n.ErrorTarget(); ok {
			targets = append(targets, et)
		}
		for _, target := range targets {
			if err := g.AddEdge(name, target); err != nil {
				return cycleError(name, err)
			}
		}
	}
	if err := g.DetectCycles(); err != nil {
		return cycleError("", err)
	}
	return nil
}

func cycleError(node string, err error) error {
	if errors.Is(err, dag.ErrCycle) {
		return workflow.Malformedf(node, "control flow is not acyclic: %v", err)
	}
	return fmt.Errorf("checking control flow of node %q: %w", node, err)
}

// finish runs every mapper's finish hook once, in completion order. Hooks
// may remove nodes, so the order is captured up front.
func finish(ctx context.Context, wf *workflow.Workflow) {
	logger := ctxlog.FromContext(ctx)
	nodes := make([]*workflow.ParsedNode, 0, len(wf.Nodes))
	for _, name := range wf.NodeNames() {
		nodes = append(nodes, wf.Nodes[name])
	}
	for _, n := range nodes {
		n.Mapper().OnWorkflowFinished(wf)
		if _, still := wf.Node(n.Name()); !still {
			logger.Debug("Node removed by finish hook.", "node", n.Name())
		}
	}
}
