package mappers

import (
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// End is the normal-path sink of a workflow.
type End struct {
	base
}

// NewEnd builds the mapper for an <end> node.
func NewEnd(args registry.Args) workflow.Mapper {
	return &End{base: newBase(args)}
}

func (m *End) TasksAndRelations() ([]task.Task, []task.Relation) {
	return []task.Task{task.New(m.name, dummyTemplate, nil)}, nil
}

func (m *End) RequiredImports() []string {
	return []string{importDummyOperator}
}

// OnWorkflowFinished drops the end node unless a decision branches to it.
// Plain successors finishing is already the end of the graph; a decision
// branch needs a concrete task to point at.
func (m *End) OnWorkflowFinished(wf *workflow.Workflow) {
	self, ok := wf.Node(m.name)
	if !ok {
		return
	}
	for _, up := range wf.UpstreamOf(m.name) {
		if _, isDecision := up.Mapper().(*Decision); isDecision {
			return
		}
	}
	removeNode(wf, self)
}

// removeNode deletes n and every inter-node relation pointing at its tasks.
func removeNode(wf *workflow.Workflow, n *workflow.ParsedNode) {
	var ids []string
	for _, t := range n.AllTasks() {
		ids = append(ids, t.TaskID)
	}
	wf.RemoveRelationsTo(ids...)
	wf.RemoveNode(n.Name())
}
