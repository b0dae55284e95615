package mappers

import (
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const killTemplate = "kill.tpl"

// Kill is the failure sink of a workflow.
type Kill struct {
	base
	message string
}

// NewKill builds the mapper for a <kill> node.
func NewKill(args registry.Args) workflow.Mapper {
	return &Kill{base: newBase(args)}
}

func (m *Kill) OnNodeParsed() error {
	m.message = m.text("message")
	return nil
}

func (m *Kill) TasksAndRelations() ([]task.Task, []task.Relation) {
	params := map[string]any{"message": m.message}
	return []task.Task{task.New(m.name, killTemplate, params)}, nil
}

func (m *Kill) RequiredImports() []string {
	return []string{importBashOperator}
}

// OnWorkflowFinished removes the kill node when only error edges reach it:
// each failing node already ends in its own error handler.
func (m *Kill) OnWorkflowFinished(wf *workflow.Workflow) {
	self, ok := wf.Node(m.name)
	if !ok {
		return
	}
	if self.IsErrorPathNode() && !self.IsOkPathNode() {
		removeNode(wf, self)
	}
}
