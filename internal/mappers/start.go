package mappers

import (
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// Start only forwards to its successor; it produces no task.
type Start struct {
	base
}

// NewStart builds the mapper for the synthesized start node.
func NewStart(args registry.Args) workflow.Mapper {
	return &Start{base: newBase(args)}
}

func (m *Start) TasksAndRelations() ([]task.Task, []task.Relation) {
	return nil, nil
}
