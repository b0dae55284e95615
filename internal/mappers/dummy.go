package mappers

import (
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// Dummy emits a single no-op task. It serves fork and join nodes and every
// action type without a dedicated mapper.
type Dummy struct {
	base
}

// NewDummy is the fallback constructor of the action registry.
func NewDummy(args registry.Args) workflow.Mapper {
	return &Dummy{base: newBase(args)}
}

func (m *Dummy) TasksAndRelations() ([]task.Task, []task.Relation) {
	return []task.Task{task.New(m.name, dummyTemplate, nil)}, nil
}

func (m *Dummy) RequiredImports() []string {
	return []string{importDummyOperator}
}
