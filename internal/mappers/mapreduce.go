package mappers

import (
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const mapReduceTemplate = "mapreduce.tpl"

// MapReduce is driven entirely by its <configuration> block.
type MapReduce struct {
	actionBase
}

// NewMapReduce is registered for <map-reduce> action bodies.
func NewMapReduce(args registry.Args) workflow.Mapper {
	return &MapReduce{actionBase: actionBase{base: newBase(args)}}
}

func (m *MapReduce) OnNodeParsed() error {
	return m.parseCommon()
}

func (m *MapReduce) TasksAndRelations() ([]task.Task, []task.Relation) {
	params := m.commonParams()
	addClusterParams(params, m.props.Config)
	return m.withPrepare(task.New(m.name, mapReduceTemplate, params))
}

func (m *MapReduce) RequiredImports() []string {
	return append(m.actionBase.RequiredImports(), "from airflow.contrib.operators import dataproc_operator")
}
