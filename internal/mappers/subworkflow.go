package mappers

import (
	"path"
	"strings"

	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const subWorkflowTemplate = "subwf.tpl"

// SubWorkflow references another application; the referenced workflow is
// compiled as a separate job.
type SubWorkflow struct {
	actionBase
	appPath   string
	propagate bool
}

// NewSubWorkflow is registered for <sub-workflow> action bodies.
func NewSubWorkflow(args registry.Args) workflow.Mapper {
	return &SubWorkflow{actionBase: actionBase{base: newBase(args)}}
}

func (m *SubWorkflow) OnNodeParsed() error {
	if err := m.parseCommon(); err != nil {
		return err
	}
	m.appPath = m.text("app-path")
	if m.appPath == "" {
		return workflow.Malformedf(m.name, "sub-workflow action has no <app-path>")
	}
	m.propagate = m.has("propagate-configuration")
	return nil
}

// AppName is the last path segment of <app-path>.
func (m *SubWorkflow) AppName() string {
	return path.Base(strings.TrimRight(urlPath(m.appPath), "/"))
}

func (m *SubWorkflow) TasksAndRelations() ([]task.Task, []task.Relation) {
	params := m.commonParams()
	params["app_path"] = m.appPath
	params["app_name"] = m.AppName()
	params["propagate_configuration"] = m.propagate
	return []task.Task{task.New(m.name, subWorkflowTemplate, params)}, nil
}

func (m *SubWorkflow) RequiredImports() []string {
	return []string{"from airflow.operators import subdag_operator"}
}
