package mappers

import (
	"strings"

	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const pigTemplate = "pig.tpl"

// Pig runs a Pig script with its <param> values and <argument>s.
type Pig struct {
	actionBase
	script    string
	params    map[string]string
	arguments []string
}

// NewPig is registered for <pig> action bodies.
func NewPig(args registry.Args) workflow.Mapper {
	return &Pig{actionBase: actionBase{base: newBase(args)}}
}

func (m *Pig) OnNodeParsed() error {
	if err := m.parseCommon(); err != nil {
		return err
	}
	m.script = m.text("script")
	if m.script == "" {
		return workflow.Malformedf(m.name, "pig action has no <script>")
	}
	m.params = map[string]string{}
	for _, p := range m.texts("param") {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return workflow.Malformedf(m.name, "pig <param> %q is not key=value", p)
		}
		m.params[k] = v
	}
	m.arguments = m.texts("argument")
	return nil
}

func (m *Pig) TasksAndRelations() ([]task.Task, []task.Relation) {
	params := m.commonParams()
	params["script_file_name"] = m.script
	params["params_dict"] = m.params
	if len(m.arguments) > 0 {
		params["arguments"] = m.arguments
	}
	return m.withPrepare(task.New(m.name, pigTemplate, params))
}

func (m *Pig) RequiredImports() []string {
	return append(m.actionBase.RequiredImports(), "from airflow.contrib.operators import dataproc_operator")
}
