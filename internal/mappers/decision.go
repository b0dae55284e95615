package mappers

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const decisionTemplate = "decision.tpl"

// Case is one <case to="..."> branch of a decision node.
type Case struct {
	Condition string
	Target    string
}

// ParseSwitch reads the <switch> block of a decision element. Cases come back
// in document order; the default target is returned separately.
func ParseSwitch(name string, el *etree.Element) ([]Case, string, error) {
	sw := el.SelectElement("switch")
	if sw == nil {
		return nil, "", workflow.Malformedf(name, "decision has no <switch>")
	}
	var cases []Case
	for _, c := range sw.SelectElements("case") {
		to := strings.TrimSpace(c.SelectAttrValue("to", ""))
		if to == "" {
			return nil, "", workflow.Malformedf(name, "<case> is missing required attribute %q", "to")
		}
		cases = append(cases, Case{Condition: strings.TrimSpace(c.Text()), Target: to})
	}
	def := sw.SelectElement("default")
	if def == nil {
		return nil, "", workflow.Malformedf(name, "decision has no <default>")
	}
	defTo := strings.TrimSpace(def.SelectAttrValue("to", ""))
	if defTo == "" {
		return nil, "", workflow.Malformedf(name, "<default> is missing required attribute %q", "to")
	}
	return cases, defTo, nil
}

// Decision emits one branching task; conditions are carried verbatim.
type Decision struct {
	base
	cases         []Case
	defaultTarget string
}

// NewDecision builds the mapper for a <decision> node.
func NewDecision(args registry.Args) workflow.Mapper {
	return &Decision{base: newBase(args)}
}

func (m *Decision) OnNodeParsed() error {
	cases, def, err := ParseSwitch(m.name, m.el)
	if err != nil {
		return err
	}
	m.cases, m.defaultTarget = cases, def
	return nil
}

func (m *Decision) TasksAndRelations() ([]task.Task, []task.Relation) {
	cases := make([]map[string]string, 0, len(m.cases))
	for _, c := range m.cases {
		cases = append(cases, map[string]string{"condition": c.Condition, "target": c.Target})
	}
	params := map[string]any{
		"cases":          cases,
		"default_target": m.defaultTarget,
	}
	return []task.Task{task.New(m.name, decisionTemplate, params)}, nil
}

func (m *Decision) RequiredImports() []string {
	return []string{"from airflow.operators import python_operator"}
}
