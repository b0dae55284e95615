package mappers

import (
	"github.com/alessio/shellescape"

	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const (
	distCpTemplate = "distcp.tpl"
	distCpClass    = "org.apache.hadoop.tools.DistCp"
)

// DistCp copies data between clusters through the DistCp main class.
type DistCp struct {
	actionBase
	javaOpts string
	command  string
}

// NewDistCp is registered for <distcp> action bodies.
func NewDistCp(args registry.Args) workflow.Mapper {
	return &DistCp{actionBase: actionBase{base: newBase(args)}}
}

func (m *DistCp) OnNodeParsed() error {
	if err := m.parseCommon(); err != nil {
		return err
	}
	args := m.texts("arg")
	if len(args) == 0 {
		return workflow.Malformedf(m.name, "distcp action has no <arg>")
	}
	m.javaOpts = m.text("java-opts")
	m.command = "--class=" + distCpClass + " -- " + shellescape.QuoteCommand(args)
	return nil
}

func (m *DistCp) TasksAndRelations() ([]task.Task, []task.Relation) {
	params := m.commonParams()
	params["distcp_command"] = m.command
	if m.javaOpts != "" {
		params["java_opts"] = m.javaOpts
	}
	return m.withPrepare(task.New(m.name, distCpTemplate, params))
}
