package mappers

import (
	"github.com/alessio/shellescape"

	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const shellTemplate = "shell.tpl"

// Shell runs <exec> with its <argument>s on the cluster.
type Shell struct {
	actionBase
	command       string
	envVars       []string
	captureOutput bool
}

// NewShell is registered for <shell> action bodies.
func NewShell(args registry.Args) workflow.Mapper {
	return &Shell{actionBase: actionBase{base: newBase(args)}}
}

func (m *Shell) OnNodeParsed() error {
	if err := m.parseCommon(); err != nil {
		return err
	}
	exec := m.text("exec")
	if exec == "" {
		return workflow.Malformedf(m.name, "shell action has no <exec>")
	}
	m.command = "sh " + shellescape.QuoteCommand(append([]string{exec}, m.texts("argument")...))
	m.envVars = m.texts("env-var")
	m.captureOutput = m.has("capture-output")
	return nil
}

func (m *Shell) TasksAndRelations() ([]task.Task, []task.Relation) {
	params := m.commonParams()
	params["pig_command"] = m.command
	params["capture_output"] = m.captureOutput
	if len(m.envVars) > 0 {
		params["env_vars"] = m.envVars
	}
	return m.withPrepare(task.New(m.name, shellTemplate, params))
}
