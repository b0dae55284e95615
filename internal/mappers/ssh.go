package mappers

import (
	"strings"

	"github.com/alessio/shellescape"

	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const sshTemplate = "ssh.tpl"

// SSH runs one remote command. <host> is "user@host"; without a user part
// the user.name job property is used.
type SSH struct {
	actionBase
	user          string
	host          string
	command       string
	captureOutput bool
}

// NewSSH is registered for <ssh> action bodies.
func NewSSH(args registry.Args) workflow.Mapper {
	return &SSH{actionBase: actionBase{base: newBase(args)}}
}

func (m *SSH) OnNodeParsed() error {
	if err := m.parseCommon(); err != nil {
		return err
	}
	host := m.text("host")
	if host == "" {
		return workflow.Malformedf(m.name, "ssh action has no <host>")
	}
	if user, h, ok := strings.Cut(host, "@"); ok {
		m.user, m.host = user, h
	} else {
		m.user, _ = m.props.JobProperty("user.name")
		m.host = host
	}

	cmd := m.text("command")
	if cmd == "" {
		return workflow.Malformedf(m.name, "ssh action has no <command>")
	}
	argv := append([]string{cmd}, m.texts("args")...)
	m.command = shellescape.QuoteCommand(argv)
	m.captureOutput = m.has("capture-output")
	return nil
}

func (m *SSH) TasksAndRelations() ([]task.Task, []task.Relation) {
	params := map[string]any{
		"user":           m.user,
		"host":           m.host,
		"command":        m.command,
		"capture_output": m.captureOutput,
	}
	return []task.Task{task.New(m.name, sshTemplate, params)}, nil
}

func (m *SSH) RequiredImports() []string {
	return []string{
		"from airflow.contrib.hooks import ssh_hook",
		"from airflow.contrib.operators import ssh_operator",
	}
}
