package mappers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const fsTemplate = "fs_op.tpl"

type fsCommandFunc func(m *FS, el *etree.Element) (string, error)

var fsCommands = map[string]fsCommandFunc{
	"mkdir":  (*FS).mkdir,
	"delete": (*FS).delete,
	"move":   (*FS).move,
	"chmod":  (*FS).chmod,
	"touchz": (*FS).touchz,
	"chgrp":  (*FS).chgrp,
}

type fsOperation struct {
	tag     string
	command string
}

// FS turns each filesystem operation of an <fs> action into its own task,
// executed in document order.
type FS struct {
	actionBase
	ops []fsOperation
}

// NewFS is registered for <fs> action bodies.
func NewFS(args registry.Args) workflow.Mapper {
	return &FS{actionBase: actionBase{base: newBase(args)}}
}

func (m *FS) OnNodeParsed() error {
	if err := m.parseCommon(); err != nil {
		return err
	}
	for _, child := range m.el.ChildElements() {
		fn, ok := fsCommands[child.Tag]
		if !ok {
			continue
		}
		cmd, err := fn(m, child)
		if err != nil {
			return err
		}
		m.ops = append(m.ops, fsOperation{tag: child.Tag, command: cmd})
	}
	return nil
}

func (m *FS) TasksAndRelations() ([]task.Task, []task.Relation) {
	if len(m.ops) == 0 {
		return []task.Task{task.New(m.name, dummyTemplate, nil)}, nil
	}

	tasks := make([]task.Task, 0, len(m.ops))
	for i, op := range m.ops {
		id := m.name
		if len(m.ops) > 1 {
			id = fmt.Sprintf("%s_fs_%d_%s", m.name, i, op.tag)
		}
		tasks = append(tasks, task.New(id, fsTemplate, map[string]any{
			"pig_command":            op.command,
			"action_node_properties": m.properties,
		}))
	}

	var relations []task.Relation
	for i := 1; i < len(tasks); i++ {
		relations = append(relations, task.Relation{From: tasks[i-1].TaskID, To: tasks[i].TaskID})
	}
	return tasks, relations
}

func (m *FS) RequiredImports() []string {
	if len(m.ops) == 0 {
		return []string{importDummyOperator}
	}
	return []string{importBashOperator, importDummyOperator}
}

// path resolves an attribute and strips scheme and authority off it.
func (m *FS) path(el *etree.Element, attr string) (string, error) {
	raw, err := m.requiredAttr(el, attr)
	if err != nil {
		return "", err
	}
	return urlPath(raw), nil
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	return u.Path
}

func recursiveFlag(el *etree.Element) string {
	if el.SelectElement("recursive") != nil {
		return "-R"
	}
	return ""
}

func (m *FS) mkdir(el *etree.Element) (string, error) {
	p, err := m.path(el, "path")
	if err != nil {
		return "", err
	}
	return "fs -mkdir -p " + p, nil
}

func (m *FS) delete(el *etree.Element) (string, error) {
	p, err := m.path(el, "path")
	if err != nil {
		return "", err
	}
	return "fs -rm -f -r " + p, nil
}

func (m *FS) move(el *etree.Element) (string, error) {
	src, err := m.path(el, "source")
	if err != nil {
		return "", err
	}
	dst, err := m.path(el, "target")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("fs -mv %s %s", src, dst), nil
}

func (m *FS) chmod(el *etree.Element) (string, error) {
	p, err := m.path(el, "path")
	if err != nil {
		return "", err
	}
	perm, err := m.requiredAttr(el, "permissions")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("fs -chmod %s %s %s", recursiveFlag(el), strings.TrimSpace(perm), p), nil
}

func (m *FS) touchz(el *etree.Element) (string, error) {
	p, err := m.path(el, "path")
	if err != nil {
		return "", err
	}
	return "fs -touchz " + p, nil
}

func (m *FS) chgrp(el *etree.Element) (string, error) {
	p, err := m.path(el, "path")
	if err != nil {
		return "", err
	}
	group, err := m.requiredAttr(el, "group")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("fs -chgrp %s %s %s", recursiveFlag(el), strings.TrimSpace(group), p), nil
}
