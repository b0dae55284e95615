package mappers

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const prepareTemplate = "prepare.tpl"

// actionBase adds the parts shared by action bodies: <configuration>,
// <prepare>, <name-node>, <file> and <archive>.
type actionBase struct {
	base
	properties map[string]string
	deletes    []string
	mkdirs     []string
	files      []string
	archives   []string
}

// parseCommon must run first in every action mapper's OnNodeParsed.
func (a *actionBase) parseCommon() error {
	a.properties = map[string]string{}
	if conf := a.el.SelectElement("configuration"); conf != nil {
		for _, p := range conf.SelectElements("property") {
			nameEl := p.SelectElement("name")
			if nameEl == nil || strings.TrimSpace(nameEl.Text()) == "" {
				return workflow.Malformedf(a.name, "<configuration> property has no <name>")
			}
			value := ""
			if v := p.SelectElement("value"); v != nil {
				value = a.props.Resolve(strings.TrimSpace(v.Text()))
			}
			a.properties[strings.TrimSpace(nameEl.Text())] = value
		}
	}

	if prep := a.el.SelectElement("prepare"); prep != nil {
		for _, child := range prep.ChildElements() {
			path, err := a.requiredAttr(child, "path")
			if err != nil {
				return err
			}
			switch child.Tag {
			case "delete":
				a.deletes = append(a.deletes, path)
			case "mkdir":
				a.mkdirs = append(a.mkdirs, path)
			default:
				return workflow.Malformedf(a.name, "unsupported <prepare> operation <%s>", child.Tag)
			}
		}
	}

	nameNode := a.nameNode()
	for _, f := range a.texts("file") {
		a.files = append(a.files, withNameNode(nameNode, f))
	}
	for _, f := range a.texts("archive") {
		a.archives = append(a.archives, withNameNode(nameNode, f))
	}
	return nil
}

// nameNode prefers the action's own <name-node> over the job property.
func (a *actionBase) nameNode() string {
	if nn := a.text("name-node"); nn != "" {
		return nn
	}
	nn, _ := a.props.JobProperty("nameNode")
	return nn
}

func withNameNode(nameNode, path string) string {
	if strings.Contains(path, "://") || !strings.HasPrefix(path, "/") {
		return path
	}
	return nameNode + path
}

// Properties returns the resolved <configuration> properties.
func (a *actionBase) Properties() map[string]string { return a.properties }

// Files returns the <file> entries qualified with the name node.
func (a *actionBase) Files() []string { return a.files }

// Archives returns the <archive> entries qualified with the name node.
func (a *actionBase) Archives() []string { return a.archives }

func (a *actionBase) hasPrepare() bool {
	return len(a.deletes) > 0 || len(a.mkdirs) > 0
}

func (a *actionBase) prepareTaskID() string {
	return fmt.Sprintf("%s_prepare", a.name)
}

// withPrepare places the prepare task, if any, in front of main.
func (a *actionBase) withPrepare(main task.Task) ([]task.Task, []task.Relation) {
	if !a.hasPrepare() {
		return []task.Task{main}, nil
	}
	prep := task.New(a.prepareTaskID(), prepareTemplate, map[string]any{
		"delete": strings.Join(a.deletes, " "),
		"mkdir":  strings.Join(a.mkdirs, " "),
	})
	return []task.Task{prep, main}, []task.Relation{{From: prep.TaskID, To: main.TaskID}}
}

func (a *actionBase) commonParams() map[string]any {
	params := map[string]any{"action_node_properties": a.properties}
	if len(a.files) > 0 {
		params["hdfs_files"] = a.files
	}
	if len(a.archives) > 0 {
		params["hdfs_archives"] = a.archives
	}
	return params
}

func (a *actionBase) RequiredImports() []string {
	imports := []string{importBashOperator}
	if a.hasPrepare() {
		imports = append(imports, "from wfgraph_libs import prepare")
	}
	return imports
}
