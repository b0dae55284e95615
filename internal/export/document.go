package export

import (
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// Document is the serializable view of a workflow.
type Document struct {
	DagName    string     `json:"dag_name" yaml:"dag_name"`
	InputPath  string     `json:"input_path,omitempty" yaml:"input_path,omitempty"`
	OutputPath string     `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Imports    []string   `json:"imports" yaml:"imports"`
	Nodes      []Node     `json:"nodes" yaml:"nodes"`
	Relations  []Relation `json:"relations" yaml:"relations"`
}

// Node is one parsed node with its tasks, in traversal-completion order.
type Node struct {
	Name        string     `json:"name" yaml:"name"`
	Downstream  []string   `json:"downstream,omitempty" yaml:"downstream,omitempty"`
	ErrorTarget string     `json:"error_target,omitempty" yaml:"error_target,omitempty"`
	TriggerRule string     `json:"trigger_rule" yaml:"trigger_rule"`
	Tasks       []Task     `json:"tasks" yaml:"tasks"`
	Relations   []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
}

type Task struct {
	ID          string         `json:"id" yaml:"id"`
	Template    string         `json:"template" yaml:"template"`
	TriggerRule string         `json:"trigger_rule" yaml:"trigger_rule"`
	Params      map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

type Relation struct {
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	IsError bool   `json:"is_error,omitempty" yaml:"is_error,omitempty"`
}

// FromWorkflow captures wf. Inter-node relations are sorted so that output is
// stable across runs.
func FromWorkflow(wf *workflow.Workflow) *Document {
	doc := &Document{
		DagName:    wf.DagName,
		InputPath:  wf.InputPath,
		OutputPath: wf.OutputPath,
		Imports:    wf.RequiredImports(),
		Nodes:      []Node{},
		Relations:  fromRelations(wf.Relations.Sorted()),
	}
	for _, name := range wf.NodeNames() {
		n := wf.Nodes[name]
		node := Node{
			Name:        name,
			Downstream:  n.Downstreams(),
			TriggerRule: string(n.TriggerRule()),
			Tasks:       []Task{},
			Relations:   fromRelations(n.Relations()),
		}
		if et, ok := n.ErrorTarget(); ok {
			node.ErrorTarget = et
		}
		for _, t := range n.AllTasks() {
			node.Tasks = append(node.Tasks, Task{
				ID:          t.TaskID,
				Template:    t.TemplateName,
				TriggerRule: string(t.TriggerRule),
				Params:      t.TemplateParams,
			})
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	return doc
}

func fromRelations(in []task.Relation) []Relation {
	out := make([]Relation, 0, len(in))
	for _, r := range in {
		out = append(out, Relation{From: r.From, To: r.To, IsError: r.IsError})
	}
	return out
}

// TaskCount is the number of tasks across all nodes, error handlers included.
func (d *Document) TaskCount() int {
	count := 0
	for _, n := range d.Nodes {
		count += len(n.Tasks)
	}
	return count
}
