package workflow

import (
	"sort"

	"github.com/specialistvlad/wfgraph/internal/task"
)

// Workflow is the graph produced by one compile job. It owns every parsed
// node and the relations between nodes; it is not safe for concurrent use.
type Workflow struct {
	DagName    string
	InputPath  string
	OutputPath string

	// Nodes is keyed by source node name and doubles as the visited set of
	// the traversal.
	Nodes map[string]*ParsedNode
	// Relations holds inter-node edges. Intra-node edges stay on the nodes.
	Relations task.RelationSet

	// order records insertion, i.e. traversal-completion order.
	order []string
}

// New creates an empty workflow.
func New(dagName, inputPath, outputPath string) *Workflow {
	return &Workflow{
		DagName:    dagName,
		InputPath:  inputPath,
		OutputPath: outputPath,
		Nodes:      make(map[string]*ParsedNode),
		Relations:  task.NewRelationSet(),
	}
}

// AddNode inserts a node. Each name can be inserted once per workflow.
func (wf *Workflow) AddNode(n *ParsedNode) error {
	name := n.Name()
	if _, exists := wf.Nodes[name]; exists {
		return contractf(name, "node inserted twice")
	}
	wf.Nodes[name] = n
	wf.order = append(wf.order, name)
	return nil
}

// Node looks a node up by name.
func (wf *Workflow) Node(name string) (*ParsedNode, bool) {
	n, ok := wf.Nodes[name]
	return n, ok
}

// RemoveNode deletes a node from the workflow. Relations are left alone.
func (wf *Workflow) RemoveNode(name string) {
	delete(wf.Nodes, name)
}

// NodeNames returns live node names in the order they were inserted.
func (wf *Workflow) NodeNames() []string {
	names := make([]string, 0, len(wf.Nodes))
	for _, name := range wf.order {
		if _, ok := wf.Nodes[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// RemoveRelationsTo deletes every inter-node relation that targets one of
// the given task ids.
func (wf *Workflow) RemoveRelationsTo(taskIDs ...string) int {
	targets := make(map[string]struct{}, len(taskIDs))
	for _, id := range taskIDs {
		targets[id] = struct{}{}
	}
	return wf.Relations.RemoveWhere(func(r task.Relation) bool {
		_, hit := targets[r.To]
		return hit
	})
}

// UpstreamOf returns the live nodes that list name as a normal-path
// successor, in insertion order.
func (wf *Workflow) UpstreamOf(name string) []*ParsedNode {
	var out []*ParsedNode
	for _, candidate := range wf.NodeNames() {
		n := wf.Nodes[candidate]
		for _, d := range n.downstreamNames {
			if d == name {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// Validate checks that task ids are unique and that no relation, inter- or
// intra-node, points at a task that no node owns.
func (wf *Workflow) Validate() error {
	owner := make(map[string]string)
	for _, name := range wf.NodeNames() {
		for _, t := range wf.Nodes[name].AllTasks() {
			if prev, dup := owner[t.TaskID]; dup {
				return Malformedf(name, "task id %q already produced by node %q", t.TaskID, prev)
			}
			owner[t.TaskID] = name
		}
	}

	check := func(node string, r task.Relation) error {
		if _, ok := owner[r.From]; !ok {
			return Malformedf(node, "relation %s starts at unknown task %q", r, r.From)
		}
		if _, ok := owner[r.To]; !ok {
			return Malformedf(node, "relation %s ends at unknown task %q", r, r.To)
		}
		return nil
	}
	for _, name := range wf.NodeNames() {
		for _, r := range wf.Nodes[name].relations {
			if err := check(name, r); err != nil {
				return err
			}
		}
	}
	for _, r := range wf.Relations.Sorted() {
		if err := check("", r); err != nil {
			return err
		}
	}
	return nil
}

// RequiredImports is the sorted union of every live mapper's imports.
func (wf *Workflow) RequiredImports() []string {
	seen := make(map[string]struct{})
	for _, n := range wf.Nodes {
		for _, imp := range n.mapper.RequiredImports() {
			seen[imp] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for imp := range seen {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}
