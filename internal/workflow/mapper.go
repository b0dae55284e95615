package workflow

import "github.com/specialistvlad/wfgraph/internal/task"

// Mapper translates one source node into tasks. Every action type and every
// control node kind has its own implementation.
//
// The builder drives a mapper through two phases that never interleave:
//
//  1. OnNodeParsed, then TasksAndRelations, once, while the node is built.
//  2. OnWorkflowFinished, once, after every node of the workflow exists.
type Mapper interface {
	// Name is the source node name; task ids are derived from it.
	Name() string

	// OnNodeParsed is called once, right after construction and before the
	// node joins the workflow. Mappers parse their element here and report
	// malformed input.
	OnNodeParsed() error

	// TasksAndRelations returns the node's ordered tasks and the relations
	// among them.
	TasksAndRelations() ([]task.Task, []task.Relation)

	// OnWorkflowFinished may rewrite graph-global state, e.g. remove its own
	// node when it turned out to be redundant.
	OnWorkflowFinished(wf *Workflow)

	// RequiredImports lists opaque strings for the renderer.
	RequiredImports() []string
}
