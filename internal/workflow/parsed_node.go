package workflow

import (
	"fmt"

	"github.com/specialistvlad/wfgraph/internal/task"
)

const (
	errorHandlerSuffix   = "_error"
	errorHandlerTemplate = "dummy.tpl"
)

// ParsedNode is one source node after mapping. It owns its mapper, its tasks
// and the relations among them, and the edges leaving it by name.
type ParsedNode struct {
	mapper Mapper

	// downstreamNames keeps document order; decision branches depend on it.
	downstreamNames []string
	errorTarget     string

	isOkPath    bool
	isErrorPath bool

	tasks     []task.Task
	relations []task.Relation

	// errorHandler is only meaningful when hasErrorHandler is set.
	errorHandler    task.Task
	hasErrorHandler bool

	built bool
}

// NewParsedNode wraps a mapper. The node has no tasks until Build is called.
func NewParsedNode(m Mapper) *ParsedNode {
	return &ParsedNode{mapper: m}
}

// Name returns the source node name.
func (n *ParsedNode) Name() string {
	return n.mapper.Name()
}

// Mapper returns the mapper owned by this node.
func (n *ParsedNode) Mapper() Mapper {
	return n.mapper
}

// AddDownstream appends a normal-path successor name.
func (n *ParsedNode) AddDownstream(name string) error {
	if name == "" {
		return Malformedf(n.Name(), "empty downstream node name")
	}
	n.downstreamNames = append(n.downstreamNames, name)
	return nil
}

// Downstreams returns the successor names in document order.
func (n *ParsedNode) Downstreams() []string {
	out := make([]string, len(n.downstreamNames))
	copy(out, n.downstreamNames)
	return out
}

// SetErrorTarget records the single error edge of the node. It must be
// called before Build, since the error handler is synthesized there.
func (n *ParsedNode) SetErrorTarget(name string) error {
	if n.built {
		return contractf(n.Name(), "error target %q set after the node was built", name)
	}
	if name == "" {
		return Malformedf(n.Name(), "empty error target")
	}
	if n.errorTarget != "" {
		return Malformedf(n.Name(), "second error target %q, already routed to %q", name, n.errorTarget)
	}
	n.errorTarget = name
	return nil
}

// ErrorTarget returns the error edge target, if any.
func (n *ParsedNode) ErrorTarget() (string, bool) {
	return n.errorTarget, n.errorTarget != ""
}

// Build asks the mapper for tasks and relations and synthesizes the error
// handler when an error target is set. It runs at most once.
func (n *ParsedNode) Build() error {
	if n.built {
		return contractf(n.Name(), "node built twice")
	}
	tasks, relations := n.mapper.TasksAndRelations()
	n.tasks = append([]task.Task(nil), tasks...)
	n.relations = append([]task.Relation(nil), relations...)
	n.addErrorHandlerIfNeeded()
	n.updateTriggerRule()
	n.built = true
	return nil
}

func (n *ParsedNode) addErrorHandlerIfNeeded() {
	if n.errorTarget == "" {
		return
	}
	id := n.Name() + errorHandlerSuffix
	for _, t := range n.tasks {
		n.relations = append(n.relations, task.Relation{From: t.TaskID, To: id, IsError: true})
	}
	n.errorHandler = task.New(id, errorHandlerTemplate, nil).WithTriggerRule(task.TriggerRuleOneFailed)
	n.hasErrorHandler = true
}

// Tasks returns the node's own tasks, without the error handler.
func (n *ParsedNode) Tasks() []task.Task {
	return append([]task.Task(nil), n.tasks...)
}

// Relations returns the intra-node relations, error-handler edges included.
func (n *ParsedNode) Relations() []task.Relation {
	return append([]task.Relation(nil), n.relations...)
}

// ErrorHandlerTask returns the synthesized error handler, if any.
func (n *ParsedNode) ErrorHandlerTask() (task.Task, bool) {
	return n.errorHandler, n.hasErrorHandler
}

// AllTasks returns the node's tasks followed by its error handler.
func (n *ParsedNode) AllTasks() []task.Task {
	out := n.Tasks()
	if n.hasErrorHandler {
		out = append(out, n.errorHandler)
	}
	return out
}

// FirstTaskID is the entry task of the node, if it has any task.
func (n *ParsedNode) FirstTaskID() (string, bool) {
	if len(n.tasks) == 0 {
		return "", false
	}
	return n.tasks[0].TaskID, true
}

// LastTaskIDOfOkFlow is the task the normal-path successors hang off.
func (n *ParsedNode) LastTaskIDOfOkFlow() (string, bool) {
	if len(n.tasks) == 0 {
		return "", false
	}
	return n.tasks[len(n.tasks)-1].TaskID, true
}

// LastTaskIDOfErrorFlow is the id of the synthesized error handler. Asking
// before the handler exists is a contract violation, not bad input.
func (n *ParsedNode) LastTaskIDOfErrorFlow() (string, error) {
	if !n.hasErrorHandler {
		return "", contractf(n.Name(), "error handler task id requested before it was created")
	}
	return n.errorHandler.TaskID, nil
}

// MarkOkPath records that the node is reached by a normal-path edge.
func (n *ParsedNode) MarkOkPath() {
	n.SetPathFlags(true, n.isErrorPath)
}

// MarkErrorPath records that the node is reached by an error edge.
func (n *ParsedNode) MarkErrorPath() {
	n.SetPathFlags(n.isOkPath, true)
}

// SetPathFlags overwrites both path flags and recomputes the trigger rule.
func (n *ParsedNode) SetPathFlags(isOkPath, isErrorPath bool) {
	n.isOkPath = isOkPath
	n.isErrorPath = isErrorPath
	n.updateTriggerRule()
}

// IsOkPathNode reports normal-path membership.
func (n *ParsedNode) IsOkPathNode() bool { return n.isOkPath }

// IsErrorPathNode reports error-path membership.
func (n *ParsedNode) IsErrorPathNode() bool { return n.isErrorPath }

// TriggerRule is the rule currently applied to the node's tasks.
func (n *ParsedNode) TriggerRule() task.TriggerRule {
	return task.TriggerRuleFor(n.isOkPath, n.isErrorPath)
}

func (n *ParsedNode) updateTriggerRule() {
	rule := n.TriggerRule()
	for i := range n.tasks {
		n.tasks[i] = n.tasks[i].WithTriggerRule(rule)
	}
}

func (n *ParsedNode) String() string {
	return fmt.Sprintf("ParsedNode(name=%s, downstream=%v, error=%q, tasks=%d, relations=%d)",
		n.Name(), n.downstreamNames, n.errorTarget, len(n.tasks), len(n.relations))
}
