package builder

import (
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/specialistvlad/wfgraph/internal/mappers"
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// nodeSpec is what a handler extracts from one element.
type nodeSpec struct {
	mapper      workflow.Mapper
	downstream  []string
	errorTarget string
	// visitFirst puts the downstream names at the front of the worklist.
	visitFirst bool
}

type handlerFunc func(t *traversal, name string, el *etree.Element) (nodeSpec, error)

// handlers is the dispatch table for node elements.
var handlers = map[string]handlerFunc{
	"start":    (*traversal).handleStart,
	"end":      (*traversal).handleEnd,
	"kill":     (*traversal).handleKill,
	"fork":     (*traversal).handleFork,
	"join":     (*traversal).handleJoin,
	"decision": (*traversal).handleDecision,
	"action":   (*traversal).handleAction,
}

// reference is a pending node name and the node that pointed at it.
type reference struct {
	name string
	from string
}

type traversal struct {
	builder *Builder
	wf      *workflow.Workflow
	idx     *elementIndex
	logger  *slog.Logger
	queue   []reference
}

func (t *traversal) run(startName string) error {
	if err := t.visit(startName, t.idx.start); err != nil {
		return err
	}
	for len(t.queue) > 0 {
		ref := t.queue[0]
		t.queue = t.queue[1:]
		if _, visited := t.wf.Node(ref.name); visited {
			continue
		}
		el, ok := t.idx.lookup(ref.name)
		if !ok {
			return workflow.Malformedf(ref.from, "references undeclared node %q", ref.name)
		}
		if err := t.visit(ref.name, el); err != nil {
			return err
		}
	}
	return nil
}

// visit creates, builds and inserts the node for el, then queues its successors.
func (t *traversal) visit(name string, el *etree.Element) error {
	handle, ok := handlers[el.Tag]
	if !ok {
		return workflow.Malformedf(name, "unsupported node type <%s>", el.Tag)
	}
	ns, err := handle(t, name, el)
	if err != nil {
		return err
	}

	n := workflow.NewParsedNode(ns.mapper)
	for _, d := range ns.downstream {
		if err := n.AddDownstream(d); err != nil {
			return err
		}
	}
	if ns.errorTarget != "" {
		if err := n.SetErrorTarget(ns.errorTarget); err != nil {
			return err
		}
	}
	if err := ns.mapper.OnNodeParsed(); err != nil {
		return err
	}
	if err := n.Build(); err != nil {
		return err
	}
	if err := t.wf.AddNode(n); err != nil {
		return err
	}
	t.logger.Debug("Node parsed.", "node", name, "tag", el.Tag, "downstream", ns.downstream, "error_target", ns.errorTarget)

	if ns.visitFirst {
		t.pushFront(name, ns.downstream)
	} else {
		t.pushBack(name, ns.downstream)
	}
	if ns.errorTarget != "" {
		t.pushBack(name, []string{ns.errorTarget})
	}
	return nil
}

func (t *traversal) pushBack(from string, names []string) {
	for _, name := range names {
		t.queue = append(t.queue, reference{name: name, from: from})
	}
}

// pushFront keeps names in order ahead of everything already queued.
func (t *traversal) pushFront(from string, names []string) {
	refs := make([]reference, 0, len(names)+len(t.queue))
	for _, name := range names {
		refs = append(refs, reference{name: name, from: from})
	}
	t.queue = append(refs, t.queue...)
}

func (t *traversal) args(name string, el *etree.Element) registry.Args {
	return registry.Args{
		Element: el,
		Name:    name,
		DagName: t.wf.DagName,
		Props:   t.builder.props,
	}
}

// requiredTo reads the mandatory `to` attribute of el.
func requiredTo(name string, el *etree.Element) (string, error) {
	to := strings.TrimSpace(el.SelectAttrValue("to", ""))
	if to == "" {
		return "", workflow.Malformedf(name, "<%s> is missing required attribute %q", el.Tag, "to")
	}
	return to, nil
}

func (t *traversal) handleStart(name string, el *etree.Element) (nodeSpec, error) {
	to, err := requiredTo(name, el)
	if err != nil {
		return nodeSpec{}, err
	}
	return nodeSpec{mapper: mappers.NewStart(t.args(name, el)), downstream: []string{to}}, nil
}

func (t *traversal) handleEnd(name string, el *etree.Element) (nodeSpec, error) {
	return nodeSpec{mapper: mappers.NewEnd(t.args(name, el))}, nil
}

func (t *traversal) handleKill(name string, el *etree.Element) (nodeSpec, error) {
	return nodeSpec{mapper: mappers.NewKill(t.args(name, el))}, nil
}

func (t *traversal) handleFork(name string, el *etree.Element) (nodeSpec, error) {
	paths := el.SelectElements("path")
	if len(paths) == 0 {
		return nodeSpec{}, workflow.Malformedf(name, "fork has no <path>")
	}
	var downstream []string
	for _, p := range paths {
		start := strings.TrimSpace(p.SelectAttrValue("start", ""))
		if start == "" {
			return nodeSpec{}, workflow.Malformedf(name, "<path> is missing required attribute %q", "start")
		}
		downstream = append(downstream, start)
	}
	return nodeSpec{
		mapper:     mappers.NewDummy(t.args(name, el)),
		downstream: downstream,
		visitFirst: true,
	}, nil
}

func (t *traversal) handleJoin(name string, el *etree.Element) (nodeSpec, error) {
	to, err := requiredTo(name, el)
	if err != nil {
		return nodeSpec{}, err
	}
	return nodeSpec{mapper: mappers.NewDummy(t.args(name, el)), downstream: []string{to}}, nil
}

func (t *traversal) handleDecision(name string, el *etree.Element) (nodeSpec, error) {
	cases, defaultTarget, err := mappers.ParseSwitch(name, el)
	if err != nil {
		return nodeSpec{}, err
	}
	downstream := make([]string, 0, len(cases)+1)
	for _, c := range cases {
		downstream = append(downstream, c.Target)
	}
	downstream = append(downstream, defaultTarget)
	return nodeSpec{mapper: mappers.NewDecision(t.args(name, el)), downstream: downstream}, nil
}

// handleAction resolves the action body through the registry. An action
// without a body resolves like an unknown one, to the fallback mapper. It
// must carry exactly one <ok> and at most one <error>.
func (t *traversal) handleAction(name string, el *etree.Element) (nodeSpec, error) {
	body := el
	tag := ""
	for _, child := range el.ChildElements() {
		if child.Tag == "ok" || child.Tag == "error" {
			continue
		}
		if tag != "" {
			return nodeSpec{}, workflow.Malformedf(name, "action has more than one body element: <%s> and <%s>", tag, child.Tag)
		}
		body, tag = child, child.Tag
	}

	oks := el.SelectElements("ok")
	switch len(oks) {
	case 0:
		return nodeSpec{}, workflow.Malformedf(name, "action has no <ok> transition")
	case 1:
	default:
		return nodeSpec{}, workflow.Malformedf(name, "action has %d <ok> transitions, expected one", len(oks))
	}
	errs := el.SelectElements("error")
	if len(errs) > 1 {
		return nodeSpec{}, workflow.Malformedf(name, "action has %d <error> transitions, expected at most one", len(errs))
	}

	ctor, fallback := t.builder.registry.Resolve(tag)
	if fallback {
		t.logger.Debug("No mapper registered for action type, using fallback.", "node", name, "action_type", tag)
	}

	ns := nodeSpec{mapper: ctor(t.args(name, body))}
	to, err := requiredTo(name, oks[0])
	if err != nil {
		return nodeSpec{}, err
	}
	ns.downstream = []string{to}
	if len(errs) == 1 {
		to, err := requiredTo(name, errs[0])
		if err != nil {
			return nodeSpec{}, err
		}
		ns.errorTarget = to
	}
	return ns, nil
}
