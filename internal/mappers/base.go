package mappers

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/specialistvlad/wfgraph/internal/props"
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const (
	dummyTemplate = "dummy.tpl"

	importDummyOperator = "from airflow.operators import dummy_operator"
	importBashOperator  = "from airflow.operators import bash_operator"
)

// base carries what every mapper needs and the no-op halves of the contract.
type base struct {
	name    string
	dagName string
	el      *etree.Element
	props   *props.PropertySet
}

func newBase(args registry.Args) base {
	ps := args.Props
	if ps == nil {
		ps = props.Empty()
	}
	el := args.Element
	if el == nil {
		el = etree.NewElement("")
	}
	return base{name: args.Name, dagName: args.DagName, el: el, props: ps}
}

func (b *base) Name() string { return b.name }

func (b *base) OnNodeParsed() error { return nil }

func (b *base) OnWorkflowFinished(*workflow.Workflow) {}

func (b *base) RequiredImports() []string { return nil }

// text returns the resolved, trimmed text of the first child named tag.
func (b *base) text(tag string) string {
	child := b.el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return b.props.Resolve(strings.TrimSpace(child.Text()))
}

// texts returns the resolved, trimmed text of every child named tag.
func (b *base) texts(tag string) []string {
	var out []string
	for _, child := range b.el.SelectElements(tag) {
		out = append(out, b.props.Resolve(strings.TrimSpace(child.Text())))
	}
	return out
}

// has reports whether a child named tag is present, e.g. <capture-output/>.
func (b *base) has(tag string) bool {
	return b.el.SelectElement(tag) != nil
}

// requiredAttr returns the resolved value of attr on el or a malformed-input error.
func (b *base) requiredAttr(el *etree.Element, attr string) (string, error) {
	a := el.SelectAttr(attr)
	if a == nil || strings.TrimSpace(a.Value) == "" {
		return "", workflow.Malformedf(b.name, "<%s> is missing required attribute %q", el.Tag, attr)
	}
	return b.props.Resolve(a.Value), nil
}
