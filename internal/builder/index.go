package builder

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// elementIndex gives name lookup over the direct children of the root.
type elementIndex struct {
	byName map[string]*etree.Element
	start  *etree.Element
}

func indexElements(root *etree.Element) (*elementIndex, error) {
	idx := &elementIndex{byName: make(map[string]*etree.Element)}
	for _, el := range root.ChildElements() {
		if el.Tag == "start" {
			if idx.start != nil {
				return nil, workflow.Malformedf("", "document declares more than one <start>")
			}
			idx.start = el
			continue
		}
		name := strings.TrimSpace(el.SelectAttrValue("name", ""))
		if name == "" {
			// <global>, <parameters>, <credentials> and similar carry no name.
			continue
		}
		if _, dup := idx.byName[name]; dup {
			return nil, workflow.Malformedf(name, "node declared more than once")
		}
		idx.byName[name] = el
	}
	if idx.start == nil {
		return nil, workflow.Malformedf("", "document has no <start>")
	}
	return idx, nil
}

func (idx *elementIndex) lookup(name string) (*etree.Element, bool) {
	el, ok := idx.byName[name]
	return el, ok
}
