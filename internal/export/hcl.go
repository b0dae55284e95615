package export

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// encodeHCL renders doc as:
//
//	dag_name = "demo"
//	node "a" {
//	  task "a" { ... }
//	  relation { ... }
//	}
//	relation { ... }
func encodeHCL(doc *Document) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("dag_name", cty.StringVal(doc.DagName))
	if doc.InputPath != "" {
		body.SetAttributeValue("input_path", cty.StringVal(doc.InputPath))
	}
	if doc.OutputPath != "" {
		body.SetAttributeValue("output_path", cty.StringVal(doc.OutputPath))
	}
	body.SetAttributeValue("imports", toCty(doc.Imports))

	for _, n := range doc.Nodes {
		body.AppendNewline()
		nb := body.AppendNewBlock("node", []string{n.Name}).Body()
		if len(n.Downstream) > 0 {
			nb.SetAttributeValue("downstream", toCty(n.Downstream))
		}
		if n.ErrorTarget != "" {
			nb.SetAttributeValue("error_target", cty.StringVal(n.ErrorTarget))
		}
		nb.SetAttributeValue("trigger_rule", cty.StringVal(n.TriggerRule))
		for _, t := range n.Tasks {
			tb := nb.AppendNewBlock("task", []string{t.ID}).Body()
			tb.SetAttributeValue("template", cty.StringVal(t.Template))
			tb.SetAttributeValue("trigger_rule", cty.StringVal(t.TriggerRule))
			if len(t.Params) > 0 {
				tb.SetAttributeValue("params", toCty(t.Params))
			}
		}
		appendRelations(nb, n.Relations)
	}
	if len(doc.Relations) > 0 {
		body.AppendNewline()
	}
	appendRelations(body, doc.Relations)
	return f.Bytes()
}

func appendRelations(body *hclwrite.Body, relations []Relation) {
	for _, r := range relations {
		rb := body.AppendNewBlock("relation", nil).Body()
		rb.SetAttributeValue("from", cty.StringVal(r.From))
		rb.SetAttributeValue("to", cty.StringVal(r.To))
		if r.IsError {
			rb.SetAttributeValue("is_error", cty.True)
		}
	}
}

// toCty converts template parameter values. Lists become tuples and maps
// objects, so mixed element types need no unification.
func toCty(v any) cty.Value {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case string:
		return cty.StringVal(val)
	case bool:
		return cty.BoolVal(val)
	case int:
		return cty.NumberIntVal(int64(val))
	case int64:
		return cty.NumberIntVal(val)
	case float64:
		return cty.NumberFloatVal(val)
	case []string:
		elems := make([]cty.Value, 0, len(val))
		for _, s := range val {
			elems = append(elems, cty.StringVal(s))
		}
		return cty.TupleVal(elems)
	case []any:
		elems := make([]cty.Value, 0, len(val))
		for _, e := range val {
			elems = append(elems, toCty(e))
		}
		return cty.TupleVal(elems)
	case []map[string]string:
		elems := make([]cty.Value, 0, len(val))
		for _, m := range val {
			elems = append(elems, toCty(m))
		}
		return cty.TupleVal(elems)
	case map[string]string:
		attrs := make(map[string]cty.Value, len(val))
		for k, s := range val {
			attrs[k] = cty.StringVal(s)
		}
		return objectVal(attrs)
	case map[string]any:
		attrs := make(map[string]cty.Value, len(val))
		for k, e := range val {
			attrs[k] = toCty(e)
		}
		return objectVal(attrs)
	default:
		return cty.StringVal(fmt.Sprint(val))
	}
}

func objectVal(attrs map[string]cty.Value) cty.Value {
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}
