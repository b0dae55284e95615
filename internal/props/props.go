// Package props resolves `${...}` references inside action bodies against the
// job properties of a compile run.
//
// Only plain variable references are substituted. Every reference is
// evaluated separately as an HCL expression whose variables are the job
// properties, dotted keys such as `user.name` becoming nested objects. A
// reference HCL cannot parse or evaluate, e.g. an EL call like
// `${wf:user()}`, is left verbatim for the renderer while its neighbours are
// still substituted.
package props

import (
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// PropertySet holds the job properties and converter configuration of one
// compile run. It is immutable after construction.
type PropertySet struct {
	jobProperties map[string]string
	config        map[string]string

	once    sync.Once
	evalCtx *hcl.EvalContext
}

// New copies the given maps into a new PropertySet. Nil maps are allowed.
func New(jobProperties, config map[string]string) *PropertySet {
	return &PropertySet{
		jobProperties: copyMap(jobProperties),
		config:        copyMap(config),
	}
}

// Empty returns a PropertySet without any property.
func Empty() *PropertySet {
	return New(nil, nil)
}

// JobProperty returns a single job property.
func (p *PropertySet) JobProperty(key string) (string, bool) {
	v, ok := p.jobProperties[key]
	return v, ok
}

// Config returns a single converter configuration value.
func (p *PropertySet) Config(key string) (string, bool) {
	v, ok := p.config[key]
	return v, ok
}

// Resolve substitutes `${...}` references in text one at a time. Each
// reference is evaluated on its own as an HCL expression against the job
// properties; references that cannot be evaluated, such as EL calls or
// unknown properties, are kept verbatim.
func (p *PropertySet) Resolve(text string) string {
	if !strings.Contains(text, "${") {
		return text
	}

	var b strings.Builder
	rest := text
	for {
		open := strings.Index(rest, "${")
		if open < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])
		closeAt := matchingBrace(rest, open+2)
		if closeAt < 0 {
			// Unterminated reference.
			b.WriteString(rest[open:])
			break
		}
		ref := rest[open : closeAt+1]
		if val, ok := p.evaluate(rest[open+2 : closeAt]); ok {
			b.WriteString(val)
		} else {
			b.WriteString(ref)
		}
		rest = rest[closeAt+1:]
	}
	return b.String()
}

// matchingBrace returns the index of the `}` closing a reference whose body
// starts at from, skipping braces nested inside it. It returns -1 when the
// reference is not closed.
func matchingBrace(s string, from int) int {
	depth := 0
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func (p *PropertySet) evaluate(src string) (string, bool) {
	if strings.TrimSpace(src) == "" {
		return "", false
	}
	expr, diags := hclsyntax.ParseExpression([]byte(src), "property", hcl.InitialPos)
	if diags.HasErrors() {
		return "", false
	}
	val, diags := expr.Value(p.evalContext())
	if diags.HasErrors() || !val.IsWhollyKnown() || val.IsNull() {
		return "", false
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", false
	}
	return str.AsString(), true
}

func (p *PropertySet) evalContext() *hcl.EvalContext {
	p.once.Do(func() {
		p.evalCtx = &hcl.EvalContext{Variables: variables(p.jobProperties)}
	})
	return p.evalCtx
}

// variables turns flat, possibly dotted property keys into cty values. When a
// key is both a value and a prefix of other keys the plain value wins.
func variables(properties map[string]string) map[string]cty.Value {
	root := make(map[string]any)
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	// Shorter keys first so plain values claim their slot before nested ones.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		if !strings.Contains(key, ".") {
			root[key] = properties[key]
			continue
		}
		insertNested(root, strings.Split(key, "."), properties[key])
	}

	vars := make(map[string]cty.Value, len(root))
	for k, v := range root {
		vars[k] = toValue(v)
	}
	return vars
}

func insertNested(tree map[string]any, path []string, value string) {
	if len(path) < 2 {
		return
	}
	cur := tree
	for _, seg := range path[:len(path)-1] {
		next, exists := cur[seg]
		if !exists {
			child := make(map[string]any)
			cur[seg] = child
			cur = child
			continue
		}
		child, isMap := next.(map[string]any)
		if !isMap {
			return
		}
		cur = child
	}
	last := path[len(path)-1]
	if _, exists := cur[last]; !exists {
		cur[last] = value
	}
}

func toValue(v any) cty.Value {
	switch t := v.(type) {
	case string:
		return cty.StringVal(t)
	case map[string]any:
		attrs := make(map[string]cty.Value, len(t))
		for k, child := range t {
			attrs[k] = toValue(child)
		}
		return cty.ObjectVal(attrs)
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
