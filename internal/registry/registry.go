package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/beevik/etree"

	"github.com/specialistvlad/wfgraph/internal/props"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// Args is everything a mapper constructor receives.
type Args struct {
	// Element is the source element the mapper translates. For actions it is
	// the action body (e.g. <ssh>), for control nodes the node itself.
	Element *etree.Element
	// Name is the source node name.
	Name string
	// DagName is the name of the generated graph.
	DagName string
	// Props resolves property references in element text.
	Props *props.PropertySet
}

// Constructor builds a mapper for one source node.
type Constructor func(args Args) workflow.Mapper

// Module is implemented by every bundle of mappers that can be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the action-type constructors of one application instance.
type Registry struct {
	actions  map[string]Constructor
	fallback Constructor
}

// New creates an empty registry that resolves unknown tags to fallback.
func New(fallback Constructor) *Registry {
	if fallback == nil {
		panic("registry: fallback constructor must not be nil")
	}
	return &Registry{
		actions:  make(map[string]Constructor),
		fallback: fallback,
	}
}

// Register binds an action tag to a constructor.
func (r *Registry) Register(tag string, c Constructor) {
	if _, exists := r.actions[tag]; exists {
		panic(fmt.Sprintf("mapper for action type '%s' already registered", tag))
	}
	slog.Debug("Registering action mapper.", "tag", tag)
	r.actions[tag] = c
}

// Resolve returns the constructor for tag, or the fallback when the tag is
// unknown. The boolean reports whether the fallback was used.
func (r *Registry) Resolve(tag string) (Constructor, bool) {
	if c, ok := r.actions[tag]; ok {
		return c, false
	}
	return r.fallback, true
}

// Tags lists registered action tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.actions))
	for tag := range r.actions {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
