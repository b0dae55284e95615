package mappers

import "github.com/specialistvlad/wfgraph/internal/registry"

// Module registers every action mapper this package provides.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.Register("fs", NewFS)
	r.Register("ssh", NewSSH)
	r.Register("shell", NewShell)
	r.Register("pig", NewPig)
	r.Register("spark", NewSpark)
	r.Register("map-reduce", NewMapReduce)
	r.Register("distcp", NewDistCp)
	r.Register("sub-workflow", NewSubWorkflow)
}

// NewRegistry returns a registry holding the given modules with Dummy as fallback.
func NewRegistry(modules ...registry.Module) *registry.Registry {
	r := registry.New(NewDummy)
	for _, m := range modules {
		m.Register(r)
	}
	return r
}
