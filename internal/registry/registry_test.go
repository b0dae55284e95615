package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

type namedMapper struct {
	name string
	kind string
}

func (m *namedMapper) Name() string { return m.name }
func (m *namedMapper) OnNodeParsed() error { return nil }
func (m *namedMapper) OnWorkflowFinished(*workflow.Workflow) {}
func (m *namedMapper) RequiredImports() []string { return nil }
func (m *namedMapper) TasksAndRelations() ([]task.Task, []task.Relation) {
	return []task.Task{task.New(m.name, m.kind+".tpl", nil)}, nil
}

func constructorFor(kind string) Constructor {
	return func(args Args) workflow.Mapper {
		return &namedMapper{name: args.Name, kind: kind}
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := New(constructorFor("dummy"))
	r.Register("ssh", constructorFor("ssh"))

	c, fallback := r.Resolve("ssh")
	require.False(t, fallback)
	assert.Equal(t, "ssh", c(Args{Name: "a"}).(*namedMapper).kind)

	c, fallback = r.Resolve("unknown")
	require.True(t, fallback)
	assert.Equal(t, "dummy", c(Args{Name: "a"}).(*namedMapper).kind)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := New(constructorFor("dummy"))
	r.Register("fs", constructorFor("fs"))

	assert.PanicsWithValue(t, "mapper for action type 'fs' already registered", func() {
		r.Register("fs", constructorFor("fs"))
	})
}

func TestRegistry_NilFallbackPanics(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestRegistry_Tags(t *testing.T) {
	r := New(constructorFor("dummy"))
	for _, tag := range []string{"ssh", "fs", "pig"} {
		r.Register(tag, constructorFor(tag))
	}
	assert.Equal(t, []string{"fs", "pig", "ssh"}, r.Tags())
}
