package mappers

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/wfgraph/internal/props"
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// element parses a single XML element for use as a mapper body.
func element(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

// parsed constructs a mapper and runs OnNodeParsed, failing the test on error.
func parsed(t *testing.T, c registry.Constructor, name, xml string, ps *props.PropertySet) workflow.Mapper {
	t.Helper()
	m := c(registry.Args{Element: element(t, xml), Name: name, DagName: "test_dag", Props: ps})
	require.NoError(t, m.OnNodeParsed())
	return m
}
