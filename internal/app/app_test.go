package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/wfgraph/internal/builder"
	"github.com/specialistvlad/wfgraph/internal/export"
	"github.com/specialistvlad/wfgraph/internal/hcl"
	"github.com/specialistvlad/wfgraph/internal/testutil"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// newTestApp builds an App with a deterministic start node name.
func newTestApp(t *testing.T, out *testutil.SafeBuffer, cfg Config) *App {
	t.Helper()
	color.NoColor = true
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	c, err := NewConfig(cfg)
	require.NoError(t, err)
	a, err := NewApp(out, c, hcl.NewLoader())
	require.NoError(t, err)
	a.buildOpts = []builder.Option{builder.WithStartNameSuffix(func() string { return "t" })}
	return a
}

func nodeNames(doc *export.Document) []string {
	names := make([]string, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		names = append(names, n.Name)
	}
	return names
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "no input", cfg: Config{}, wantErr: "input path or a config file is required"},
		{name: "both inputs", cfg: Config{InputPath: "a", ConfigPath: "b"}, wantErr: "cannot be used together"},
		{name: "bad format", cfg: Config{InputPath: "a", Format: "toml"}, wantErr: `unknown format "toml"`},
		{name: "list mappers needs no input", cfg: Config{ListMappers: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig(Config{InputPath: "a", Format: "JSON"})
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, defaultParallel, cfg.Parallel)
		assert.NotNil(t, cfg.Properties)
	})
}

func TestDefaultDagName(t *testing.T) {
	testCases := map[string]string{
		"examples/demo":                    "demo",
		"examples/demo/":                   "demo",
		"examples/my-app/workflow.xml":     "my_app",
		"examples/shell/hdfs/workflow.xml": "shell",
		"flow.v2":                          "flow_v2",
	}
	for input, want := range testCases {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, defaultDagName(input))
		})
	}
}

func TestLocateWorkflow(t *testing.T) {
	wf := testutil.Workflow("wf", `<start to="end"/><end name="end"/>`)
	root := testutil.WriteFiles(t, map[string]string{
		"hdfs_layout/hdfs/workflow.xml": wf,
		"hdfs_layout/workflow.xml":      wf,
		"flat/workflow.xml":             wf,
		"nested/apps/one/workflow.xml":  wf,
		"many/a/workflow.xml":           wf,
		"many/b/workflow.xml":           wf,
		"empty/readme.txt":              "nothing here",
	})

	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "hdfs subdirectory wins", input: "hdfs_layout", want: "hdfs_layout/hdfs/workflow.xml"},
		{name: "flat layout", input: "flat", want: "flat/workflow.xml"},
		{name: "explicit file", input: "many/b/workflow.xml", want: "many/b/workflow.xml"},
		{name: "single nested match", input: "nested", want: "nested/apps/one/workflow.xml"},
		{name: "ambiguous", input: "many", wantErr: "found 2 workflow.xml files"},
		{name: "none", input: "empty", wantErr: "no workflow.xml found"},
		{name: "missing", input: "does-not-exist", wantErr: "failed to stat input"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := locateWorkflow(filepath.Join(root, tc.input))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tc.want)), got)
		})
	}
}

func TestRun_WritesGraphFile(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"demo/hdfs/workflow.xml": testutil.Workflow("demo", testutil.DemoBody),
	})
	outDir := filepath.Join(root, "out")

	out := &testutil.SafeBuffer{}
	a := newTestApp(t, out, Config{
		InputPath:  filepath.Join(root, "demo"),
		OutputPath: outDir,
		Properties: map[string]string{"nameNode": "hdfs://nn:8020"},
	})
	require.NoError(t, a.Run(context.Background()))

	raw, err := os.ReadFile(filepath.Join(outDir, "demo.graph.yaml"))
	require.NoError(t, err)

	var doc export.Document
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Equal(t, "demo", doc.DagName)
	assert.Subset(t, nodeNames(&doc), []string{"start_node_t", "cleanup", "fork", "pig", "shell", "join", "decision", "end"})
	assert.Contains(t, string(raw), "fs -rm -f -r /examples/output")
	assert.NotContains(t, string(raw), "${nameNode}")

	summary := out.String()
	assert.Contains(t, summary, "✓ demo")
	assert.Contains(t, summary, "1 workflow(s) compiled")
}

func TestRun_StdoutCarriesOnlyTheGraph(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"wf/workflow.xml": testutil.Workflow("wf", `
  <start to="hello"/>
  <action name="hello">
    <ssh><host>user@example.com</host><command>echo</command><args>hi</args></ssh>
    <ok to="end"/>
    <error to="end"/>
  </action>
  <end name="end"/>`),
	})

	out := &testutil.SafeBuffer{}
	a := newTestApp(t, out, Config{InputPath: filepath.Join(root, "wf"), Format: "json", DagName: "hello_dag"})
	require.NoError(t, a.Run(context.Background()))

	assert.NotContains(t, out.String(), "✓")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out.String()), "{"))
	assert.Contains(t, out.String(), `"dag_name": "hello_dag"`)
}

func TestRun_MalformedWorkflowFails(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"bad/workflow.xml": testutil.Workflow("bad", `<start to="missing"/><end name="end"/>`),
		"out/.keep":        "",
	})

	out := &testutil.SafeBuffer{}
	a := newTestApp(t, out, Config{InputPath: filepath.Join(root, "bad"), OutputPath: filepath.Join(root, "out")})
	err := a.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, workflow.ErrMalformedInput)
	assert.Contains(t, err.Error(), `undeclared node "missing"`)
	assert.Contains(t, out.String(), "✗ bad")
	assert.Contains(t, out.String(), "1 workflow(s) failed")
	assert.NoFileExists(t, filepath.Join(root, "out", "bad.graph.yaml"))
}

func TestRun_InvalidXML(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"broken.xml": "<workflow-app><start"})

	out := &testutil.SafeBuffer{}
	a := newTestApp(t, out, Config{InputPath: filepath.Join(root, "broken.xml"), OutputPath: root})
	err := a.Run(context.Background())
	assert.ErrorIs(t, err, workflow.ErrMalformedInput)
}

func TestRun_BatchFromConfig(t *testing.T) {
	simple := testutil.Workflow("simple", `<start to="end"/><end name="end"/>`)
	root := testutil.WriteFiles(t, map[string]string{
		"apps/first/workflow.xml":  simple,
		"apps/second/workflow.xml": testutil.Workflow("second", testutil.DemoBody),
		"apps/broken/workflow.xml": testutil.Workflow("broken", `<end name="end"/>`),
		"conf/jobs.hcl": `
defaults {
  properties = { nameNode = "hdfs://default" }
}
workflow "first" {
  input = "../apps/first"
}
workflow "second" {
  input    = "../apps/second"
  dag_name = "second_dag"
}
workflow "broken" {
  input = "../apps/broken"
}
`,
	})
	outDir := filepath.Join(root, "out")

	out := &testutil.SafeBuffer{}
	a := newTestApp(t, out, Config{
		ConfigPath: filepath.Join(root, "conf"),
		OutputPath: outDir,
		Parallel:   2,
		Properties: map[string]string{"nameNode": "hdfs://override"},
		Settings:   map[string]string{"dataproc_cluster": "cluster-main"},
	})
	require.Len(t, a.Jobs(), 3)
	for _, job := range a.Jobs() {
		assert.Equal(t, "hdfs://override", job.Properties["nameNode"])
		assert.Equal(t, "cluster-main", job.Config["dataproc_cluster"])
		assert.Equal(t, outDir, job.OutputPath)
	}

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken:")

	assert.FileExists(t, filepath.Join(outDir, "first.graph.yaml"))
	assert.FileExists(t, filepath.Join(outDir, "second_dag.graph.yaml"))
	raw, err := os.ReadFile(filepath.Join(outDir, "second_dag.graph.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "${nameNode}")

	summary := out.String()
	assert.Contains(t, summary, "✓ first")
	assert.Contains(t, summary, "✓ second")
	assert.Contains(t, summary, "✗ broken")
	assert.Contains(t, summary, "1 of 3 workflow(s) failed")
}

func TestRun_ListMappers(t *testing.T) {
	out := &testutil.SafeBuffer{}
	a := newTestApp(t, out, Config{ListMappers: true})
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, []string{"distcp", "fs", "map-reduce", "pig", "shell", "spark", "ssh", "sub-workflow"}, out.Lines())
}

func TestRun_WatchRecompilesOnChange(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"wf/workflow.xml": testutil.Workflow("wf", `<start to="end"/><end name="end"/>`),
	})
	wfPath := filepath.Join(root, "wf", "workflow.xml")
	outDir := filepath.Join(root, "out")
	target := filepath.Join(outDir, "wf.graph.yaml")

	out := &testutil.SafeBuffer{}
	a := newTestApp(t, out, Config{InputPath: filepath.Join(root, "wf"), OutputPath: outDir, Watch: true, LogLevel: "info"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching for changes.")
	}, 5*time.Second, 10*time.Millisecond)
	assert.FileExists(t, target)

	require.NoError(t, os.WriteFile(wfPath, []byte(testutil.Workflow("wf", `
  <start to="touch"/>
  <action name="touch">
    <fs><touchz path="/tmp/marker"/></fs>
    <ok to="end"/>
    <error to="end"/>
  </action>
  <end name="end"/>`)), 0o644))

	require.Eventually(t, func() bool {
		raw, err := os.ReadFile(target)
		return err == nil && strings.Contains(string(raw), "fs -touchz /tmp/marker")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}
