package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles creates a temporary directory holding files, keyed by their
// slash separated relative path, and returns its root. The directory is
// removed when the test finishes.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// Workflow wraps body in a workflow-app element so tests only spell out
// the control nodes they care about.
func Workflow(name, body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<workflow-app xmlns="uri:oozie:workflow:0.5" name="` + name + `">
` + body + `
</workflow-app>
`
}

// DemoBody is a small workflow exercising fork, join, decision, kill and
// a handful of actions.
const DemoBody = `
  <start to="cleanup"/>
  <action name="cleanup">
    <fs><delete path="${nameNode}/examples/output"/></fs>
    <ok to="fork"/>
    <error to="fail"/>
  </action>
  <fork name="fork">
    <path start="pig"/>
    <path start="shell"/>
  </fork>
  <action name="pig">
    <pig><script>id.pig</script></pig>
    <ok to="join"/>
    <error to="fail"/>
  </action>
  <action name="shell">
    <shell xmlns="uri:oozie:shell-action:0.1">
      <exec>echo</exec>
      <argument>hello</argument>
    </shell>
    <ok to="join"/>
    <error to="fail"/>
  </action>
  <join name="join" to="decision"/>
  <decision name="decision">
    <switch>
      <case to="end">${wf:conf("done") eq "true"}</case>
      <default to="fail"/>
    </switch>
  </decision>
  <kill name="fail">
    <message>Workflow failed, error message[${wf:errorMessage(wf:lastErrorNode())}]</message>
  </kill>
  <end name="end"/>
`
