// Package schema holds the gohcl decoding targets for batch configuration
// files.
package schema

import "github.com/hashicorp/hcl/v2"

// Defaults apply to every workflow block; a workflow's own values win.
type Defaults struct {
	Properties map[string]string `hcl:"properties,optional"`
	Config     map[string]string `hcl:"config,optional"`
}

// Workflow represents a `workflow "<name>" { ... }` block.
type Workflow struct {
	Name       string            `hcl:"name,label"`
	Input      string            `hcl:"input"`
	Output     string            `hcl:"output,optional"`
	DagName    string            `hcl:"dag_name,optional"`
	Properties map[string]string `hcl:"properties,optional"`
	Config     map[string]string `hcl:"config,optional"`
}

// File represents the top-level structure of one configuration file.
type File struct {
	Defaults  *Defaults   `hcl:"defaults,block"`
	Workflows []*Workflow `hcl:"workflow,block"`
	Body      hcl.Body    `hcl:",remain"`
}
