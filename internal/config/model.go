package config

import "maps"

// Model is the unified representation of a batch configuration.
type Model struct {
	Jobs []*Job
}

// Job is one workflow to compile.
type Job struct {
	Name       string
	InputPath  string
	OutputPath string
	DagName    string
	// Properties are job properties such as nameNode, used for ${...}
	// substitution inside the workflow.
	Properties map[string]string
	// Config carries settings for the generated graph that the workflow
	// itself does not know about, e.g. dataproc_cluster.
	Config map[string]string
}

// WithProperties returns a copy of the job whose properties are overlaid
// with overrides.
func (j *Job) WithProperties(overrides map[string]string) *Job {
	out := *j
	out.Properties = make(map[string]string, len(j.Properties)+len(overrides))
	maps.Copy(out.Properties, j.Properties)
	maps.Copy(out.Properties, overrides)
	out.Config = maps.Clone(j.Config)
	if out.Config == nil {
		out.Config = map[string]string{}
	}
	return &out
}
