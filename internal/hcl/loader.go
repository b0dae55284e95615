package hcl

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/wfgraph/internal/config"
	"github.com/specialistvlad/wfgraph/internal/ctxlog"
	"github.com/specialistvlad/wfgraph/internal/fsutil"
	"github.com/specialistvlad/wfgraph/internal/schema"
)

// Loader reads batch configuration from .hcl files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// decodedFile pairs a decoded file with the directory relative paths in it
// are resolved against.
type decodedFile struct {
	dir  string
	file *schema.File
}

// Load parses every .hcl file found under paths. Defaults from all files are
// merged in load order before being applied to the workflow blocks.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading configuration.", "paths", paths)

	files, err := l.discover(paths)
	if err != nil {
		return nil, err
	}

	parser := hclparse.NewParser()
	var decoded []decodedFile
	for _, path := range files {
		f, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
		}
		var body schema.File
		if diags := gohcl.DecodeBody(f.Body, nil, &body); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
		}
		decoded = append(decoded, decodedFile{dir: filepath.Dir(path), file: &body})
		logger.Debug("Configuration file decoded.", "path", path, "workflows", len(body.Workflows))
	}

	defaults := &schema.Defaults{Properties: map[string]string{}, Config: map[string]string{}}
	for _, d := range decoded {
		if d.file.Defaults != nil {
			maps.Copy(defaults.Properties, d.file.Defaults.Properties)
			maps.Copy(defaults.Config, d.file.Defaults.Config)
		}
	}

	model := &config.Model{}
	seen := make(map[string]string)
	for _, d := range decoded {
		for _, w := range d.file.Workflows {
			if prev, dup := seen[w.Name]; dup {
				return nil, fmt.Errorf("workflow %q is declared more than once (first in %s)", w.Name, prev)
			}
			seen[w.Name] = d.dir
			model.Jobs = append(model.Jobs, translateWorkflow(d.dir, w, defaults))
		}
	}
	logger.Debug("Configuration loaded.", "jobs", len(model.Jobs))
	return model, nil
}

// discover expands directories into the .hcl files they contain.
func (l *Loader) discover(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", p, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	return files, nil
}

func translateWorkflow(dir string, w *schema.Workflow, defaults *schema.Defaults) *config.Job {
	job := &config.Job{
		Name:       w.Name,
		InputPath:  resolvePath(dir, w.Input),
		OutputPath: resolvePath(dir, w.Output),
		DagName:    w.DagName,
		Properties: maps.Clone(defaults.Properties),
		Config:     maps.Clone(defaults.Config),
	}
	if job.DagName == "" {
		job.DagName = w.Name
	}
	maps.Copy(job.Properties, w.Properties)
	maps.Copy(job.Config, w.Config)
	return job
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
