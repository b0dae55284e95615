package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/wfgraph/internal/builder"
	"github.com/specialistvlad/wfgraph/internal/config"
	"github.com/specialistvlad/wfgraph/internal/ctxlog"
	"github.com/specialistvlad/wfgraph/internal/export"
	"github.com/specialistvlad/wfgraph/internal/mappers"
	"github.com/specialistvlad/wfgraph/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	config    *Config
	format    export.Format
	jobs      []*config.Job
	buildOpts []builder.Option
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// loader is only consulted when cfg.ConfigPath is set.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := mappers.NewRegistry(modules...)
	logger.Debug("All mapper modules registered.", "count", len(modules), "action_types", reg.Tags())

	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	a := &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
		format:   format,
	}
	if cfg.ListMappers {
		return a, nil
	}

	if cfg.ConfigPath != "" {
		if loader == nil {
			return nil, fmt.Errorf("no loader available for %s", cfg.ConfigPath)
		}
		model, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		for _, job := range model.Jobs {
			job = job.WithProperties(cfg.Properties)
			maps.Copy(job.Config, cfg.Settings)
			if job.OutputPath == "" {
				job.OutputPath = cfg.OutputPath
			}
			a.jobs = append(a.jobs, job)
		}
		logger.Debug("Configuration loaded and translated into jobs.", "jobs", len(a.jobs))
	} else {
		dagName := cfg.DagName
		if dagName == "" {
			dagName = defaultDagName(cfg.InputPath)
		}
		a.jobs = []*config.Job{{
			Name:       dagName,
			InputPath:  cfg.InputPath,
			OutputPath: cfg.OutputPath,
			DagName:    dagName,
			Properties: cfg.Properties,
			Config:     maps.Clone(cfg.Settings),
		}}
	}
	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Jobs returns the jobs this App compiles.
func (a *App) Jobs() []*config.Job {
	return a.jobs
}

// defaultDagName derives a DAG name from the input path: the application
// directory name, or the parent directory of a workflow.xml.
func defaultDagName(input string) string {
	clean := filepath.Clean(input)
	base := filepath.Base(clean)
	if strings.HasSuffix(base, ".xml") {
		base = filepath.Base(filepath.Dir(clean))
		if base == "hdfs" {
			base = filepath.Base(filepath.Dir(filepath.Dir(clean)))
		}
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
