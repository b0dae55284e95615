package app

import (
	"errors"

	"github.com/specialistvlad/wfgraph/internal/export"
)

const defaultParallel = 4

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // workflow.xml or an application directory
	OutputPath string // directory for <dag_name>.graph.<ext>; stdout when empty
	DagName    string
	ConfigPath string // HCL batch configuration, file or directory

	Format     string
	Properties map[string]string // job properties, override config files
	Settings   map[string]string // graph settings such as dataproc_cluster

	LogFormat string
	LogLevel  string

	Parallel    int
	Watch       bool
	ListMappers bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if !cfg.ListMappers {
		if cfg.InputPath == "" && cfg.ConfigPath == "" {
			return nil, errors.New("an input path or a config file is required")
		}
		if cfg.InputPath != "" && cfg.ConfigPath != "" {
			return nil, errors.New("an input path and a config file cannot be used together")
		}
	}

	if cfg.Format == "" {
		cfg.Format = string(export.FormatYAML)
	}
	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	cfg.Format = string(format)

	if cfg.Parallel <= 0 {
		cfg.Parallel = defaultParallel
	}
	if cfg.Properties == nil {
		cfg.Properties = map[string]string{}
	}
	if cfg.Settings == nil {
		cfg.Settings = map[string]string{}
	}
	return &cfg, nil
}
