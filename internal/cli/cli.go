package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/wfgraph/internal/app"
	"github.com/specialistvlad/wfgraph/internal/export"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `wfgraph compiles Oozie-style workflow definitions (workflow.xml) into a
task graph: named tasks rendered from templates, the dependencies between
them and the trigger rule each task runs under.

INPUT is a workflow.xml file or an application directory. Use --config to
compile a batch of workflows described in .hcl files instead.`

// Parse processes command-line arguments. It returns a populated AppConfig,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	if args == nil {
		args = []string{}
	}

	var (
		cfg        app.Config
		positional string
		ran        bool
	)

	cmd := &cobra.Command{
		Use:           "wfgraph [flags] [INPUT]",
		Short:         "Compile workflow definitions into task graphs.",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				positional = args[0]
			}
			ran = true
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&cfg.InputPath, "input", "i", "", "Path to a workflow.xml or an application directory.")
	flags.StringVarP(&cfg.OutputPath, "output", "o", "", "Directory for the generated graph. Prints to stdout when empty.")
	flags.StringVarP(&cfg.DagName, "dag-name", "n", "", "Name of the generated graph. Defaults to the application directory name.")
	flags.StringVarP(&cfg.ConfigPath, "config", "c", "", "Path to an .hcl batch configuration file or directory.")
	flags.StringVarP(&cfg.Format, "format", "f", string(export.FormatYAML), "Output format. Options: 'yaml', 'json' or 'hcl'.")
	flags.StringToStringVarP(&cfg.Properties, "property", "p", nil, "Job property used for ${...} substitution, e.g. -p nameNode=hdfs://nn:8020.")
	flags.StringToStringVarP(&cfg.Settings, "set", "s", nil, "Graph setting, e.g. -s dataproc_cluster=main.")
	flags.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&cfg.LogLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.IntVar(&cfg.Parallel, "parallel", 4, "Number of workflows compiled concurrently.")
	flags.BoolVarP(&cfg.Watch, "watch", "w", false, "Recompile whenever a workflow file changes.")
	flags.BoolVar(&cfg.ListMappers, "list-mappers", false, "Print the supported action types and exit.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		// --help was handled by cobra.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	if positional != "" {
		if cfg.InputPath != "" && cfg.InputPath != positional {
			return nil, false, &ExitError{Code: 2, Message: "input given both as --input and as an argument"}
		}
		cfg.InputPath = positional
	}
	slog.Debug("Input path determined.", "path", cfg.InputPath)

	if cfg.InputPath == "" && cfg.ConfigPath == "" && !cfg.ListMappers {
		slog.Debug("No input provided, printing usage and exiting.")
		fmt.Fprintln(output, longHelp)
		fmt.Fprintln(output)
		_ = cmd.Usage()
		return nil, true, nil
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
