package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/wfgraph/internal/workflow"
)

// Format selects the serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// Formats lists the supported formats.
var Formats = []Format{FormatYAML, FormatJSON, FormatHCL}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q: must be one of yaml, json, hcl", s)
}

// FileName is the output file name for a graph, e.g. "demo.graph.yaml".
func (f Format) FileName(dagName string) string {
	return dagName + ".graph." + string(f)
}

// Write serializes wf in the given format.
func Write(w io.Writer, wf *workflow.Workflow, f Format) error {
	return WriteDocument(w, FromWorkflow(wf), f)
}

// WriteDocument serializes an already captured document.
func WriteDocument(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatHCL:
		_, err := w.Write(encodeHCL(doc))
		return err
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}
