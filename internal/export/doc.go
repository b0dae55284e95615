// Package export serializes a finished workflow graph for the renderer that
// turns it into target-orchestrator source. Supported formats are YAML, JSON
// and HCL; all three carry the same Document.
package export
