// Package workflow defines the data model the builder populates: the Mapper
// contract implemented per action type, the ParsedNode wrapping one source
// node, and the Workflow that owns all nodes and the deduplicated relation
// set handed to the renderer.
//
// A ParsedNode carries two flags, ok-path and error-path membership, that are
// only fully known once every edge of the graph has been linked. Every flag
// change re-applies the trigger rule to the node's tasks, so the rule is
// always a pure function of the current flags.
//
// Failures are split in two classes, both wrapped in *NodeError:
// ErrMalformedInput for problems in the source document, and
// ErrContractViolation for API misuse such as asking for the error-flow task
// of a node before its error handler exists.
package workflow
