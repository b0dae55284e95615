package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput marks failures caused by the source document.
	ErrMalformedInput = errors.New("malformed workflow")
	// ErrContractViolation marks misuse of the node or mapper API by calling code.
	ErrContractViolation = errors.New("contract violation")
)

// NodeError wraps a failure attributed to a single workflow node.
type NodeError struct {
	Kind error
	Node string
	Msg  string
}

func (e *NodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Node == "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
	}
	return fmt.Sprintf("%s: node %q: %s", e.Kind.Error(), e.Node, e.Msg)
}

func (e *NodeError) Unwrap() error { return e.Kind }

// Malformedf reports bad input for the named node. node may be empty for
// document-level problems.
func Malformedf(node, format string, args ...any) error {
	return &NodeError{Kind: ErrMalformedInput, Node: node, Msg: fmt.Sprintf(format, args...)}
}

func contractf(node, format string, args ...any) error {
	return &NodeError{Kind: ErrContractViolation, Node: node, Msg: fmt.Sprintf(format, args...)}
}
