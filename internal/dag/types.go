package dag

import (
	"errors"
	"sync"
)

// ErrCycle is wrapped by every error reporting a cycle, self edges included.
var ErrCycle = errors.New("cycle detected")

// Graph is a collection of nodes and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order keeps insertion order so that traversal and reports are stable.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// dependents holds the set of nodes that depend on this node (successors).
	dependents map[string]*node
	// dependentOrder lists dependents in the order their edges were added.
	dependentOrder []string
}
