// Package dag holds a small directed graph used to check that the node-level
// control flow of a compiled workflow is acyclic before it is finished.
package dag
