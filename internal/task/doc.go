// Package task holds the graph primitives every other package builds on:
// tasks, the relations between them, and the trigger rules that encode
// success/failure conditional execution.
package task
