// Package registry maps action-body tag names (e.g. "ssh", "fs", "pig") to
// the constructors of the mappers that translate them.
//
// The registry is consulted only for <action> elements. A tag nobody
// registered resolves to the fallback constructor instead of failing, so new
// action types can be supported without touching the traversal and unknown
// ones never abort a compile.
package registry
