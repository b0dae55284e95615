// Package testutil holds helpers shared by the package tests: a goroutine
// safe output buffer and helpers that lay out workflow applications on disk.
package testutil
