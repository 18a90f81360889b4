// Package engine contains the core scanning logic for credsweep. It locates
// INSERT statements in a document, splits them into fields, runs the
// classifier over every field and returns the accumulated findings. This
// package is internal; external consumers should use the facade in pkg/core.
package engine
