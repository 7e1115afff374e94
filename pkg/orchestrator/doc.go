// Package orchestrator wires the import → transform → theme → renderer
// pipeline that turns a résumé record into output, with dependency injection
// friendly defaults for consumers that prefer a single entry point.
package orchestrator
