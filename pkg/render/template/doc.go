// Package template defines the renderer-agnostic template contract. The
// gotemplate subpackage provides the pongo2-backed implementation with
// autoescaping enabled and the résumé filters registered.
package template
