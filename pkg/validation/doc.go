// Package validation holds the pure checks used by the editor: contact field
// formats, HTML escaping, URL sanitizing, and schema validation of imported
// snapshots against the embedded OpenAPI description.
package validation
