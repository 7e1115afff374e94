// Package controller owns the editor state and serializes every mutation of
// it. Each mutation re-renders the full preview, reports the result to
// subscribers and schedules a debounced save; imports and clears bypass the
// debounce.
package controller
