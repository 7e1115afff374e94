package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSections is returned when a section prompt has nothing to pick from.
	ErrNoSections = errors.New("tui: no sections to choose from")
)
