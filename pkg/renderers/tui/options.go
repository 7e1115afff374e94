package tui

import (
	"io"

	"go.uber.org/zap"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling editor logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the terminal editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver used by the editor.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(e *Editor) {
		if out != nil {
			e.out = out
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(e *Editor) {
		e.theme = theme
	}
}

// WithFiles replaces the filesystem used by import and export.
func WithFiles(files Files) Option {
	return func(e *Editor) {
		if files != nil {
			e.files = files
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}
