package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-resumegen/pkg/model"
)

// PrintOptions shape the printable document.
type PrintOptions struct {
	// PageSize is a CSS @page size such as "A4" or "Letter".
	PageSize string
	// Margin is a CSS length applied to every page edge.
	Margin string
	// Title overrides the document title; empty derives it from the name.
	Title string
	// CSS is appended after the stylesheet, typically the theme variables.
	CSS string
}

// DefaultPrintOptions mirrors the browser print defaults of the editor.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{PageSize: "A4", Margin: "12mm"}
}

// RenderOptions describe per-request data renderers use to customise their
// output without touching the aggregate.
type RenderOptions struct {
	// Format selects the preview layout. Empty means general.
	Format model.Format
	// Theme carries resolved tokens and partial overrides for the format.
	Theme *theme.RendererConfig
	// Errors surfaces inline feedback keyed by field id.
	Errors map[string][]string
	// Print is consulted by renderers that emit standalone documents.
	Print PrintOptions
}

// ResolvedFormat returns Format, defaulting to general.
func (o RenderOptions) ResolvedFormat() model.Format {
	if o.Format == "" {
		return model.FormatGeneral
	}
	return o.Format
}
