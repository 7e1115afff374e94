// Package resumegen is the quick-start entry point: render a résumé record
// or an import payload without wiring the orchestrator by hand.
package resumegen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/render"
)

// ResumeData aliases the aggregate record.
type ResumeData = model.ResumeData

// RenderOptions describes per-request format, theme and print settings.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders data with the named renderer ("vanilla" when empty).
func GenerateHTML(ctx context.Context, data ResumeData, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Data:          &data,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// GenerateHTMLFromJSON validates raw like an import and renders it.
func GenerateHTMLFromJSON(ctx context.Context, raw []byte, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Raw:           raw,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// each format resolves its variant ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, name string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name)
}
