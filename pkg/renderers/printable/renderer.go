package printable

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/themes"
)

// PreviewRenderer is the part of the vanilla renderer the printable renderer
// depends on.
type PreviewRenderer interface {
	Render(ctx context.Context, data model.ResumeData, options render.RenderOptions) ([]byte, error)
}

// Renderer renders the preview for the requested format and hands it to a
// DocumentRenderer.
type Renderer struct {
	preview  PreviewRenderer
	document DocumentRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the printable renderer.
func New(preview PreviewRenderer, document DocumentRenderer) (*Renderer, error) {
	if preview == nil {
		return nil, errors.New("printable: preview renderer is required")
	}
	if document == nil {
		return nil, errors.New("printable: document renderer is required")
	}
	return &Renderer{preview: preview, document: document}, nil
}

func (r *Renderer) Name() string {
	return "printable"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, data model.ResumeData, options render.RenderOptions) ([]byte, error) {
	preview, err := r.preview.Render(ctx, data, options)
	if err != nil {
		return nil, fmt.Errorf("printable: render preview: %w", err)
	}
	printOpts := options.Print
	if printOpts.Title == "" {
		printOpts.Title = TitleFor(data.Personal.Name)
	}
	if printOpts.CSS == "" {
		printOpts.CSS = themes.CSSVarsStyle(options.Theme)
	}
	result := <-ExportAsync(ctx, r.document, string(preview), printOpts)
	if result.Err != nil {
		return nil, result.Err
	}
	return result.Document, nil
}
