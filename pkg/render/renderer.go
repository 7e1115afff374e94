package render

import (
	"context"

	"github.com/goliatone/go-resumegen/pkg/model"
)

// Renderer converts a résumé aggregate into a byte representation (preview
// fragment, printable document, plain text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, data model.ResumeData, options RenderOptions) ([]byte, error)
}
