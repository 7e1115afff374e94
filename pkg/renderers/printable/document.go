// Package printable turns the rendered preview into a standalone, print-ready
// HTML document. Preview markup is sanitized before it is embedded.
package printable

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"regexp"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/pkg/render"
	rendertemplate "github.com/goliatone/go-resumegen/pkg/render/template"
	gotemplate "github.com/goliatone/go-resumegen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-resumegen/pkg/renderers/vanilla"
	"github.com/goliatone/go-resumegen/pkg/themes"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const documentTemplate = "templates/document.tmpl"

// DefaultTitle is used when neither the options nor the caller name one.
const DefaultTitle = "Resume"

var cssLength = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?(mm|cm|in|px|pt)$`)

var pageSizes = map[string]string{
	"a4":     "A4",
	"a5":     "A5",
	"letter": "letter",
	"legal":  "legal",
}

// DocumentRenderer produces a printable document from preview markup.
type DocumentRenderer interface {
	Render(ctx context.Context, previewHTML string, options render.PrintOptions) ([]byte, error)
}

type Option func(*HTMLDocument)

// WithTemplateRenderer replaces the embedded document template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(d *HTMLDocument) {
		if renderer != nil {
			d.templates = renderer
		}
	}
}

// WithStylesheet overrides the stylesheet inlined into the document.
func WithStylesheet(css string) Option {
	return func(d *HTMLDocument) {
		d.stylesheet = css
	}
}

// WithTheme inlines the theme CSS variables after the stylesheet.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(d *HTMLDocument) {
		d.cssVars = themes.CSSVarsStyle(cfg)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *HTMLDocument) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// HTMLDocument is the default DocumentRenderer.
type HTMLDocument struct {
	templates  rendertemplate.TemplateRenderer
	policy     *bluemonday.Policy
	stylesheet string
	cssVars    string
	logger     *zap.Logger
}

var _ DocumentRenderer = (*HTMLDocument)(nil)

// NewHTMLDocument builds the default document renderer.
func NewHTMLDocument(options ...Option) (*HTMLDocument, error) {
	doc := &HTMLDocument{
		policy:     newPreviewPolicy(),
		stylesheet: vanilla.Stylesheet(),
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(doc)
		}
	}
	if doc.templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(embeddedTemplates))
		if err != nil {
			return nil, fmt.Errorf("printable: configure template renderer: %w", err)
		}
		doc.templates = engine
	}
	return doc, nil
}

// Render wraps the sanitized preview into a full HTML document.
func (d *HTMLDocument) Render(ctx context.Context, previewHTML string, options render.PrintOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(previewHTML) == "" {
		return nil, errors.New("printable: preview is empty")
	}
	defaults := render.DefaultPrintOptions()

	size, ok := pageSizes[strings.ToLower(strings.TrimSpace(options.PageSize))]
	if !ok {
		if options.PageSize != "" {
			d.logger.Warn("printable: unknown page size, using default", zap.String("page_size", options.PageSize))
		}
		size = defaults.PageSize
	}
	margin := strings.TrimSpace(options.Margin)
	if !cssLength.MatchString(margin) {
		margin = defaults.Margin
	}
	extraCSS := options.CSS
	if extraCSS == "" {
		extraCSS = d.cssVars
	}
	extraCSS = strings.ReplaceAll(extraCSS, "</", `<\/`)
	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = DefaultTitle
	}

	out, err := d.templates.RenderTemplate(documentTemplate, map[string]any{
		"title":      title,
		"page":       map[string]any{"size": size, "margin": margin},
		"stylesheet": d.stylesheet,
		"cssVars":    extraCSS,
		"content":    d.policy.Sanitize(previewHTML),
	})
	if err != nil {
		return nil, fmt.Errorf("printable: render document: %w", err)
	}
	return []byte(out), nil
}

// Result is delivered by ExportAsync.
type Result struct {
	Document []byte
	Err      error
}

// ExportAsync runs the document renderer on its own goroutine. The channel
// receives exactly one Result and is then closed.
func ExportAsync(ctx context.Context, renderer DocumentRenderer, previewHTML string, options render.PrintOptions) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		if renderer == nil {
			out <- Result{Err: errors.New("printable: document renderer is nil")}
			return
		}
		doc, err := renderer.Render(ctx, previewHTML, options)
		out <- Result{Document: doc, Err: err}
	}()
	return out
}

// TitleFor derives the document title from the person's name.
func TitleFor(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultTitle
	}
	return name + " - " + DefaultTitle
}

func newPreviewPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("header", "section", "div", "span", "strong")
	policy.AllowAttrs("class").Globally()
	policy.AllowAttrs("data-section").OnElements("section")
	policy.AllowAttrs("data-contact").OnElements("a", "span")
	policy.AllowURLSchemes("mailto", "tel", "http", "https")
	policy.RequireNoFollowOnLinks(true)
	return policy
}
