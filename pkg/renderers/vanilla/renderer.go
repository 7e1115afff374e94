// Package vanilla renders the résumé editor as server-side HTML: section
// fieldsets, the contact block, the editor page and both preview formats.
// Every template runs with autoescaping on.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/render"
	rendertemplate "github.com/goliatone/go-resumegen/pkg/render/template"
	gotemplate "github.com/goliatone/go-resumegen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-resumegen/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-resumegen/pkg/themes"
)

const (
	generalTemplate = "templates/preview/general.tmpl"
	companyTemplate = "templates/preview/company.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default control and section registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	logger    *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		registry:  cfg.registry,
		logger:    cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the preview fragment for the requested format.
func (r *Renderer) Render(_ context.Context, data model.ResumeData, options render.RenderOptions) ([]byte, error) {
	out, err := r.renderPreview(data, options.ResolvedFormat(), options.Theme)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// RenderPreview returns the full preview markup for data in format.
func (r *Renderer) RenderPreview(data model.ResumeData, format model.Format) (string, error) {
	return r.renderPreview(data, format, nil)
}

func (r *Renderer) renderPreview(data model.ResumeData, format model.Format, themeCfg *theme.RendererConfig) (string, error) {
	if r.templates == nil {
		return "", fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if format == "" {
		format = model.FormatGeneral
	}

	name := generalTemplate
	if format == model.FormatCompany {
		name = companyTemplate
	}
	if themeCfg != nil && themeCfg.Partials != nil {
		if override := themeCfg.Partials["preview."+string(format)]; override != "" {
			name = override
		}
	}

	result, err := r.templates.RenderTemplate(name, map[string]any{
		"data":       data.Normalize(),
		"format":     string(format),
		"visibility": format.Visibility(),
		"theme":      themeContext(themeCfg),
		"classes":    chromeClasses(),
	})
	if err != nil {
		r.logger.Error("preview render failed", zap.String("format", string(format)), zap.Error(err))
		return "", fmt.Errorf("vanilla renderer: render preview %q: %w", format, err)
	}
	return result, nil
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return nil
	}
	out := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"tokens":  cfg.Tokens,
		"cssVars": themes.CSSVarsStyle(cfg),
	}
	if cfg.AssetURL != nil {
		out["stylesheet"] = cfg.AssetURL(themes.AssetStylesheet)
		out["script"] = cfg.AssetURL(themes.AssetEditorScript)
	}
	return out
}
