package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/renderers/printable"
	"github.com/goliatone/go-resumegen/pkg/renderers/vanilla"
	"github.com/goliatone/go-resumegen/pkg/themes"
	"github.com/goliatone/go-resumegen/pkg/transfer"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRenderers registers additional renderers alongside the defaults.
func WithRenderers(renderers ...render.Renderer) Option {
	return func(o *Orchestrator) {
		o.extraRenderers = append(o.extraRenderers, renderers...)
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithImporter replaces the importer used for raw request payloads.
func WithImporter(importer *transfer.Importer) Option {
	return func(o *Orchestrator) {
		o.importer = importer
	}
}

// WithTransformers registers transformers that run, in order, before the
// theme is resolved.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithThemeSelector resolves a theme variant per format ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, name string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		if strings.TrimSpace(name) != "" {
			o.themeName = strings.TrimSpace(name)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from a résumé record (or a raw JSON
// payload) to rendered output. It applies sensible defaults (vanilla and
// printable renderers, built-in theme) while remaining open to injection.
type Orchestrator struct {
	registry        *render.Registry
	extraRenderers  []render.Renderer
	defaultRenderer string
	importer        *transfer.Importer
	transformers    []Transformer
	themeSelector   theme.ThemeSelector
	themeName       string
	logger          *zap.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		themeName:       themes.DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a résumé.
type Request struct {
	// Data is the record to render. Optional when Raw is supplied.
	Data *model.ResumeData

	// Raw is an import payload, validated like a user import.
	Raw []byte

	// Renderer names the renderer to use; empty falls back to the default.
	Renderer string

	// RenderOptions carries the format, print settings and inline errors.
	// A nil Theme is filled from the configured selector.
	RenderOptions render.RenderOptions
}

// Generate executes the resolve → transform → theme → render sequence and
// returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	data, err := o.resolveData(req)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	format := options.ResolvedFormat()
	options.Format = format

	for _, t := range o.transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, &data, format); err != nil {
			return nil, fmt.Errorf("orchestrator: transform resume: %w", err)
		}
	}

	if options.Theme == nil && o.themeSelector != nil {
		cfg, err := themes.ForFormat(o.themeSelector, o.themeName, format)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: resolve theme: %w", err)
		}
		options.Theme = cfg
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, data, options)
	if err != nil {
		o.logger.Error("orchestrator: render failed", zap.String("renderer", renderer.Name()), zap.Error(err))
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// ContentType reports the content type of the named renderer.
func (o *Orchestrator) ContentType(name string) (string, error) {
	renderer, err := o.rendererFor(name)
	if err != nil {
		return "", err
	}
	return renderer.ContentType(), nil
}

func (o *Orchestrator) resolveData(req Request) (model.ResumeData, error) {
	if req.Data != nil {
		return req.Data.Clone(), nil
	}
	if len(bytes.TrimSpace(req.Raw)) == 0 {
		return model.ResumeData{}, errors.New("orchestrator: data or raw payload is required")
	}
	data, err := o.importer.Parse(req.Raw)
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("orchestrator: import payload: %w", err)
	}
	return data, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.importer == nil {
		o.importer = transfer.NewImporter()
	}
	if o.themeSelector == nil {
		selector, err := themes.NewSelector(themes.Manifest())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
		} else {
			o.themeSelector = selector
		}
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := registerDefaultRenderers(o.registry, o.logger); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		}
	}
	for _, r := range o.extraRenderers {
		if r == nil || o.initialiseErr != nil {
			continue
		}
		if err := o.registry.Register(r); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register %q: %w", r.Name(), err)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	o.defaultsApplied = true
}

func registerDefaultRenderers(registry *render.Registry, logger *zap.Logger) error {
	preview, err := vanilla.New(vanilla.WithLogger(logger))
	if err != nil {
		return err
	}
	document, err := printable.NewHTMLDocument(printable.WithLogger(logger))
	if err != nil {
		return err
	}
	printer, err := printable.New(preview, document)
	if err != nil {
		return err
	}
	if err := registry.Register(preview); err != nil {
		return err
	}
	return registry.Register(printer)
}
