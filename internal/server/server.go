// Package server exposes the editor over HTTP: the editor page, the JSON
// endpoints driven by the browser runtime and the embedded assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/pkg/controller"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/renderers/vanilla"
	"github.com/goliatone/go-resumegen/pkg/themes"
	"github.com/goliatone/go-resumegen/pkg/transfer"
)

const defaultTitle = "Resume Builder"

// Generator renders a record with a named renderer; *orchestrator.Orchestrator
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, req orchestrator.Request) ([]byte, error)
}

// Option configures a Server.
type Option func(*Server)

// WithGenerator overrides the renderer pipeline used by /print.
func WithGenerator(gen Generator) Option {
	return func(s *Server) {
		if gen != nil {
			s.generator = gen
		}
	}
}

// WithEditorRenderer overrides the renderer that builds the editor page and
// new fieldsets.
func WithEditorRenderer(r *vanilla.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.editor = r
		}
	}
}

// WithTheme selects the theme used for the editor page.
func WithTheme(selector theme.ThemeSelector, name string) Option {
	return func(s *Server) {
		if selector != nil {
			s.selector = selector
		}
		if name != "" {
			s.themeName = name
		}
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTitle sets the editor page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		if title != "" {
			s.title = title
		}
	}
}

// WithMaxImportBytes bounds the body accepted by /import.
func WithMaxImportBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxImport = n
		}
	}
}

// Server binds a controller to HTTP routes.
type Server struct {
	ctrl      *controller.Controller
	editor    *vanilla.Renderer
	generator Generator
	selector  theme.ThemeSelector
	themeName string
	logger    *zap.Logger
	title     string
	maxImport int64
	router    chi.Router
}

// New builds a Server around ctrl.
func New(ctrl *controller.Controller, opts ...Option) (*Server, error) {
	if ctrl == nil {
		return nil, errors.New("server: controller is required")
	}
	s := &Server{
		ctrl:      ctrl,
		themeName: themes.DefaultTheme,
		logger:    zap.NewNop(),
		title:     defaultTitle,
		maxImport: transfer.DefaultMaxImportBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.editor == nil {
		editor, err := vanilla.New(vanilla.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: editor renderer: %w", err)
		}
		s.editor = editor
	}
	if s.selector == nil {
		selector, err := themes.NewSelector(themes.Manifest())
		if err != nil {
			return nil, fmt.Errorf("server: theme selector: %w", err)
		}
		s.selector = selector
	}
	if s.generator == nil {
		s.generator = orchestrator.New(
			orchestrator.WithLogger(s.logger),
			orchestrator.WithThemeSelector(s.selector, s.themeName),
		)
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer wraps the handler in an *http.Server listening on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (s *Server) routes() chi.Router {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(30 * time.Second))

	router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(vanilla.AssetsFS()))))
	router.Get("/healthz", s.handleHealth)
	router.Get("/openapi.yaml", s.handleOpenAPI)

	router.Group(func(r chi.Router) {
		r.Use(noStore)
		r.Get("/", s.handleEditor)
		r.Get("/preview", s.handlePreview)
		r.Get("/print", s.handlePrint)
		r.Get("/export.json", s.handleExport)
		r.Post("/fields", s.handleSetField)
		r.Post("/sections/{target}", s.handleAddSection)
		r.Delete("/sections/{target}", s.handleRemoveSection)
		r.Post("/format", s.handleFormat)
		r.Post("/reorder/{kind}", s.handleReorder)
		r.Post("/import", s.handleImport)
		r.Post("/clear", s.handleClear)
	})
	return router
}
