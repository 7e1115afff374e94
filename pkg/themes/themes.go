// Package themes resolves the visual tokens and template partials for each
// preview format. The two formats are variants of one go-theme manifest.
package themes

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-resumegen/pkg/model"
)

// DefaultTheme is the name of the built-in manifest.
const DefaultTheme = "resumegen"

// Asset keys understood by the editor page.
const (
	AssetStylesheet   = "editor.stylesheet"
	AssetEditorScript = "editor.script"
)

// Manifest returns the built-in manifest. Variants are keyed by format name.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":      "#1e3a8a",
			"text":       "#1f2937",
			"muted":      "#4b5563",
			"rule":       "#d1d5db",
			"link":       "#2563eb",
			"font":       "ui-sans-serif, system-ui, sans-serif",
			"page-width": "210mm",
		},
		Templates: map[string]string{},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				AssetStylesheet:   "resumegen.css",
				AssetEditorScript: "resumegen-editor.js",
			},
		},
		Variants: map[string]theme.Variant{
			string(model.FormatGeneral): {
				Tokens: map[string]string{
					"heading-case": "uppercase",
				},
			},
			string(model.FormatCompany): {
				Tokens: map[string]string{
					"brand":        "#111827",
					"heading-case": "none",
				},
			},
		},
	}
}

type manifestRegistry interface {
	Register(*theme.Manifest) error
}

// Selector resolves manifests by theme and variant name. It satisfies
// theme.ThemeSelector.
type Selector struct {
	mu        sync.RWMutex
	registry  manifestRegistry
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers the given manifests (the built-in one when none are
// given). The first manifest is the fallback for empty theme names.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{Manifest()}
	}
	s := &Selector{
		registry:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, m := range manifests {
		if err := s.Register(m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest. Names must be unique.
func (s *Selector) Register(m *theme.Manifest) error {
	if m == nil {
		return errors.New("themes: manifest is required")
	}
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return errors.New("themes: manifest name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[name]; exists {
		return fmt.Errorf("themes: theme %q already registered", name)
	}
	if err := s.registry.Register(m); err != nil {
		return fmt.Errorf("themes: register %q: %w", name, err)
	}
	s.manifests[name] = m
	if s.fallback == "" {
		s.fallback = name
	}
	return nil
}

// Names lists the registered themes.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the manifest for name. An unknown variant is an error; an
// empty variant selects the base manifest.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("themes: theme %q not found", name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("themes: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// ForFormat selects the variant matching format and resolves it.
func ForFormat(selector theme.ThemeSelector, name string, format model.Format) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("themes: selector is required")
	}
	if format == "" {
		format = model.FormatGeneral
	}
	selection, err := selector.Select(name, string(format))
	if err != nil {
		return nil, err
	}
	return Resolve(selection), nil
}

// Resolve merges the base manifest with the selected variant into the
// configuration renderers consume.
func Resolve(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	m := selection.Manifest
	tokens := mergeStringMaps(m.Tokens, nil)
	partials := mergeStringMaps(m.Templates, nil)
	assets := mergeStringMaps(m.Assets.Files, nil)
	prefix := m.Assets.Prefix

	if v, ok := m.Variants[selection.Variant]; ok {
		tokens = mergeStringMaps(tokens, v.Tokens)
		partials = mergeStringMaps(partials, v.Templates)
		assets = mergeStringMaps(assets, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
		AssetURL: assetResolver(prefix, assets),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		if prefix == "" {
			return "/" + file
		}
		return path.Join(prefix, file)
	}
}

// CSSVarsStyle renders the variables as a sorted `:root` rule.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func mergeStringMaps(base, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
