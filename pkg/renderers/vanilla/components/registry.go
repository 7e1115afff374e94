package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-resumegen/pkg/render/template"
)

// Renderer writes the HTML for one control into buf.
type Renderer func(buf *bytes.Buffer, field Field, data ComponentData) error

// ComponentData carries helpers and configuration for component renderers.
type ComponentData struct {
	Template      rendertemplate.TemplateRenderer
	ThemePartials map[string]string
	Config        map[string]any
}

// Script describes JavaScript a component needs emitted once per page.
type Script struct {
	Src    string `json:"src,omitempty"`
	Inline string `json:"inline,omitempty"`
	Defer  bool   `json:"defer,omitempty"`
	Module bool   `json:"module,omitempty"`
}

// Descriptor bundles a control renderer with its asset dependencies.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
	Scripts     []Script
}

// SectionDescriptor tells the renderer how to wrap one section fieldset.
// PartialKey names the theme partial that may replace Template.
type SectionDescriptor struct {
	Kind       string
	Template   string
	PartialKey string
}

// Registry tracks control descriptors by name and section descriptors by
// kind. Callers can register new entries or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
	sections   map[string]SectionDescriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
		sections:   make(map[string]SectionDescriptor),
	}
}

// Clone returns a deep copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	for kind, section := range r.sections {
		cloned.sections[kind] = section
	}
	return cloned
}

// Register associates a descriptor with the provided name. Existing entries
// are replaced.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// RegisterSection sets the wrapper used for one section kind.
func (r *Registry) RegisterSection(kind string, section SectionDescriptor) error {
	if kind = normalize(kind); kind == "" {
		return fmt.Errorf("components: section kind is required")
	}
	if strings.TrimSpace(section.Template) == "" {
		return fmt.Errorf("components: template for section %q is required", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	section.Kind = kind
	r.sections[kind] = section
	return nil
}

// Descriptor fetches a control descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Section fetches the section descriptor for kind.
func (r *Registry) Section(kind string) (SectionDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	section, ok := r.sections[normalize(kind)]
	return section, ok
}

// Names returns a sorted slice of registered component names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Assets resolves dependency aggregates for the provided component names.
func (r *Registry) Assets(names []string) (stylesheets []string, scripts []Script) {
	if len(names) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seenStyles := make(map[string]struct{})
	seenScripts := make(map[string]struct{})
	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seenStyles[href]; exists {
				continue
			}
			seenStyles[href] = struct{}{}
			stylesheets = append(stylesheets, href)
		}
		for _, script := range descriptor.Scripts {
			key := scriptKey(script)
			if _, exists := seenScripts[key]; exists {
				continue
			}
			seenScripts[key] = struct{}{}
			scripts = append(scripts, script)
		}
	}
	return stylesheets, scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Renderer:    src.Renderer,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     slices.Clone(src.Scripts),
	}
}

func scriptKey(script Script) string {
	if script.Src != "" {
		return "src:" + script.Src
	}
	return "inline:" + script.Inline
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
