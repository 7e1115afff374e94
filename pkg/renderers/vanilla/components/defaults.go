package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/model"
)

const (
	templatePrefix = "templates/components/"
	// SectionTemplate is the default wrapper for every section kind.
	SectionTemplate = "templates/section.tmpl"
	// EditorScript is the path the editor runtime is served under.
	EditorScript = "/assets/resumegen-editor.js"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// controls and one section wrapper per kind.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer("forms.input", templatePrefix+"input.tmpl"),
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer("forms.textarea", templatePrefix+"textarea.tmpl"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer("forms.select", templatePrefix+"select.tmpl"),
	})
	registry.MustRegister(NameSortable, Descriptor{
		Renderer: noopRenderer,
		Scripts:  []Script{{Src: EditorScript, Defer: true}},
	})

	for _, kind := range model.Kinds() {
		if err := registry.RegisterSection(string(kind), SectionDescriptor{
			Template:   SectionTemplate,
			PartialKey: "sections." + string(kind),
		}); err != nil {
			panic(err)
		}
	}
	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if data.ThemePartials != nil {
			if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
				resolvedTemplate = candidate
			}
		}

		payload := map[string]any{
			"field":  field,
			"config": data.Config,
		}
		rendered, err := data.Template.RenderTemplate(resolvedTemplate, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func noopRenderer(*bytes.Buffer, Field, ComponentData) error {
	return nil
}
