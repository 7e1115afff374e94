package vanilla

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/render/template"
	"github.com/goliatone/go-resumegen/pkg/renderers/vanilla/components"
)

const fieldTemplate = "templates/components/field.tmpl"

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	partials  map[string]string

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, partials map[string]string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates:      templates,
		registry:       registry,
		partials:       partials,
		usedComponents: make(map[string]struct{}),
	}
}

// render emits the labelled field block for one control.
func (r *componentRenderer) render(field components.Field) (string, error) {
	componentName := field.Component
	if componentName == "" {
		componentName = components.NameInput
	}

	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, field.ID)
	}

	data := components.ComponentData{
		Template:      r.templates,
		ThemePartials: r.partials,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", componentName, field.ID, err)
	}
	r.usedComponents[componentName] = struct{}{}

	wrapped, err := r.templates.RenderTemplate(fieldTemplate, map[string]any{
		"field":   field,
		"control": control.String(),
		"classes": chromeClasses(),
	})
	if err != nil {
		return "", fmt.Errorf("render field %q: %w", field.ID, err)
	}
	return wrapped, nil
}

func (r *componentRenderer) markUsed(name string) {
	r.usedComponents[name] = struct{}{}
}

func (r *componentRenderer) assets() (stylesheets []string, scripts []components.Script) {
	if r.registry == nil || len(r.usedComponents) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Assets(names)
}

// buildField turns a field spec and its current value into the control view.
// values holds the sibling values of the same fieldset, keyed by record key.
func buildField(spec model.FieldSpec, id, value string, values model.Values, messages []string) components.Field {
	field := components.Field{
		ID:        id,
		Key:       spec.Key,
		Label:     spec.Label,
		Component: string(spec.Control),
		Type:      inputType(spec.Key),
		Value:     value,
		Messages:  messages,
	}

	switch spec.Control {
	case model.ControlTextarea:
		field.Rows = 3
		field.Wide = true
	case model.ControlSelect:
		selected := value
		if selected == "" {
			selected = spec.Default
		}
		for _, option := range spec.Options {
			field.Choices = append(field.Choices, components.Choice{
				Value:    option,
				Label:    optionLabel(option),
				Selected: option == selected,
			})
		}
	}

	if spec.Key == "grade" {
		field.SetAttr("step", "0.01")
		field.SetAttr("min", "0")
		if limit := model.GradeMax(strings.TrimSpace(values["gradeType"])); limit != "" {
			field.SetAttr("max", limit)
		}
	}
	if len(messages) > 0 {
		field.SetAttr("aria-invalid", "true")
	}
	return field
}

func inputType(key string) string {
	switch key {
	case model.FieldEmail:
		return "email"
	case model.FieldMobile:
		return "tel"
	case model.FieldLinkedIn, model.FieldGitHub:
		return "url"
	case "grade":
		return "number"
	default:
		return "text"
	}
}

func optionLabel(option string) string {
	switch option {
	case model.GradeTypeCGPA:
		return "CGPA"
	case model.GradeTypePercentage:
		return "Percentage"
	default:
		return option
	}
}

func legendFor(spec model.KindSpec, position int) string {
	return spec.Legend + " " + strconv.Itoa(position+1)
}
