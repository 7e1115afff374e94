package vanilla

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/fieldstore"
	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/renderers/vanilla/components"
)

type sectionView struct {
	Kind       string   `json:"kind"`
	Index      int      `json:"index"`
	FieldsetID string   `json:"fieldsetId"`
	Legend     string   `json:"legend"`
	ListID     string   `json:"listId"`
	Fields     []string `json:"fields"`
}

// RenderSection returns one empty fieldset for kind at index. Select fields
// start on their default option.
func (r *Renderer) RenderSection(kind model.SectionKind, index int) (string, error) {
	spec, ok := kind.Spec()
	if !ok {
		return "", fmt.Errorf("vanilla renderer: %w: %q", model.ErrUnknownKind, kind)
	}
	if index < 0 {
		return "", fmt.Errorf("vanilla renderer: negative index %d", index)
	}

	inst := fieldstore.Instance{
		Kind:       kind,
		Index:      index,
		FieldsetID: kind.FieldsetID(index),
	}
	for _, fs := range spec.Fields {
		inst.Fields = append(inst.Fields, fieldstore.Field{
			ID:    kind.FieldID(fs.ID, index),
			Spec:  fs,
			Value: fs.Default,
		})
	}
	return r.RenderInstance(inst, index, nil)
}

// RenderInstance renders a live fieldset with its current values. position is
// the zero-based display position used for the legend; feedback maps field
// ids to inline messages.
func (r *Renderer) RenderInstance(inst fieldstore.Instance, position int, feedback map[string][]string) (string, error) {
	cr := newComponentRenderer(r.templates, r.registry, nil)
	return r.renderInstance(cr, inst, position, feedback)
}

func (r *Renderer) renderInstance(cr *componentRenderer, inst fieldstore.Instance, position int, feedback map[string][]string) (string, error) {
	spec, ok := inst.Kind.Spec()
	if !ok {
		return "", fmt.Errorf("vanilla renderer: %w: %q", model.ErrUnknownKind, inst.Kind)
	}
	section, ok := r.registry.Section(string(inst.Kind))
	if !ok {
		return "", fmt.Errorf("vanilla renderer: no section descriptor for %q", inst.Kind)
	}

	values := inst.Values()
	view := sectionView{
		Kind:       string(inst.Kind),
		Index:      inst.Index,
		FieldsetID: inst.FieldsetID,
		Legend:     legendFor(spec, position),
		ListID:     spec.ListID,
	}
	for _, f := range inst.Fields {
		field := buildField(f.Spec, f.ID, f.Value, values, feedback[f.ID])
		markup, err := cr.render(field)
		if err != nil {
			return "", fmt.Errorf("vanilla renderer: %w", err)
		}
		view.Fields = append(view.Fields, markup)
	}

	name := section.Template
	if override := strings.TrimSpace(cr.partials[section.PartialKey]); override != "" {
		name = override
	}
	out, err := r.templates.RenderTemplate(name, map[string]any{
		"section": view,
		"classes": chromeClasses(),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render section %q: %w", inst.FieldsetID, err)
	}
	cr.markUsed(components.NameSortable)
	return out, nil
}

// RenderPersonal renders the contact block controls. The location field is
// marked hidden when the format does not show it.
func (r *Renderer) RenderPersonal(personal model.Personal, format model.Format, feedback map[string][]string) (string, error) {
	cr := newComponentRenderer(r.templates, r.registry, nil)
	return r.renderPersonal(cr, personal, format, feedback)
}

func (r *Renderer) renderPersonal(cr *componentRenderer, personal model.Personal, format model.Format, feedback map[string][]string) (string, error) {
	visibility := format.Visibility()
	var b strings.Builder
	for _, spec := range model.PersonalFieldSpecs() {
		field := buildField(spec, spec.ID, personal.Get(spec.ID), nil, feedback[spec.ID])
		if spec.ID == model.FieldLocation {
			field.Container = "location-container"
			field.Hidden = !visibility.Location
		}
		markup, err := cr.render(field)
		if err != nil {
			return "", fmt.Errorf("vanilla renderer: %w", err)
		}
		b.WriteString(markup)
	}
	return b.String(), nil
}
