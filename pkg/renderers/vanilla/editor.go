package vanilla

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-resumegen/pkg/fieldstore"
	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/renderers/vanilla/components"
)

const editorTemplate = "templates/editor.tmpl"

// EditorPage is everything the editor page needs: the live form, the current
// preview and the selected format.
type EditorPage struct {
	Title     string
	Personal  model.Personal
	Instances map[model.SectionKind][]fieldstore.Instance
	Format    model.Format
	Preview   string
	Feedback  map[string][]string
	Theme     *theme.RendererConfig
	// Partials overrides component and section templates by partial key.
	Partials map[string]string
}

type listView struct {
	Kind     string   `json:"kind"`
	Legend   string   `json:"legend"`
	Heading  string   `json:"heading"`
	Anchor   string   `json:"anchor"`
	ListID   string   `json:"listId"`
	Hidden   bool     `json:"hidden"`
	Sections []string `json:"sections"`
}

type navLink struct {
	Anchor string `json:"anchor"`
	Label  string `json:"label"`
	Hidden bool   `json:"hidden"`
}

var headings = map[model.SectionKind]string{
	model.KindSkill:         "Skills",
	model.KindExperience:    "Experience",
	model.KindProject:       "Projects",
	model.KindEducation:     "Education",
	model.KindAchievement:   "Achievements",
	model.KindCertification: "Certifications",
	model.KindHobby:         "Hobbies",
}

// RenderEditor renders the whole editor page: sidebar, contact block, one
// sortable list per kind, format toggle, transfer actions and the preview.
func (r *Renderer) RenderEditor(page EditorPage) (string, error) {
	if r.templates == nil {
		return "", fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	format := page.Format
	if format == "" {
		format = model.FormatGeneral
	}
	partials := page.Partials
	if partials == nil && page.Theme != nil {
		partials = page.Theme.Partials
	}
	cr := newComponentRenderer(r.templates, r.registry, partials)

	personal, err := r.renderPersonal(cr, page.Personal, format, page.Feedback)
	if err != nil {
		return "", err
	}

	nav := []navLink{{Anchor: "personal-section", Label: "Personal"}}
	lists := make([]listView, 0, len(model.Kinds()))
	for _, kind := range model.Kinds() {
		spec, _ := kind.Spec()
		list := listView{
			Kind:    string(kind),
			Legend:  spec.Legend,
			Heading: headings[kind],
			Anchor:  string(kind) + "-section",
			ListID:  spec.ListID,
			Hidden:  !format.KindVisible(kind),
		}
		for position, inst := range page.Instances[kind] {
			markup, err := r.renderInstance(cr, inst, position, page.Feedback)
			if err != nil {
				return "", err
			}
			list.Sections = append(list.Sections, markup)
		}
		lists = append(lists, list)
		nav = append(nav, navLink{Anchor: list.Anchor, Label: list.Heading, Hidden: list.Hidden})
	}
	cr.markUsed(components.NameSortable)

	stylesheets, scripts := cr.assets()
	themeCtx := themeContext(page.Theme)
	if href, _ := themeCtx["stylesheet"].(string); href != "" {
		stylesheets = append([]string{href}, stylesheets...)
	} else {
		stylesheets = append([]string{"/assets/" + StylesheetName}, stylesheets...)
	}

	title := strings.TrimSpace(page.Title)
	if title == "" {
		title = "Resume Builder"
	}

	out, err := r.templates.RenderTemplate(editorTemplate, map[string]any{
		"title":       title,
		"personal":    personal,
		"lists":       lists,
		"nav":         nav,
		"format":      string(format),
		"visibility":  format.Visibility(),
		"preview":     page.Preview,
		"theme":       themeCtx,
		"stylesheets": stylesheets,
		"scripts":     scripts,
		"classes":     chromeClasses(),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render editor: %w", err)
	}
	return out, nil
}
