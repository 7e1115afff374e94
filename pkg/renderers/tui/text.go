package tui

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/render"
	rendertemplate "github.com/goliatone/go-resumegen/pkg/render/template"
	gotemplate "github.com/goliatone/go-resumegen/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const textTemplate = "templates/resume.txt.tmpl"

type textSection struct {
	Heading string   `json:"heading"`
	Lines   []string `json:"lines"`
}

// TextRenderer renders the résumé as plain text for terminals, in the same
// section order as the HTML preview of each format.
type TextRenderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*TextRenderer)(nil)

// NewTextRenderer constructs the plain-text renderer over the embedded
// template.
func NewTextRenderer() (*TextRenderer, error) {
	engine, err := gotemplate.New(
		gotemplate.WithName("tui"),
		gotemplate.WithFS(templatesFS),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: configure template renderer: %w", err)
	}
	return &TextRenderer{templates: engine}, nil
}

func (r *TextRenderer) Name() string {
	return "text"
}

func (r *TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render lays out data for options.Format.
func (r *TextRenderer) Render(ctx context.Context, data model.ResumeData, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format := options.ResolvedFormat()
	visibility := format.Visibility()
	data = data.Normalize()

	payload := map[string]any{
		"data":       data,
		"visibility": visibility,
		"contacts":   textContacts(data.Personal),
		"sections":   textSections(data, format),
	}
	out, err := r.templates.RenderTemplate(textTemplate, payload)
	if err != nil {
		return nil, fmt.Errorf("tui: render text: %w", err)
	}
	return []byte(strings.TrimSpace(out) + "\n"), nil
}

func textContacts(p model.Personal) []string {
	var out []string
	if v := strings.TrimSpace(p.Email); v != "" {
		out = append(out, "Email: "+v)
	}
	if v := strings.TrimSpace(p.Mobile); v != "" {
		out = append(out, "Mobile: "+v)
	}
	if v := gotemplate.ProfileHandle(p.LinkedIn); v != "" {
		out = append(out, "LinkedIn: "+v)
	}
	if v := gotemplate.ProfileHandle(p.GitHub); v != "" {
		out = append(out, "GitHub: "+v)
	}
	return out
}

func textSections(d model.ResumeData, format model.Format) []textSection {
	v := format.Visibility()
	var out []textSection
	add := func(heading string, lines []string) {
		if len(lines) > 0 {
			out = append(out, textSection{Heading: heading, Lines: lines})
		}
	}

	if format == model.FormatCompany {
		if v.Experiences {
			add("Experience", experienceLines(d.Experiences))
		}
		add("Projects", projectLines(d.Projects))
		add("Certificates", titledLines(certificationTitles(d.Certifications)))
		add("Technical Skills", skillLines(d.Skills))
		add("Education", educationLines(d.Education))
		return out
	}

	add("Skills", skillLines(d.Skills))
	add("Projects", projectLines(d.Projects))
	add("Certification", titledLines(certificationTitles(d.Certifications)))
	add("Achievements", titledLines(achievementTitles(d.Achievements)))
	add("Education", educationLines(d.Education))
	if v.Hobbies {
		var hobbies []string
		for _, h := range d.Hobbies {
			if t := strings.TrimSpace(h.Title); t != "" {
				hobbies = append(hobbies, t)
			}
		}
		if len(hobbies) > 0 {
			add("Hobbies and Interest", []string{"  " + strings.Join(hobbies, ", ")})
		}
	}
	return out
}

func skillLines(skills []model.Skill) []string {
	var out []string
	for _, s := range skills {
		if strings.TrimSpace(s.Name) == "" && strings.TrimSpace(s.Details) == "" {
			continue
		}
		out = append(out, fmt.Sprintf("  %s: %s", s.Name, s.Details))
	}
	return out
}

func projectLines(projects []model.Project) []string {
	var out []string
	for _, p := range projects {
		if strings.TrimSpace(p.Title) == "" {
			continue
		}
		head := "  " + p.Title
		if tech := strings.TrimSpace(p.Tech); tech != "" {
			head += " | " + tech
		}
		if date := strings.TrimSpace(p.Date); date != "" {
			head += " (" + date + ")"
		}
		out = append(out, head)
		out = append(out, bulletLines(p.Desc)...)
	}
	return out
}

func experienceLines(experiences []model.Experience) []string {
	var out []string
	for _, e := range experiences {
		if strings.TrimSpace(e.Title) == "" {
			continue
		}
		head := "  " + e.Title
		if e.StartDate != "" || e.EndDate != "" {
			head += " (" + strings.Trim(e.StartDate+" - "+e.EndDate, " -") + ")"
		}
		out = append(out, head)
		out = append(out, bulletLines(e.Desc)...)
	}
	return out
}

func educationLines(education []model.Education) []string {
	var out []string
	for _, e := range education {
		if strings.TrimSpace(e.School) == "" && strings.TrimSpace(e.Degree) == "" {
			continue
		}
		out = append(out, "  "+strings.Trim(e.School+", "+e.Location, ", "))
		if detail := strings.Trim(e.Degree+" ("+e.Dates+")", " ()"); detail != "" {
			out = append(out, "    "+detail)
		}
		if grade := gotemplate.FormatGrade(e.Grade, e.GradeType); grade != "" {
			out = append(out, "    "+grade)
		}
	}
	return out
}

func certificationTitles(certs []model.Certification) [][2]string {
	out := make([][2]string, len(certs))
	for i, c := range certs {
		out[i] = [2]string{c.Title, c.Date}
	}
	return out
}

func achievementTitles(achievements []model.Achievement) [][2]string {
	out := make([][2]string, len(achievements))
	for i, a := range achievements {
		out[i] = [2]string{a.Title, a.Date}
	}
	return out
}

func titledLines(entries [][2]string) []string {
	var out []string
	for _, e := range entries {
		title, date := strings.TrimSpace(e[0]), strings.TrimSpace(e[1])
		if title == "" {
			continue
		}
		if date != "" {
			title += " (" + date + ")"
		}
		out = append(out, "  "+title)
	}
	return out
}

func bulletLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, "    - "+strings.TrimSpace(line))
	}
	return out
}
