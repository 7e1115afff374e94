package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/model"
)

// Transformer mutates a résumé record before it is rendered in format.
type Transformer interface {
	Transform(ctx context.Context, data *model.ResumeData, format model.Format) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, data *model.ResumeData, format model.Format) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, data *model.ResumeData, format model.Format) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, data, format)
}

// VisibilityTransformer empties the sections and contact fields the format
// does not show, so renderers without format-aware layouts match the preview.
func VisibilityTransformer() Transformer {
	return TransformerFunc(func(_ context.Context, data *model.ResumeData, format model.Format) error {
		if data == nil {
			return errors.New("visibility transformer: data is nil")
		}
		v := format.Visibility()
		if !v.Location {
			data.Personal.Location = ""
		}
		if !v.Experiences {
			data.Experiences = []model.Experience{}
		}
		if !v.Hobbies {
			data.Hobbies = []model.Hobby{}
		}
		return nil
	})
}

// JSONPresetTransformer tailors a record from a declarative JSON document,
// for example to produce a company-specific variant:
//
//	{
//	  "personal": {"location": "Remote"},
//	  "drop": ["hobbies"],
//	  "limits": {"projects": 2}
//	}
//
// Personal values replace the record's, drop empties whole sections and
// limits keep only the first N entries of a section.
type JSONPresetTransformer struct {
	document jsonPresetDocument
}

type jsonPresetDocument struct {
	Personal map[string]string `json:"personal"`
	Drop     []string          `json:"drop"`
	Limits   map[string]int    `json:"limits"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonPresetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	for id := range document.Personal {
		if !model.IsPersonalField(id) {
			return nil, fmt.Errorf("json preset transformer: unknown personal field %q", id)
		}
	}
	for _, name := range document.Drop {
		if _, err := model.ParseKind(name); err != nil {
			return nil, fmt.Errorf("json preset transformer: drop: %w", err)
		}
	}
	for name, n := range document.Limits {
		if _, err := model.ParseKind(name); err != nil {
			return nil, fmt.Errorf("json preset transformer: limits: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("json preset transformer: negative limit for %q", name)
		}
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the preset onto data.
func (t *JSONPresetTransformer) Transform(ctx context.Context, data *model.ResumeData, _ model.Format) error {
	if data == nil {
		return errors.New("json preset transformer: data is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for id, value := range t.document.Personal {
		data.Personal.Set(id, value)
	}
	for _, name := range t.document.Drop {
		kind, _ := model.ParseKind(name)
		truncate(data, kind, 0)
	}
	for name, n := range t.document.Limits {
		kind, _ := model.ParseKind(name)
		truncate(data, kind, n)
	}
	return nil
}

func truncate(data *model.ResumeData, kind model.SectionKind, n int) {
	if data.Count(kind) <= n {
		return
	}
	switch kind {
	case model.KindSkill:
		data.Skills = data.Skills[:n]
	case model.KindProject:
		data.Projects = data.Projects[:n]
	case model.KindEducation:
		data.Education = data.Education[:n]
	case model.KindAchievement:
		data.Achievements = data.Achievements[:n]
	case model.KindCertification:
		data.Certifications = data.Certifications[:n]
	case model.KindHobby:
		data.Hobbies = data.Hobbies[:n]
	case model.KindExperience:
		data.Experiences = data.Experiences[:n]
	}
}
