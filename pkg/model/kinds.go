package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SectionKind identifies one of the repeatable entry types.
type SectionKind string

const (
	KindSkill         SectionKind = "skill"
	KindProject       SectionKind = "project"
	KindEducation     SectionKind = "education"
	KindAchievement   SectionKind = "achievement"
	KindCertification SectionKind = "certification"
	KindHobby         SectionKind = "hobby"
	KindExperience    SectionKind = "experience"
)

// Control names the input widget a field renders with.
type Control string

const (
	ControlInput    Control = "input"
	ControlTextarea Control = "textarea"
	ControlSelect   Control = "select"
)

// FieldSpec describes one field inside a section fieldset.
type FieldSpec struct {
	// Key is the JSON key on the aggregate record.
	Key string
	// ID is the segment used in `{prefix}_{ID}_{index}`.
	ID      string
	Label   string
	Control Control
	Options []string
	Default string
	// Lines marks multi-line fields whose value becomes a description list.
	Lines bool
}

// KindSpec describes how a section kind is addressed and labelled.
type KindSpec struct {
	Kind        SectionKind
	FieldPrefix string
	Legend      string
	ListID      string
	Fields      []FieldSpec
}

var kindOrder = []SectionKind{
	KindSkill,
	KindExperience,
	KindProject,
	KindEducation,
	KindAchievement,
	KindCertification,
	KindHobby,
}

var kindSpecs = map[SectionKind]KindSpec{
	KindSkill: {
		Kind:        KindSkill,
		FieldPrefix: "skill",
		Legend:      "Skill",
		ListID:      "skills-list",
		Fields: []FieldSpec{
			{Key: "name", ID: "name", Label: "Category", Control: ControlInput},
			{Key: "details", ID: "details", Label: "Details (comma-separated)", Control: ControlInput},
		},
	},
	KindProject: {
		Kind:        KindProject,
		FieldPrefix: "project",
		Legend:      "Project",
		ListID:      "projects-list",
		Fields: []FieldSpec{
			{Key: "title", ID: "title", Label: "Title", Control: ControlInput},
			{Key: "date", ID: "date", Label: "Date", Control: ControlInput},
			{Key: "tech", ID: "tech", Label: "Tech Stack (comma-separated)", Control: ControlInput},
			{Key: "desc", ID: "desc", Label: "Description (one point per line)", Control: ControlTextarea, Lines: true},
		},
	},
	KindEducation: {
		Kind:        KindEducation,
		FieldPrefix: "edu",
		Legend:      "Education",
		ListID:      "educations-list",
		Fields: []FieldSpec{
			{Key: "school", ID: "school", Label: "School/University", Control: ControlInput},
			{Key: "location", ID: "location", Label: "Location", Control: ControlInput},
			{Key: "degree", ID: "degree", Label: "Degree/Course", Control: ControlInput},
			{Key: "dates", ID: "dates", Label: "Dates", Control: ControlInput},
			{Key: "gradeType", ID: "grade_type", Label: "Grade Type", Control: ControlSelect, Options: []string{GradeTypeCGPA, GradeTypePercentage}, Default: GradeTypeCGPA},
			{Key: "grade", ID: "grade", Label: "Grade", Control: ControlInput},
		},
	},
	KindAchievement: {
		Kind:        KindAchievement,
		FieldPrefix: "ach",
		Legend:      "Achievement",
		ListID:      "achievements-list",
		Fields: []FieldSpec{
			{Key: "title", ID: "title", Label: "Title", Control: ControlInput},
			{Key: "date", ID: "date", Label: "Date", Control: ControlInput},
		},
	},
	KindCertification: {
		Kind:        KindCertification,
		FieldPrefix: "cert",
		Legend:      "Certification",
		ListID:      "certifications-list",
		Fields: []FieldSpec{
			{Key: "title", ID: "title", Label: "Title", Control: ControlInput},
			{Key: "date", ID: "date", Label: "Date", Control: ControlInput},
		},
	},
	KindHobby: {
		Kind:        KindHobby,
		FieldPrefix: "hobby",
		Legend:      "Hobby",
		ListID:      "hobbies-list",
		Fields: []FieldSpec{
			{Key: "title", ID: "title", Label: "Hobby", Control: ControlInput},
		},
	},
	KindExperience: {
		Kind:        KindExperience,
		FieldPrefix: "exp",
		Legend:      "Experience",
		ListID:      "experiences-list",
		Fields: []FieldSpec{
			{Key: "title", ID: "title", Label: "Role & Company", Control: ControlInput},
			{Key: "startDate", ID: "start_date", Label: "Start Date", Control: ControlInput},
			{Key: "endDate", ID: "end_date", Label: "End Date", Control: ControlInput},
			{Key: "desc", ID: "desc", Label: "Description (one point per line)", Control: ControlTextarea, Lines: true},
		},
	},
}

// Kinds returns every section kind in form order.
func Kinds() []SectionKind {
	return append([]SectionKind(nil), kindOrder...)
}

// ParseKind resolves a kind name, accepting the plural container form too
// ("projects", "educations").
func ParseKind(raw string) (SectionKind, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := kindSpecs[SectionKind(name)]; ok {
		return SectionKind(name), nil
	}
	for _, kind := range kindOrder {
		spec := kindSpecs[kind]
		if name == strings.TrimSuffix(spec.ListID, "-list") {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// Spec returns the addressing metadata for the kind.
func (k SectionKind) Spec() (KindSpec, bool) {
	spec, ok := kindSpecs[k]
	return spec, ok
}

// Valid reports whether k is one of the known kinds.
func (k SectionKind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// FieldsetPrefix is the first three letters of the kind name.
func (k SectionKind) FieldsetPrefix() string {
	name := string(k)
	if len(name) > 3 {
		return name[:3]
	}
	return name
}

// FieldsetID returns the element identity of the fieldset at index.
func (k SectionKind) FieldsetID(index int) string {
	return k.FieldsetPrefix() + "_fieldset_" + strconv.Itoa(index)
}

// FieldID returns the identity of one field inside the fieldset at index.
func (k SectionKind) FieldID(field string, index int) string {
	spec, ok := kindSpecs[k]
	if !ok {
		return ""
	}
	return spec.FieldPrefix + "_" + field + "_" + strconv.Itoa(index)
}

// ParseFieldsetID splits a fieldset id into its kind and index.
func ParseFieldsetID(id string) (SectionKind, int, bool) {
	prefix, rest, ok := strings.Cut(strings.TrimSpace(id), "_fieldset_")
	if !ok {
		return "", 0, false
	}
	index, err := strconv.Atoi(rest)
	if err != nil || index < 0 {
		return "", 0, false
	}
	for _, kind := range kindOrder {
		if kind.FieldsetPrefix() == prefix {
			return kind, index, true
		}
	}
	return "", 0, false
}

// ParseFieldID splits a section field id (`edu_grade_type_3`) into its kind,
// field spec and index. Personal field ids are not section fields.
func ParseFieldID(id string) (SectionKind, FieldSpec, int, bool) {
	id = strings.TrimSpace(id)
	sep := strings.LastIndexByte(id, '_')
	if sep <= 0 {
		return "", FieldSpec{}, 0, false
	}
	index, err := strconv.Atoi(id[sep+1:])
	if err != nil || index < 0 {
		return "", FieldSpec{}, 0, false
	}
	head := id[:sep]
	for _, kind := range kindOrder {
		spec := kindSpecs[kind]
		name, ok := strings.CutPrefix(head, spec.FieldPrefix+"_")
		if !ok {
			continue
		}
		for _, field := range spec.Fields {
			if field.ID == name {
				return kind, field, index, true
			}
		}
	}
	return "", FieldSpec{}, 0, false
}
