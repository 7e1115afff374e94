package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDescriptionLines_DropsBlankKeepsWhitespace(t *testing.T) {
	got := DescriptionLines("first\n\n   \n  indented\r\nlast")
	want := []string{"first", "  indented", "last"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if got := DescriptionLines(""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSectionKind_Naming(t *testing.T) {
	cases := []struct {
		kind     SectionKind
		field    string
		fieldID  string
		fieldset string
	}{
		{KindSkill, "name", "skill_name_0", "ski_fieldset_0"},
		{KindProject, "desc", "project_desc_0", "pro_fieldset_0"},
		{KindEducation, "grade_type", "edu_grade_type_0", "edu_fieldset_0"},
		{KindAchievement, "title", "ach_title_0", "ach_fieldset_0"},
		{KindCertification, "date", "cert_date_0", "cer_fieldset_0"},
		{KindHobby, "title", "hobby_title_0", "hob_fieldset_0"},
		{KindExperience, "start_date", "exp_start_date_0", "exp_fieldset_0"},
	}
	for _, tc := range cases {
		if got := tc.kind.FieldID(tc.field, 0); got != tc.fieldID {
			t.Fatalf("%s field id: want %q got %q", tc.kind, tc.fieldID, got)
		}
		if got := tc.kind.FieldsetID(0); got != tc.fieldset {
			t.Fatalf("%s fieldset id: want %q got %q", tc.kind, tc.fieldset, got)
		}
		kind, index, ok := ParseFieldsetID(tc.fieldset)
		if !ok || kind != tc.kind || index != 0 {
			t.Fatalf("ParseFieldsetID(%q) = %s, %d, %v", tc.fieldset, kind, index, ok)
		}
	}
}

func TestParseFieldID(t *testing.T) {
	kind, field, index, ok := ParseFieldID("edu_grade_type_12")
	if !ok {
		t.Fatalf("expected edu_grade_type_12 to parse")
	}
	if kind != KindEducation || field.Key != "gradeType" || index != 12 {
		t.Fatalf("unexpected parse: %s %+v %d", kind, field, index)
	}
	if _, field, _, ok := ParseFieldID("edu_grade_3"); !ok || field.Key != "grade" {
		t.Fatalf("expected edu_grade_3 to resolve the grade field, got %+v", field)
	}
	for _, bad := range []string{"name", "skill_unknown_1", "skill_name_x", "zzz_title_0"} {
		if _, _, _, ok := ParseFieldID(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestParseKind(t *testing.T) {
	for raw, want := range map[string]SectionKind{
		"project":    KindProject,
		"Projects":   KindProject,
		"educations": KindEducation,
		"hobbies":    KindHobby,
	} {
		got, err := ParseKind(raw)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseKind(%q): want %s got %s", raw, want, got)
		}
	}
	if _, err := ParseKind("widget"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestEntriesAppend_RoundTrip(t *testing.T) {
	src := Example()
	var rebuilt ResumeData
	rebuilt.Personal = src.Personal
	for _, kind := range Kinds() {
		for _, values := range src.Entries(kind) {
			rebuilt.Append(kind, values)
		}
	}
	if diff := cmp.Diff(src.Normalize(), rebuilt.Normalize()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEmpty_MarshalsArrays(t *testing.T) {
	raw, err := json.Marshal(Empty())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"skills", "projects", "education", "achievements", "certifications", "hobbies", "experiences"} {
		if _, ok := decoded[key].([]any); !ok {
			t.Fatalf("expected %s to be an array, got %#v", key, decoded[key])
		}
	}
}

func TestClone_IsDeep(t *testing.T) {
	src := Example()
	clone := src.Clone()
	clone.Projects[0].Desc[0] = "changed"
	clone.Skills[0].Name = "changed"
	if src.Projects[0].Desc[0] == "changed" || src.Skills[0].Name == "changed" {
		t.Fatalf("clone shares storage with source")
	}
}

func TestFormat(t *testing.T) {
	f, err := ParseFormat("")
	if err != nil || f != FormatGeneral {
		t.Fatalf("empty format: %s %v", f, err)
	}
	if FormatGeneral.Toggle() != FormatCompany || FormatCompany.Toggle() != FormatGeneral {
		t.Fatalf("toggle mismatch")
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestFormat_Visibility(t *testing.T) {
	if v := FormatGeneral.Visibility(); v.Location || v.Experiences || !v.Hobbies {
		t.Fatalf("unexpected general visibility %+v", v)
	}
	if v := FormatCompany.Visibility(); !v.Location || !v.Experiences || v.Hobbies {
		t.Fatalf("unexpected company visibility %+v", v)
	}
	if FormatGeneral.KindVisible(KindExperience) || !FormatCompany.KindVisible(KindExperience) {
		t.Fatalf("experience visibility mismatch")
	}
	if !FormatGeneral.KindVisible(KindProject) || !FormatCompany.KindVisible(KindProject) {
		t.Fatalf("projects are always visible")
	}
}

func TestGradeMax(t *testing.T) {
	if GradeMax(GradeTypeCGPA) != GradeMaxCGPA || GradeMax("") != GradeMaxCGPA {
		t.Fatalf("cgpa grades are bounded")
	}
	if GradeMax(GradeTypePercentage) != "" {
		t.Fatalf("percentage grades are unbounded")
	}
}
