package fieldstore

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resumegen/pkg/model"
)

func TestStore_AddRemoveKeepsIdentities(t *testing.T) {
	s := New()
	first, err := s.Add(model.KindProject)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := s.Add(model.KindProject)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.FieldsetID != "pro_fieldset_0" || second.FieldsetID != "pro_fieldset_1" {
		t.Fatalf("unexpected fieldset ids %q %q", first.FieldsetID, second.FieldsetID)
	}
	if err := s.Set("project_title_1", "Second"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if !s.Remove(first.FieldsetID) {
		t.Fatalf("expected first fieldset to be removed")
	}
	if s.Remove(first.FieldsetID) {
		t.Fatalf("second removal should report false")
	}

	if got, ok := s.Value("project_title_1"); !ok || got != "Second" {
		t.Fatalf("second instance should stay addressable, got %q %v", got, ok)
	}
	if _, ok := s.Value("project_title_0"); ok {
		t.Fatalf("removed fields should be gone")
	}
	if got := s.Counter(model.KindProject); got != 2 {
		t.Fatalf("counter must not decrement, got %d", got)
	}

	third, _ := s.Add(model.KindProject)
	if third.Index != 2 {
		t.Fatalf("expected new index 2, got %d", third.Index)
	}

	data := s.Read()
	if len(data.Projects) != 2 || data.Projects[0].Title != "Second" {
		t.Fatalf("unexpected projects: %#v", data.Projects)
	}
}

func TestStore_EducationDefaultsToCGPA(t *testing.T) {
	s := New()
	in, err := s.Add(model.KindEducation)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	field, ok := in.Field("gradeType")
	if !ok || field.Value != model.GradeTypeCGPA || field.ID != "edu_grade_type_0" {
		t.Fatalf("unexpected grade type field %#v", field)
	}
	if got := s.Read().Education[0].GradeType; got != model.GradeTypeCGPA {
		t.Fatalf("expected cgpa default, got %q", got)
	}
}

func TestStore_ReadMissingFieldsDefaultEmpty(t *testing.T) {
	s := New()
	if _, err := s.Add(model.KindExperience); err != nil {
		t.Fatalf("add: %v", err)
	}
	data := s.Read()
	want := model.Experience{Desc: []string{}}
	if diff := cmp.Diff(want, data.Experiences[0]); diff != "" {
		t.Fatalf("unexpected experience (-want +got):\n%s", diff)
	}
	if data.Skills == nil || data.Hobbies == nil {
		t.Fatalf("empty kinds should read as empty slices")
	}
}

func TestStore_SetUnknownField(t *testing.T) {
	s := New()
	if err := s.Set("skill_name_9", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := s.Set(model.FieldEmail, "a@b.co"); err != nil {
		t.Fatalf("personal set: %v", err)
	}
	if got, _ := s.Value(model.FieldEmail); got != "a@b.co" {
		t.Fatalf("unexpected email %q", got)
	}
}

func TestStore_AddUnknownKind(t *testing.T) {
	if _, err := New().Add("widget"); !errors.Is(err, model.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	s := New()
	s.Write(model.Example())
	if diff := cmp.Diff(model.Example().Normalize(), s.Read()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got := s.Counter(model.KindSkill); got != 5 {
		t.Fatalf("expected skill counter 5, got %d", got)
	}
	if got, _ := s.Value("exp_desc_1"); got == "" {
		t.Fatalf("expected description text for exp_desc_1")
	}
}

func TestStore_Move(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		if _, err := s.Add(model.KindHobby); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := s.Move("hob_fieldset_2", "hob_fieldset_0"); err != nil {
		t.Fatalf("move: %v", err)
	}
	want := []string{"hob_fieldset_2", "hob_fieldset_0", "hob_fieldset_1"}
	if diff := cmp.Diff(want, s.Order(model.KindHobby)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if err := s.Move("hob_fieldset_2", ""); err != nil {
		t.Fatalf("move to end: %v", err)
	}
	want = []string{"hob_fieldset_0", "hob_fieldset_1", "hob_fieldset_2"}
	if diff := cmp.Diff(want, s.Order(model.KindHobby)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if err := s.Move("hob_fieldset_9", ""); !errors.Is(err, ErrUnknownFieldset) {
		t.Fatalf("expected ErrUnknownFieldset, got %v", err)
	}
}
