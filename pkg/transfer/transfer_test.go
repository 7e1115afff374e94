package transfer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/testsupport"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

func TestExportFilename(t *testing.T) {
	cases := map[string]string{
		"Alex Griffin":      "Alex_Griffin_resume.json",
		"  Ada   Lovelace ": "Ada_Lovelace_resume.json",
		"":                  "resume.json",
		"   ":               "resume.json",
		"a/b":               "ab_resume.json",
	}
	for name, want := range cases {
		if got := ExportFilename(name); got != want {
			t.Fatalf("ExportFilename(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	schema, err := validation.NewSchemaValidator(context.Background())
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	importer := NewImporter(WithSchemaValidator(schema))

	raw, err := ExportJSON(model.Example())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"personal\"") {
		t.Fatalf("expected indented export:\n%s", raw)
	}
	got, err := importer.Import(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if diff := cmp.Diff(model.Example().Normalize(), got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestImport_Rejects(t *testing.T) {
	schema, err := validation.NewSchemaValidator(context.Background())
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	importer := NewImporter(WithSchemaValidator(schema), WithMaxBytes(512))

	cases := map[string]string{
		"not json":       `{`,
		"array":          `[]`,
		"missing skills": `{"personal":{"name":"x"}}`,
		"null personal":  `{"personal":null,"skills":[]}`,
		"corrupt nested": `{"personal":{"name":"x"},"skills":[],"projects":"oops"}`,
	}
	for name, payload := range cases {
		if _, err := importer.Parse([]byte(payload)); !errors.Is(err, ErrInvalidImport) {
			t.Fatalf("%s: expected ErrInvalidImport, got %v", name, err)
		}
	}

	oversized := `{"personal":{"name":"` + strings.Repeat("x", 600) + `"},"skills":[]}`
	if _, err := importer.Import(strings.NewReader(oversized)); !errors.Is(err, ErrInvalidImport) {
		t.Fatalf("oversized: expected ErrInvalidImport, got %v", err)
	}
	if _, err := importer.Import(nil); !errors.Is(err, ErrInvalidImport) {
		t.Fatalf("nil reader: expected ErrInvalidImport, got %v", err)
	}
}

func TestImport_PresenceOnlyWithoutSchema(t *testing.T) {
	got, err := NewImporter().Parse([]byte(`{"personal":{"name":"Ada"},"skills":[],"projects":[{"title":"p"}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Personal.Name != "Ada" || len(got.Projects) != 1 || got.Projects[0].Desc == nil || got.Hobbies == nil {
		t.Fatalf("unexpected import %#v", got)
	}
}

func TestImport_ExampleFixture(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "testsupport", testsupport.ExampleResumePath))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	schema, err := validation.NewSchemaValidator(context.Background())
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	got, err := NewImporter(WithSchemaValidator(schema)).Import(f)
	if err != nil {
		t.Fatalf("import fixture: %v", err)
	}
	if diff := cmp.Diff(testsupport.MustLoadExample(t), got); diff != "" {
		t.Fatalf("imported fixture (-want +got):\n%s", diff)
	}

	small := NewImporter(WithMaxBytes(16))
	if _, err := small.Import(strings.NewReader(`{"personal":{},"skills":[]}`)); !errors.Is(err, ErrInvalidImport) {
		t.Fatalf("expected size rejection, got %v", err)
	}
}
