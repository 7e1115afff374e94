package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/transfer"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

func newSchema(t *testing.T) *validation.SchemaValidator {
	t.Helper()
	schema, err := validation.NewSchemaValidator(context.Background())
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return schema
}

func TestLintDocument(t *testing.T) {
	schema := newSchema(t)

	example, err := transfer.ExportJSON(model.Example())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := lintDocument(schema, "example.json", example); len(got) != 0 {
		t.Fatalf("expected example to pass, got %+v", got)
	}

	data := model.Example()
	data.Personal.Email = "not-an-email"
	badEmail, err := transfer.ExportJSON(data)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	got := lintDocument(schema, "email.json", badEmail)
	if len(got) != 1 || got[0].location != "personal" || got[0].message != "Invalid email format" {
		t.Fatalf("unexpected violations %+v", got)
	}

	if got := lintDocument(schema, "partial.json", []byte(`{"personal":{"name":"x"}}`)); len(got) == 0 {
		t.Fatalf("expected schema violation for missing skills")
	}
}

func TestReport_SortsByFileAndLocation(t *testing.T) {
	var buf bytes.Buffer
	n := report(&buf, []violation{
		{file: "b.json", location: "personal", message: "Name is required"},
		{file: "a.json", location: "skills > 0", message: "bad"},
		{file: "a.json", location: "personal", message: "Invalid GitHub URL"},
	})
	if n != 3 {
		t.Fatalf("count = %d", n)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "a.json: personal -> Invalid GitHub URL" || !strings.HasPrefix(lines[2], "b.json") {
		t.Fatalf("unexpected order:\n%s", buf.String())
	}
}
