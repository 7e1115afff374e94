package resumegen

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-resumegen/pkg/model"
)

func TestRuntimeAssetsFSContainsEditorRuntime(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "resumegen-editor.js")
	if err != nil {
		t.Fatalf("expected editor runtime to be readable: %v", err)
	}
	if !strings.Contains(string(data), "/reorder/") {
		t.Fatalf("expected editor runtime to post reorders")
	}
	if _, err := fs.ReadFile(RuntimeAssetsFS(), "resumegen.css"); err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
}

func TestEmbeddedTemplatesIncludeEditor(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/editor.tmpl"); err != nil {
		t.Fatalf("expected editor template: %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), model.Example(), "", RenderOptions{Format: model.FormatCompany})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "TechCorp Inc.") {
		t.Fatalf("expected company experience in output")
	}

	if _, err := GenerateHTMLFromJSON(context.Background(), []byte(`{"personal":{}}`), "", RenderOptions{}); err == nil {
		t.Fatalf("expected import error")
	}
	out, err = GenerateHTMLFromJSON(context.Background(), []byte(`{"personal":{"name":"Grace Hopper"},"skills":[]}`), "printable", RenderOptions{})
	if err != nil {
		t.Fatalf("generate from json: %v", err)
	}
	if !strings.Contains(string(out), "Grace Hopper") {
		t.Fatalf("expected name in printable output")
	}
}
