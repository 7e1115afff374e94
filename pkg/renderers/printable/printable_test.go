package printable

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/renderers/vanilla"
	"github.com/goliatone/go-resumegen/pkg/testsupport"
)

func TestHTMLDocument_Render(t *testing.T) {
	doc, err := NewHTMLDocument(WithStylesheet(".x{color:red}"))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	preview := `<div class="resume-preview"><h1>Ada</h1><script>alert(1)</script><a href="javascript:alert(1)">x</a><a href="mailto:a@b.co">mail</a></div>`

	out, err := doc.Render(context.Background(), preview, render.PrintOptions{PageSize: "letter", Margin: "1in", Title: "Ada - Resume"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>") || strings.Contains(html, "javascript:") {
		t.Fatalf("document kept unsafe markup:\n%s", html)
	}
	if !strings.Contains(html, "@page { size: letter; margin: 1in; }") {
		t.Fatalf("missing page rule:\n%s", html)
	}
	if !strings.Contains(html, ".x{color:red}") {
		t.Fatalf("missing stylesheet")
	}

	parsed := testsupport.ParseHTML(t, out)
	if got := testsupport.Texts(parsed, "title"); len(got) != 1 || got[0] != "Ada - Resume" {
		t.Fatalf("title = %v", got)
	}
	if href, _ := testsupport.Attr(parsed, "a[href^='mailto:']", "href"); href != "mailto:a@b.co" {
		t.Fatalf("mailto href = %q", href)
	}
	if cls, _ := testsupport.Attr(parsed, "body > div", "class"); cls != "resume-preview" {
		t.Fatalf("class attribute dropped: %q", cls)
	}
}

func TestHTMLDocument_Defaults(t *testing.T) {
	doc, err := NewHTMLDocument()
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	out, err := doc.Render(context.Background(), "<p>x</p>", render.PrintOptions{PageSize: "tabloid", Margin: "1in; color: red"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "@page { size: A4; margin: 12mm; }") {
		t.Fatalf("expected default page rule:\n%s", out)
	}
	if _, err := doc.Render(context.Background(), "  ", render.PrintOptions{}); err == nil {
		t.Fatalf("expected error for empty preview")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := doc.Render(ctx, "<p>x</p>", render.PrintOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type failingDocument struct{}

func (failingDocument) Render(context.Context, string, render.PrintOptions) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestExportAsync(t *testing.T) {
	result := <-ExportAsync(context.Background(), failingDocument{}, "<p>x</p>", render.PrintOptions{})
	if result.Err == nil {
		t.Fatalf("expected error from collaborator")
	}
	result = <-ExportAsync(context.Background(), nil, "<p>x</p>", render.PrintOptions{})
	if result.Err == nil {
		t.Fatalf("expected error for nil collaborator")
	}

	ch := ExportAsync(context.Background(), failingDocument{}, "<p>x</p>", render.PrintOptions{})
	<-ch
	if _, open := <-ch; open {
		t.Fatalf("expected channel to be closed after one result")
	}
}

func TestRenderer_PrintsPreview(t *testing.T) {
	preview, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla: %v", err)
	}
	doc, err := NewHTMLDocument()
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	r, err := New(preview, doc)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := r.Render(context.Background(), model.Example(), render.RenderOptions{Format: model.FormatCompany})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	parsed := testsupport.ParseHTML(t, out)
	if got := testsupport.Texts(parsed, "title"); len(got) != 1 || got[0] != "Alex Griffin - Resume" {
		t.Fatalf("title = %v", got)
	}
	if parsed.Find(".resume-preview--company").Length() != 1 {
		t.Fatalf("expected company preview in document")
	}
	if r.Name() != "printable" {
		t.Fatalf("name = %q", r.Name())
	}
	if _, err := New(nil, doc); err == nil {
		t.Fatalf("expected error for nil preview renderer")
	}
}
