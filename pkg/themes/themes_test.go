package themes

import (
	"strings"
	"testing"

	"github.com/goliatone/go-resumegen/pkg/model"
)

func TestSelector_ForFormat(t *testing.T) {
	sel, err := NewSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	general, err := ForFormat(sel, "", model.FormatGeneral)
	if err != nil {
		t.Fatalf("general: %v", err)
	}
	company, err := ForFormat(sel, DefaultTheme, model.FormatCompany)
	if err != nil {
		t.Fatalf("company: %v", err)
	}
	if general.Variant != "general" || company.Variant != "company" {
		t.Fatalf("unexpected variants %q %q", general.Variant, company.Variant)
	}
	if general.Tokens["brand"] == company.Tokens["brand"] {
		t.Fatalf("company variant should override brand token")
	}
	if company.CSSVars["--brand"] != company.Tokens["brand"] {
		t.Fatalf("css vars not derived from tokens")
	}
	if got := general.AssetURL(AssetStylesheet); got != "/assets/resumegen.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := general.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset should resolve empty, got %q", got)
	}
}

func TestSelector_Errors(t *testing.T) {
	sel, err := NewSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	if _, err := sel.Select("nope", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := sel.Select(DefaultTheme, "dark"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if err := sel.Register(Manifest()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestLoadManifest_Extends(t *testing.T) {
	src := `
name: ocean
extends: true
tokens:
  brand: "#0e7490"
variants:
  company:
    templates:
      preview.company: custom/company.tmpl
`
	m, err := LoadManifest(strings.NewReader(src))
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	sel, err := NewSelector(m)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	cfg, err := ForFormat(sel, "ocean", model.FormatCompany)
	if err != nil {
		t.Fatalf("for format: %v", err)
	}
	if cfg.Tokens["brand"] != "#111827" {
		t.Fatalf("variant token should still win over base, got %q", cfg.Tokens["brand"])
	}
	if cfg.Tokens["text"] == "" {
		t.Fatalf("expected inherited tokens")
	}
	if cfg.Partials["preview.company"] != "custom/company.tmpl" {
		t.Fatalf("expected partial override, got %v", cfg.Partials)
	}
	general, _ := ForFormat(sel, "ocean", model.FormatGeneral)
	if general.Tokens["brand"] != "#0e7490" {
		t.Fatalf("expected overridden base brand, got %q", general.Tokens["brand"])
	}
}

func TestCSSVarsStyle(t *testing.T) {
	sel, _ := NewSelector()
	cfg, _ := ForFormat(sel, "", model.FormatGeneral)
	style := CSSVarsStyle(cfg)
	if !strings.HasPrefix(style, ":root {") || !strings.Contains(style, "--brand: #1e3a8a;") {
		t.Fatalf("unexpected style %q", style)
	}
	if CSSVarsStyle(nil) != "" {
		t.Fatalf("nil config should render nothing")
	}
}
