package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resumegen/pkg/model"
)

func TestLoadFile_OverlaysYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"resumegen.yaml": {Data: []byte("addr: \":9090\"\nautoSaveDelay: 250ms\ndefaultFormat: company\nquotaBytes: 1024\n")},
	}
	cfg := Default()
	if err := LoadFile(&cfg, fsys, "resumegen.yaml"); err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.Addr = ":9090"
	want.AutoSaveDelay = 250 * time.Millisecond
	want.DefaultFormat = model.FormatCompany
	want.QuotaBytes = 1024
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}

	if err := LoadFile(&cfg, fsys, "missing.yaml"); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
	bad := fstest.MapFS{"bad.yaml": {Data: []byte("addr: [")}}
	if err := LoadFile(&cfg, bad, "bad.yaml"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"RESUMEGEN_ADDR":           "0.0.0.0:1",
		"RESUMEGEN_DATA_DIR":       "/tmp/resumes",
		"RESUMEGEN_TOAST_DURATION": "5s",
		"RESUMEGEN_QUOTA_BYTES":    "42",
	}
	cfg := Default()
	if err := ApplyEnv(&cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Addr != "0.0.0.0:1" || cfg.DataDir != "/tmp/resumes" || cfg.ToastDuration != 5*time.Second || cfg.QuotaBytes != 42 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	env["RESUMEGEN_AUTOSAVE_DELAY"] = "soon"
	if err := ApplyEnv(&cfg, func(k string) string { return env[k] }); err == nil {
		t.Fatalf("expected duration error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DefaultFormat = "Company"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.DefaultFormat != model.FormatCompany {
		t.Fatalf("format should be normalised, got %q", cfg.DefaultFormat)
	}

	cases := map[string]func(*Config){
		"format":   func(c *Config) { c.DefaultFormat = "poster" },
		"toast":    func(c *Config) { c.ToastDuration = 0 },
		"quota":    func(c *Config) { c.QuotaBytes = -1 },
		"keys":     func(c *Config) { c.PrefsKey = c.StorageKey },
		"autosave": func(c *Config) { c.AutoSaveDelay = -time.Second },
	}
	for name, mutate := range cases {
		c := Default()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoad_FlagsWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resumegen.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7000\"\ntheme: resumegen\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("RESUMEGEN_ADDR", "")

	cfg, err := Load("test", []string{"-config", path, "-addr", ":7001", "-format", "company"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7001" || cfg.DefaultFormat != model.FormatCompany {
		t.Fatalf("flags should win, got %+v", cfg)
	}

	if _, err := Load("test", []string{"-format", "poster"}); err == nil {
		t.Fatalf("expected invalid format error")
	}
}
