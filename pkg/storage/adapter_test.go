package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-resumegen/pkg/model"
)

func TestAdapter_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := New(NewMemoryKV(0))
	if !a.Save(ctx, model.Example()) {
		t.Fatalf("save failed")
	}
	got, ok := a.Load(ctx)
	if !ok {
		t.Fatalf("expected stored data")
	}
	if diff := cmp.Diff(model.Example().Normalize(), got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapter_LoadAbsent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV(0)
	a := New(kv)
	if _, ok := a.Load(ctx); ok {
		t.Fatalf("empty backend should report absent")
	}
	for _, raw := range []string{`{`, `{"skills":[]}`, `{"personal":null}`, `{"personal":"x"}`} {
		if err := kv.Set(ctx, DefaultDataKey, []byte(raw)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, ok := a.Load(ctx); ok {
			t.Fatalf("payload %s should be treated as absent", raw)
		}
	}
}

func TestAdapter_QuotaLogsAndReturnsFalse(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := New(NewMemoryKV(16), WithLogger(zap.New(core)))
	if a.Save(context.Background(), model.Example()) {
		t.Fatalf("expected save to fail under quota")
	}
	if logs.FilterMessage("storage: quota exceeded").Len() != 1 {
		t.Fatalf("expected quota warning, got %v", logs.All())
	}
}

func TestAdapter_ClearMissingKey(t *testing.T) {
	ctx := context.Background()
	a := New(NewMemoryKV(0))
	if !a.Clear(ctx) {
		t.Fatalf("clearing a missing key should succeed")
	}
	a.Save(ctx, model.Example())
	if !a.Clear(ctx) {
		t.Fatalf("clear failed")
	}
	if _, ok := a.Load(ctx); ok {
		t.Fatalf("data should be gone after clear")
	}
}

func TestAdapter_Prefs(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV(0)
	a := New(kv, WithPrefsKey("prefs"))
	if _, ok := a.LoadPrefs(ctx); ok {
		t.Fatalf("expected no prefs")
	}
	if !a.SavePrefs(ctx, Prefs{Format: model.FormatCompany}) {
		t.Fatalf("save prefs failed")
	}
	prefs, ok := a.LoadPrefs(ctx)
	if !ok || prefs.Format != model.FormatCompany {
		t.Fatalf("unexpected prefs %#v %v", prefs, ok)
	}
	_ = kv.Set(ctx, "prefs", []byte(`{"format":"pdf"}`))
	if _, ok := a.LoadPrefs(ctx); ok {
		t.Fatalf("unknown format should be rejected")
	}
}

func TestFileKV(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := NewFileKV(dir, 64)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	if _, ok, err := kv.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || string(got) != `{"a":1}` {
		t.Fatalf("unexpected get %q %v %v", got, ok, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "k.json")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	big := make([]byte, 65)
	if err := kv.Set(ctx, "k", big); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if err := kv.Set(ctx, "../escape", []byte("x")); err == nil {
		t.Fatalf("expected invalid key error")
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("deleting a missing key should succeed: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no leftovers, got %d entries", len(entries))
	}
}
