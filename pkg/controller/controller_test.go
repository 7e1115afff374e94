package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resumegen/pkg/debounce"
	"github.com/goliatone/go-resumegen/pkg/fieldstore"
	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/notify"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/reorder"
	"github.com/goliatone/go-resumegen/pkg/storage"
	"github.com/goliatone/go-resumegen/pkg/transfer"
)

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) after(_ time.Duration, fn func()) debounce.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	timers := append([]*fakeTimer(nil), s.timers...)
	s.timers = nil
	s.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.stopped = true
			t.fn()
		}
	}
}

type stubPreviewer struct{}

func (stubPreviewer) Generate(_ context.Context, req orchestrator.Request) ([]byte, error) {
	return []byte(fmt.Sprintf("%s|%s|%d", req.RenderOptions.ResolvedFormat(), req.Data.Personal.Name, len(req.Data.Skills))), nil
}

type harness struct {
	ctrl    *Controller
	kv      *storage.MemoryKV
	store   *storage.Adapter
	saves   *fakeScheduler
	updates []Update
}

func newHarness(t *testing.T, quota int, opts ...Option) *harness {
	t.Helper()
	h := &harness{kv: storage.NewMemoryKV(quota), saves: &fakeScheduler{}}
	h.store = storage.New(h.kv)
	base := []Option{
		WithStorage(h.store),
		WithPreviewer(stubPreviewer{}),
		WithAfterFunc(h.saves.after),
		WithNotifier(notify.New(notify.WithAfterFunc((&fakeScheduler{}).after))),
	}
	h.ctrl = New(append(base, opts...)...)
	h.ctrl.Subscribe(func(u Update) { h.updates = append(h.updates, u) })
	return h
}

func (h *harness) last(t *testing.T) Update {
	t.Helper()
	if len(h.updates) == 0 {
		t.Fatalf("expected an update")
	}
	return h.updates[len(h.updates)-1]
}

func TestLoad_FallsBackToExample(t *testing.T) {
	h := newHarness(t, 0)
	u := h.ctrl.Load(context.Background())

	if diff := cmp.Diff(model.Example().Normalize(), h.ctrl.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if u.Event != EventLoad || u.Format != model.FormatGeneral {
		t.Fatalf("unexpected update: %+v", u)
	}
	if u.Preview != "general|Alex Griffin|5" {
		t.Fatalf("preview = %q", u.Preview)
	}
	if !u.Visibility.Hobbies || u.Visibility.Location {
		t.Fatalf("general visibility expected, got %+v", u.Visibility)
	}
	if h.saves.pending() != 0 {
		t.Fatalf("load must not schedule a save")
	}
}

func TestLoad_StoredRecordAndFormat(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	stored := model.Empty()
	stored.Personal.Name = "Ada Lovelace"
	if !h.store.Save(ctx, stored) || !h.store.SavePrefs(ctx, storage.Prefs{Format: model.FormatCompany}) {
		t.Fatalf("seed failed")
	}

	u := h.ctrl.Load(ctx)
	if u.Data.Personal.Name != "Ada Lovelace" || len(u.Data.Skills) != 0 {
		t.Fatalf("expected stored record, got %+v", u.Data)
	}
	if h.ctrl.Format() != model.FormatCompany || !h.ctrl.Visibility().Location {
		t.Fatalf("expected stored company format")
	}
}

func TestSectionLifecycle(t *testing.T) {
	h := newHarness(t, 0)
	h.ctrl.Reset(model.Empty())

	first, err := h.ctrl.AddSection(model.KindProject)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := h.ctrl.AddSection(model.KindProject)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.Target != "pro_fieldset_0" || second.Target != "pro_fieldset_1" {
		t.Fatalf("unexpected ids %q %q", first.Target, second.Target)
	}
	if second.Section == nil || second.Position != 1 {
		t.Fatalf("expected section at position 1, got %+v", second)
	}

	if _, err := h.ctrl.RemoveSection("pro_fieldset_0"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := h.ctrl.SetField("project_title_1", "Second"); err != nil {
		t.Fatalf("second project should stay addressable: %v", err)
	}
	data := h.ctrl.Snapshot()
	if len(data.Projects) != 1 || data.Projects[0].Title != "Second" {
		t.Fatalf("unexpected projects %+v", data.Projects)
	}

	third, err := h.ctrl.AddSection(model.KindProject)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if third.Target != "pro_fieldset_2" || third.Position != 1 {
		t.Fatalf("counter must not reuse indexes, got %q at %d", third.Target, third.Position)
	}

	if _, err := h.ctrl.RemoveSection("pro_fieldset_0"); !errors.Is(err, fieldstore.ErrUnknownFieldset) {
		t.Fatalf("expected ErrUnknownFieldset, got %v", err)
	}
	if _, err := h.ctrl.AddSection("pets"); !errors.Is(err, model.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestEditsAreSavedAfterDebounce(t *testing.T) {
	h := newHarness(t, 0)
	h.ctrl.Reset(model.Empty())
	ctx := context.Background()

	for _, name := range []string{"A", "Ad", "Ada"} {
		if _, err := h.ctrl.SetField(model.FieldName, name); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	if _, ok := h.store.Load(ctx); ok {
		t.Fatalf("nothing should be stored before the debounce fires")
	}
	if got := h.saves.pending(); got != 1 {
		t.Fatalf("expected one pending save, got %d", got)
	}

	h.saves.fireAll()
	stored, ok := h.store.Load(ctx)
	if !ok || stored.Personal.Name != "Ada" {
		t.Fatalf("expected stored name Ada, got %+v (ok=%v)", stored.Personal, ok)
	}
	if h.ctrl.Flush() {
		t.Fatalf("nothing should be pending after the save")
	}
}

func TestClose_FlushesPendingSave(t *testing.T) {
	h := newHarness(t, 0)
	h.ctrl.Reset(model.Empty())
	if _, err := h.ctrl.SetField(model.FieldEmail, "ada@example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := h.ctrl.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	stored, ok := h.store.Load(context.Background())
	if !ok || stored.Personal.Email != "ada@example.com" {
		t.Fatalf("expected flushed save, got %+v", stored.Personal)
	}
}

func TestSetField_FeedbackAndGradeMax(t *testing.T) {
	h := newHarness(t, 0)
	h.ctrl.Load(context.Background())

	u, err := h.ctrl.SetField(model.FieldEmail, "not-an-email")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"email": "Invalid email format"}, u.Feedback); diff != "" {
		t.Fatalf("feedback (-want +got):\n%s", diff)
	}
	u, _ = h.ctrl.SetField(model.FieldEmail, "")
	if u.Feedback["email"] != "" {
		t.Fatalf("empty value should clear feedback")
	}
	if got := h.ctrl.FieldFeedback(model.FieldGitHub, "ftp://github.com/x"); got != "Invalid GitHub URL" {
		t.Fatalf("github feedback = %q", got)
	}

	u, err = h.ctrl.SetField("edu_grade_type_0", model.GradeTypePercentage)
	if err != nil {
		t.Fatalf("set grade type: %v", err)
	}
	if u.GradeMax != "" || h.ctrl.GradeMax("edu_grade_0") != "" {
		t.Fatalf("percentage grades have no max")
	}
	u, _ = h.ctrl.SetField("edu_grade_type_0", model.GradeTypeCGPA)
	if u.GradeMax != model.GradeMaxCGPA {
		t.Fatalf("cgpa grade max = %q", u.GradeMax)
	}
	if h.ctrl.GradeMax("skill_name_0") != "" {
		t.Fatalf("non grade fields have no max")
	}

	if _, err := h.ctrl.SetField("skill_name_99", "x"); !errors.Is(err, fieldstore.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestFormatToggle(t *testing.T) {
	h := newHarness(t, 0)
	h.ctrl.Load(context.Background())

	u := h.ctrl.ToggleFormat()
	if u.Format != model.FormatCompany || !u.Visibility.Experiences || u.Visibility.Hobbies {
		t.Fatalf("unexpected company update %+v", u)
	}
	if !strings.HasPrefix(u.Preview, "company|") {
		t.Fatalf("preview should re-render in company format, got %q", u.Preview)
	}
	prefs, ok := h.store.LoadPrefs(context.Background())
	if !ok || prefs.Format != model.FormatCompany {
		t.Fatalf("format preference not stored: %+v", prefs)
	}

	if _, err := h.ctrl.SetFormat("GENERAL"); err != nil {
		t.Fatalf("set format: %v", err)
	}
	if h.ctrl.Format() != model.FormatGeneral {
		t.Fatalf("expected general format")
	}
	if _, err := h.ctrl.SetFormat("fancy"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestReorder(t *testing.T) {
	h := newHarness(t, 0)
	h.ctrl.Load(context.Background())

	boxes := make([]reorder.Box, 5)
	for i := range boxes {
		boxes[i] = reorder.Box{ID: model.KindSkill.FieldsetID(i), Top: float64(i * 20), Height: 20}
	}
	u, err := h.ctrl.Reorder(model.KindSkill, "ski_fieldset_4", 15, boxes)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	wantOrder := []string{"ski_fieldset_0", "ski_fieldset_4", "ski_fieldset_1", "ski_fieldset_2", "ski_fieldset_3"}
	if diff := cmp.Diff(wantOrder, u.Order); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if u.Legends["ski_fieldset_4"] != "Skill 2" || u.Legends["ski_fieldset_3"] != "Skill 5" {
		t.Fatalf("legends not renumbered: %v", u.Legends)
	}
	if got := h.ctrl.Snapshot().Skills[1].Name; got != "Other Skills" {
		t.Fatalf("record order not updated, second skill %q", got)
	}

	u, err = h.ctrl.Reorder(model.KindSkill, "ski_fieldset_0", 1000, boxes)
	if err != nil {
		t.Fatalf("reorder to end: %v", err)
	}
	if u.Order[len(u.Order)-1] != "ski_fieldset_0" {
		t.Fatalf("expected append, got %v", u.Order)
	}

	if _, err := h.ctrl.Reorder(model.KindSkill, "pro_fieldset_0", 0, boxes); !errors.Is(err, fieldstore.ErrUnknownFieldset) {
		t.Fatalf("expected ErrUnknownFieldset, got %v", err)
	}
}

func TestImport(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	h.ctrl.Load(ctx)
	if _, err := h.ctrl.SetField(model.FieldName, "Pending"); err != nil {
		t.Fatalf("set: %v", err)
	}

	before := h.ctrl.Snapshot()
	u, err := h.ctrl.Import([]byte(`{"personal":{"name":"Nope"}}`))
	if !errors.Is(err, transfer.ErrInvalidImport) {
		t.Fatalf("expected ErrInvalidImport, got %v", err)
	}
	if u.Toast == nil || u.Toast.Level != notify.LevelError {
		t.Fatalf("expected error toast, got %+v", u.Toast)
	}
	if diff := cmp.Diff(before, h.ctrl.Snapshot()); diff != "" {
		t.Fatalf("rejected import changed the form (-want +got):\n%s", diff)
	}
	if _, ok := h.store.Load(ctx); ok {
		t.Fatalf("rejected import must not touch storage")
	}

	u, err = h.ctrl.Import([]byte(`{"personal":{"name":"Grace Hopper"},"skills":[{"name":"COBOL","details":"compilers"}]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if u.Event != EventImport || u.Toast == nil || u.Toast.Level != notify.LevelSuccess {
		t.Fatalf("unexpected update %+v", u)
	}
	stored, ok := h.store.Load(ctx)
	if !ok || stored.Personal.Name != "Grace Hopper" || len(stored.Skills) != 1 {
		t.Fatalf("import should be stored immediately, got %+v", stored)
	}
	if h.saves.pending() != 0 {
		t.Fatalf("import should discard the pending save")
	}
	if h.ctrl.Snapshot().Projects == nil {
		t.Fatalf("imported record should be normalized")
	}
}

func TestClear(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	h.ctrl.Load(ctx)
	if !h.store.Save(ctx, h.ctrl.Snapshot()) {
		t.Fatalf("seed failed")
	}
	h.ctrl.ToggleFormat()

	u := h.ctrl.Clear()
	if u.Toast == nil || u.Toast.Level != notify.LevelInfo {
		t.Fatalf("expected info toast, got %+v", u.Toast)
	}
	if _, ok := h.store.Load(ctx); ok {
		t.Fatalf("stored record should be removed")
	}
	if diff := cmp.Diff(model.Empty(), h.ctrl.Snapshot()); diff != "" {
		t.Fatalf("form should be empty (-want +got):\n%s", diff)
	}
	if h.ctrl.Format() != model.FormatCompany {
		t.Fatalf("clear keeps the format")
	}
	if inst, err := h.ctrl.AddSection(model.KindSkill); err != nil || inst.Target != "ski_fieldset_0" {
		t.Fatalf("counters should restart after clear, got %q (%v)", inst.Target, err)
	}
}

func TestClear_DropsSaveWaitingOnLock(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	h.ctrl.Load(ctx)
	if _, err := h.ctrl.SetField(model.FieldName, "Pending"); err != nil {
		t.Fatalf("set: %v", err)
	}
	h.ctrl.Clear()

	// A timer that fired before Clear runs its save once Clear releases the lock.
	h.ctrl.autoSave()
	if _, ok := h.store.Load(ctx); ok {
		t.Fatalf("a save scheduled before clear must not store the empty form")
	}
	if u := h.ctrl.Load(ctx); u.Data.Personal.Name != "Alex Griffin" {
		t.Fatalf("expected the example record after reload, got %q", u.Data.Personal.Name)
	}

	if _, err := h.ctrl.SetField(model.FieldName, "After Clear"); err != nil {
		t.Fatalf("set: %v", err)
	}
	h.saves.fireAll()
	stored, ok := h.store.Load(ctx)
	if !ok || stored.Personal.Name != "After Clear" {
		t.Fatalf("edits after clear should still be saved, got %+v (%v)", stored.Personal, ok)
	}
}

func TestSaveFailureToasts(t *testing.T) {
	h := newHarness(t, 64)
	h.ctrl.Load(context.Background())
	if _, err := h.ctrl.SetField(model.FieldName, "Quota Buster"); err != nil {
		t.Fatalf("set: %v", err)
	}
	h.saves.fireAll()

	u := h.last(t)
	if u.Event != EventSaveFailed || u.Toast == nil || u.Toast.Message != msgSaveFailed {
		t.Fatalf("expected save failure toast, got %+v", u)
	}
}

func TestSaveFailureToasts_Throttled(t *testing.T) {
	now := time.Unix(0, 0)
	h := newHarness(t, 64, WithClock(func() time.Time { return now }), WithFailureToastInterval(time.Minute))
	h.ctrl.Load(context.Background())

	for i, wantToast := range []bool{true, false, true} {
		if i == 2 {
			now = now.Add(2 * time.Minute)
		}
		if _, err := h.ctrl.SetField(model.FieldName, fmt.Sprintf("Quota Buster %d", i)); err != nil {
			t.Fatalf("set: %v", err)
		}
		h.saves.fireAll()
		u := h.last(t)
		if u.Event != EventSaveFailed {
			t.Fatalf("attempt %d: expected save failure, got %s", i, u.Event)
		}
		if got := u.Toast != nil; got != wantToast {
			t.Fatalf("attempt %d: toast shown = %v, want %v", i, got, wantToast)
		}
	}
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	h := newHarness(t, 0)
	var events []Event
	unsubscribe := h.ctrl.Subscribe(func(u Update) { events = append(events, u.Event) })

	h.ctrl.Load(context.Background())
	h.ctrl.ToggleFormat()
	unsubscribe()
	h.ctrl.ToggleFormat()

	if diff := cmp.Diff([]Event{EventLoad, EventFormat}, events); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
	if len(h.updates) != 3 {
		t.Fatalf("remaining subscriber should see every update, got %d", len(h.updates))
	}
}

func TestExportJSON(t *testing.T) {
	h := newHarness(t, 0)
	h.ctrl.Load(context.Background())

	name, body, err := h.ctrl.ExportJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "Alex_Griffin_resume.json" {
		t.Fatalf("filename = %q", name)
	}
	data, err := transfer.NewImporter().Parse(body)
	if err != nil {
		t.Fatalf("export should re-import: %v", err)
	}
	if diff := cmp.Diff(h.ctrl.Snapshot(), data); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestPreview_DefaultOrchestrator(t *testing.T) {
	c := New(WithAfterFunc((&fakeScheduler{}).after))
	c.Load(context.Background())

	preview, err := c.Preview()
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(preview, "Alex Griffin") || !strings.Contains(preview, "Hobbies and Interest") {
		t.Fatalf("unexpected general preview:\n%s", preview)
	}

	u := c.ToggleFormat()
	if u.Err != nil {
		t.Fatalf("company preview: %v", u.Err)
	}
	if strings.Contains(u.Preview, "Hobbies and Interest") || !strings.Contains(u.Preview, "Experience") {
		t.Fatalf("unexpected company preview:\n%s", u.Preview)
	}
}
