package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/pkg/debounce"
	"github.com/goliatone/go-resumegen/pkg/fieldstore"
	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/notify"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/reorder"
	"github.com/goliatone/go-resumegen/pkg/storage"
	"github.com/goliatone/go-resumegen/pkg/transfer"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

// DefaultAutoSaveDelay is how long edits coalesce before a save.
const DefaultAutoSaveDelay = time.Second

// DefaultFailureToastInterval spaces repeated save-failure toasts.
const DefaultFailureToastInterval = 10 * time.Second

const (
	msgSaveFailed   = "Failed to save data"
	msgImported     = "Resume data imported"
	msgImportFailed = "Import failed: the file is not valid resume data"
	msgCleared      = "Form cleared"
	msgClearFailed  = "Failed to clear saved data"
)

// Previewer renders the preview fragment for a record.
type Previewer interface {
	Generate(ctx context.Context, req orchestrator.Request) ([]byte, error)
}

// State is what the editor mutates: the selected format and the live form.
// It is created by New, filled by Load and replaced wholesale only by Reset,
// Import and Clear.
type State struct {
	Format model.Format
	Store  *fieldstore.Store
}

// Option configures a Controller.
type Option func(*Controller)

// WithStorage sets the persistence adapter.
func WithStorage(adapter *storage.Adapter) Option {
	return func(c *Controller) {
		if adapter != nil {
			c.storage = adapter
		}
	}
}

// WithPreviewer sets the preview renderer, normally an orchestrator.
func WithPreviewer(previewer Previewer) Option {
	return func(c *Controller) {
		if previewer != nil {
			c.previewer = previewer
		}
	}
}

// WithNotifier sets the toast sink.
func WithNotifier(notifier *notify.Notifier) Option {
	return func(c *Controller) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

// WithImporter sets the importer used by Import.
func WithImporter(importer *transfer.Importer) Option {
	return func(c *Controller) {
		if importer != nil {
			c.importer = importer
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAutoSaveDelay overrides DefaultAutoSaveDelay.
func WithAutoSaveDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.autoSaveDelay = d
		}
	}
}

// WithAfterFunc replaces the timer factory behind the auto-save debounce.
func WithAfterFunc(fn debounce.AfterFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.after = fn
		}
	}
}

// WithFailureToastInterval sets the minimum gap between save-failure toasts.
func WithFailureToastInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.failureInterval = d
		}
	}
}

// WithClock overrides the clock used to space failure toasts.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDefaultFormat sets the format used when no preference is stored.
func WithDefaultFormat(format model.Format) Option {
	return func(c *Controller) {
		if f, err := model.ParseFormat(string(format)); err == nil {
			c.defaultFormat = f
		}
	}
}

// WithContext sets the context used by storage calls and renders that are
// not tied to a caller, such as the debounced save.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// Controller is the single writer of the editor State.
type Controller struct {
	mu    sync.Mutex
	state State

	ctx           context.Context
	storage       *storage.Adapter
	previewer     Previewer
	notifier      *notify.Notifier
	importer      *transfer.Importer
	logger        *zap.Logger
	autoSaveDelay time.Duration
	after         debounce.AfterFunc
	defaultFormat model.Format
	saver         *debounce.Debouncer
	// dirty is set when a save is scheduled and cleared when the record is
	// replaced or saved. Guarded by mu.
	dirty bool

	failureInterval time.Duration
	now             func() time.Time
	failureToasts   *debounce.Throttle

	nextSubscriber int
	subscribers    []subscriber
}

// New returns a Controller holding an empty form in the default format. Call
// Load to restore the stored record.
func New(opts ...Option) *Controller {
	c := &Controller{
		ctx:             context.Background(),
		autoSaveDelay:   DefaultAutoSaveDelay,
		defaultFormat:   model.FormatGeneral,
		logger:          zap.NewNop(),
		failureInterval: DefaultFailureToastInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.storage == nil {
		c.storage = storage.New(nil, storage.WithLogger(c.logger))
	}
	if c.previewer == nil {
		c.previewer = orchestrator.New(orchestrator.WithLogger(c.logger))
	}
	if c.notifier == nil {
		c.notifier = notify.New(notify.WithLogger(c.logger))
	}
	if c.importer == nil {
		c.importer = transfer.NewImporter()
	}

	var debounceOpts []debounce.Option
	if c.after != nil {
		debounceOpts = append(debounceOpts, debounce.WithAfterFunc(c.after))
	}
	c.saver = debounce.New(c.autoSaveDelay, c.autoSave, debounceOpts...)
	if c.now != nil {
		debounceOpts = append(debounceOpts, debounce.WithClock(c.now))
	}
	c.failureToasts = debounce.NewThrottle(c.failureInterval, func() {}, debounceOpts...)

	store := fieldstore.New()
	store.Write(model.Empty())
	c.state = State{Format: c.defaultFormat, Store: store}
	return c
}

// Subscribe registers fn for every Update. fn runs with the controller locked
// and must not call back into the Controller.
func (c *Controller) Subscribe(fn func(Update)) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSubscriber++
	id := c.nextSubscriber
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Load restores the stored record, or the example record when nothing usable
// is stored, together with the stored format preference.
func (c *Controller) Load(ctx context.Context) Update {
	if ctx == nil {
		ctx = c.ctx
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.storage.Load(ctx)
	if !ok {
		c.logger.Info("controller: no stored resume, using example record")
		data = model.Example()
	}
	format := c.defaultFormat
	if prefs, ok := c.storage.LoadPrefs(ctx); ok {
		format = prefs.Format
	}
	c.cancelSaveLocked()
	c.state.Format = format
	c.state.Store.Write(data)
	return c.emitLocked(Update{Event: EventLoad})
}

// Reset replaces the whole form with data, discarding any pending save.
func (c *Controller) Reset(data model.ResumeData) Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelSaveLocked()
	c.state.Store.Write(data.Normalize())
	return c.emitLocked(Update{Event: EventReset})
}

// AddSection appends a default-valued instance of kind.
func (c *Controller) AddSection(kind model.SectionKind) (Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inst, err := c.state.Store.Add(kind)
	if err != nil {
		return Update{}, fmt.Errorf("controller: add section: %w", err)
	}
	position := len(c.state.Store.Order(kind)) - 1
	c.scheduleSaveLocked()
	return c.emitLocked(Update{
		Event:    EventSectionAdded,
		Target:   inst.FieldsetID,
		Section:  &inst,
		Position: position,
	}), nil
}

// RemoveSection deletes the fieldset with id.
func (c *Controller) RemoveSection(fieldsetID string) (Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Store.Remove(fieldsetID) {
		return Update{}, fmt.Errorf("controller: remove section: %w: %q", fieldstore.ErrUnknownFieldset, fieldsetID)
	}
	c.scheduleSaveLocked()
	return c.emitLocked(Update{Event: EventSectionRemoved, Target: fieldsetID}), nil
}

// SetField assigns value to a personal or section field. The Update carries
// the field's inline feedback and, for education grade fields, the grade max.
func (c *Controller) SetField(fieldID, value string) (Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.state.Store.Set(fieldID, value); err != nil {
		return Update{}, fmt.Errorf("controller: set field: %w", err)
	}
	c.scheduleSaveLocked()

	u := Update{Event: EventField, Target: fieldID, GradeMax: c.gradeMaxLocked(fieldID)}
	if model.IsPersonalField(fieldID) {
		u.Feedback = map[string]string{fieldID: validation.FieldMessage(fieldID, value)}
	}
	return c.emitLocked(u), nil
}

// SetFormat selects the preview format and stores it as a preference.
func (c *Controller) SetFormat(format model.Format) (Update, error) {
	parsed, err := model.ParseFormat(string(format))
	if err != nil {
		return Update{}, fmt.Errorf("controller: set format: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setFormatLocked(parsed), nil
}

// ToggleFormat switches between the general and company formats.
func (c *Controller) ToggleFormat() Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setFormatLocked(c.state.Format.Toggle())
}

func (c *Controller) setFormatLocked(format model.Format) Update {
	c.state.Format = format
	if !c.storage.SavePrefs(c.ctx, storage.Prefs{Format: format}) {
		c.logger.Warn("controller: format preference not saved", zap.String("format", string(format)))
	}
	return c.emitLocked(Update{Event: EventFormat, Target: string(format)})
}

// Reorder moves the dragged fieldset of kind to where the pointer was
// released. boxes are the on-screen extents of the kind's fieldsets; the
// dragged one may be included.
func (c *Controller) Reorder(kind model.SectionKind, draggedID string, pointerY float64, boxes []reorder.Box) (Update, error) {
	if !kind.Valid() {
		return Update{}, fmt.Errorf("controller: reorder: %w: %q", model.ErrUnknownKind, kind)
	}
	if k, _, ok := model.ParseFieldsetID(draggedID); !ok || k != kind {
		return Update{}, fmt.Errorf("controller: reorder: %w: %q", fieldstore.ErrUnknownFieldset, draggedID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	anchor, _ := reorder.InsertionAnchor(pointerY, reorder.ExcludeID(boxes, draggedID))
	order := reorder.Apply(c.state.Store.Order(kind), draggedID, anchor)

	before := ""
	for i, id := range order {
		if id == draggedID && i+1 < len(order) {
			before = order[i+1]
		}
	}
	if err := c.state.Store.Move(draggedID, before); err != nil {
		return Update{}, fmt.Errorf("controller: reorder: %w", err)
	}
	c.scheduleSaveLocked()
	return c.emitLocked(Update{
		Event:   EventReorder,
		Target:  draggedID,
		Order:   c.state.Store.Order(kind),
		Legends: c.legendsLocked(kind),
	}), nil
}

// Legends returns the legend of every fieldset of kind, numbered by display
// position.
func (c *Controller) Legends(kind model.SectionKind) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.legendsLocked(kind)
}

func (c *Controller) legendsLocked(kind model.SectionKind) map[string]string {
	spec, ok := kind.Spec()
	if !ok {
		return nil
	}
	instances := c.state.Store.Instances(kind)
	labels := make([]string, len(instances))
	for i, inst := range instances {
		labels[i] = spec.Legend + " " + strconv.Itoa(inst.Index+1)
	}
	out := make(map[string]string, len(instances))
	for i, label := range reorder.RenumberLabels(labels) {
		out[instances[i].FieldsetID] = label
	}
	return out
}

// Import replaces the form with the record in raw. A rejected payload leaves
// the form and the stored record untouched.
func (c *Controller) Import(raw []byte) (Update, error) {
	data, parseErr := c.importer.Parse(raw)

	c.mu.Lock()
	defer c.mu.Unlock()

	if parseErr != nil {
		c.logger.Warn("controller: import rejected", zap.Error(parseErr))
		toast := c.notifier.Error(msgImportFailed)
		u := c.emitLocked(Update{Event: EventImportFailed, Toast: &toast})
		return u, fmt.Errorf("controller: import: %w", parseErr)
	}

	c.cancelSaveLocked()
	c.state.Store.Write(data)
	var toast notify.Toast
	if c.storage.Save(c.ctx, c.state.Store.Read()) {
		toast = c.notifier.Success(msgImported)
	} else {
		toast = c.notifier.Error(msgSaveFailed)
	}
	return c.emitLocked(Update{Event: EventImport, Toast: &toast}), nil
}

// ExportJSON returns the download name and the indented JSON of the record.
func (c *Controller) ExportJSON() (string, []byte, error) {
	data := c.Snapshot()
	body, err := transfer.ExportJSON(data)
	if err != nil {
		return "", nil, fmt.Errorf("controller: export: %w", err)
	}
	return transfer.ExportFilename(data.Personal.Name), body, nil
}

// Clear removes the stored record and empties the form. The format
// preference is kept.
func (c *Controller) Clear() Update {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelSaveLocked()
	var toast notify.Toast
	if c.storage.Clear(c.ctx) {
		toast = c.notifier.Info(msgCleared)
	} else {
		toast = c.notifier.Error(msgClearFailed)
	}
	c.state.Store.Write(model.Empty())
	return c.emitLocked(Update{Event: EventClear, Toast: &toast})
}

// Preview renders the preview of the current record.
func (c *Controller) Preview() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked(c.state.Store.Read())
}

// Snapshot returns the current record.
func (c *Controller) Snapshot() model.ResumeData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Store.Read()
}

// Format returns the selected format.
func (c *Controller) Format() model.Format {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Format
}

// Visibility reports the format-specific parts shown in the selected format.
func (c *Controller) Visibility() model.Visibility {
	return c.Format().Visibility()
}

// Sections returns the live instances of every kind in display order.
func (c *Controller) Sections() map[model.SectionKind][]fieldstore.Instance {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[model.SectionKind][]fieldstore.Instance)
	for _, kind := range model.Kinds() {
		out[kind] = c.state.Store.Instances(kind)
	}
	return out
}

// Feedback returns the inline messages of the contact block, keyed by field id.
func (c *Controller) Feedback() map[string][]string {
	return render.ContactErrors(c.Snapshot().Personal)
}

// FieldFeedback returns the inline message for value in the contact field
// fieldID; "" when it is valid, empty or has no format rule.
func (c *Controller) FieldFeedback(fieldID, value string) string {
	return validation.FieldMessage(fieldID, value)
}

// GradeMax returns the max attribute for the grade input of the education
// entry that fieldID belongs to; "" for any other field.
func (c *Controller) GradeMax(fieldID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gradeMaxLocked(fieldID)
}

func (c *Controller) gradeMaxLocked(fieldID string) string {
	kind, field, index, ok := model.ParseFieldID(fieldID)
	if !ok || kind != model.KindEducation {
		return ""
	}
	if field.Key != "gradeType" && field.Key != "grade" {
		return ""
	}
	inst, ok := c.state.Store.Instance(kind.FieldsetID(index))
	if !ok {
		return ""
	}
	return model.GradeMax(strings.TrimSpace(inst.Values()["gradeType"]))
}

// Flush runs a pending auto-save now and reports whether there was one.
func (c *Controller) Flush() bool {
	return c.saver.Flush()
}

// Close flushes the pending auto-save.
func (c *Controller) Close() error {
	c.saver.Flush()
	return nil
}

func (c *Controller) scheduleSaveLocked() {
	c.dirty = true
	c.saver.Trigger()
}

func (c *Controller) cancelSaveLocked() {
	c.dirty = false
	c.saver.Cancel()
}

// autoSave may run after the timer fired but before it got the lock; a
// Clear, Import or Reset in between leaves nothing to save.
func (c *Controller) autoSave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return
	}
	c.dirty = false
	if c.storage.Save(c.ctx, c.state.Store.Read()) {
		return
	}
	u := Update{Event: EventSaveFailed}
	if c.failureToasts.Call() {
		toast := c.notifier.Error(msgSaveFailed)
		u.Toast = &toast
	}
	c.emitLocked(u)
}

func (c *Controller) renderLocked(data model.ResumeData) (string, error) {
	out, err := c.previewer.Generate(c.ctx, orchestrator.Request{
		Data:          &data,
		RenderOptions: render.RenderOptions{Format: c.state.Format},
	})
	if err != nil {
		return "", fmt.Errorf("controller: render preview: %w", err)
	}
	return string(out), nil
}

func (c *Controller) emitLocked(u Update) Update {
	u.Format = c.state.Format
	u.Visibility = c.state.Format.Visibility()
	u.Data = c.state.Store.Read()

	preview, err := c.renderLocked(u.Data)
	if err != nil {
		c.logger.Error("controller: preview failed", zap.String("event", string(u.Event)), zap.Error(err))
	}
	u.Preview = preview
	u.Err = err

	for _, s := range c.subscribers {
		s.fn(u)
	}
	return u
}
