// Package fieldstore keeps the live form: personal fields plus every section
// instance in display order, indexed by field and fieldset id. The aggregate
// record is derived from it on demand.
package fieldstore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-resumegen/pkg/model"
)

var (
	// ErrUnknownField is returned when an id addresses no live field.
	ErrUnknownField = errors.New("fieldstore: unknown field")
	// ErrUnknownFieldset is returned when an id addresses no live fieldset.
	ErrUnknownFieldset = errors.New("fieldstore: unknown fieldset")
)

// Field is one addressable input.
type Field struct {
	ID    string
	Spec  model.FieldSpec
	Value string
}

// Instance is a snapshot of one rendered fieldset.
type Instance struct {
	Kind       model.SectionKind
	Index      int
	FieldsetID string
	Fields     []Field
}

// Values returns the instance fields keyed by record key.
func (i Instance) Values() model.Values {
	out := make(model.Values, len(i.Fields))
	for _, f := range i.Fields {
		out[f.Spec.Key] = f.Value
	}
	return out
}

// Field returns the field whose record key is key.
func (i Instance) Field(key string) (Field, bool) {
	for _, f := range i.Fields {
		if f.Spec.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

type instance struct {
	kind       model.SectionKind
	index      int
	fieldsetID string
	fields     []*Field
}

func (in *instance) snapshot() Instance {
	out := Instance{
		Kind:       in.kind,
		Index:      in.index,
		FieldsetID: in.fieldsetID,
		Fields:     make([]Field, len(in.fields)),
	}
	for i, f := range in.fields {
		out.Fields[i] = *f
	}
	return out
}

// Store is the explicit `(kind, index, field)` index behind the form.
type Store struct {
	mu        sync.RWMutex
	personal  model.Personal
	order     map[model.SectionKind][]*instance
	counters  map[model.SectionKind]int
	fields    map[string]*Field
	fieldsets map[string]*instance
}

// New returns an empty store.
func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.personal = model.Personal{}
	s.order = make(map[model.SectionKind][]*instance)
	s.counters = make(map[model.SectionKind]int)
	s.fields = make(map[string]*Field)
	s.fieldsets = make(map[string]*instance)
}

// Reset drops every instance and zeroes the counters.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Add appends a new, default-valued instance of kind. The index is the
// current counter value, which then increments; counters never go down.
func (s *Store) Add(kind model.SectionKind) (Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, err := s.add(kind, nil)
	if err != nil {
		return Instance{}, err
	}
	return in.snapshot(), nil
}

func (s *Store) add(kind model.SectionKind, values model.Values) (*instance, error) {
	spec, ok := kind.Spec()
	if !ok {
		return nil, fmt.Errorf("fieldstore: add: %w: %q", model.ErrUnknownKind, kind)
	}
	index := s.counters[kind]
	s.counters[kind] = index + 1

	in := &instance{
		kind:       kind,
		index:      index,
		fieldsetID: kind.FieldsetID(index),
		fields:     make([]*Field, 0, len(spec.Fields)),
	}
	for _, fs := range spec.Fields {
		value := fs.Default
		if values != nil {
			if v, ok := values[fs.Key]; ok {
				value = v
			}
		}
		field := &Field{ID: kind.FieldID(fs.ID, index), Spec: fs, Value: value}
		in.fields = append(in.fields, field)
		s.fields[field.ID] = field
	}
	s.order[kind] = append(s.order[kind], in)
	s.fieldsets[in.fieldsetID] = in
	return in, nil
}

// Remove deletes the fieldset and its fields. It reports whether anything was
// removed; the kind counter is left untouched.
func (s *Store) Remove(fieldsetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.fieldsets[fieldsetID]
	if !ok {
		return false
	}
	delete(s.fieldsets, fieldsetID)
	for _, f := range in.fields {
		delete(s.fields, f.ID)
	}
	list := s.order[in.kind]
	for i, candidate := range list {
		if candidate == in {
			s.order[in.kind] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	return true
}

// Set assigns a value to a personal or section field.
func (s *Store) Set(fieldID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.personal.Set(fieldID, value) {
		return nil
	}
	field, ok := s.fields[fieldID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	field.Value = value
	return nil
}

// Value returns the current value of a personal or section field.
func (s *Store) Value(fieldID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if model.IsPersonalField(fieldID) {
		return s.personal.Get(fieldID), true
	}
	field, ok := s.fields[fieldID]
	if !ok {
		return "", false
	}
	return field.Value, true
}

// Instance returns the fieldset addressed by id.
func (s *Store) Instance(fieldsetID string) (Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.fieldsets[fieldsetID]
	if !ok {
		return Instance{}, false
	}
	return in.snapshot(), true
}

// Instances returns the live instances of kind in display order.
func (s *Store) Instances(kind model.SectionKind) []Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.order[kind]
	out := make([]Instance, len(list))
	for i, in := range list {
		out[i] = in.snapshot()
	}
	return out
}

// Order returns the fieldset ids of kind in display order.
func (s *Store) Order(kind model.SectionKind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.order[kind]
	out := make([]string, len(list))
	for i, in := range list {
		out[i] = in.fieldsetID
	}
	return out
}

// Counter returns the next index that Add would assign for kind.
func (s *Store) Counter(kind model.SectionKind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[kind]
}

// Move places fieldsetID immediately before beforeID; an empty beforeID
// appends it at the end of its kind.
func (s *Store) Move(fieldsetID, beforeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.fieldsets[fieldsetID]
	if !ok {
		return fmt.Errorf("fieldstore: move: %w: %q", ErrUnknownFieldset, fieldsetID)
	}
	if beforeID == fieldsetID {
		return nil
	}
	var anchor *instance
	if beforeID != "" {
		anchor, ok = s.fieldsets[beforeID]
		if !ok || anchor.kind != in.kind {
			return fmt.Errorf("fieldstore: move: %w: %q", ErrUnknownFieldset, beforeID)
		}
	}

	list := s.order[in.kind]
	next := make([]*instance, 0, len(list))
	for _, candidate := range list {
		if candidate == in {
			continue
		}
		if candidate == anchor {
			next = append(next, in)
		}
		next = append(next, candidate)
	}
	if anchor == nil {
		next = append(next, in)
	}
	s.order[in.kind] = next
	return nil
}

// Read scans every instance in display order and builds the aggregate record.
func (s *Store) Read() model.ResumeData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data := model.Empty()
	data.Personal = s.personal
	for _, kind := range model.Kinds() {
		for _, in := range s.order[kind] {
			values := make(model.Values, len(in.fields))
			for _, f := range in.fields {
				values[f.Spec.Key] = f.Value
			}
			data.Append(kind, values)
		}
	}
	return data
}

// Write resets the store and rebuilds one instance per entry of data.
// Counters restart at the number of entries written per kind.
func (s *Store) Write(data model.ResumeData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.personal = data.Personal
	for _, kind := range model.Kinds() {
		for _, values := range data.Entries(kind) {
			// kinds come from model.Kinds so add cannot fail
			_, _ = s.add(kind, values)
		}
	}
}
