// Package variants holds the in-memory mirror of the parameter store: an
// ordered collection of variant names, each mapped to a complete set of
// parameter values. The ordered name list and the value maps are kept in
// lockstep; list position routes grid rows to variant identity.
package variants

import (
	"errors"
	"fmt"

	"github.com/pawelm/payver/internal/schema"
)

var (
	ErrEmptyName     = errors.New("variant name is empty")
	ErrDuplicateName = errors.New("variant already exists")
	ErrNotFound      = errors.New("variant not found")
)

// EventType identifies a model change notification.
type EventType string

const (
	EventVariantAdded   EventType = "variant_added"
	EventVariantRemoved EventType = "variant_removed"
	EventValueChanged   EventType = "value_changed"
)

// Event describes a single model mutation. Key and Value are set for
// EventValueChanged only.
type Event struct {
	Type    EventType
	Variant string
	Index   int
	Key     string
	Value   string
}

// Listener receives model change events synchronously, in mutation order.
type Listener func(Event)

// Snapshot is an ordered bulk-load result from a backing store. Columns is
// the first-seen parameter key order; empty means the fixed schema order.
type Snapshot struct {
	Names   []string
	Params  map[string]map[string]string
	Columns []string
}

// Set is the in-memory variant/parameter model.
type Set struct {
	names     []string
	params    map[string]map[string]string
	columns   []string
	listeners []Listener
}

// New returns an empty Set over the fixed parameter schema.
func New() *Set {
	return NewWithColumns(nil)
}

// NewWithColumns returns an empty Set with an explicit column key order,
// used by free-text tables whose columns come from the document itself.
// A nil or empty cols falls back to the fixed schema.
func NewWithColumns(cols []string) *Set {
	if len(cols) == 0 {
		cols = schema.Keys
	}
	s := &Set{params: make(map[string]map[string]string)}
	s.columns = append(s.columns, cols...)
	return s
}

// FromSnapshot builds a Set from a bulk load and restores schema
// completeness: every variant ends up with every column key. Loaded names
// are normalized the same way Add normalizes them, so documents written by
// hand address the same identity as names typed at the CLI; a name that
// collapses onto an earlier one is dropped.
func FromSnapshot(snap *Snapshot) *Set {
	s := NewWithColumns(snap.Columns)
	for _, name := range snap.Names {
		normalized := schema.NormalizeName(name)
		if normalized == "" || s.Has(normalized) {
			continue
		}
		s.names = append(s.names, normalized)
		vals := make(map[string]string, len(s.columns))
		for k, v := range snap.Params[name] {
			vals[k] = v
		}
		s.params[normalized] = vals
	}
	s.complete()
	return s
}

// Reset replaces the Set's contents from a fresh snapshot, discarding any
// unsaved divergence. Registered listeners are kept.
func (s *Set) Reset(snap *Snapshot) {
	fresh := FromSnapshot(snap)
	s.names = fresh.names
	s.params = fresh.params
	s.columns = fresh.columns
}

// Subscribe registers a listener for model change events.
func (s *Set) Subscribe(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

func (s *Set) emit(ev Event) {
	for _, fn := range s.listeners {
		fn(ev)
	}
}

// complete fills in missing column keys with the unset value.
func (s *Set) complete() {
	for _, name := range s.names {
		vals := s.params[name]
		for _, key := range s.columns {
			if _, ok := vals[key]; !ok {
				vals[key] = schema.Unset
			}
		}
	}
}

// Len returns the number of variants.
func (s *Set) Len() int {
	return len(s.names)
}

// Names returns the ordered variant names.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Columns returns the ordered parameter keys.
func (s *Set) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Has reports whether a variant with the given name exists.
func (s *Set) Has(name string) bool {
	_, ok := s.params[name]
	return ok
}

// At returns the variant name at list position i.
func (s *Set) At(i int) string {
	return s.names[i]
}

// IndexOf returns the list position of a variant, or -1.
func (s *Set) IndexOf(name string) int {
	for i, n := range s.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Add appends a new variant with every column key unset. The name is
// normalized to upper case; empty and duplicate names are rejected.
// Returns the normalized name.
func (s *Set) Add(name string) (string, error) {
	name = schema.NormalizeName(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if s.Has(name) {
		return "", fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	vals := make(map[string]string, len(s.columns))
	for _, key := range s.columns {
		vals[key] = schema.Unset
	}
	s.names = append(s.names, name)
	s.params[name] = vals

	s.emit(Event{Type: EventVariantAdded, Variant: name, Index: len(s.names) - 1})
	return name, nil
}

// Remove deletes a variant from both the ordered list and the value map.
func (s *Set) Remove(name string) error {
	idx := s.IndexOf(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	s.names = append(s.names[:idx], s.names[idx+1:]...)
	delete(s.params, name)

	s.emit(Event{Type: EventVariantRemoved, Variant: name, Index: idx})
	return nil
}

// SetValue updates one cell. Keys outside the known columns are accepted
// verbatim and appended to the column order; the schema is descriptive, not
// restrictive, for free-text tables.
func (s *Set) SetValue(name, key, value string) error {
	vals, ok := s.params[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if _, known := vals[key]; !known {
		s.columns = append(s.columns, key)
		s.complete()
	}
	vals[key] = value

	s.emit(Event{Type: EventValueChanged, Variant: name, Index: s.IndexOf(name), Key: key, Value: value})
	return nil
}

// GetValue returns the value of one cell, or the empty string when the key
// is unset for that variant.
func (s *Set) GetValue(name, key string) string {
	return s.params[name][key]
}

// Params returns a copy of a variant's key→value map.
func (s *Set) Params(name string) map[string]string {
	vals, ok := s.params[name]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(vals))
	for k, v := range vals {
		out[k] = v
	}
	return out
}
