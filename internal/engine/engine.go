// Package engine binds the in-memory variant model to a backing store. It
// applies edits to the model first, then persists the affected variant, and
// tracks a per-variant sync state so callers can tell when model and store
// are known to disagree.
package engine

import (
	"github.com/pawelm/payver/internal/store"
	"github.com/pawelm/payver/internal/variants"
)

// State is a variant's synchronization state against the store.
type State int

const (
	// Clean means the variant's stored state matches the model.
	Clean State = iota
	// DirtyLocal means the model has mutated and a write is underway.
	DirtyLocal
	// WriteFailed means a write was attempted and failed; model and store
	// are known to disagree. The only repair paths are a later successful
	// write of the same variant, or a full Reload.
	WriteFailed
)

func (s State) String() string {
	switch s {
	case DirtyLocal:
		return "dirty"
	case WriteFailed:
		return "write-failed"
	default:
		return "clean"
	}
}

// Engine is the synchronization engine over one Set and one Store.
type Engine struct {
	set    *variants.Set
	store  store.Store
	states map[string]State
}

// Load bulk-loads the store into a fresh model. On a load failure the
// returned engine carries an empty model and the error is reported to the
// caller; the process keeps running with an empty view.
func Load(st store.Store) (*Engine, error) {
	e := &Engine{
		set:    variants.New(),
		store:  st,
		states: make(map[string]State),
	}

	snap, err := st.LoadAll()
	if err != nil {
		return e, err
	}
	e.set.Reset(toModelSnapshot(snap))
	return e, nil
}

// New wraps an existing model and store without loading. Used by tests and
// by callers that assemble the model themselves.
func New(set *variants.Set, st store.Store) *Engine {
	return &Engine{set: set, store: st, states: make(map[string]State)}
}

// Set returns the underlying model.
func (e *Engine) Set() *variants.Set {
	return e.set
}

// State returns a variant's sync state.
func (e *Engine) State(name string) State {
	return e.states[name]
}

// Dirty returns the names of variants whose stored state is not known to
// match the model, in model order.
func (e *Engine) Dirty() []string {
	var out []string
	for _, name := range e.set.Names() {
		if e.states[name] != Clean {
			out = append(out, name)
		}
	}
	return out
}

// SetValue applies a single-cell edit to the model and persists the full
// variant (delete + filtered insert). The model mutation sticks even when
// the write fails; the variant is then marked WriteFailed and the error is
// returned for the caller to report. No retries.
func (e *Engine) SetValue(name, key, value string) error {
	if err := e.set.SetValue(name, key, value); err != nil {
		return err
	}
	return e.persist(name)
}

// AddVariant creates a variant with a blank parameter set. Validation
// failures leave model and store untouched. The persisted payload is all
// empty values, which the persistence filter reduces to zero rows.
// Returns the normalized name.
func (e *Engine) AddVariant(name string) (string, error) {
	normalized, err := e.set.Add(name)
	if err != nil {
		return "", err
	}
	if err := e.persist(normalized); err != nil {
		return normalized, err
	}
	return normalized, nil
}

// RemoveVariant deletes a variant from the model and cascades the delete to
// the store. As with every mutation, the model change is applied first and
// survives a store failure.
func (e *Engine) RemoveVariant(name string) error {
	if err := e.set.Remove(name); err != nil {
		return err
	}

	e.states[name] = DirtyLocal
	if err := e.store.DeleteVariant(name); err != nil {
		e.states[name] = WriteFailed
		return err
	}
	delete(e.states, name)
	return nil
}

// Detail returns a detail coordinator over this engine's store.
func (e *Engine) Detail() *Detail {
	return NewDetail(e.store)
}

// Reload makes the store authoritative again: the model is rebuilt from a
// full load and all sync states reset, discarding unsaved divergence.
// Listeners registered on the model survive.
func (e *Engine) Reload() error {
	snap, err := e.store.LoadAll()
	if err != nil {
		return err
	}
	e.set.Reset(toModelSnapshot(snap))
	e.states = make(map[string]State)
	return nil
}

// persist writes one variant's current model state to the store.
func (e *Engine) persist(name string) error {
	e.states[name] = DirtyLocal
	if err := e.store.UpsertVariant(name, e.set.Params(name)); err != nil {
		e.states[name] = WriteFailed
		return err
	}
	e.states[name] = Clean
	return nil
}

func toModelSnapshot(snap *store.Snapshot) *variants.Snapshot {
	return &variants.Snapshot{
		Names:   snap.Names,
		Params:  snap.Params,
		Columns: snap.Columns,
	}
}
