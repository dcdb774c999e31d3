package engine

import (
	"github.com/pawelm/payver/internal/schema"
	"github.com/pawelm/payver/internal/variants"
)

// Loader is the read side of a store that the detail coordinator needs.
type Loader interface {
	LoadOne(name string) (map[string]string, error)
}

// Detail binds a master selection (one variant name) to a projected detail
// row set. Selection changes trigger a scoped load, schema completion, and
// the affirmative-only projection; reselecting the current variant is a
// no-op and issues no store round trip.
type Detail struct {
	loader  Loader
	current string
	loaded  bool
	params  map[string]string
}

// NewDetail returns a coordinator with no selection.
func NewDetail(loader Loader) *Detail {
	return &Detail{loader: loader}
}

// Current returns the selected variant name, or "" when nothing is loaded.
func (d *Detail) Current() string {
	if !d.loaded {
		return ""
	}
	return d.current
}

// Select loads the detail data for a newly selected variant. Selecting the
// variant that is already loaded short-circuits.
func (d *Detail) Select(name string) error {
	if d.loaded && name == d.current {
		return nil
	}
	return d.load(name)
}

// Clear drops the current selection and its rows. Used when the master
// list empties and no variant remains to select.
func (d *Detail) Clear() {
	d.current = ""
	d.params = nil
	d.loaded = false
}

// Refresh re-runs the projection for the current selection from the store,
// bypassing the idempotence guard. Rows whose value left "tak" since the
// last load disappear here; the row set is rebuilt, not patched.
func (d *Detail) Refresh() error {
	if !d.loaded {
		return nil
	}
	return d.load(d.current)
}

func (d *Detail) load(name string) error {
	d.params = nil
	d.loaded = false

	params, err := d.loader.LoadOne(name)
	if err != nil {
		return err
	}

	// Schema completion: negative and unset keys stay in the map so a later
	// flip back to "tak" revives their rows.
	for _, key := range schema.Keys {
		if _, ok := params[key]; !ok {
			params[key] = schema.Unset
		}
	}

	d.current = name
	d.params = params
	d.loaded = true
	return nil
}

// Rows returns the affirmative-only projection of the current selection.
func (d *Detail) Rows() []variants.Row {
	if !d.loaded {
		return nil
	}
	return variants.ProjectAffirmative(d.params)
}

// AllRows returns the full-schema projection of the current selection.
func (d *Detail) AllRows() []variants.Row {
	if !d.loaded {
		return nil
	}
	return variants.ProjectFull(d.params)
}

// Value returns the current selection's value for one key.
func (d *Detail) Value(key string) string {
	return d.params[key]
}
