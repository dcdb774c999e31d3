// Package store provides the backing store adapters for variant parameters:
// a SQLite table of currently-effective (kod_sl, parametr, wartosc) rows and
// two JSON document backends (flat and grouped). All backends implement the
// same Store contract.
package store

import "fmt"

// Store is the uniform contract over the persistence backends.
type Store interface {
	// LoadAll returns every variant with its parameters, preserving the
	// backend's natural order (query order for SQLite, document order for
	// JSON).
	LoadAll() (*Snapshot, error)

	// LoadOne returns a single variant's parameter map. Missing variants
	// yield an empty map, not an error; the schema is completed by the
	// caller.
	LoadOne(name string) (map[string]string, error)

	// ListVariants returns the ordered variant names.
	ListVariants() ([]string, error)

	// UpsertVariant replaces a variant's stored parameters with the given
	// map. The SQLite backend filters to boolean tokens and runs
	// delete+insert in one transaction; the JSON backends rewrite the
	// document.
	UpsertVariant(name string, params map[string]string) error

	// DeleteVariant removes all of a variant's current entries. Deleting an
	// absent variant is not an error.
	DeleteVariant(name string) error

	Close() error
}

// Snapshot mirrors variants.Snapshot without importing it; the engine
// converts between the two. Keeping the store layer free of model types lets
// the backends be tested in isolation.
type Snapshot struct {
	Names   []string
	Params  map[string]map[string]string
	Columns []string
}

// ConnError reports that the store could not be opened or reached. The
// attempted operation is abandoned; in-memory state is the caller's to keep.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("store connection: %v", e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// WriteError reports a failed transactional write. The store has rolled back
// to its pre-write state for the named variant; the in-memory model has not.
type WriteError struct {
	Variant string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write variant %s: %v", e.Variant, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
