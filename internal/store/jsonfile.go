package store

import (
	"fmt"
	"os"
	"strings"
)

// JSONFile is the flat JSON document backend: top-level keys are variant
// names (insertion order = display order), values are parameter objects.
// Writes are whole-document read-modify-write, last-writer-wins; there is
// no transaction and no persistence filter; free text is stored verbatim.
type JSONFile struct {
	path string
	kind ValueKind
}

// OpenJSONFile returns a store over the given document path. A missing file
// reads as an empty document and is created on first write.
func OpenJSONFile(path string, kind ValueKind) *JSONFile {
	return &JSONFile{path: path, kind: kind}
}

func (j *JSONFile) Close() error { return nil }

func (j *JSONFile) load() ([]docEntry, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &ConnError{Err: fmt.Errorf("read %s: %w", j.path, err)}
	}

	doc, err := decodeFlatDoc(data)
	if err != nil {
		return nil, &ConnError{Err: fmt.Errorf("parse %s: %w", j.path, err)}
	}
	return doc, nil
}

func (j *JSONFile) save(doc []docEntry) error {
	var b strings.Builder
	b.WriteString("{")
	for i, entry := range doc {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  ")
		b.WriteString(encodeString(entry.name))
		b.WriteString(": {")
		for p, param := range entry.params {
			if p > 0 {
				b.WriteString(",")
			}
			b.WriteString("\n    ")
			b.WriteString(encodeString(param.key))
			b.WriteString(": ")
			b.WriteString(encodeValue(param.value, param.isNumber, j.kind))
		}
		if len(entry.params) > 0 {
			b.WriteString("\n  ")
		}
		b.WriteString("}")
	}
	if len(doc) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	if err := writeAtomic(j.path, []byte(b.String())); err != nil {
		return &WriteError{Variant: "*", Err: err}
	}
	return nil
}

// LoadAll returns the document as a snapshot. Columns come from the first
// variant's key order, matching how the grid derives its headers.
func (j *JSONFile) LoadAll() (*Snapshot, error) {
	doc, err := j.load()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Params: make(map[string]map[string]string)}
	for _, entry := range doc {
		snap.Names = append(snap.Names, entry.name)
		vals := make(map[string]string, len(entry.params))
		for _, p := range entry.params {
			vals[p.key] = p.value
		}
		snap.Params[entry.name] = vals
	}
	if len(doc) > 0 {
		for _, p := range doc[0].params {
			snap.Columns = append(snap.Columns, p.key)
		}
	}
	return snap, nil
}

// LoadOne returns one variant's parameters; missing variants yield an
// empty map.
func (j *JSONFile) LoadOne(name string) (map[string]string, error) {
	doc, err := j.load()
	if err != nil {
		return nil, err
	}
	params := make(map[string]string)
	for _, entry := range doc {
		if sameName(entry.name, name) {
			for _, p := range entry.params {
				params[p.key] = p.value
			}
			break
		}
	}
	return params, nil
}

// ListVariants returns the top-level keys in document order.
func (j *JSONFile) ListVariants() ([]string, error) {
	doc, err := j.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc))
	for _, entry := range doc {
		names = append(names, entry.name)
	}
	return names, nil
}

// UpsertVariant rewrites the whole document with the variant's parameters
// replaced. Existing key order is kept for keys that survive; new keys are
// appended. A new variant is appended at the end of the document.
func (j *JSONFile) UpsertVariant(name string, params map[string]string) error {
	doc, err := j.load()
	if err != nil {
		return err
	}

	entry := buildEntry(name, params, existingEntry(doc, name))

	replaced := false
	for i := range doc {
		if sameName(doc[i].name, name) {
			doc[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc = append(doc, entry)
	}

	return j.save(doc)
}

// DeleteVariant removes the top-level key if present.
func (j *JSONFile) DeleteVariant(name string) error {
	doc, err := j.load()
	if err != nil {
		return err
	}

	for i := range doc {
		if sameName(doc[i].name, name) {
			doc = append(doc[:i], doc[i+1:]...)
			return j.save(doc)
		}
	}
	return nil
}

func existingEntry(doc []docEntry, name string) *docEntry {
	for i := range doc {
		if sameName(doc[i].name, name) {
			return &doc[i]
		}
	}
	return nil
}

// buildEntry orders a parameter map for serialization: the prior entry's
// key order first, then remaining keys in stable order.
func buildEntry(name string, params map[string]string, prior *docEntry) docEntry {
	entry := docEntry{name: name}
	seen := make(map[string]bool, len(params))

	if prior != nil {
		for _, p := range prior.params {
			value, ok := params[p.key]
			if !ok {
				continue
			}
			entry.params = append(entry.params, paramEntry{
				key:      p.key,
				value:    value,
				isNumber: p.isNumber && value == p.value,
			})
			seen[p.key] = true
		}
	}

	for _, key := range orderedKeys(params) {
		if !seen[key] {
			entry.params = append(entry.params, paramEntry{key: key, value: params[key]})
		}
	}
	return entry
}
