package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// GroupedJSON is the grouped document backend: group name → parameter name
// → {data_od, data_do, wartosc}. Groups play the variant role. Upserts are
// scoped to one top-level group key; validity dates of surviving entries are
// carried over verbatim and never written as historical rows.
type GroupedJSON struct {
	path string
	kind ValueKind
}

// OpenGroupedJSON returns a store over the given grouped document path.
func OpenGroupedJSON(path string, kind ValueKind) *GroupedJSON {
	return &GroupedJSON{path: path, kind: kind}
}

func (g *GroupedJSON) Close() error { return nil }

// groupedParam is one parameter entry within a group, in document order.
type groupedParam struct {
	key      string
	dataOd   string
	dataDo   string
	value    string
	isNumber bool
}

// groupedEntry is one top-level group in document order.
type groupedEntry struct {
	name   string
	params []groupedParam
}

func (g *GroupedJSON) load() ([]groupedEntry, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &ConnError{Err: fmt.Errorf("read %s: %w", g.path, err)}
	}
	doc, err := decodeGroupedDoc(data)
	if err != nil {
		return nil, &ConnError{Err: fmt.Errorf("parse %s: %w", g.path, err)}
	}
	return doc, nil
}

func decodeGroupedDoc(data []byte) ([]groupedEntry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var doc []groupedEntry
	for dec.More() {
		name, err := decodeKey(dec)
		if err != nil {
			return nil, err
		}
		entry := groupedEntry{name: name}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("group %q: %w", name, err)
		}
		for dec.More() {
			paramName, err := decodeKey(dec)
			if err != nil {
				return nil, err
			}
			fields, err := decodeParamObject(dec)
			if err != nil {
				return nil, fmt.Errorf("group %q, parameter %q: %w", name, paramName, err)
			}

			param := groupedParam{key: paramName}
			for _, f := range fields {
				switch f.key {
				case "data_od":
					param.dataOd = f.value
				case "data_do":
					param.dataDo = f.value
				case "wartosc":
					param.value = f.value
					param.isNumber = f.isNumber
				}
			}
			entry.params = append(entry.params, param)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}

		doc = append(doc, entry)
	}

	return doc, expectDelim(dec, '}')
}

func (g *GroupedJSON) save(doc []groupedEntry) error {
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
			b.WriteString(": {\n      \"data_od\": ")
			b.WriteString(encodeString(param.dataOd))
			b.WriteString(",\n      \"data_do\": ")
			b.WriteString(encodeString(param.dataDo))
			b.WriteString(",\n      \"wartosc\": ")
			b.WriteString(encodeValue(param.value, param.isNumber, g.kind))
			b.WriteString("\n    }")
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

	if err := writeAtomic(g.path, []byte(b.String())); err != nil {
		return &WriteError{Variant: "*", Err: err}
	}
	return nil
}

// LoadAll exposes groups as variants and wartosc values as cell text.
func (g *GroupedJSON) LoadAll() (*Snapshot, error) {
	doc, err := g.load()
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

// LoadOne returns one group's wartosc values.
func (g *GroupedJSON) LoadOne(name string) (map[string]string, error) {
	doc, err := g.load()
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

// ListVariants returns the group names in document order.
func (g *GroupedJSON) ListVariants() ([]string, error) {
	doc, err := g.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc))
	for _, entry := range doc {
		names = append(names, entry.name)
	}
	return names, nil
}

// Entries returns the full grouped rows (dates included) for display.
func (g *GroupedJSON) Entries() ([]GroupedRow, error) {
	doc, err := g.load()
	if err != nil {
		return nil, err
	}
	var rows []GroupedRow
	for _, entry := range doc {
		for _, p := range entry.params {
			rows = append(rows, GroupedRow{
				Group:  entry.name,
				Name:   p.key,
				DataOd: p.dataOd,
				DataDo: p.dataDo,
				Value:  p.value,
			})
		}
	}
	return rows, nil
}

// GroupedRow is one flattened display row of a grouped document.
type GroupedRow struct {
	Group  string
	Name   string
	DataOd string
	DataDo string
	Value  string
}

// UpsertVariant rewrites one group's parameters, keeping the validity dates
// of entries that survive the update. New parameters get empty dates, which
// marks them currently effective.
func (g *GroupedJSON) UpsertVariant(name string, params map[string]string) error {
	doc, err := g.load()
	if err != nil {
		return err
	}

	var prior *groupedEntry
	for i := range doc {
		if sameName(doc[i].name, name) {
			prior = &doc[i]
			break
		}
	}

	entry := groupedEntry{name: name}
	seen := make(map[string]bool, len(params))
	if prior != nil {
		for _, p := range prior.params {
			value, ok := params[p.key]
			if !ok {
				continue
			}
			entry.params = append(entry.params, groupedParam{
				key:      p.key,
				dataOd:   p.dataOd,
				dataDo:   p.dataDo,
				value:    value,
				isNumber: p.isNumber && value == p.value,
			})
			seen[p.key] = true
		}
	}
	for _, key := range orderedKeys(params) {
		if !seen[key] {
			entry.params = append(entry.params, groupedParam{key: key, value: params[key]})
		}
	}

	if prior != nil {
		for i := range doc {
			if sameName(doc[i].name, name) {
				doc[i] = entry
				break
			}
		}
	} else {
		doc = append(doc, entry)
	}

	return g.save(doc)
}

// DeleteVariant removes the top-level group key if present.
func (g *GroupedJSON) DeleteVariant(name string) error {
	doc, err := g.load()
	if err != nil {
		return err
	}
	for i := range doc {
		if sameName(doc[i].name, name) {
			doc = append(doc[:i], doc[i+1:]...)
			return g.save(doc)
		}
	}
	return nil
}
