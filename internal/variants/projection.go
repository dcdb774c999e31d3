package variants

import "github.com/pawelm/payver/internal/schema"

// Row is a single projected parameter row: the storage key, its display
// label, and the current value.
type Row struct {
	Key   string
	Label string
	Value string
}

// Full projects every column of a variant in column order, regardless of
// value. Used by the flat grid editors.
func (s *Set) Full(name string) []Row {
	vals, ok := s.params[name]
	if !ok {
		return nil
	}
	rows := make([]Row, 0, len(s.columns))
	for _, key := range s.columns {
		rows = append(rows, Row{Key: key, Label: schema.Label(key), Value: vals[key]})
	}
	return rows
}

// Affirmative projects only the columns whose normalized value is the
// acceptance token. All other keys stay in the underlying map, so flipping
// one back to "tak" elsewhere revives its row on the next projection.
func (s *Set) Affirmative(name string) []Row {
	vals, ok := s.params[name]
	if !ok {
		return nil
	}
	var rows []Row
	for _, key := range s.columns {
		if schema.IsAffirmative(vals[key]) {
			rows = append(rows, Row{Key: key, Label: schema.Label(key), Value: vals[key]})
		}
	}
	return rows
}

// ProjectAffirmative applies the affirmative-only projection to a bare
// parameter map using the fixed schema order. Used by detail views that
// mirror a single variant outside a Set.
func ProjectAffirmative(params map[string]string) []Row {
	var rows []Row
	for _, key := range schema.Keys {
		if schema.IsAffirmative(params[key]) {
			rows = append(rows, Row{Key: key, Label: schema.Label(key), Value: params[key]})
		}
	}
	return rows
}

// ProjectFull applies the full projection to a bare parameter map using the
// fixed schema order.
func ProjectFull(params map[string]string) []Row {
	rows := make([]Row, 0, len(schema.Keys))
	for _, key := range schema.Keys {
		rows = append(rows, Row{Key: key, Label: schema.Label(key), Value: params[key]})
	}
	return rows
}

// Persistable filters a variant's values down to the entries eligible for
// the relational store: normalized boolean tokens only. Everything else is
// display-only and is dropped at persistence time.
func (s *Set) Persistable(name string) map[string]string {
	vals, ok := s.params[name]
	if !ok {
		return nil
	}
	out := make(map[string]string)
	for k, v := range vals {
		if schema.IsBoolean(v) {
			out[k] = schema.Normalize(v)
		}
	}
	return out
}
