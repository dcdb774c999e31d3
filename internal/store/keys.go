package store

import (
	"sort"

	"github.com/pawelm/payver/internal/schema"
)

// orderedKeys returns a parameter map's keys in a stable order: fixed schema
// keys first in schema order, then any free-text keys sorted.
func orderedKeys(params map[string]string) []string {
	out := make([]string, 0, len(params))
	for _, key := range schema.Keys {
		if _, ok := params[key]; ok {
			out = append(out, key)
		}
	}

	var extra []string
	for key := range params {
		if !schema.IsKnown(key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)

	return append(out, extra...)
}

// sameName compares variant names by their normalized identity, so
// hand-edited documents with lowercase names stay addressable.
func sameName(a, b string) bool {
	return schema.NormalizeName(a) == schema.NormalizeName(b)
}
