package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ValueKind controls how cell text is written back to a JSON document.
type ValueKind int

const (
	// KindAuto keeps the legacy behavior: text that is all digits or
	// contains a decimal point is stored as a JSON number, everything else
	// as a string.
	KindAuto ValueKind = iota
	// KindText always stores strings.
	KindText
	// KindNumber stores numbers whenever the text parses as one.
	KindNumber
)

// ParseValueKind maps a config token to a ValueKind. Unknown tokens fall
// back to KindAuto.
func ParseValueKind(s string) ValueKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return KindText
	case "number":
		return KindNumber
	default:
		return KindAuto
	}
}

// paramEntry is one key→value pair in document order. isNumber records
// whether the source document stored the value as a JSON number, so saves
// keep the original type for untouched cells.
type paramEntry struct {
	key      string
	value    string
	isNumber bool
}

// docEntry is one top-level variant object in document order.
type docEntry struct {
	name   string
	params []paramEntry
}

// decodeFlatDoc parses a flat variant document preserving both the
// top-level key order and each variant object's key order.
func decodeFlatDoc(data []byte) ([]docEntry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var doc []docEntry
	for dec.More() {
		name, err := decodeKey(dec)
		if err != nil {
			return nil, err
		}
		params, err := decodeParamObject(dec)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", name, err)
		}
		doc = append(doc, docEntry{name: name, params: params})
	}

	return doc, expectDelim(dec, '}')
}

// decodeParamObject parses one variant's key→value object in key order.
func decodeParamObject(dec *json.Decoder) ([]paramEntry, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var params []paramEntry
	for dec.More() {
		key, err := decodeKey(dec)
		if err != nil {
			return nil, err
		}
		value, isNumber, err := decodeScalar(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		params = append(params, paramEntry{key: key, value: value, isNumber: isNumber})
	}

	return params, expectDelim(dec, '}')
}

func decodeKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func decodeScalar(dec *json.Decoder) (value string, isNumber bool, err error) {
	tok, err := dec.Token()
	if err != nil {
		return "", false, err
	}
	switch v := tok.(type) {
	case string:
		return v, false, nil
	case json.Number:
		return v.String(), true, nil
	case bool:
		return strconv.FormatBool(v), false, nil
	case nil:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("expected scalar value, got %v", tok)
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// encodeValue renders one cell value as a JSON token according to the value
// kind. wasNumber keeps the source type for values loaded from the document
// and never edited.
func encodeValue(value string, wasNumber bool, kind ValueKind) string {
	switch kind {
	case KindText:
		return encodeString(value)
	case KindNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return encodeString(value)
	default: // KindAuto
		trimmed := strings.TrimSpace(value)
		if wasNumber || looksNumeric(trimmed) {
			if _, err := strconv.ParseFloat(trimmed, 64); err == nil && trimmed != "" {
				return trimmed
			}
		}
		return encodeString(value)
	}
}

// looksNumeric mirrors the legacy sniff: all digits, or containing a
// decimal point.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	digitsOnly := true
	for _, r := range s {
		if r < '0' || r > '9' {
			digitsOnly = false
			break
		}
	}
	return digitsOnly || strings.Contains(s, ".")
}

func encodeString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// writeAtomic saves document bytes via temp file + rename in the target
// directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
