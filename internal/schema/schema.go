// Package schema defines the fixed parameter schema for payroll component
// variants: the canonical database keys, their display labels, and the
// accepted boolean value tokens.
package schema

import "strings"

// Accepted boolean value tokens. Values are normalized (trimmed,
// lower-cased) before comparison and before persistence.
const (
	Affirmative = "tak"
	Negative    = "nie"
	Unset       = ""
)

// Keys lists every known parameter key in display order. Every variant in
// the model carries every one of these keys; missing keys default to Unset.
var Keys = []string{
	"do_podstawa_zus",
	"do_podstawa_podatek",
	"do_podstawa_zdrowotna",
	"do_potracenie",
	"do_zasilek",
	"do_nie_podlega_zajęciu_przez_komornika",
	"do_koszty_autorskie",
}

// labels maps database keys to human-readable display labels.
var labels = map[string]string{
	"do_podstawa_zus":                        "ZUS",
	"do_podstawa_podatek":                    "Podatek",
	"do_podstawa_zdrowotna":                  "Zdrowotna",
	"do_potracenie":                          "Potrącenie",
	"do_zasilek":                             "Zasiłek",
	"do_nie_podlega_zajęciu_przez_komornika": "Nie podlega zajęciu (komornik)",
	"do_koszty_autorskie":                    "Koszty Autorskie",
}

// keysByLabel is the reverse of labels, built once at init.
var keysByLabel = func() map[string]string {
	m := make(map[string]string, len(labels))
	for k, v := range labels {
		m[v] = k
	}
	return m
}()

// IsKnown reports whether key is part of the fixed schema.
func IsKnown(key string) bool {
	_, ok := labels[key]
	return ok
}

// Label returns the display label for a schema key. Unknown keys are
// returned verbatim so free-text tables render their own headers.
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

// Key resolves a display label back to its schema key. Strings that are not
// labels (including keys themselves) are returned verbatim.
func Key(label string) string {
	if k, ok := keysByLabel[label]; ok {
		return k
	}
	return label
}

// Normalize trims and lower-cases a value for comparison and persistence.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// IsBoolean reports whether the normalized value is one of the two tokens
// that are eligible for persistence. Unset and free text are not.
func IsBoolean(value string) bool {
	n := Normalize(value)
	return n == Affirmative || n == Negative
}

// IsAffirmative reports whether the normalized value equals Affirmative.
func IsAffirmative(value string) bool {
	return Normalize(value) == Affirmative
}

// NormalizeName canonicalizes a variant name: trimmed and upper-cased.
// Variant identity is its normalized name across every backend.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
