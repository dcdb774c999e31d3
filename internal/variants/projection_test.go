package variants

import (
	"testing"

	"github.com/pawelm/payver/internal/schema"
)

func TestAffirmativeProjection(t *testing.T) {
	s := New()
	s.Add("A001")
	s.SetValue("A001", "do_potracenie", "tak")
	s.SetValue("A001", "do_zasilek", "nie")
	s.SetValue("A001", "do_podstawa_zus", "TAK")

	rows := s.Affirmative("A001")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}

	// Column order, not insertion order
	if rows[0].Key != "do_podstawa_zus" || rows[1].Key != "do_potracenie" {
		t.Errorf("row order = %s, %s", rows[0].Key, rows[1].Key)
	}
	if rows[1].Label != "Potrącenie" {
		t.Errorf("label = %q, want Potrącenie", rows[1].Label)
	}
}

func TestAffirmativeUnknownVariantNil(t *testing.T) {
	s := New()
	if rows := s.Affirmative("NOPE"); rows != nil {
		t.Errorf("got %+v, want nil", rows)
	}
}

func TestFullProjectionIncludesUnset(t *testing.T) {
	s := New()
	s.Add("A001")
	s.SetValue("A001", "do_zasilek", "tak")

	rows := s.Full("A001")
	if len(rows) != len(schema.Keys) {
		t.Fatalf("got %d rows, want full schema %d", len(rows), len(schema.Keys))
	}
	for _, r := range rows {
		want := schema.Unset
		if r.Key == "do_zasilek" {
			want = "tak"
		}
		if r.Value != want {
			t.Errorf("row %s = %q, want %q", r.Key, r.Value, want)
		}
	}
}

func TestPersistableFiltersNonBoolean(t *testing.T) {
	s := New()
	s.Add("A001")
	s.SetValue("A001", "do_potracenie", " TAK ")
	s.SetValue("A001", "do_zasilek", "nie")
	s.SetValue("A001", "do_podstawa_zus", "chyba")
	s.SetValue("A001", "stawka", "125.50")

	got := s.Persistable("A001")
	want := map[string]string{
		"do_potracenie": "tak",
		"do_zasilek":    "nie",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("key %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestProjectAffirmativeBareMap(t *testing.T) {
	params := map[string]string{
		"do_potracenie":   "tak",
		"do_zasilek":      "nie",
		"do_podstawa_zus": "",
	}
	rows := ProjectAffirmative(params)
	if len(rows) != 1 || rows[0].Key != "do_potracenie" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestProjectFullBareMap(t *testing.T) {
	rows := ProjectFull(map[string]string{"do_zasilek": "tak"})
	if len(rows) != len(schema.Keys) {
		t.Fatalf("got %d rows, want %d", len(rows), len(schema.Keys))
	}
}
