package engine

import (
	"errors"
	"testing"

	"github.com/pawelm/payver/internal/schema"
)

// countingLoader records every LoadOne round trip.
type countingLoader struct {
	data  map[string]map[string]string
	calls int
	fail  bool
}

func (c *countingLoader) LoadOne(name string) (map[string]string, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("boom")
	}
	out := make(map[string]string)
	for k, v := range c.data[name] {
		out[k] = v
	}
	return out, nil
}

func TestSelectLoadsAndCompletes(t *testing.T) {
	loader := &countingLoader{data: map[string]map[string]string{
		"A001": {"do_potracenie": "tak"},
	}}
	d := NewDetail(loader)

	if err := d.Select("A001"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if d.Current() != "A001" {
		t.Errorf("Current = %q", d.Current())
	}

	// Every schema key is present after completion
	for _, key := range schema.Keys {
		want := schema.Unset
		if key == "do_potracenie" {
			want = "tak"
		}
		if got := d.Value(key); got != want {
			t.Errorf("Value(%s) = %q, want %q", key, got, want)
		}
	}
}

func TestReselectionIsIdempotent(t *testing.T) {
	loader := &countingLoader{data: map[string]map[string]string{"A001": {}}}
	d := NewDetail(loader)

	d.Select("A001")
	d.Select("A001")
	d.Select("A001")

	if loader.calls != 1 {
		t.Errorf("LoadOne called %d times, want 1", loader.calls)
	}
}

func TestSelectionChangeReloads(t *testing.T) {
	loader := &countingLoader{data: map[string]map[string]string{
		"A001": {}, "B002": {},
	}}
	d := NewDetail(loader)

	d.Select("A001")
	d.Select("B002")
	d.Select("A001")

	if loader.calls != 3 {
		t.Errorf("LoadOne called %d times, want 3", loader.calls)
	}
}

func TestRefreshBypassesGuard(t *testing.T) {
	loader := &countingLoader{data: map[string]map[string]string{
		"A001": {"do_potracenie": "tak"},
	}}
	d := NewDetail(loader)
	d.Select("A001")

	// The stored value changes behind the coordinator's back
	loader.data["A001"]["do_potracenie"] = "nie"

	if err := d.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if loader.calls != 2 {
		t.Errorf("LoadOne called %d times, want 2", loader.calls)
	}

	// The row whose value left "tak" disappears from the projection
	if rows := d.Rows(); len(rows) != 0 {
		t.Errorf("rows = %+v, want none", rows)
	}
}

func TestRefreshWithoutSelectionNoop(t *testing.T) {
	loader := &countingLoader{data: map[string]map[string]string{}}
	d := NewDetail(loader)

	if err := d.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if loader.calls != 0 {
		t.Errorf("LoadOne called %d times, want 0", loader.calls)
	}
}

func TestClearDropsSelection(t *testing.T) {
	loader := &countingLoader{data: map[string]map[string]string{
		"A001": {"do_potracenie": "tak"},
	}}
	d := NewDetail(loader)
	d.Select("A001")

	d.Clear()

	if d.Current() != "" {
		t.Errorf("Current = %q, want empty after Clear", d.Current())
	}
	if rows := d.Rows(); rows != nil {
		t.Errorf("rows = %+v, want nil", rows)
	}
	// A fresh selection loads again rather than hitting the guard
	if err := d.Select("A001"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if loader.calls != 2 {
		t.Errorf("LoadOne called %d times, want 2", loader.calls)
	}
}

func TestSelectFailureClearsSelection(t *testing.T) {
	loader := &countingLoader{data: map[string]map[string]string{"A001": {}}}
	d := NewDetail(loader)
	d.Select("A001")

	loader.fail = true
	if err := d.Select("B002"); err == nil {
		t.Fatal("Select should surface the load error")
	}

	if d.Current() != "" {
		t.Errorf("Current = %q, want empty after failed load", d.Current())
	}
	if rows := d.Rows(); rows != nil {
		t.Errorf("rows = %+v, want nil", rows)
	}
}

func TestRowsProjection(t *testing.T) {
	loader := &countingLoader{data: map[string]map[string]string{
		"A001": {
			"do_potracenie":   "tak",
			"do_zasilek":      "nie",
			"do_podstawa_zus": "tak",
		},
	}}
	d := NewDetail(loader)
	d.Select("A001")

	rows := d.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %+v, want 2", rows)
	}
	// Schema order
	if rows[0].Key != "do_podstawa_zus" || rows[1].Key != "do_potracenie" {
		t.Errorf("row order = %s, %s", rows[0].Key, rows[1].Key)
	}

	all := d.AllRows()
	if len(all) != len(schema.Keys) {
		t.Errorf("AllRows = %d, want %d", len(all), len(schema.Keys))
	}
}
