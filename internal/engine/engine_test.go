package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pawelm/payver/internal/schema"
	"github.com/pawelm/payver/internal/store"
	"github.com/pawelm/payver/internal/variants"
)

// fakeStore is an in-memory Store whose writes can be forced to fail.
type fakeStore struct {
	names   []string
	params  map[string]map[string]string
	failAll bool

	loadCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{params: make(map[string]map[string]string)}
}

var errBoom = errors.New("boom")

func (f *fakeStore) LoadAll() (*store.Snapshot, error) {
	f.loadCalls++
	snap := &store.Snapshot{Params: make(map[string]map[string]string)}
	for _, name := range f.names {
		snap.Names = append(snap.Names, name)
		vals := make(map[string]string)
		for k, v := range f.params[name] {
			vals[k] = v
		}
		snap.Params[name] = vals
	}
	return snap, nil
}

func (f *fakeStore) LoadOne(name string) (map[string]string, error) {
	out := make(map[string]string)
	for k, v := range f.params[name] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) ListVariants() ([]string, error) {
	return append([]string(nil), f.names...), nil
}

func (f *fakeStore) UpsertVariant(name string, params map[string]string) error {
	if f.failAll {
		return &store.WriteError{Variant: name, Err: errBoom}
	}
	if _, ok := f.params[name]; !ok {
		f.names = append(f.names, name)
	}
	// Same persistence filter as the real backends: boolean tokens only
	vals := make(map[string]string)
	for k, v := range params {
		if schema.IsBoolean(v) {
			vals[k] = schema.Normalize(v)
		}
	}
	f.params[name] = vals
	return nil
}

func (f *fakeStore) DeleteVariant(name string) error {
	if f.failAll {
		return &store.WriteError{Variant: name, Err: errBoom}
	}
	delete(f.params, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) Close() error { return nil }

func TestSetValueCleanCycle(t *testing.T) {
	st := newFakeStore()
	eng, err := Load(st)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := eng.AddVariant("a001"); err != nil {
		t.Fatalf("AddVariant failed: %v", err)
	}
	if err := eng.SetValue("A001", "do_potracenie", "tak"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	if eng.State("A001") != Clean {
		t.Errorf("state = %v, want Clean", eng.State("A001"))
	}
	if st.params["A001"]["do_potracenie"] != "tak" {
		t.Errorf("store params = %v", st.params["A001"])
	}
}

func TestSetValueWriteFailedKeepsModelEdit(t *testing.T) {
	st := newFakeStore()
	st.UpsertVariant("A001", map[string]string{})

	eng, _ := Load(st)

	st.failAll = true
	err := eng.SetValue("A001", "do_potracenie", "tak")
	if err == nil {
		t.Fatal("SetValue should surface the write error")
	}

	// The model keeps the edit; the store does not have it
	if got := eng.Set().GetValue("A001", "do_potracenie"); got != "tak" {
		t.Errorf("model lost the edit: %q", got)
	}
	if eng.State("A001") != WriteFailed {
		t.Errorf("state = %v, want WriteFailed", eng.State("A001"))
	}
	if eng.Set().GetValue("A001", "do_potracenie") == st.params["A001"]["do_potracenie"] {
		t.Error("store should not have the failed write")
	}
}

func TestWriteFailedRepairedByLaterWrite(t *testing.T) {
	st := newFakeStore()
	st.UpsertVariant("A001", map[string]string{})
	eng, _ := Load(st)

	st.failAll = true
	eng.SetValue("A001", "do_potracenie", "tak")

	st.failAll = false
	if err := eng.SetValue("A001", "do_zasilek", "nie"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	if eng.State("A001") != Clean {
		t.Errorf("state = %v, want Clean after successful write", eng.State("A001"))
	}
	// The whole variant is written, so the earlier failed edit lands too
	if st.params["A001"]["do_potracenie"] != "tak" {
		t.Errorf("store missed the earlier edit: %v", st.params["A001"])
	}
}

func TestWriteFailedRepairedByReload(t *testing.T) {
	st := newFakeStore()
	st.UpsertVariant("A001", map[string]string{"do_potracenie": "nie"})
	eng, _ := Load(st)

	st.failAll = true
	eng.SetValue("A001", "do_potracenie", "tak")
	st.failAll = false

	if err := eng.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	// The store is authoritative again; the divergent edit is gone
	if got := eng.Set().GetValue("A001", "do_potracenie"); got != "nie" {
		t.Errorf("value after reload = %q, want nie", got)
	}
	if eng.State("A001") != Clean {
		t.Errorf("state = %v, want Clean", eng.State("A001"))
	}
	if len(eng.Dirty()) != 0 {
		t.Errorf("dirty = %v, want empty", eng.Dirty())
	}
}

func TestLoadNormalizesDocumentNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parametry.json")
	doc := `{"a001": {"do_potracenie": "tak"}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	eng, err := Load(store.OpenJSONFile(path, store.KindAuto))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	set := eng.Set()

	// A hand-written lowercase name must resolve to the same identity the
	// CLI addresses after NormalizeName.
	if !set.Has("A001") {
		t.Fatalf("names = %v, want A001 present", set.Names())
	}
	if set.Has("a001") {
		t.Errorf("raw document name leaked into the model: %v", set.Names())
	}
	if got := set.GetValue("A001", "do_potracenie"); got != "tak" {
		t.Errorf("do_potracenie = %q, want tak", got)
	}
}

func TestAddVariantNormalizes(t *testing.T) {
	st := newFakeStore()
	eng, _ := Load(st)

	name, err := eng.AddVariant("  nowy skladnik ")
	if err != nil {
		t.Fatalf("AddVariant failed: %v", err)
	}
	if name != "NOWY SKLADNIK" {
		t.Errorf("name = %q", name)
	}

	// A blank variant persists zero rows but the upsert still runs
	if _, ok := st.params["NOWY SKLADNIK"]; !ok {
		t.Error("store never saw the new variant")
	}
	if len(st.params["NOWY SKLADNIK"]) != 0 {
		t.Errorf("blank variant wrote rows: %v", st.params["NOWY SKLADNIK"])
	}
}

func TestAddVariantValidationLeavesStoreUntouched(t *testing.T) {
	st := newFakeStore()
	eng := New(variants.New(), st)
	eng.AddVariant("A001")

	before := len(st.names)
	if _, err := eng.AddVariant("a001"); err == nil {
		t.Fatal("duplicate add should fail")
	}
	if len(st.names) != before {
		t.Errorf("failed add reached the store: %v", st.names)
	}
}

func TestRemoveVariant(t *testing.T) {
	st := newFakeStore()
	eng, _ := Load(st)
	eng.AddVariant("A001")

	if err := eng.RemoveVariant("A001"); err != nil {
		t.Fatalf("RemoveVariant failed: %v", err)
	}
	if eng.Set().Has("A001") {
		t.Error("variant still in model")
	}
	if _, ok := st.params["A001"]; ok {
		t.Error("variant still in store")
	}
	if eng.State("A001") != Clean {
		t.Errorf("state = %v, want Clean (entry cleared)", eng.State("A001"))
	}
}

func TestRemoveVariantStoreFailure(t *testing.T) {
	st := newFakeStore()
	eng, _ := Load(st)
	eng.AddVariant("A001")

	st.failAll = true
	err := eng.RemoveVariant("A001")
	if err == nil {
		t.Fatal("RemoveVariant should surface the delete error")
	}

	// Model removal sticks; the variant is flagged as diverged
	if eng.Set().Has("A001") {
		t.Error("model still has the variant")
	}
	if eng.State("A001") != WriteFailed {
		t.Errorf("state = %v, want WriteFailed", eng.State("A001"))
	}
}

func TestScenarioPotracenie(t *testing.T) {
	// A001 gains do_potracenie=tak; the detail view then shows Potrącenie.
	st := newFakeStore()
	eng, _ := Load(st)
	eng.AddVariant("A001")

	if err := eng.SetValue("A001", "do_potracenie", "tak"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	d := eng.Detail()
	if err := d.Select("A001"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	rows := d.Rows()
	if len(rows) != 1 || rows[0].Label != "Potrącenie" {
		t.Errorf("detail rows = %+v", rows)
	}

	// Flip it to nie: the row leaves the projection on the next rebuild
	if err := eng.SetValue("A001", "do_potracenie", "nie"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if err := d.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if rows := d.Rows(); len(rows) != 0 {
		t.Errorf("detail rows after flip = %+v, want none", rows)
	}
	if st.params["A001"]["do_potracenie"] != "nie" {
		t.Errorf("store = %v, want the nie row persisted", st.params["A001"])
	}
}
