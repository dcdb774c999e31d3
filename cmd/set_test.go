package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pawelm/payver/internal/store"
)

func TestSetStoresFreeTextVerbatim(t *testing.T) {
	baseDir = t.TempDir()
	flagJSONFile = "doc.json"
	t.Cleanup(func() { baseDir = ""; flagJSONFile = "" })

	path := filepath.Join(baseDir, "doc.json")
	doc := `{"A001": {"opis": "stara"}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := setCmd.RunE(setCmd, []string{"A001", "opis", "Umowa Zlecenie"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	params, err := store.OpenJSONFile(path, store.KindAuto).LoadOne("A001")
	if err != nil {
		t.Fatal(err)
	}
	if got := params["opis"]; got != "Umowa Zlecenie" {
		t.Errorf("opis = %q, want mixed case kept verbatim", got)
	}
}

func TestSetNormalizesBooleanTokens(t *testing.T) {
	baseDir = t.TempDir()
	flagJSONFile = "doc.json"
	t.Cleanup(func() { baseDir = ""; flagJSONFile = "" })

	path := filepath.Join(baseDir, "doc.json")
	if err := os.WriteFile(path, []byte(`{"A001": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := setCmd.RunE(setCmd, []string{"A001", "Potrącenie", " TAK "}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	params, err := store.OpenJSONFile(path, store.KindAuto).LoadOne("A001")
	if err != nil {
		t.Fatal(err)
	}
	if got := params["do_potracenie"]; got != "tak" {
		t.Errorf("do_potracenie = %q, want tak", got)
	}
}
