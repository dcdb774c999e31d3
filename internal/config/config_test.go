package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("default backend = %q, want sqlite", cfg.Backend)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	in := &Config{Backend: BackendJSON, DocumentPath: "parametry.json", ValueKind: "text"}
	if err := Save(dir, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.Backend != in.Backend || out.DocumentPath != in.DocumentPath || out.ValueKind != in.ValueKind {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestLoadMalformedReturnsDefaultsAndError(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(Dir(dir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(dir), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want ConfigError", err)
	}
	// Defaults still come back so the caller can continue
	if cfg == nil || cfg.Backend != BackendSQLite {
		t.Errorf("cfg = %+v, want sqlite defaults", cfg)
	}
}

func TestLoadEmptyBackendDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, &Config{DocumentPath: "x.json"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("backend = %q, want sqlite", cfg.Backend)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, &Config{Backend: BackendSQLite}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(Path(dir)))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
