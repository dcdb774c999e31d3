// Package config reads and writes the store configuration file. A missing
// file yields defaults; a malformed file is a ConfigError the caller
// reports before continuing with an empty store view.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDir  = "konfiguracje"
	configFile = "store.json"
)

// Backend identifiers accepted in the config file.
const (
	BackendSQLite  = "sqlite"
	BackendJSON    = "json"
	BackendGrouped = "grouped"
)

// Config selects and parameterizes the backing store.
type Config struct {
	// Backend is sqlite (default), json, or grouped.
	Backend string `json:"backend,omitempty"`
	// DocumentPath points at the JSON document for the json/grouped
	// backends, relative to the base directory unless absolute.
	DocumentPath string `json:"document_path,omitempty"`
	// ValueKind controls JSON cell coercion: auto (default), text, number.
	ValueKind string `json:"value_kind,omitempty"`
}

// ConfigError reports a malformed configuration file. The operation
// continues with defaults and an empty store view.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Path returns the config file location under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configDir, configFile)
}

// Dir returns the configuration directory under baseDir.
func Dir(baseDir string) string {
	return filepath.Join(baseDir, configDir)
}

// Load reads the config from disk. A missing file returns defaults; a parse
// failure returns defaults plus a ConfigError.
func Load(baseDir string) (*Config, error) {
	defaults := &Config{Backend: BackendSQLite}

	path := Path(baseDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, &ConfigError{Path: path, Err: err}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaults, &ConfigError{Path: path, Err: err}
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendSQLite
	}

	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename).
func Save(baseDir string, cfg *Config) error {
	path := Path(baseDir)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "store-*.json.tmp")
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
