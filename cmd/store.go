package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pawelm/payver/internal/config"
	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/internal/store"
)

// openStore resolves the backing store from flags and the config file.
// A malformed config is reported and defaults apply; the store view may end
// up empty but the command keeps running.
func openStore() (store.Store, error) {
	if flagJSONFile != "" {
		return store.OpenJSONFile(resolvePath(flagJSONFile), store.KindAuto), nil
	}
	if flagGroupedFile != "" {
		return store.OpenGroupedJSON(resolvePath(flagGroupedFile), store.KindAuto), nil
	}

	cfg, err := config.Load(getBaseDir())
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			output.Warning("%v (using defaults)", cfgErr)
		} else {
			return nil, err
		}
	}

	switch cfg.Backend {
	case config.BackendJSON:
		if cfg.DocumentPath == "" {
			return nil, fmt.Errorf("json backend selected but document_path is not set")
		}
		return store.OpenJSONFile(resolvePath(cfg.DocumentPath), store.ParseValueKind(cfg.ValueKind)), nil
	case config.BackendGrouped:
		if cfg.DocumentPath == "" {
			return nil, fmt.Errorf("grouped backend selected but document_path is not set")
		}
		return store.OpenGroupedJSON(resolvePath(cfg.DocumentPath), store.ParseValueKind(cfg.ValueKind)), nil
	default:
		return store.OpenSQLite(getBaseDir())
	}
}

func resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(getBaseDir(), p)
}
