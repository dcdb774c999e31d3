package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pawelm/payver/internal/schema"
	_ "modernc.org/sqlite"
)

const (
	configDirName = "konfiguracje"
	dbFileName    = "parametry.db"
	paramTable    = "skladniki_parametry"
)

// sqliteSchema holds the currently-effective and historical parameter rows.
// Current rows are exactly those with both date columns NULL; this code
// never writes historical rows.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS skladniki_parametry (
	kod_sl   TEXT NOT NULL,
	parametr TEXT NOT NULL,
	wartosc  TEXT NOT NULL,
	data_od  TEXT,
	data_do  TEXT
);

CREATE INDEX IF NOT EXISTS idx_skladniki_kod_sl ON skladniki_parametry(kod_sl);
`

// SQLite is the relational backing store for the boolean parameter schema.
type SQLite struct {
	conn    *sql.DB
	baseDir string
}

// DBPath returns the database file path under baseDir.
func DBPath(baseDir string) string {
	return filepath.Join(baseDir, configDirName, dbFileName)
}

// OpenSQLite opens an existing parameter database.
func OpenSQLite(baseDir string) (*SQLite, error) {
	dbPath := DBPath(baseDir)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, &ConnError{Err: fmt.Errorf("database not found: run 'payver init' first")}
	}

	return openSQLite(baseDir, dbPath)
}

// InitSQLite creates the parameter database and its schema.
func InitSQLite(baseDir string) (*SQLite, error) {
	dbPath := DBPath(baseDir)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, &ConnError{Err: fmt.Errorf("create config dir: %w", err)}
	}

	s, err := openSQLite(baseDir, dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := s.conn.Exec(sqliteSchema); err != nil {
		s.conn.Close()
		return nil, &ConnError{Err: fmt.Errorf("create schema: %w", err)}
	}

	return s, nil
}

func openSQLite(baseDir, dbPath string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &ConnError{Err: fmt.Errorf("open database: %w", err)}
	}

	// WAL allows concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, &ConnError{Err: fmt.Errorf("enable WAL mode: %w", err)}
	}

	// Busy timeout as fallback protection, matches the write lock timeout
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, &ConnError{Err: fmt.Errorf("set busy timeout: %w", err)}
	}

	conn.Exec("PRAGMA synchronous=NORMAL")

	return &SQLite{conn: conn, baseDir: baseDir}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// withWriteLock executes fn while holding an exclusive cross-process write
// lock on the parameter database.
func (s *SQLite) withWriteLock(fn func() error) error {
	locker := newWriteLocker(filepath.Join(s.baseDir, configDirName))
	if err := locker.acquire(defaultTimeout); err != nil {
		return err
	}
	defer locker.release()
	return fn()
}

// LoadAll folds every currently-effective row into an ordered snapshot,
// preserving first-seen variant order from the (kod_sl, parametr) ordering.
func (s *SQLite) LoadAll() (*Snapshot, error) {
	rows, err := s.conn.Query(`
		SELECT DISTINCT kod_sl, parametr, wartosc
		FROM skladniki_parametry
		WHERE data_od IS NULL AND data_do IS NULL
		ORDER BY kod_sl, parametr
	`)
	if err != nil {
		return nil, &ConnError{Err: fmt.Errorf("read parameters: %w", err)}
	}
	defer rows.Close()

	snap := &Snapshot{Params: make(map[string]map[string]string)}
	for rows.Next() {
		var name, key, value string
		if err := rows.Scan(&name, &key, &value); err != nil {
			return nil, &ConnError{Err: fmt.Errorf("scan parameter row: %w", err)}
		}
		if _, ok := snap.Params[name]; !ok {
			snap.Names = append(snap.Names, name)
			snap.Params[name] = make(map[string]string)
		}
		snap.Params[name][key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, &ConnError{Err: err}
	}

	return snap, nil
}

// LoadOne returns the currently-effective parameters of a single variant.
func (s *SQLite) LoadOne(name string) (map[string]string, error) {
	rows, err := s.conn.Query(`
		SELECT parametr, wartosc
		FROM skladniki_parametry
		WHERE kod_sl = ? AND data_od IS NULL AND data_do IS NULL
		ORDER BY parametr
	`, name)
	if err != nil {
		return nil, &ConnError{Err: fmt.Errorf("read parameters for %s: %w", name, err)}
	}
	defer rows.Close()

	params := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, &ConnError{Err: fmt.Errorf("scan parameter row: %w", err)}
		}
		params[key] = schema.Normalize(value)
	}
	return params, rows.Err()
}

// ListVariants returns the distinct variant names in name order.
func (s *SQLite) ListVariants() ([]string, error) {
	rows, err := s.conn.Query(`SELECT DISTINCT kod_sl FROM skladniki_parametry ORDER BY kod_sl`)
	if err != nil {
		return nil, &ConnError{Err: fmt.Errorf("read variant list: %w", err)}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &ConnError{Err: err}
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// UpsertVariant replaces a variant's currently-effective rows in one
// transaction: delete all, insert only normalized boolean values. A
// mid-transaction failure rolls back, leaving the variant's stored state
// untouched.
func (s *SQLite) UpsertVariant(name string, params map[string]string) error {
	return s.withWriteLock(func() error {
		tx, err := s.conn.Begin()
		if err != nil {
			return &WriteError{Variant: name, Err: err}
		}

		if _, err := tx.Exec(`
			DELETE FROM skladniki_parametry
			WHERE kod_sl = ? AND data_od IS NULL AND data_do IS NULL
		`, name); err != nil {
			tx.Rollback()
			return &WriteError{Variant: name, Err: err}
		}

		for _, key := range orderedKeys(params) {
			value := schema.Normalize(params[key])
			if value != schema.Affirmative && value != schema.Negative {
				continue
			}
			if _, err := tx.Exec(`
				INSERT INTO skladniki_parametry (kod_sl, parametr, wartosc, data_od, data_do)
				VALUES (?, ?, ?, NULL, NULL)
			`, name, key, value); err != nil {
				tx.Rollback()
				return &WriteError{Variant: name, Err: err}
			}
		}

		if err := tx.Commit(); err != nil {
			return &WriteError{Variant: name, Err: err}
		}
		return nil
	})
}

// DeleteVariant removes all currently-effective rows of a variant.
// Zero rows affected is not an error.
func (s *SQLite) DeleteVariant(name string) error {
	return s.withWriteLock(func() error {
		if _, err := s.conn.Exec(`
			DELETE FROM skladniki_parametry
			WHERE kod_sl = ? AND data_od IS NULL AND data_do IS NULL
		`, name); err != nil {
			return &WriteError{Variant: name, Err: err}
		}
		return nil
	})
}

// SaveAll rewrites every variant's currently-effective rows in a single
// transaction, applying the same boolean persistence filter per variant.
// Used by bulk import.
func (s *SQLite) SaveAll(snap *Snapshot) error {
	return s.withWriteLock(func() error {
		tx, err := s.conn.Begin()
		if err != nil {
			return &WriteError{Variant: "*", Err: err}
		}

		if _, err := tx.Exec(`
			DELETE FROM skladniki_parametry
			WHERE data_od IS NULL AND data_do IS NULL
		`); err != nil {
			tx.Rollback()
			return &WriteError{Variant: "*", Err: err}
		}

		for _, name := range snap.Names {
			params := snap.Params[name]
			for _, key := range orderedKeys(params) {
				value := schema.Normalize(params[key])
				if value != schema.Affirmative && value != schema.Negative {
					continue
				}
				if _, err := tx.Exec(`
					INSERT INTO skladniki_parametry (kod_sl, parametr, wartosc, data_od, data_do)
					VALUES (?, ?, ?, NULL, NULL)
				`, name, key, value); err != nil {
					tx.Rollback()
					return &WriteError{Variant: name, Err: err}
				}
			}
		}

		if err := tx.Commit(); err != nil {
			return &WriteError{Variant: "*", Err: err}
		}
		return nil
	})
}
