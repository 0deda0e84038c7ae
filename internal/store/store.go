// Package store provides SQLite-backed persistence for extracted imports,
// so unchanged files are not re-parsed across runs.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one cached extraction result.
type Entry struct {
	Path     string
	Digest   string
	Imports  []string
	CachedAt time.Time
}

// Store wraps a SQLite database holding the import cache.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite database at dbPath and ensures
// all required tables exist. Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" a single
	// database.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS import_cache (
			path      TEXT PRIMARY KEY,
			digest    TEXT NOT NULL,
			imports   TEXT NOT NULL,
			cached_at DATETIME NOT NULL DEFAULT (datetime('now'))
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Lookup returns the imports cached for path if they were recorded for
// the same content digest.
func (s *Store) Lookup(path, digest string) ([]string, bool, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT imports FROM import_cache WHERE path = ? AND digest = ?`,
		path, digest,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup %s: %w", path, err)
	}

	var imports []string
	if err := json.Unmarshal([]byte(raw), &imports); err != nil {
		return nil, false, fmt.Errorf("decode cached imports for %s: %w", path, err)
	}
	return imports, true, nil
}

// Save records the imports of path at digest, replacing any older entry
// for the same path.
func (s *Store) Save(path, digest string, imports []string) error {
	if imports == nil {
		imports = []string{}
	}
	raw, err := json.Marshal(imports)
	if err != nil {
		return fmt.Errorf("encode imports for %s: %w", path, err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO import_cache (path, digest, imports, cached_at)
		 VALUES (?, ?, ?, datetime('now'))`,
		path, digest, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Get returns the entry for path, or nil if there is none.
func (s *Store) Get(path string) (*Entry, error) {
	var (
		e   Entry
		raw string
	)
	err := s.db.QueryRow(
		`SELECT path, digest, imports, cached_at FROM import_cache WHERE path = ?`, path,
	).Scan(&e.Path, &e.Digest, &raw, &e.CachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(raw), &e.Imports); err != nil {
		return nil, fmt.Errorf("decode cached imports for %s: %w", path, err)
	}
	return &e, nil
}

// Len returns the number of cached files.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM import_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Clear removes every cached entry.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM import_cache`); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}
