// Package store provides the append-only sqlite-backed persistence used
// by the devtools patch pipeline and the attestation pipeline: a patch
// history log that survives process restarts, and a cache of generated
// attestation reports keyed by binary hash.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store wraps a single sqlite database file holding both the patch log
// and the attestation report cache. One Store is expected per project
// directory.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// Open creates or opens the store database at path, creating parent
// directories as needed and initializing the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS patch_log (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		patch_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		description TEXT NOT NULL,
		applied_at DATETIME NOT NULL,
		direction TEXT NOT NULL,
		patch_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_patch_log_session ON patch_log(session_id);
	CREATE INDEX IF NOT EXISTS idx_patch_log_patch_id ON patch_log(patch_id);

	CREATE TABLE IF NOT EXISTS attestation_cache (
		sha256 TEXT PRIMARY KEY,
		generated_at DATETIME NOT NULL,
		report_json TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}
