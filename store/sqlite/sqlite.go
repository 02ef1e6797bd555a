// Package sqlite stores the ledger state in a SQLite key-value table.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/finance"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// Store is a finance.Store backed by a SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens the SQLite database at dbPath, creating it and its table if needed.
// It enables WAL mode.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.dbPath }

// Load returns the stored state blob, or finance.ErrNoState.
func (s *Store) Load() ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, finance.StateKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, finance.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}
	return blob, nil
}

// Save replaces the stored state blob.
func (s *Store) Save(blob []byte) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, finance.StateKey, blob)
	if err != nil {
		return fmt.Errorf("failed to save ledger state: %w", err)
	}
	return nil
}

var _ finance.Store = (*Store)(nil)
