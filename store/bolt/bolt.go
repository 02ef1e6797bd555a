// Package bolt stores the ledger state in a bbolt database file.
package bolt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/finance"
	bolt "go.etcd.io/bbolt"
)

// Bucket is the bucket holding the ledger state.
const Bucket = "ledger"

// Store is a finance.Store backed by a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path and initializes its bucket.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	// A second process waits at most a second for the file lock.
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(Bucket)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", Bucket, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored state blob, or finance.ErrNoState.
func (s *Store) Load() ([]byte, error) {
	var blob []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(Bucket)).Get([]byte(finance.StateKey))
		if v == nil {
			return finance.ErrNoState
		}
		// v is only valid during the transaction.
		blob = append([]byte(nil), v...)
		return nil
	})
	return blob, err
}

// Save replaces the stored state blob in a single transaction.
func (s *Store) Save(blob []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(Bucket)).Put([]byte(finance.StateKey), blob); err != nil {
			return fmt.Errorf("failed to save ledger state: %w", err)
		}
		return nil
	})
}

var _ finance.Store = (*Store)(nil)
