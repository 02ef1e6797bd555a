package finance

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// StateKey is the fixed key under which the state blob is stored.
const StateKey = "financeTrackerState_enhanced_en"

// ErrNoState is returned by Store.Load when nothing has been saved yet.
var ErrNoState = errors.New("no ledger state stored")

// Store persists the encoded ledger state as an opaque blob.
//
// Implementations live in the store/ packages (bbolt, sqlite), FileStore and
// MemoryStore are provided here.
type Store interface {
	// Load returns the last saved blob, or ErrNoState.
	Load() ([]byte, error)
	// Save durably replaces the stored blob.
	Save(blob []byte) error
}

// MemoryStore is a Store kept in memory. Its zero value is empty and ready to use.
type MemoryStore struct {
	blob  []byte
	saved bool
	// Err, when set, is returned by every Save.
	Err error
}

func (m *MemoryStore) Load() ([]byte, error) {
	if !m.saved {
		return nil, ErrNoState
	}
	return slices.Clone(m.blob), nil
}

func (m *MemoryStore) Save(blob []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.blob, m.saved = slices.Clone(blob), true
	return nil
}

// FileStore stores the blob in a single json file.
type FileStore struct {
	Path string
}

func (f FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("could not read ledger file %q: %w", f.Path, err)
	}
	return data, nil
}

// Save writes the blob to a temporary file first and renames it, so that a
// failed write never leaves a truncated ledger behind.
func (f FileStore) Save(blob []byte) error {
	// Ensure the directory for the ledger file exists.
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", f.Path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*")
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", f.Path, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write ledger file %q: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write ledger file %q: %w", f.Path, err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("could not replace ledger file %q: %w", f.Path, err)
	}
	return nil
}
