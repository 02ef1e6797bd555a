package finance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledger.json")
	store := FileStore{Path: path}

	if _, err := store.Load(); !errors.Is(err, ErrNoState) {
		t.Fatalf("Load() on a missing file = %v, want ErrNoState", err)
	}

	for _, blob := range []string{`{"version":1}`, `{"version":1,"cashBalance":5}`} {
		if err := store.Save([]byte(blob)); err != nil {
			t.Fatalf("Save() unexpected error: %v", err)
		}
		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if string(got) != blob {
			t.Errorf("Load() = %s, want %s", got, blob)
		}
	}

	// No temporary file is left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d files in the ledger directory, want 1", len(entries))
	}
}

func TestFileStore_Ledger(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "ledger.json")}
	l, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	mustDo(t)(l.SetBalances(M(10), M(20)))

	reloaded, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	checkBalances(t, reloaded, 10, 20)
}

func TestMemoryStore(t *testing.T) {
	var m MemoryStore
	if _, err := m.Load(); !errors.Is(err, ErrNoState) {
		t.Fatalf("Load() = %v, want ErrNoState", err)
	}
	blob := []byte("abc")
	if err := m.Save(blob); err != nil {
		t.Fatal(err)
	}
	blob[0] = 'x'
	got, _ := m.Load()
	if string(got) != "abc" {
		t.Errorf("Load() = %s, the stored blob must not alias the saved slice", got)
	}
}
