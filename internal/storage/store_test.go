package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func testStoreContract(t *testing.T, store SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	// Missing key reads as nil without error
	blob, err := store.Get(ctx, "expenses")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if blob != nil {
		t.Fatalf("get missing = %q, want nil", blob)
	}

	if err := store.Set(ctx, "expenses", []byte(`{"version":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	blob, err = store.Get(ctx, "expenses")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(blob) != `{"version":1}` {
		t.Fatalf("get = %q", blob)
	}

	// Overwrite wins
	if err := store.Set(ctx, "expenses", []byte(`{"version":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	blob, _ = store.Get(ctx, "expenses")
	if string(blob) != `{"version":2}` {
		t.Fatalf("after overwrite = %q", blob)
	}

	if err := store.Remove(ctx, "expenses"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	blob, err = store.Get(ctx, "expenses")
	if err != nil || blob != nil {
		t.Fatalf("after remove = %q, %v", blob, err)
	}

	// Removing a missing key is not an error
	if err := store.Remove(ctx, "expenses"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	testStoreContract(t, store)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "grana.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	testStoreContract(t, store)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grana.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Set(ctx, "cards", []byte(`{"version":1,"state":{}}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	store.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	blob, err := reopened.Get(ctx, "cards")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(blob) != `{"version":1,"state":{}}` {
		t.Fatalf("get after reopen = %q", blob)
	}
}
