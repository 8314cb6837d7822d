package backend

import (
	"testing"

	"grana/internal/config"
)

func TestOpenMemory(t *testing.T) {
	store, err := Open(&config.Config{SnapshotBackend: "memory"})
	if err != nil {
		t.Fatalf("Open(memory) error: %v", err)
	}
	defer store.Close()
	if store == nil {
		t.Fatal("expected a store")
	}
}

func TestOpenUnknownKind(t *testing.T) {
	if _, err := Open(&config.Config{SnapshotBackend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestKindIsValid(t *testing.T) {
	cases := []struct {
		kind Kind
		want bool
	}{
		{KindSQLite, true},
		{KindMemory, true},
		{Kind(""), false},
		{Kind("postgres"), false},
	}
	for _, c := range cases {
		if got := c.kind.IsValid(); got != c.want {
			t.Errorf("IsValid(%q) = %v, want %v", c.kind, got, c.want)
		}
	}
}
