// Package backend selects the snapshot store implementation from
// configuration so the binaries never hard-code a storage choice.
package backend

import (
	"fmt"

	"grana/internal/config"
	"grana/internal/storage"
)

// Kind identifies a snapshot store backend.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// IsValid reports whether the kind names a known backend.
func (k Kind) IsValid() bool {
	return k == KindSQLite || k == KindMemory
}

// Open creates the snapshot store named by the config. The caller owns the
// returned store and must Close it.
func Open(cfg *config.Config) (storage.SnapshotStore, error) {
	kind := Kind(cfg.SnapshotBackend)
	switch kind {
	case KindMemory:
		return storage.NewMemoryStore(), nil
	case KindSQLite:
		return storage.NewSQLiteStore(cfg.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}
