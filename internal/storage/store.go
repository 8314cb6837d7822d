// Package storage persists ledger snapshots. Each logical store (expenses,
// cards, tasks, income, settings) is one serialized blob keyed by name;
// the backends only promise get/set/remove of that blob.
package storage

import "context"

// SnapshotStore is the persistence contract the Book writes through.
// Get returns (nil, nil) when the key has never been written.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}
