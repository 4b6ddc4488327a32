package storage

import (
	"context"

	"github.com/vovakirdan/tui-labyrinth/internal/persist"
)

func init() {
	persist.Register("sqlite", func(opts persist.Options) (persist.Medium, error) {
		store, err := Open(opts.Path)
		if err != nil {
			return nil, err
		}
		m := store.Medium(opts.Key)
		m.owned = true
		return m, nil
	})
}

// SnapshotMedium exposes one row of the snapshots table as a persist.Medium.
type SnapshotMedium struct {
	store *Store
	key   string
	owned bool
}

// Medium returns a medium bound to key. Closing it leaves the store open.
func (s *Store) Medium(key string) *SnapshotMedium {
	if key == "" {
		key = persist.DefaultKey
	}
	return &SnapshotMedium{store: s, key: key}
}

// Store returns the underlying store, so callers can record runs on the same
// database the snapshot lives in.
func (m *SnapshotMedium) Store() *Store { return m.store }

// Name implements persist.Medium.
func (m *SnapshotMedium) Name() string { return "sqlite" }

// Read implements persist.Medium.
func (m *SnapshotMedium) Read(ctx context.Context) ([]byte, error) {
	return m.store.ReadSnapshot(ctx, m.key)
}

// Write implements persist.Medium.
func (m *SnapshotMedium) Write(ctx context.Context, data []byte) error {
	return m.store.WriteSnapshot(ctx, m.key, data)
}

// Delete implements persist.Medium.
func (m *SnapshotMedium) Delete(ctx context.Context) error {
	return m.store.DeleteSnapshot(ctx, m.key)
}

// Close implements persist.Medium.
func (m *SnapshotMedium) Close() error {
	if m.owned {
		return m.store.Close()
	}
	return nil
}
