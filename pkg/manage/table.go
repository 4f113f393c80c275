package manage

import (
	"context"
	"fmt"

	"github.com/softgrid/tabula/pkg/track"
)

// LoadFunc reads the full record set for a table from storage.
type LoadFunc[K comparable, V track.Value[V]] func(ctx context.Context) (map[K]V, error)

// StoreFunc writes the full record set for a table to storage.
type StoreFunc[K comparable, V track.Value[V]] func(ctx context.Context, records map[K]V) error

// Table adapts one change-tracked record repository to the Resource
// contract. It is parametric over the key and record types; record types
// bring their own equality and clone semantics, no reflection involved.
type Table[K comparable, V track.Value[V]] struct {
	id      string
	tracker *track.Tracker[K, V]
	load    LoadFunc[K, V]
	store   StoreFunc[K, V]
}

// NewTable creates a table resource. Call Reload (directly or through the
// manager) to capture the initial baseline.
func NewTable[K comparable, V track.Value[V]](id string, load LoadFunc[K, V], store StoreFunc[K, V]) *Table[K, V] {
	return &Table[K, V]{
		id:      id,
		tracker: track.New[K, V](),
		load:    load,
		store:   store,
	}
}

// ID returns the logical data-type identity.
func (t *Table[K, V]) ID() string { return t.id }

// Tracker exposes the underlying tracker; mutations go through it.
func (t *Table[K, V]) Tracker() *track.Tracker[K, V] { return t.tracker }

// Dirty implements Resource.
func (t *Table[K, V]) Dirty() bool { return t.tracker.HasModifications() }

// OnDirtyChange implements Resource.
func (t *Table[K, V]) OnDirtyChange(fn func(bool)) { t.tracker.OnDirtyChange(fn) }

// Save persists a snapshot of the current records and commits the
// baseline only once the write succeeded. A failed write leaves the
// baseline untouched so the type stays dirty.
func (t *Table[K, V]) Save(ctx context.Context) error {
	if err := t.store(ctx, t.tracker.Snapshot()); err != nil {
		return fmt.Errorf("store %s: %w", t.id, err)
	}
	t.tracker.UpdateBaseline()
	return nil
}

// Reload re-reads the records and re-captures the baseline at the new
// state, discarding any unsaved modifications.
func (t *Table[K, V]) Reload(ctx context.Context) error {
	records, err := t.load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", t.id, err)
	}
	t.tracker.InitBaseline(records)
	return nil
}
