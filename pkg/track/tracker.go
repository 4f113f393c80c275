// Package track maintains a baseline and a live snapshot for one
// repository of records and decides whether unsaved modifications exist.
package track

// Value is the contract a tracked record type must satisfy.
// Equality drives the modification check; Clone guards the baseline
// against aliasing. No runtime type inspection is involved.
type Value[V any] interface {
	Equal(V) bool
	Clone() V
}

// Kind classifies a key relative to the baseline.
type Kind int

const (
	Unchanged Kind = iota
	Modified
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// Change pairs a key with its classification. Derived on demand, never stored.
type Change[K comparable] struct {
	Key  K
	Kind Kind
}

// Tracker compares a live snapshot against a baseline captured at load
// time or after the last successful save. It never performs I/O and none
// of its operations fail.
type Tracker[K comparable, V Value[V]] struct {
	baseline map[K]V
	current  map[K]V
	onDirty  func(bool)
	wasDirty bool
}

// New creates an empty tracker.
func New[K comparable, V Value[V]]() *Tracker[K, V] {
	return &Tracker[K, V]{
		baseline: make(map[K]V),
		current:  make(map[K]V),
	}
}

// OnDirtyChange registers a callback fired only on the clean<->dirty
// transition, not on every mutation.
func (t *Tracker[K, V]) OnDirtyChange(fn func(dirty bool)) {
	t.onDirty = fn
}

// InitBaseline captures a defensive copy of records as both baseline and
// current snapshot. A nil map is treated as an empty baseline. Calling it
// again replaces the prior baseline entirely.
func (t *Tracker[K, V]) InitBaseline(records map[K]V) {
	t.baseline = cloneMap(records)
	t.current = cloneMap(records)
	t.notify()
}

// HasModifications reports whether any key differs from the baseline,
// is missing from it, or is new. Always consistent with a full comparison.
func (t *Tracker[K, V]) HasModifications() bool {
	for k, v := range t.current {
		base, ok := t.baseline[k]
		if !ok || !v.Equal(base) {
			return true
		}
	}
	for k := range t.baseline {
		if _, ok := t.current[k]; !ok {
			return true
		}
	}
	return false
}

// Get returns the current value for a key.
func (t *Tracker[K, V]) Get(key K) (V, bool) {
	v, ok := t.current[key]
	return v, ok
}

// Put upserts a record into the current snapshot.
func (t *Tracker[K, V]) Put(key K, value V) {
	t.current[key] = value.Clone()
	t.notify()
}

// Remove deletes a record from the current snapshot.
func (t *Tracker[K, V]) Remove(key K) {
	delete(t.current, key)
	t.notify()
}

// Len returns the number of records in the current snapshot.
func (t *Tracker[K, V]) Len() int {
	return len(t.current)
}

// Keys returns the keys of the current snapshot in unspecified order.
func (t *Tracker[K, V]) Keys() []K {
	keys := make([]K, 0, len(t.current))
	for k := range t.current {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot returns a deep copy of the current snapshot, suitable for
// handing to a persistence path.
func (t *Tracker[K, V]) Snapshot() map[K]V {
	return cloneMap(t.current)
}

// UpdateBaseline commits the current snapshot as the new baseline.
// Call exactly once per successful save, never on a failed one.
func (t *Tracker[K, V]) UpdateBaseline() {
	t.baseline = cloneMap(t.current)
	t.notify()
}

// RevertAll restores the current snapshot from the baseline.
func (t *Tracker[K, V]) RevertAll() {
	t.current = cloneMap(t.baseline)
	t.notify()
}

// Changes classifies every key present in either snapshot.
func (t *Tracker[K, V]) Changes() []Change[K] {
	changes := make([]Change[K], 0, len(t.current))
	for k, v := range t.current {
		base, ok := t.baseline[k]
		switch {
		case !ok:
			changes = append(changes, Change[K]{Key: k, Kind: Added})
		case !v.Equal(base):
			changes = append(changes, Change[K]{Key: k, Kind: Modified})
		default:
			changes = append(changes, Change[K]{Key: k, Kind: Unchanged})
		}
	}
	for k := range t.baseline {
		if _, ok := t.current[k]; !ok {
			changes = append(changes, Change[K]{Key: k, Kind: Removed})
		}
	}
	return changes
}

func (t *Tracker[K, V]) notify() {
	dirty := t.HasModifications()
	if dirty == t.wasDirty {
		return
	}
	t.wasDirty = dirty
	if t.onDirty != nil {
		t.onDirty(dirty)
	}
}

func cloneMap[K comparable, V Value[V]](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}
