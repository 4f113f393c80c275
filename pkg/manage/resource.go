// Package manage presents one unified save/reload/dirty-state surface
// over a heterogeneous set of repositories plus the localization store,
// so a presentation layer never needs type-specific save logic.
package manage

import "context"

// Resource is the contract one logical data type exposes to the manager.
// The localization store satisfies it directly; record tables go through
// the generic Table adapter.
type Resource interface {
	// Dirty reports whether unsaved modifications exist.
	Dirty() bool

	// Save persists the current state. On success the implementation must
	// commit its baseline; on failure the baseline must stay where it was.
	Save(ctx context.Context) error

	// Reload re-reads the underlying data and re-captures the baseline at
	// the new state.
	Reload(ctx context.Context) error

	// OnDirtyChange registers a callback fired only on clean<->dirty
	// transitions.
	OnDirtyChange(fn func(dirty bool))
}

// Status is the per-type persistence state machine.
type Status int

const (
	StatusClean Status = iota
	StatusDirty
	StatusSaving
)

func (s Status) String() string {
	switch s {
	case StatusDirty:
		return "dirty"
	case StatusSaving:
		return "saving"
	default:
		return "clean"
	}
}
