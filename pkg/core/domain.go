// Package core holds the shared domain contracts of the editing engine:
// the event stream consumed by presentation layers and the injected
// file-access capability used by every persistence path.
package core

// EventType represents the type of change surfaced to subscribers.
type EventType string

const (
	// EventDirtyChanged fires when a logical data type transitions between
	// clean and dirty. Never fired twice in a row with the same boolean
	// for the same resource.
	EventDirtyChanged EventType = "DIRTY_CHANGED"

	// EventTextChanged fires after a localized text upsert.
	EventTextChanged EventType = "TEXT_CHANGED"

	// EventKeyAdded fires after a localization key is registered.
	EventKeyAdded EventType = "KEY_ADDED"

	// EventKeyDeleted fires after a localization key is removed.
	EventKeyDeleted EventType = "KEY_DELETED"

	// EventExternalChange fires when a watched data file is modified
	// outside the engine (external editor, VCS checkout).
	EventExternalChange EventType = "EXTERNAL_CHANGE"
)

// Event represents a change in tracked or localized data.
type Event struct {
	Type      EventType
	Resource  string // logical data-type identity (table name or "localization")
	Key       string
	Language  string
	Dirty     bool
	Timestamp int64 // Unix timestamp
}

// String renders a compact description of the event. It also satisfies
// the lifecycle.Event contract, so Event can flow through a
// lifecycle.Source unchanged.
func (e Event) String() string {
	out := string(e.Type) + " " + e.Resource
	if e.Key != "" {
		out += " " + e.Key
	}
	if e.Language != "" {
		out += " (" + e.Language + ")"
	}
	return out
}
