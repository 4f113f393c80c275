package manage

import "errors"

// Common errors.
var (
	// ErrUnknownType is returned when an operation names an unregistered
	// logical data type.
	ErrUnknownType = errors.New("unknown data type")

	// ErrDuplicateType is returned when registering a type twice.
	ErrDuplicateType = errors.New("data type already registered")

	// ErrSaveInFlight is returned when a save is requested for a type
	// that is already saving. Re-entrant saves would race the baseline
	// re-capture against mutations and silently drop modifications.
	ErrSaveInFlight = errors.New("save already in flight")

	// ErrUnsavedChanges signals that a reload is blocked pending caller
	// confirmation: unsaved modifications exist and the caller asked to
	// check first. A save or an explicit discard must precede the reload.
	ErrUnsavedChanges = errors.New("unsaved changes present")
)
