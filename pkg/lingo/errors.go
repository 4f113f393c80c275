package lingo

import "errors"

// Common errors.
var (
	// ErrKeyExists is returned when adding a key that is already registered.
	ErrKeyExists = errors.New("key already exists")

	// ErrKeyNotFound is returned when deleting an unregistered key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyFixed is returned when deleting a key marked fixed.
	ErrKeyFixed = errors.New("key is fixed")

	// ErrLanguageUnavailable is returned when loading a language that the
	// configured storage does not provide.
	ErrLanguageUnavailable = errors.New("language unavailable")

	// ErrNoTranslator is returned when no translation capability is injected.
	ErrNoTranslator = errors.New("no translator configured")

	// ErrUnsupportedPair is returned before attempting a translation the
	// capability reports it cannot handle.
	ErrUnsupportedPair = errors.New("unsupported language pair")
)
