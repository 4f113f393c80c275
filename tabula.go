package tabula

import (
	"log/slog"

	"github.com/softgrid/tabula/internal/platform"
	"github.com/softgrid/tabula/pkg/core"
	"github.com/softgrid/tabula/pkg/lingo"
	"github.com/softgrid/tabula/pkg/manage"
	"github.com/softgrid/tabula/pkg/track"
)

// --- Types ---

// Session bundles the wired components of one open workspace.
type Session = platform.Session

// Language identifies a translation target.
type Language = lingo.Language

// Entry is one localized value: the text plus an optional context note.
type Entry = lingo.Entry

// KeyMeta is the per-key metadata record.
type KeyMeta = lingo.KeyMeta

// Translator is the machine-translation contract.
type Translator = lingo.Translator

// Report aggregates the per-type outcomes of a batch commit.
type Report = manage.Report

// Event is a notification published by the stores and the watcher.
type Event = core.Event

// Common languages, re-exported for convenience.
var (
	English   = lingo.English
	Korean    = lingo.Korean
	Japanese  = lingo.Japanese
	ChineseCN = lingo.ChineseCN
	French    = lingo.French
	German    = lingo.German
	Spanish   = lingo.Spanish
)

// ParseLanguage resolves a language code or English name.
func ParseLanguage(s string) (Language, bool) {
	return lingo.ParseLanguage(s)
}

// --- Configuration ---

// Option defines a functional option for configuring a workspace.
type Option = platform.Option

// WithLogger sets the logger for every wired component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithFiles injects a custom file store (e.g. an in-memory fake).
func WithFiles(files core.FileStore) Option {
	return platform.WithFiles(files)
}

// WithSheetMode stores all languages in a single horizontal sheet file.
func WithSheetMode() Option {
	return platform.WithSheetMode()
}

// WithDefaultLanguage sets the language used before any selection is made.
func WithDefaultLanguage(lang Language) Option {
	return platform.WithDefaultLanguage(lang)
}

// WithTranslator wires a machine-translation backend.
func WithTranslator(tr Translator) Option {
	return platform.WithTranslator(tr)
}

// WithLocalizationDir places localization files under a subdirectory.
func WithLocalizationDir(dir string) Option {
	return platform.WithLocalizationDir(dir)
}

// WithMustExist refuses to operate on a missing workspace directory.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithEventBuffer sets the per-subscriber event channel size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatchGlob restricts the external-change watcher to matching paths.
func WithWatchGlob(pattern string) Option {
	return platform.WithWatchGlob(pattern)
}

// --- Factory ---

// Open opens a workspace rooted at dir and wires its components.
func Open(dir string, opts ...Option) (*Session, error) {
	return platform.New(dir, opts...)
}

// FindWorkspaceRoot walks upward from startDir looking for a workspace
// indicator (keys.yaml, localization.csv, or .git).
func FindWorkspaceRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// --- Change-tracked tables ---

// NewTracker creates an empty change tracker.
func NewTracker[K comparable, V track.Value[V]]() *track.Tracker[K, V] {
	return track.New[K, V]()
}

// NewTable adapts a load/store pair into a resource the manager can
// register alongside the localization store.
func NewTable[K comparable, V track.Value[V]](id string, load manage.LoadFunc[K, V], store manage.StoreFunc[K, V]) *manage.Table[K, V] {
	return manage.NewTable(id, load, store)
}

// RegisterTable registers a table with the session's manager under the
// table's identity.
func RegisterTable[K comparable, V track.Value[V]](s *Session, t *manage.Table[K, V]) error {
	return s.Manager.Register(t.ID(), t)
}
