package platform

import (
	"log/slog"

	"github.com/softgrid/tabula/pkg/core"
	"github.com/softgrid/tabula/pkg/lingo"
)

// options holds the internal configuration assembled by the With*
// functions.
type options struct {
	files       core.FileStore
	logger      *slog.Logger
	translator  lingo.Translator
	mode        lingo.Mode
	keyColumn   string
	metaPrefix  string
	sheetName   string
	keysName    string
	locDir      string
	defaultLang lingo.Language
	eventBuffer int
	mustExist   bool
	watchGlob   string
}

// Option defines a functional option for configuring a workspace.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		mode:        lingo.ModePerLanguage,
		eventBuffer: core.DefaultEventBuffer,
	}
}

// WithLogger sets the logger for every wired component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFiles injects a custom file store (e.g. an in-memory fake). When
// set, the default disk store is skipped and the workspace directory is
// interpreted by the injected store.
func WithFiles(files core.FileStore) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithSheetMode stores all languages in a single horizontal sheet file
// instead of one file per language.
func WithSheetMode() Option {
	return func(o *options) {
		o.mode = lingo.ModeSheet
	}
}

// WithKeyColumn overrides the key column header. Defaults to "Id".
func WithKeyColumn(name string) Option {
	return func(o *options) {
		o.keyColumn = name
	}
}

// WithMetaPrefix overrides the metadata column marker used in sheet
// mode. Defaults to "~".
func WithMetaPrefix(prefix string) Option {
	return func(o *options) {
		o.metaPrefix = prefix
	}
}

// WithSheetName overrides the sheet file name. Defaults to
// "localization.csv".
func WithSheetName(name string) Option {
	return func(o *options) {
		o.sheetName = name
	}
}

// WithKeysName overrides the key-metadata file name. Defaults to
// "keys.yaml".
func WithKeysName(name string) Option {
	return func(o *options) {
		o.keysName = name
	}
}

// WithLocalizationDir places localization files under a subdirectory of
// the workspace instead of its root.
func WithLocalizationDir(dir string) Option {
	return func(o *options) {
		o.locDir = dir
	}
}

// WithDefaultLanguage sets the language used before any selection is
// made. Defaults to English.
func WithDefaultLanguage(lang lingo.Language) Option {
	return func(o *options) {
		o.defaultLang = lang
	}
}

// WithTranslator wires a machine-translation backend into the
// localization store.
func WithTranslator(tr lingo.Translator) Option {
	return func(o *options) {
		o.translator = tr
	}
}

// WithEventBuffer sets the per-subscriber event channel size. Zero means
// the default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.eventBuffer = size
		}
	}
}

// WithMustExist refuses to operate on a missing workspace directory
// instead of creating it on first write.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithWatchGlob restricts the external-change watcher to paths matching
// the doublestar pattern. Defaults to everything.
func WithWatchGlob(pattern string) Option {
	return func(o *options) {
		o.watchGlob = pattern
	}
}
