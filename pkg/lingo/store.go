package lingo

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/softgrid/tabula/pkg/core"
)

// TypeID is the logical data-type identity the store registers under in
// the persistence orchestrator.
const TypeID = "localization"

// Mode selects the on-disk encoding. It is configuration, never
// auto-detected at runtime.
type Mode int

const (
	// ModePerLanguage keeps one flat Id,Text,Context file per language
	// plus a separate key-metadata table.
	ModePerLanguage Mode = iota

	// ModeSheet keeps a single horizontal file: one row per key, one
	// column per language, metadata columns marked by a prefix.
	ModeSheet
)

func (m Mode) String() string {
	if m == ModeSheet {
		return "sheet"
	}
	return "per-language"
}

// Config holds the configuration for the localization store.
type Config struct {
	Dir        string
	Mode       Mode
	KeyColumn  string // header name of the key column, default "Id"
	MetaPrefix string // marker for metadata columns in sheet mode, default "~"
	SheetName  string // sheet file name, default "localization.csv"
	KeysName   string // key-metadata table name, default "keys.yaml"
	Default    Language
	Files      core.FileStore
	Logger     *slog.Logger
	Translator Translator
	Notifier   *core.Notifier
}

// Store owns all localized text, independent of which UI or code path
// edits it. Callers serialize access; concurrent reads during a write are
// undefined, matching the single-threaded cooperative model of the editor.
type Store struct {
	cfg Config

	mu          sync.Mutex
	languages   map[string]map[string]Entry // code -> key -> entry
	loaded      map[string]Language
	available   map[string]Language
	keys        map[string]KeyMeta
	current     Language
	initialized bool

	dirtyLangs map[string]bool
	metaDirty  bool
	wasDirty   bool
	onDirty    func(bool)
}

// NewStore creates a store. Call Initialize before loading languages.
func NewStore(cfg Config) *Store {
	if cfg.KeyColumn == "" {
		cfg.KeyColumn = "Id"
	}
	if cfg.MetaPrefix == "" {
		cfg.MetaPrefix = "~"
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "localization.csv"
	}
	if cfg.KeysName == "" {
		cfg.KeysName = "keys.yaml"
	}
	if cfg.Default.IsZero() {
		cfg.Default = English
	}
	return &Store{
		cfg:        cfg,
		languages:  make(map[string]map[string]Entry),
		loaded:     make(map[string]Language),
		available:  make(map[string]Language),
		keys:       make(map[string]KeyMeta),
		dirtyLangs: make(map[string]bool),
	}
}

func (s *Store) sheetPath() string {
	return path.Join(s.cfg.Dir, s.cfg.SheetName)
}

func (s *Store) keysPath() string {
	return path.Join(s.cfg.Dir, s.cfg.KeysName)
}

func (s *Store) languagePath(lang Language) string {
	return path.Join(s.cfg.Dir, lang.Code()+".csv")
}

// Initialize prepares the store. In sheet mode the one file is loaded and
// every language found in its header is populated in a single pass. In
// per-language mode the key-metadata table is loaded and availability is
// derived by probing for a file per known language; availability is
// existence-based, not content-based.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initializeLocked(ctx)
}

func (s *Store) initializeLocked(ctx context.Context) error {
	s.languages = make(map[string]map[string]Entry)
	s.loaded = make(map[string]Language)
	s.available = make(map[string]Language)
	s.keys = make(map[string]KeyMeta)
	s.dirtyLangs = make(map[string]bool)
	s.metaDirty = false

	switch s.cfg.Mode {
	case ModeSheet:
		ok, err := s.cfg.Files.Exists(ctx, s.sheetPath())
		if err != nil {
			return fmt.Errorf("probe sheet %s: %w", s.cfg.SheetName, err)
		}
		if ok {
			data, err := s.cfg.Files.ReadFile(ctx, s.sheetPath())
			if err != nil {
				return fmt.Errorf("read sheet %s: %w", s.cfg.SheetName, err)
			}
			parsed, err := parseSheet(data, s.cfg.KeyColumn, s.cfg.MetaPrefix)
			if err != nil {
				return fmt.Errorf("parse sheet %s: %w", s.cfg.SheetName, err)
			}
			s.keys = parsed.keys
			for code, lang := range parsed.languages {
				s.languages[code] = parsed.entries[code]
				s.loaded[code] = lang
				s.available[code] = lang
			}
		}

	default:
		ok, err := s.cfg.Files.Exists(ctx, s.keysPath())
		if err != nil {
			return fmt.Errorf("probe key table %s: %w", s.cfg.KeysName, err)
		}
		if ok {
			data, err := s.cfg.Files.ReadFile(ctx, s.keysPath())
			if err != nil {
				return fmt.Errorf("read key table %s: %w", s.cfg.KeysName, err)
			}
			if err := s.decodeKeys(data); err != nil {
				return fmt.Errorf("parse key table %s: %w", s.cfg.KeysName, err)
			}
		}
		for _, lang := range known {
			exists, err := s.cfg.Files.Exists(ctx, s.languagePath(lang))
			if err != nil {
				return fmt.Errorf("probe language %s: %w", lang.Code(), err)
			}
			if exists {
				s.available[lang.Code()] = lang
			}
		}
	}

	s.initialized = true
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("localization store initialized",
			"mode", s.cfg.Mode.String(),
			"available", len(s.available),
			"keys", len(s.keys))
	}
	s.refreshDirtyLocked()
	return nil
}

// LoadLanguage brings one language into memory and selects it as current.
// A language that is already loaded is not read again.
func (s *Store) LoadLanguage(ctx context.Context, lang Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLanguageLocked(ctx, lang)
}

func (s *Store) loadLanguageLocked(ctx context.Context, lang Language) error {
	code := lang.Code()
	if _, ok := s.loaded[code]; ok {
		s.current = lang
		return nil
	}

	if s.cfg.Mode == ModeSheet {
		// The sheet was parsed whole during Initialize; a language missing
		// from its header cannot be loaded piecemeal.
		return fmt.Errorf("language %s not present in sheet %s: %w",
			code, s.cfg.SheetName, ErrLanguageUnavailable)
	}

	data, err := s.cfg.Files.ReadFile(ctx, s.languagePath(lang))
	if err != nil {
		return fmt.Errorf("load language %s: %w", code, err)
	}
	dict, err := decodeLanguageFile(data, s.cfg.KeyColumn)
	if err != nil {
		return fmt.Errorf("parse language %s: %w", code, err)
	}

	s.languages[code] = dict
	s.loaded[code] = lang
	s.available[code] = lang
	s.current = lang
	return nil
}

// LoadAllAvailable loads every available language while preserving the
// caller's current-language selection across the operation.
func (s *Store) LoadAllAvailable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current
	for _, lang := range s.availableSortedLocked() {
		if err := s.loadLanguageLocked(ctx, lang); err != nil {
			s.current = prev
			return err
		}
	}
	s.current = prev
	return nil
}

// DropLanguage removes a language from the workspace entirely: its file
// in per-language mode, its column on the next sheet rewrite in sheet
// mode. In-memory entries and pending edits for it are discarded.
func (s *Store) DropLanguage(ctx context.Context, lang Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := lang.Code()
	if _, ok := s.available[code]; !ok {
		return fmt.Errorf("drop language %s: %w", code, ErrLanguageUnavailable)
	}

	delete(s.languages, code)
	delete(s.loaded, code)
	delete(s.available, code)
	delete(s.dirtyLangs, code)
	if s.current.Code() == code {
		s.current = Language{}
	}

	if s.cfg.Mode == ModeSheet {
		if err := s.saveSheetLocked(ctx); err != nil {
			return err
		}
	} else if err := s.cfg.Files.Remove(ctx, s.languagePath(lang)); err != nil {
		return fmt.Errorf("drop language %s: %w", code, err)
	}
	s.refreshDirtyLocked()
	return nil
}

// CurrentLanguage returns the selected language, or the configured
// default when nothing has been selected yet.
func (s *Store) CurrentLanguage() Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentOrDefaultLocked()
}

func (s *Store) currentOrDefaultLocked() Language {
	if s.current.IsZero() {
		return s.cfg.Default
	}
	return s.current
}

// SelectLanguage changes the current selection without any I/O.
func (s *Store) SelectLanguage(lang Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = lang
}

// LoadedLanguages returns the loaded set, sorted by code.
func (s *Store) LoadedLanguages() []Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedLanguages(s.loaded)
}

// AvailableLanguages returns the available set, sorted by code.
func (s *Store) AvailableLanguages() []Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availableSortedLocked()
}

func (s *Store) availableSortedLocked() []Language {
	return sortedLanguages(s.available)
}

func sortedLanguages(in map[string]Language) []Language {
	out := make([]Language, 0, len(in))
	for _, l := range in {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out
}

// GetText returns the stored text for a key in a language. Missing data
// degrades to a sentinel instead of failing the render: an unloaded
// language yields "<no CODE data>", a missing key within a loaded
// language yields "[key]". The two markers are deliberately distinct.
func (s *Store) GetText(key string, lang Language) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	dict, ok := s.languages[lang.Code()]
	if !ok {
		return fmt.Sprintf("<no %s data>", lang.Code())
	}
	entry, ok := dict[key]
	if !ok {
		return "[" + key + "]"
	}
	return entry.Text
}

// Text returns the text for a key in the current (or default) language.
func (s *Store) Text(key string) string {
	s.mu.Lock()
	cur := s.currentOrDefaultLocked()
	s.mu.Unlock()
	return s.GetText(key, cur)
}

// GetEntry returns the full entry for a key in a language.
func (s *Store) GetEntry(key string, lang Language) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dict, ok := s.languages[lang.Code()]
	if !ok {
		return Entry{}, false
	}
	entry, ok := dict[key]
	return entry, ok
}

// SetText upserts the text for one (key, language) pair, preserving any
// existing context annotation. Always allowed, even for fixed keys:
// fixed-ness restricts the key identity, never its values. The language
// dictionary is created lazily on first write.
func (s *Store) SetText(key, text string, lang Language) {
	s.mu.Lock()

	code := lang.Code()
	dict, ok := s.languages[code]
	if !ok {
		dict = make(map[string]Entry)
		s.languages[code] = dict
		s.loaded[code] = lang
		s.available[code] = lang
	}
	entry := dict[key]
	entry.Text = text
	dict[key] = entry

	s.dirtyLangs[code] = true
	s.refreshDirtyLocked()
	s.mu.Unlock()

	s.publish(core.Event{
		Type:     core.EventTextChanged,
		Resource: TypeID,
		Key:      key,
		Language: code,
	})
}

// SetContext upserts the context annotation for one (key, language) pair.
func (s *Store) SetContext(key, context string, lang Language) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := lang.Code()
	dict, ok := s.languages[code]
	if !ok {
		return
	}
	entry := dict[key]
	entry.Context = context
	dict[key] = entry
	s.dirtyLangs[code] = true
	s.refreshDirtyLocked()
}

// SaveLanguage serializes one language back to disk. In sheet mode every
// save rewrites the whole combined file; there is no partial write of a
// single column. Saving when no languages are loaded is a safe no-op.
func (s *Store) SaveLanguage(ctx context.Context, lang Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLanguageLocked(ctx, lang)
}

// SaveCurrentLanguage saves the current (or default) language.
func (s *Store) SaveCurrentLanguage(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLanguageLocked(ctx, s.currentOrDefaultLocked())
}

func (s *Store) saveLanguageLocked(ctx context.Context, lang Language) error {
	if len(s.loaded) == 0 {
		return nil
	}
	if s.cfg.Mode == ModeSheet {
		return s.saveSheetLocked(ctx)
	}

	code := lang.Code()
	if _, ok := s.loaded[code]; !ok {
		return nil
	}
	data := encodeLanguageFile(s.languages[code], s.cfg.KeyColumn)
	if err := s.cfg.Files.WriteFile(ctx, s.languagePath(lang), data); err != nil {
		return fmt.Errorf("save language %s: %w", code, err)
	}
	delete(s.dirtyLangs, code)
	s.refreshDirtyLocked()
	return nil
}

func (s *Store) saveSheetLocked(ctx context.Context) error {
	data, err := s.renderSheetLocked()
	if err != nil {
		return fmt.Errorf("render sheet %s: %w", s.cfg.SheetName, err)
	}
	if err := s.cfg.Files.WriteFile(ctx, s.sheetPath(), data); err != nil {
		return fmt.Errorf("save sheet %s: %w", s.cfg.SheetName, err)
	}
	s.dirtyLangs = make(map[string]bool)
	s.metaDirty = false
	s.refreshDirtyLocked()
	return nil
}

// --- Orchestrator resource contract ---

// Dirty reports whether unsaved text or key-metadata edits exist.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wasDirty
}

// OnDirtyChange registers a callback fired only on clean<->dirty transitions.
func (s *Store) OnDirtyChange(fn func(dirty bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDirty = fn
}

// Save persists everything held in memory: the key-metadata table and
// every loaded language (one sheet rewrite in sheet mode).
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.loaded) == 0 && !s.metaDirty {
		return nil
	}
	if s.cfg.Mode == ModeSheet {
		return s.saveSheetLocked(ctx)
	}
	if err := s.saveKeysLocked(ctx); err != nil {
		return err
	}
	for _, lang := range sortedLanguages(s.loaded) {
		if err := s.saveLanguageLocked(ctx, lang); err != nil {
			return err
		}
	}
	return nil
}

// Reload discards in-memory state, re-reads the underlying files, and
// restores the previously loaded set and current selection where possible.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevLoaded := sortedLanguages(s.loaded)
	prevCurrent := s.current

	if err := s.initializeLocked(ctx); err != nil {
		return err
	}
	if s.cfg.Mode == ModePerLanguage {
		for _, lang := range prevLoaded {
			if _, ok := s.available[lang.Code()]; !ok {
				continue
			}
			if err := s.loadLanguageLocked(ctx, lang); err != nil {
				return err
			}
		}
	}

	if _, ok := s.loaded[prevCurrent.Code()]; ok {
		s.current = prevCurrent
	} else {
		s.current = Language{}
	}
	s.refreshDirtyLocked()
	return nil
}

// --- Introspection ---

// StoreState exposes internal state for observability.
type StoreState struct {
	Mode      string   `json:"mode"`
	Loaded    []string `json:"loaded"`
	Available []string `json:"available"`
	KeyCount  int      `json:"key_count"`
	Dirty     bool     `json:"dirty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := make([]string, 0, len(s.loaded))
	for _, l := range sortedLanguages(s.loaded) {
		loaded = append(loaded, l.Code())
	}
	available := make([]string, 0, len(s.available))
	for _, l := range sortedLanguages(s.available) {
		available = append(available, l.Code())
	}
	return StoreState{
		Mode:      s.cfg.Mode.String(),
		Loaded:    loaded,
		Available: available,
		KeyCount:  len(s.keys),
		Dirty:     s.wasDirty,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "localization-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

// --- internals ---

func (s *Store) refreshDirtyLocked() {
	dirty := len(s.dirtyLangs) > 0 || s.metaDirty
	if dirty == s.wasDirty {
		return
	}
	s.wasDirty = dirty
	if s.onDirty != nil {
		s.onDirty(dirty)
	}
}

func (s *Store) publish(e core.Event) {
	if s.cfg.Notifier != nil {
		s.cfg.Notifier.Publish(e)
	}
}
