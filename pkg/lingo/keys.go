package lingo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/softgrid/tabula/pkg/core"
)

// Key metadata is owned exclusively by the key-metadata table; per-language
// files never duplicate it. In per-language mode the table is a YAML list,
// in sheet mode it lives in the prefixed metadata columns.

func (s *Store) decodeKeys(data []byte) error {
	var list []KeyMeta
	if err := yaml.Unmarshal(data, &list); err != nil {
		return err
	}
	for _, m := range list {
		if m.ID == "" {
			continue
		}
		s.keys[m.ID] = m
	}
	return nil
}

func (s *Store) saveKeysLocked(ctx context.Context) error {
	if s.cfg.Mode == ModeSheet {
		// The sheet rewrite carries the metadata columns.
		return nil
	}
	list := make([]KeyMeta, 0, len(s.keys))
	for _, m := range s.keys {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	data, err := yaml.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode key table: %w", err)
	}
	if err := s.cfg.Files.WriteFile(ctx, s.keysPath(), data); err != nil {
		return fmt.Errorf("save key table %s: %w", s.cfg.KeysName, err)
	}
	s.metaDirty = false
	s.refreshDirtyLocked()
	return nil
}

// Keys returns all key metadata sorted by ID.
func (s *Store) Keys() []KeyMeta {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]KeyMeta, 0, len(s.keys))
	for _, m := range s.keys {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// KeyInfo returns the metadata for one key.
func (s *Store) KeyInfo(key string) (KeyMeta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.keys[key]
	return m, ok
}

// AddKey registers a new key, adds an empty entry to every currently
// loaded language, and persists the metadata table plus the current
// language's file. Adding an existing key is an error.
func (s *Store) AddKey(ctx context.Context, key, description, category string, fixed bool) error {
	s.mu.Lock()

	if _, exists := s.keys[key]; exists {
		s.mu.Unlock()
		return fmt.Errorf("add key %q: %w", key, ErrKeyExists)
	}
	s.registerKeyLocked(KeyMeta{ID: key, Description: description, Category: category, Fixed: fixed})

	var err error
	if s.cfg.Mode == ModeSheet {
		err = s.saveSheetLocked(ctx)
	} else {
		err = s.saveKeysLocked(ctx)
		if err == nil {
			err = s.saveLanguageLocked(ctx, s.currentOrDefaultLocked())
		}
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(core.Event{Type: core.EventKeyAdded, Resource: TypeID, Key: key})
	return nil
}

func (s *Store) registerKeyLocked(meta KeyMeta) {
	s.keys[meta.ID] = meta
	for _, dict := range s.languages {
		if _, ok := dict[meta.ID]; !ok {
			dict[meta.ID] = Entry{}
		}
	}
	s.metaDirty = true
	s.refreshDirtyLocked()
}

// DeleteKey removes a key, its metadata, and all language entries, then
// persists every currently loaded language. A fixed key cannot be deleted
// and all of its data stays untouched.
func (s *Store) DeleteKey(ctx context.Context, key string) error {
	return s.deleteKey(ctx, key, false)
}

// ForceDeleteKey is identical to DeleteKey but bypasses the fixed-key
// guard. Reserved for bulk reconciliation flows where fixed keys must be
// purged once their owning record is gone.
func (s *Store) ForceDeleteKey(ctx context.Context, key string) error {
	return s.deleteKey(ctx, key, true)
}

func (s *Store) deleteKey(ctx context.Context, key string, force bool) error {
	s.mu.Lock()

	meta, ok := s.keys[key]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("delete key %q: %w", key, ErrKeyNotFound)
	}
	if meta.Fixed && !force {
		s.mu.Unlock()
		return fmt.Errorf("delete key %q: %w", key, ErrKeyFixed)
	}
	s.removeKeyLocked(key)

	err := s.persistAllLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(core.Event{Type: core.EventKeyDeleted, Resource: TypeID, Key: key})
	return nil
}

func (s *Store) removeKeyLocked(key string) {
	delete(s.keys, key)
	for _, dict := range s.languages {
		delete(dict, key)
	}
	s.metaDirty = true
	s.refreshDirtyLocked()
}

// persistAllLocked writes the metadata table and every loaded language
// exactly once (a single sheet rewrite in sheet mode).
func (s *Store) persistAllLocked(ctx context.Context) error {
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

// AddKeys registers a batch of keys under the same per-key rules as
// AddKey, but persists the metadata table and all loaded languages exactly
// once after the whole batch, then fires one notification per added key.
// Duplicate keys are reported without aborting the rest of the batch.
func (s *Store) AddKeys(ctx context.Context, batch []KeyMeta) error {
	s.mu.Lock()

	var errs []error
	var added []string
	for _, meta := range batch {
		if meta.ID == "" {
			continue
		}
		if _, exists := s.keys[meta.ID]; exists {
			errs = append(errs, fmt.Errorf("add key %q: %w", meta.ID, ErrKeyExists))
			continue
		}
		s.registerKeyLocked(meta)
		added = append(added, meta.ID)
	}

	if len(added) > 0 {
		if err := s.persistAllLocked(ctx); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.mu.Unlock()

	for _, key := range added {
		s.publish(core.Event{Type: core.EventKeyAdded, Resource: TypeID, Key: key})
	}
	return errors.Join(errs...)
}

// ForceDeleteKeys purges a batch of keys, fixed or not, persisting all
// loaded languages exactly once after the whole batch. Keys that are not
// registered are skipped; the batch exists for reconciliation against an
// external source of truth.
func (s *Store) ForceDeleteKeys(ctx context.Context, keys []string) error {
	s.mu.Lock()

	var deleted []string
	for _, key := range keys {
		if _, ok := s.keys[key]; !ok {
			continue
		}
		s.removeKeyLocked(key)
		deleted = append(deleted, key)
	}

	if len(deleted) > 0 {
		if err := s.persistAllLocked(ctx); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.mu.Unlock()

	for _, key := range deleted {
		s.publish(core.Event{Type: core.EventKeyDeleted, Resource: TypeID, Key: key})
	}
	return nil
}
