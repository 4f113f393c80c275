package lingo

import (
	"context"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// Runtime-format export: the game itself consumes go-i18n message bundles,
// not the editing formats. ExportMessages writes one messages.<code>.toml
// per loaded language; LoadBundle reads them back into an i18n.Bundle for
// in-editor preview.

// ExportMessages writes a go-i18n TOML message file per loaded language
// into dir. Keys with empty text are skipped; go-i18n treats an empty
// message as undefined anyway.
func (s *Store) ExportMessages(ctx context.Context, dir string) error {
	s.mu.Lock()
	langs := sortedLanguages(s.loaded)
	dicts := make(map[string]map[string]string, len(langs))
	for _, lang := range langs {
		messages := make(map[string]string)
		for key, entry := range s.languages[lang.Code()] {
			if entry.Text == "" {
				continue
			}
			messages[key] = entry.Text
		}
		dicts[lang.Code()] = messages
	}
	s.mu.Unlock()

	for _, lang := range langs {
		data, err := toml.Marshal(dicts[lang.Code()])
		if err != nil {
			return fmt.Errorf("encode messages for %s: %w", lang.Code(), err)
		}
		name := path.Join(dir, messageFileName(lang))
		if err := s.cfg.Files.WriteFile(ctx, name, data); err != nil {
			return fmt.Errorf("export messages for %s: %w", lang.Code(), err)
		}
	}
	return nil
}

// LoadBundle builds an i18n.Bundle from previously exported message files.
func (s *Store) LoadBundle(ctx context.Context, dir string, langs ...Language) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(s.cfg.Default.Tag())
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, lang := range langs {
		name := path.Join(dir, messageFileName(lang))
		data, err := s.cfg.Files.ReadFile(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read bundle for %s: %w", lang.Code(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, messageFileName(lang)); err != nil {
			return nil, fmt.Errorf("parse bundle for %s: %w", lang.Code(), err)
		}
	}
	return bundle, nil
}

func messageFileName(lang Language) string {
	return "messages." + lang.Code() + ".toml"
}
