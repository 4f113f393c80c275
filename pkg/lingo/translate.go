package lingo

import (
	"context"
	"fmt"
)

// Translator is the injected machine-translation capability. The store
// never assumes a pair is supported; it asks first.
type Translator interface {
	// CanTranslate reports whether the capability handles the pair.
	CanTranslate(src, dst Language) bool

	// Translate converts text from src to dst.
	Translate(ctx context.Context, text string, src, dst Language) (string, error)
}

// TranslateText delegates to the injected translation capability. An
// unsupported language pair is reported before any translation is
// attempted.
func (s *Store) TranslateText(ctx context.Context, text string, src, dst Language) (string, error) {
	tr := s.cfg.Translator
	if tr == nil {
		return "", ErrNoTranslator
	}
	if !tr.CanTranslate(src, dst) {
		return "", fmt.Errorf("%s -> %s: %w", src.Code(), dst.Code(), ErrUnsupportedPair)
	}
	return tr.Translate(ctx, text, src, dst)
}

// AutoTranslateKey fills the current language's text for a key from the
// source language. It reports whether a translation was applied: an empty
// or missing source text, or a source equal to the target, is a no-op,
// never a failure.
func (s *Store) AutoTranslateKey(ctx context.Context, key string, src Language) (bool, error) {
	s.mu.Lock()
	dst := s.currentOrDefaultLocked()
	var srcEntry Entry
	if dict, ok := s.languages[src.Code()]; ok {
		srcEntry = dict[key]
	}
	s.mu.Unlock()

	if srcEntry.Text == "" || src.Code() == dst.Code() {
		return false, nil
	}

	translated, err := s.TranslateText(ctx, srcEntry.Text, src, dst)
	if err != nil {
		return false, fmt.Errorf("auto-translate key %q: %w", key, err)
	}
	s.SetText(key, translated, dst)
	return true, nil
}
