package lingo_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgrid/tabula/pkg/core"
	"github.com/softgrid/tabula/pkg/lingo"
)

// echoTranslator pretends to translate by tagging the text with the
// target code. It refuses any pair involving Korean.
type echoTranslator struct {
	calls int
}

func (e *echoTranslator) CanTranslate(src, dst lingo.Language) bool {
	return src.Code() != "ko" && dst.Code() != "ko"
}

func (e *echoTranslator) Translate(_ context.Context, text string, _, dst lingo.Language) (string, error) {
	e.calls++
	return "(" + dst.Code() + ") " + text, nil
}

func newTranslatingStore(t *testing.T, tr lingo.Translator) *lingo.Store {
	t.Helper()
	files := newMemFiles()
	files.put("en.csv", "Id,Text,Context\nGreeting,Hello,\nEmptyKey,,\n")
	files.put("de.csv", "Id,Text,Context\n")

	store := lingo.NewStore(lingo.Config{
		Files:      files,
		Translator: tr,
		Notifier:   core.NewNotifier(8),
	})
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func TestTranslateText(t *testing.T) {
	tr := &echoTranslator{}
	store := newTranslatingStore(t, tr)
	ctx := context.Background()

	t.Run("Delegates To Capability", func(t *testing.T) {
		got, err := store.TranslateText(ctx, "Hello", lingo.English, lingo.German)
		require.NoError(t, err)
		assert.Equal(t, "(de) Hello", got)
	})

	t.Run("Unsupported Pair Fails Before Translating", func(t *testing.T) {
		before := tr.calls
		_, err := store.TranslateText(ctx, "Hello", lingo.English, lingo.Korean)
		assert.ErrorIs(t, err, lingo.ErrUnsupportedPair)
		assert.True(t, strings.Contains(err.Error(), "en") && strings.Contains(err.Error(), "ko"),
			"error names the offending pair: %v", err)
		assert.Equal(t, before, tr.calls)
	})

	t.Run("Missing Capability", func(t *testing.T) {
		bare := newTranslatingStore(t, nil)
		_, err := bare.TranslateText(ctx, "Hello", lingo.English, lingo.German)
		assert.ErrorIs(t, err, lingo.ErrNoTranslator)
	})
}

func TestAutoTranslateKey(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies Into Current Language", func(t *testing.T) {
		tr := &echoTranslator{}
		store := newTranslatingStore(t, tr)
		require.NoError(t, store.LoadLanguage(ctx, lingo.English))
		require.NoError(t, store.LoadLanguage(ctx, lingo.German)) // current = de

		applied, err := store.AutoTranslateKey(ctx, "Greeting", lingo.English)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, "(de) Hello", store.GetText("Greeting", lingo.German))
	})

	t.Run("Empty Source Is Not Applied", func(t *testing.T) {
		tr := &echoTranslator{}
		store := newTranslatingStore(t, tr)
		require.NoError(t, store.LoadLanguage(ctx, lingo.English))
		require.NoError(t, store.LoadLanguage(ctx, lingo.German))

		applied, err := store.AutoTranslateKey(ctx, "EmptyKey", lingo.English)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Zero(t, tr.calls)
	})

	t.Run("Missing Source Key Is Not Applied", func(t *testing.T) {
		tr := &echoTranslator{}
		store := newTranslatingStore(t, tr)
		require.NoError(t, store.LoadLanguage(ctx, lingo.German))

		applied, err := store.AutoTranslateKey(ctx, "Ghost", lingo.English)
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("Source Equals Target Is Not Applied", func(t *testing.T) {
		tr := &echoTranslator{}
		store := newTranslatingStore(t, tr)
		require.NoError(t, store.LoadLanguage(ctx, lingo.English)) // current = en

		applied, err := store.AutoTranslateKey(ctx, "Greeting", lingo.English)
		require.NoError(t, err)
		assert.False(t, applied)
	})
}
