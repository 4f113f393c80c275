package lingo_test

import (
	"context"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgrid/tabula/pkg/lingo"
)

func TestExportMessages(t *testing.T) {
	files := newMemFiles()
	files.put("en.csv", "Id,Text,Context\nGreeting,Hello,\nEmpty,,\n")
	files.put("ko.csv", "Id,Text,Context\nGreeting,안녕,\n")

	store := lingo.NewStore(lingo.Config{Files: files})
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.LoadAllAvailable(ctx))

	require.NoError(t, store.ExportMessages(ctx, "out"))

	assert.Contains(t, files.files, "out/messages.en.toml")
	assert.Contains(t, files.files, "out/messages.ko.toml")
	assert.NotContains(t, string(files.files["out/messages.en.toml"]), "Empty",
		"keys with empty text are skipped")

	// The exported files load as a regular go-i18n bundle.
	bundle, err := store.LoadBundle(ctx, "out", lingo.English, lingo.Korean)
	require.NoError(t, err)

	loc := i18n.NewLocalizer(bundle, "ko")
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: "Greeting"})
	require.NoError(t, err)
	assert.Equal(t, "안녕", msg)
}

func TestLoadBundle_MissingFile(t *testing.T) {
	files := newMemFiles()
	store := lingo.NewStore(lingo.Config{Files: files})

	_, err := store.LoadBundle(context.Background(), "out", lingo.English)
	assert.Error(t, err)
}
